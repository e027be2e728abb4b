package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/metrics"
	"wow_check/share"
	"wow_check/wow"
)

// Report is one reporting session to analyze. Label is the officers'
// display name for it ("week 12", "tuesday"); empty falls back to the code.
type Report struct {
	Code  string `json:"code"`
	Label string `json:"label,omitempty"`
}

type Options struct {
	Context   context.Context `json:"-"`
	Gateway   Gateway         `json:"-"`
	Encounter *wow.Encounter  `json:"-"`
	Reports   []Report        `json:"reports"`

	Progress func(string) `json:"-"`
}

// Run processes each report in the caller's order and returns the populated
// store. A report that cannot be resolved is skipped with a warning; later
// reports still run. Configuration mistakes and cancellation stop the run.
func Run(opt *Options) (*Store, error) {
	if opt.Gateway == nil {
		return nil, errors.Wrap(ErrBadConfig, "gateway is required")
	}
	if opt.Encounter == nil {
		return nil, errors.Wrap(ErrBadConfig, "encounter is required")
	}

	ctx := opt.Context
	if ctx == nil {
		ctx = context.Background()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var w sync.WaitGroup
	var send func(string)
	if opt.Progress != nil {
		progressCh := make(chan string)
		send = func(s string) {
			select {
			case progressCh <- s:
			case <-runCtx.Done():
			}
		}

		w.Add(1)
		go func() {
			defer w.Done()

			nextMessage := time.Now()
			for {
				select {
				case <-runCtx.Done():
					return

				case s := <-progressCh:
					if time.Now().Before(nextMessage) {
						continue
					}

					opt.Progress(s)
					nextMessage = time.Now().Add(200 * time.Millisecond)
				}
			}
		}()
	}

	store := NewStore()

	for _, rep := range opt.Reports {
		inst := &analysisInstance{
			ctx:       runCtx,
			gw:        opt.Gateway,
			encounter: opt.Encounter,
			reportID:  rep.Code,
			label:     rep.Label,
			progress:  send,
		}

		inst.reportProgress("analyzing %s", rep.Code)

		result, stage, err := inst.process()
		if err != nil {
			if errors.Is(err, ErrBadConfig) || share.IsContextClosedError(err) {
				return nil, err
			}

			metrics.ReportsSkipped.WithLabelValues(stage).Inc()
			log.Warn().
				Err(err).
				Str("report", rep.Code).
				Str("stage", stage).
				Msg("report skipped")
			continue
		}

		store.Record(result)
		metrics.ReportsAnalyzed.Inc()
	}

	metrics.AnalysisRuns.Inc()

	cancel()
	w.Wait()

	return store, nil
}
