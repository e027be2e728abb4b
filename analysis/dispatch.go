package analysis

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/metrics"
	"wow_check/wow"
)

// process runs one report through its stages: resolve fights, resolve the
// roster, then evaluate every configured metric in order. A failed stage
// returns its name so the caller can label the skip; a failed metric is
// logged and skipped without touching the others. Unknown metric kinds
// abort the whole run.
func (inst *analysisInstance) process() (*ReportResult, string, error) {
	if err := inst.updateFights(); err != nil {
		return nil, "fights", err
	}
	if err := inst.updateRoster(); err != nil {
		return nil, "roster", err
	}

	result := &ReportResult{
		ReportID:        inst.reportID,
		Label:           inst.label,
		StartTime:       inst.startTime,
		TotalDurationMS: inst.duration,
		FightIDs:        inst.fightIDs,
		Analyses:        make([]Analysis, 0, len(inst.encounter.Metrics)),
	}

	for i := range inst.encounter.Metrics {
		cfg := &inst.encounter.Metrics[i]

		inst.reportProgress("%s: %s", inst.reportID, cfg.Name)

		records, err := inst.evaluate(cfg)
		if err != nil {
			if errors.Is(err, ErrBadConfig) {
				return nil, "config", err
			}

			metrics.MetricsFailed.WithLabelValues(string(cfg.Kind)).Inc()
			log.Warn().
				Err(err).
				Str("report", inst.reportID).
				Str("metric", cfg.Name).
				Msg("metric skipped")
			continue
		}

		result.Analyses = append(result.Analyses, Analysis{
			Name: cfg.Name,
			Data: records,
		})
	}

	return result, "", nil
}

func (inst *analysisInstance) evaluate(cfg *wow.MetricConfig) ([]MetricRecord, error) {
	roster := filterRoster(inst.roster, cfg.Roles)

	switch cfg.Kind {
	case wow.MetricInterrupts:
		return inst.analyzeInterrupts(cfg, roster)
	case wow.MetricDebuffUptime:
		return inst.analyzeDebuffUptime(cfg, roster)
	case wow.MetricDamageToActor:
		return inst.analyzeDamageToActor(cfg, roster)
	case wow.MetricDamageTaken:
		return inst.analyzeDamageTaken(cfg, roster)
	case wow.MetricTable:
		return inst.analyzeTable(cfg, roster)
	case wow.MetricMineTriggers:
		return inst.analyzeMineTriggers(cfg, roster)
	case wow.MetricBlastHits:
		return inst.analyzeBlastHits(cfg, roster)
	default:
		return nil, errors.Wrapf(ErrBadConfig, "metric %q: unknown kind %q", cfg.Name, cfg.Kind)
	}
}
