package chart

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/analysis"
	"wow_check/share/parallel"
	"wow_check/wow"
)

const (
	renderWorkers = 4

	indexFile = "index.html"
)

type Options struct {
	Store     *analysis.Store
	Encounter *wow.Encounter
	OutDir    string
}

// Render writes one current-vs-previous bar chart per configured metric and
// an index page linking them, and returns the index path. Metrics whose
// current record set is empty are skipped; a metric name no stored report
// carries aborts the render, that is a wiring bug.
func Render(opt Options) (string, error) {
	results := opt.Store.Results()
	if len(results) == 0 {
		return "", errors.Wrap(analysis.ErrNotFound, "no analyzed reports")
	}

	if err := os.MkdirAll(opt.OutDir, 0755); err != nil {
		return "", errors.WithStack(err)
	}

	type renderedChart struct {
		name string
		file string
		ok   bool
	}
	rendered := make([]renderedChart, len(opt.Encounter.Metrics))

	pool := parallel.New(renderWorkers)
	for i := range opt.Encounter.Metrics {
		i := i
		m := &opt.Encounter.Metrics[i]

		pool.Add(func(context.Context) error {
			current, previous, err := opt.Store.FindMetric(m.Name)
			if err != nil {
				return err
			}
			if len(current) == 0 {
				log.Warn().Str("metric", m.Name).Msg("no records, chart skipped")
				return nil
			}

			file := m.Name + ".html"
			err = renderMetricChart(filepath.Join(opt.OutDir, file), opt.Encounter, m.Name, current, previous)
			if err != nil {
				return err
			}

			rendered[i] = renderedChart{name: m.Name, file: file, ok: true}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return "", err
	}

	data := indexData{
		Encounter: opt.Encounter,
		UpdatedAt: time.Now().Format("2006-01-02 15:04"),
		Sessions:  results,
	}
	for _, rc := range rendered {
		if rc.ok {
			data.Charts = append(data.Charts, indexChart{Name: rc.name, File: rc.file})
		}
	}

	indexPath := filepath.Join(opt.OutDir, indexFile)
	if err := writeIndex(indexPath, &data); err != nil {
		return "", err
	}

	return indexPath, nil
}

func renderMetricChart(path string, enc *wow.Encounter, name string, current []analysis.MetricRecord, previous map[string]float64) error {
	records := make([]analysis.MetricRecord, len(current))
	copy(records, current)
	sort.SliceStable(records, func(i, k int) bool {
		ri, rk := wow.RoleOrder[records[i].Role], wow.RoleOrder[records[k].Role]
		if ri != rk {
			return ri < rk
		}
		return records[i].PlayerName < records[k].PlayerName
	})

	names := make([]string, len(records))
	currentBars := make([]opts.BarData, len(records))
	previousBars := make([]opts.BarData, len(records))
	for i, r := range records {
		names[i] = r.PlayerName
		currentBars[i] = opts.BarData{
			Value:     r.Value,
			ItemStyle: &opts.ItemStyle{Color: wow.ColorOf(r.Class)},
		}

		// missing prior value renders as a gap, not a zero bar
		if v, ok := previous[r.PlayerName]; ok {
			previousBars[i] = opts.BarData{Value: v}
		} else {
			previousBars[i] = opts.BarData{Value: nil}
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: name,
			Width:     "1400px",
			Height:    "640px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    name,
			Subtitle: enc.Name + " / " + enc.Zone,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45, Interval: "0"},
		}),
	)

	bar.SetXAxis(names).
		AddSeries("previous", previousBars, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9D9D9D"})).
		AddSeries("current", currentBars)

	fs, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer fs.Close()

	return errors.WithStack(bar.Render(fs))
}
