package analysis

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"wow_check/wow"
)

// analyzeTable handles the generic table metric: one aggregate query whose
// row collection and derived value depend on the configured dataType.
func (inst *analysisInstance) analyzeTable(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	blob, err := inst.fetchTable(tableQuery{
		DataType:   cfg.DataType,
		KillType:   cfg.KillType,
		AbilityID:  cfg.AbilityID,
		WipeCutoff: cfg.WipeCutoff,
		Filter:     cfg.Filter,
	})
	if err != nil {
		return nil, err
	}

	switch cfg.DataType {
	case wow.TableDebuffs:
		return tableDebuffRecords(blob, roster)
	case wow.TableDamageTaken:
		return tableDamageTakenRecords(blob, roster)
	case wow.TableDeaths:
		return tableDeathRecords(blob, roster)
	case wow.TableSurvivability:
		return tableSurvivabilityRecords(blob, roster)
	default:
		return tablePassthroughRecords(blob, roster)
	}
}

func tableDebuffRecords(blob json.RawMessage, roster []Player) ([]MetricRecord, error) {
	var data struct {
		Auras []struct {
			ID          int    `json:"id"`
			Name        string `json:"name"`
			TotalUptime int64  `json:"totalUptime"`
			TotalUses   int    `json:"totalUses"`
		} `json:"auras"`
		TotalTime int64 `json:"totalTime"`
	}
	if err := jsoniter.Unmarshal(blob, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	rs := newRecordSet(roster)
	for _, a := range data.Auras {
		var pct float64
		if data.TotalTime > 0 {
			pct = round2(float64(a.TotalUptime) / float64(data.TotalTime) * 100)
		}
		rs.apply(a.Name, pct, a.TotalUses, nil)
	}

	return rs.list(), nil
}

func tableDamageTakenRecords(blob json.RawMessage, roster []Player) ([]MetricRecord, error) {
	entries, err := decodeTableEntries(blob)
	if err != nil {
		return nil, err
	}

	rs := newRecordSet(roster)
	for _, e := range entries {
		rs.apply(e.Name, float64(e.Total), entryHits(e), map[string]float64{
			"reduced":  float64(e.TotalReduced),
			"overheal": float64(e.Overheal),
		})
	}

	return rs.list(), nil
}

// tableDeathRecords counts death rows per player. Every row is one death;
// repeats accumulate.
func tableDeathRecords(blob json.RawMessage, roster []Player) ([]MetricRecord, error) {
	var data struct {
		Entries []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"entries"`
	}
	if err := jsoniter.Unmarshal(blob, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	rs := newRecordSet(roster)
	for _, e := range data.Entries {
		if r := rs.get(e.Name); r != nil {
			r.Value++
		}
	}

	return rs.list(), nil
}

// tableSurvivabilityRecords averages each player's per-fight survivability
// fraction over the fights that have one, as a 0..100 percentage with one
// decimal. No valid fights means 0.0, not NaN.
func tableSurvivabilityRecords(blob json.RawMessage, roster []Player) ([]MetricRecord, error) {
	var data struct {
		Players []struct {
			Name   string `json:"name"`
			Fights []struct {
				ID            int      `json:"id"`
				Survivability *float64 `json:"survivability"`
			} `json:"fights"`
		} `json:"players"`
	}
	if err := jsoniter.Unmarshal(blob, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	rs := newRecordSet(roster)
	for _, p := range data.Players {
		var sum float64
		valid := 0
		for _, f := range p.Fights {
			if f.Survivability == nil {
				continue
			}
			sum += *f.Survivability
			valid++
		}

		var value float64
		if valid > 0 {
			value = round1(sum / float64(valid) * 100)
		}
		rs.apply(p.Name, value, valid, nil)
	}

	return rs.list(), nil
}

// tablePassthroughRecords keeps every numeric, non-identity field of an
// unrecognized table shape, using "total" as the headline value when
// present.
func tablePassthroughRecords(blob json.RawMessage, roster []Player) ([]MetricRecord, error) {
	var data struct {
		Entries []map[string]interface{} `json:"entries"`
	}
	if err := jsoniter.Unmarshal(blob, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	rs := newRecordSet(roster)
	for _, e := range data.Entries {
		name, _ := e["name"].(string)
		if name == "" {
			continue
		}

		extra := make(map[string]float64, len(e))
		var value float64
		for k, v := range e {
			f, ok := v.(float64)
			if !ok {
				continue
			}
			switch k {
			case "id", "guid", "gameID":
				continue
			}
			extra[k] = f
			if k == "total" {
				value = f
			}
		}
		rs.apply(name, value, 0, extra)
	}

	return rs.list(), nil
}
