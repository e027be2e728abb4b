package analysis

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/wow"
)

// tableEntry is the row shape shared by the damage table variants.
type tableEntry struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Total        int64  `json:"total"`
	TotalReduced int64  `json:"totalReduced"`
	Overheal     int64  `json:"overheal"`
	HitCount     int    `json:"hitCount"`
	TickCount    int    `json:"tickCount"`
}

func decodeTableEntries(blob json.RawMessage) ([]tableEntry, error) {
	var data struct {
		Entries []tableEntry `json:"entries"`
	}
	if err := jsoniter.Unmarshal(blob, &data); err != nil {
		return nil, errors.WithStack(err)
	}
	return data.Entries, nil
}

// entryHits prefers the explicit hit count, then ticks, then falls back to
// one hit when any damage was recorded at all.
func entryHits(e tableEntry) int {
	hits := e.HitCount
	if hits == 0 {
		hits = e.TickCount
	}
	if hits == 0 && e.Total > 0 {
		hits = 1
	}
	return hits
}

// analyzeDamageToActor sums damage done to every instance of one creature
// template. Zero matching instances yields an empty record list, not a
// zero-filled one: "no target existed" must stay distinguishable from
// "target existed, nobody hit it".
func (inst *analysisInstance) analyzeDamageToActor(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	ids, err := inst.fetchActorIDs(cfg.TargetGameID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		log.Warn().
			Str("report", inst.reportID).
			Int("gameID", cfg.TargetGameID).
			Msg("no actor instances for damage metric")
		return nil, nil
	}

	totals := make(map[string]int64, len(roster))
	hits := make(map[string]int, len(roster))

	for _, id := range ids {
		blob, err := inst.fetchTable(tableQuery{
			DataType:   wow.TableDamageDone,
			KillType:   cfg.KillType,
			TargetID:   id,
			WipeCutoff: cfg.WipeCutoff,
			Filter:     cfg.Filter,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// instance present but never damaged
				continue
			}
			return nil, err
		}

		entries, err := decodeTableEntries(blob)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			totals[e.Name] += e.Total
			hits[e.Name] += entryHits(e)
		}
	}

	rs := newRecordSet(roster)
	for name, total := range totals {
		rs.apply(name, float64(total), hits[name], nil)
	}

	return rs.list(), nil
}

// analyzeDamageTaken reads the damage-taken table for one ability.
func (inst *analysisInstance) analyzeDamageTaken(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	blob, err := inst.fetchTable(tableQuery{
		DataType:   wow.TableDamageTaken,
		AbilityID:  cfg.AbilityID,
		KillType:   cfg.KillType,
		WipeCutoff: cfg.WipeCutoff,
		Filter:     cfg.Filter,
	})
	if err != nil {
		return nil, err
	}

	entries, err := decodeTableEntries(blob)
	if err != nil {
		return nil, err
	}

	rs := newRecordSet(roster)
	for _, e := range entries {
		rs.apply(e.Name, float64(e.Total), entryHits(e), nil)
	}

	return rs.list(), nil
}
