package analysis

import (
	"wow_check/wcl"
	"wow_check/wow"
)

// analyzeMineTriggers counts, per player, the times they set off a mine
// into the raid. A trigger debuff counts only when the paired blast damages
// enough distinct other players shortly after; a lone victim stepping on
// their own mine is not a raid-wide mistake.
func (inst *analysisInstance) analyzeMineTriggers(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	triggers, err := inst.fetchEvents(wow.EventsDebuffs, wow.HostilityFriendlies, cfg.TriggerAbilityID, cfg.WipeCutoff)
	if err != nil {
		return nil, err
	}
	blasts, err := inst.fetchEvents(wow.EventsDamageTaken, wow.HostilityFriendlies, cfg.BlastAbilityID, cfg.WipeCutoff)
	if err != nil {
		return nil, err
	}

	counts := mineTriggerCounts(triggers, blasts, cfg.WindowMS, cfg.MinVictims)

	rs := newRecordSet(roster)
	for id, n := range counts {
		if r := rs.byID(id); r != nil {
			r.Value = float64(n)
			r.Hits = n
		}
	}

	return rs.list(), nil
}

// mineTriggerCounts correlates each trigger debuff with blast damage in the
// forward window [t, t+windowMS] of the same fight. The debuffed player
// gets one trigger when at least minVictims distinct players besides
// themselves were hit. Quadratic over the two streams per fight scope;
// fine at encounter event volumes.
func mineTriggerCounts(triggers []wcl.Event, blasts []wcl.Event, windowMS int64, minVictims int) map[int]int {
	counts := make(map[int]int)

	for _, t := range triggers {
		if t.Type != "applydebuff" {
			continue
		}

		victims := make(map[int]struct{})
		for _, hit := range blasts {
			if hit.Fight != t.Fight {
				continue
			}
			if hit.Timestamp < t.Timestamp || hit.Timestamp-t.Timestamp > windowMS {
				continue
			}
			if hit.TargetID == t.TargetID {
				continue
			}
			victims[hit.TargetID] = struct{}{}
		}

		if len(victims) >= minVictims {
			counts[t.TargetID]++
		}
	}

	return counts
}
