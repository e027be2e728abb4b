package analysis

import (
	"wow_check/wcl"
	"wow_check/wow"
)

// analyzeBlastHits counts beam hits per player. The ability ticks several
// times while sweeping through someone, so rapid consecutive hits coalesce
// into one counted hit.
func (inst *analysisInstance) analyzeBlastHits(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	hits, err := inst.fetchEvents(wow.EventsDamageTaken, wow.HostilityFriendlies, cfg.BlastAbilityID, cfg.WipeCutoff)
	if err != nil {
		return nil, err
	}

	counts := coalescedHitCounts(hits, cfg.GroupWindowMS)

	rs := newRecordSet(roster)
	for id, n := range counts {
		if r := rs.byID(id); r != nil {
			r.Value = float64(n)
			r.Hits = n
		}
	}

	return rs.list(), nil
}

// coalescedHitCounts merges hits on the same victim in the same fight that
// land strictly inside windowMS of the last counted hit. Merged hits do not
// advance the window; the comparison is always against the last accepted
// hit. A gap of exactly windowMS counts separately.
func coalescedHitCounts(hits []wcl.Event, windowMS int64) map[int]int {
	type victimKey struct {
		fight  int
		target int
	}

	counts := make(map[int]int)
	lastAccepted := make(map[victimKey]int64)

	for _, hit := range hits {
		k := victimKey{fight: hit.Fight, target: hit.TargetID}

		if ts, ok := lastAccepted[k]; ok && hit.Timestamp-ts < windowMS {
			continue
		}

		lastAccepted[k] = hit.Timestamp
		counts[hit.TargetID]++
	}

	return counts
}
