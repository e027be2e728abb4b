package analysis

import (
	"github.com/rs/zerolog/log"

	"wow_check/wow"
)

// analyzeInterrupts counts interrupt events per roster player. Events whose
// source is not on the (role-filtered) roster are logged and dropped; pets
// and absent roles land here.
func (inst *analysisInstance) analyzeInterrupts(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	events, err := inst.fetchEvents(wow.EventsInterrupts, wow.HostilityFriendlies, cfg.AbilityID, cfg.WipeCutoff)
	if err != nil {
		return nil, err
	}

	rs := newRecordSet(roster)
	for _, ev := range events {
		r := rs.byID(ev.SourceID)
		if r == nil {
			log.Debug().
				Str("report", inst.reportID).
				Int("source", ev.SourceID).
				Msg("interrupt from unknown source")
			continue
		}
		r.Value++
		r.Hits++
	}

	return rs.list(), nil
}
