package analysis

import (
	"wow_check/wcl"
	"wow_check/wow"
)

// analyzeDebuffUptime measures how long each player carried the tracked
// debuff, as a percentage of the summed fight time, rounded to 2 decimals.
func (inst *analysisInstance) analyzeDebuffUptime(cfg *wow.MetricConfig, roster []Player) ([]MetricRecord, error) {
	events, err := inst.fetchEvents(wow.EventsDebuffs, wow.HostilityFriendlies, cfg.AbilityID, cfg.WipeCutoff)
	if err != nil {
		return nil, err
	}

	uptime, applications := debuffUptime(events, inst.fights)

	rs := newRecordSet(roster)
	for id, ms := range uptime {
		r := rs.byID(id)
		if r == nil {
			continue
		}
		if inst.duration > 0 {
			r.Value = round2(float64(ms) / float64(inst.duration) * 100)
		}
		r.Hits = applications[id]
	}

	return rs.list(), nil
}

// debuffUptime pairs applydebuff/removedebuff per target and sums the
// covered milliseconds. An application that never sees its removal runs to
// the end of its own fight; auras do not survive a pull.
func debuffUptime(events []wcl.Event, fights []wcl.ReportFight) (map[int]int64, map[int]int) {
	fightEnd := make(map[int]int64, len(fights))
	var lastEnd int64
	for _, f := range fights {
		fightEnd[f.ID] = f.EndTime
		if f.EndTime > lastEnd {
			lastEnd = f.EndTime
		}
	}

	uptime := make(map[int]int64)
	applications := make(map[int]int)
	open := make(map[int]wcl.Event)

	closeAtFightEnd := func(app wcl.Event) {
		end, ok := fightEnd[app.Fight]
		if !ok {
			end = lastEnd
		}
		if end > app.Timestamp {
			uptime[app.TargetID] += end - app.Timestamp
		}
	}

	for _, ev := range events {
		switch ev.Type {
		case "applydebuff":
			if app, ok := open[ev.TargetID]; ok {
				if app.Fight == ev.Fight {
					// refresh inside an active window
					continue
				}
				closeAtFightEnd(app)
			}
			open[ev.TargetID] = ev
			applications[ev.TargetID]++

		case "removedebuff":
			app, ok := open[ev.TargetID]
			if !ok {
				continue
			}
			delete(open, ev.TargetID)

			if app.Fight == ev.Fight {
				uptime[ev.TargetID] += ev.Timestamp - app.Timestamp
			} else {
				closeAtFightEnd(app)
			}
		}
	}

	for _, app := range open {
		closeAtFightEnd(app)
	}

	return uptime, applications
}
