package analysis

import (
	"sort"

	"github.com/pkg/errors"

	"wow_check/wcl"
)

// updateFights resolves the encounter's fight set for the report and derives
// timing from it: fight id list, earliest start as unix seconds, summed
// duration, and the event-window upper bound.
func (inst *analysisInstance) updateFights() error {
	resp, err := inst.gw.ReportFights(inst.ctx, wcl.ReportFightsVars{
		Code:        inst.reportID,
		EncounterID: inst.encounter.EncounterID,
		Difficulty:  inst.encounter.Difficulty,
	})
	if err != nil {
		return err
	}

	report := resp.Data.ReportData.Report
	if report == nil || len(report.Fights) == 0 {
		return errors.Wrapf(ErrNotFound, "report %s: no matching fights", inst.reportID)
	}

	inst.fights = report.Fights
	inst.fightIDs = make([]int, 0, len(report.Fights))
	for _, f := range report.Fights {
		inst.fightIDs = append(inst.fightIDs, f.ID)
	}
	sort.Ints(inst.fightIDs)

	inst.duration = sumFightDurations(report.Fights)
	inst.startTime = (report.StartTime + float64(earliestFightStart(report.Fights))) / 1000.0
	inst.endTime = latestFightEnd(report.Fights)

	return nil
}

// sumFightDurations is total over any fight slice, including an empty one.
func sumFightDurations(fights []wcl.ReportFight) int64 {
	var total int64
	for _, f := range fights {
		total += f.EndTime - f.StartTime
	}
	return total
}

func earliestFightStart(fights []wcl.ReportFight) int64 {
	if len(fights) == 0 {
		return 0
	}
	min := fights[0].StartTime
	for _, f := range fights[1:] {
		if f.StartTime < min {
			min = f.StartTime
		}
	}
	return min
}

func latestFightEnd(fights []wcl.ReportFight) int64 {
	var max int64
	for _, f := range fights {
		if f.EndTime > max {
			max = f.EndTime
		}
	}
	return max
}
