package analysis

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"wow_check/wcl"
)

// maxEventPages bounds the pagination loop against a cursor that never
// terminates. A full night of pulls fits in a handful of pages.
const maxEventPages = 50

// fetchEvents retrieves every event page for the fight set and concatenates
// them in order. Paging follows the nextPageTimestamp cursor until it is
// absent or the page cap is hit.
func (inst *analysisInstance) fetchEvents(dataType string, hostility string, abilityID int, wipeCutoff int) ([]wcl.Event, error) {
	events := make([]wcl.Event, 0, 1024)

	startTime := int64(0)
	for page := 0; page < maxEventPages; page++ {
		resp, err := inst.gw.ReportEvents(inst.ctx, wcl.ReportEventsVars{
			Code:       inst.reportID,
			FightIDs:   inst.fightIDs,
			DataType:   dataType,
			Hostility:  hostility,
			AbilityID:  abilityID,
			StartTime:  startTime,
			EndTime:    inst.endTime,
			WipeCutoff: wipeCutoff,
		})
		if err != nil {
			return nil, err
		}

		report := resp.Data.ReportData.Report
		if report == nil {
			return nil, errors.Wrapf(ErrNotFound, "report %s: no event data", inst.reportID)
		}

		events = append(events, report.Events.Data...)

		next := report.Events.NextPageTimestamp
		if next == nil || *next == 0 {
			return events, nil
		}
		startTime = *next
	}

	log.Warn().
		Str("report", inst.reportID).
		Str("dataType", dataType).
		Int("pages", maxEventPages).
		Msg("event pagination cap hit, result truncated")

	return events, nil
}
