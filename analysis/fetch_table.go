package analysis

import (
	"encoding/json"

	"github.com/pkg/errors"

	"wow_check/wcl"
)

type tableQuery struct {
	DataType   string
	KillType   string
	AbilityID  int
	TargetID   int
	WipeCutoff int
	Filter     string
}

// fetchTable runs one aggregate table query and returns the undecoded
// payload; the caller picks the decode shape for its dataType.
func (inst *analysisInstance) fetchTable(q tableQuery) (json.RawMessage, error) {
	resp, err := inst.gw.ReportTable(inst.ctx, wcl.ReportTableVars{
		Code:        inst.reportID,
		FightIDs:    inst.fightIDs,
		DataType:    q.DataType,
		EncounterID: inst.encounter.EncounterID,
		Difficulty:  inst.encounter.Difficulty,
		KillType:    q.KillType,
		AbilityID:   q.AbilityID,
		TargetID:    q.TargetID,
		WipeCutoff:  q.WipeCutoff,
		Filter:      q.Filter,
	})
	if err != nil {
		return nil, err
	}

	report := resp.Data.ReportData.Report
	if report == nil || len(report.Table.Data) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "report %s: no %s table", inst.reportID, q.DataType)
	}

	return report.Table.Data, nil
}

// fetchActorIDs resolves every NPC instance matching a creature template id.
// An empty result is not an error; bosses spawn their adds per pull.
func (inst *analysisInstance) fetchActorIDs(gameID int) ([]int, error) {
	resp, err := inst.gw.ReportActors(inst.ctx, wcl.ReportActorsVars{Code: inst.reportID})
	if err != nil {
		return nil, err
	}

	report := resp.Data.ReportData.Report
	if report == nil {
		return nil, errors.Wrapf(ErrNotFound, "report %s: no master data", inst.reportID)
	}

	var ids []int
	for _, a := range report.MasterData.Actors {
		if a.GameID == gameID {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}
