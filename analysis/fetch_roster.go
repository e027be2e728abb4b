package analysis

import (
	"strings"

	"github.com/pkg/errors"

	"wow_check/wcl"
	"wow_check/wow"
)

func (inst *analysisInstance) updateRoster() error {
	resp, err := inst.gw.ReportRoster(inst.ctx, wcl.ReportRosterVars{
		Code:     inst.reportID,
		FightIDs: inst.fightIDs,
	})
	if err != nil {
		return err
	}

	report := resp.Data.ReportData.Report
	if report == nil {
		return errors.Wrapf(ErrNotFound, "report %s: no player details", inst.reportID)
	}

	pd := report.PlayerDetails.Data.PlayerDetails
	inst.roster = buildRoster(pd.Tanks, pd.Healers, pd.Dps)
	if len(inst.roster) == 0 {
		return errors.Wrapf(ErrNotFound, "report %s: empty roster", inst.reportID)
	}

	return nil
}

// buildRoster flattens the role partitions in tank, healer, dps scan order,
// lower-cases class names, and keeps the first occurrence of each name.
// Players listed under several roles keep the earliest role.
func buildRoster(tanks, healers, dps []wcl.PlayerDetail) []Player {
	out := make([]Player, 0, len(tanks)+len(healers)+len(dps))
	seen := make(map[string]struct{}, cap(out))

	add := func(list []wcl.PlayerDetail, role string) {
		for _, d := range list {
			if _, ok := seen[d.Name]; ok {
				continue
			}
			seen[d.Name] = struct{}{}

			out = append(out, Player{
				ID:    d.ID,
				Name:  d.Name,
				Class: strings.ToLower(d.Type),
				Role:  role,
			})
		}
	}
	add(tanks, wow.RoleTank)
	add(healers, wow.RoleHealer)
	add(dps, wow.RoleDps)

	return out
}
