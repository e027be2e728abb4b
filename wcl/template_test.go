package wcl

import (
	"strings"
	"testing"
	"text/template"
)

func render(t *testing.T, tmpl *template.Template, data interface{}) string {
	t.Helper()

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		t.Fatalf("execute %s: %v", tmpl.Name(), err)
	}
	return sb.String()
}

func TestReportFightsTemplate(t *testing.T) {
	out := render(t, tmplReportFights, ReportFightsVars{
		Code:        "ABCD1234",
		EncounterID: 3013,
		Difficulty:  5,
	})

	for _, want := range []string{
		`report(code: "ABCD1234")`,
		`killType: Encounters`,
		`encounterID: 3013`,
		`difficulty: 5`,
		`startTime`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered query missing %q:\n%s", want, out)
		}
	}
}

func TestReportRosterTemplate(t *testing.T) {
	out := render(t, tmplReportRoster, ReportRosterVars{
		Code:     "ABCD1234",
		FightIDs: []int{4, 5, 9},
	})

	if !strings.Contains(out, `playerDetails(fightIDs: [4, 5, 9])`) {
		t.Errorf("rendered query missing the fight list:\n%s", out)
	}
}

func TestReportEventsTemplate(t *testing.T) {
	vars := ReportEventsVars{
		Code:      "ABCD1234",
		FightIDs:  []int{1, 2},
		DataType:  "Debuffs",
		Hostility: "Friendlies",
		StartTime: 0,
		EndTime:   99000,
	}

	out := render(t, tmplReportEvents, vars)
	for _, want := range []string{
		`dataType: Debuffs`,
		`hostilityType: Friendlies`,
		`fightIDs: [1, 2]`,
		`startTime: 0`,
		`endTime: 99000`,
		`nextPageTimestamp`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered query missing %q:\n%s", want, out)
		}
	}

	// zero-valued optionals stay out of the query
	for _, absent := range []string{"abilityID", "wipeCutoff"} {
		if strings.Contains(out, absent) {
			t.Errorf("rendered query contains %q for a zero value:\n%s", absent, out)
		}
	}

	vars.AbilityID = 1216661
	vars.WipeCutoff = 4
	out = render(t, tmplReportEvents, vars)
	for _, want := range []string{`abilityID: 1216661`, `wipeCutoff: 4`} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered query missing %q:\n%s", want, out)
		}
	}
}

func TestReportTableTemplate(t *testing.T) {
	vars := ReportTableVars{
		Code:        "ABCD1234",
		FightIDs:    []int{1},
		DataType:    "DamageDone",
		EncounterID: 3014,
		Difficulty:  5,
	}

	out := render(t, tmplReportTable, vars)
	for _, want := range []string{`dataType: DamageDone`, `encounterID: 3014`} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered query missing %q:\n%s", want, out)
		}
	}
	for _, absent := range []string{"killType", "abilityID", "targetID", "wipeCutoff", "filterExpression"} {
		if strings.Contains(out, absent) {
			t.Errorf("rendered query contains %q for a zero value:\n%s", absent, out)
		}
	}

	vars.KillType = "Encounters"
	vars.TargetID = 27
	vars.Filter = "absorbedDamage > 0"
	out = render(t, tmplReportTable, vars)
	for _, want := range []string{
		`killType: Encounters`,
		`targetID: 27`,
		`filterExpression: "absorbedDamage > 0"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered query missing %q:\n%s", want, out)
		}
	}
}

func TestReportActorsTemplate(t *testing.T) {
	out := render(t, tmplReportActors, ReportActorsVars{Code: "ABCD1234"})

	for _, want := range []string{`report(code: "ABCD1234")`, `actors(type: "NPC")`, `gameID`} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered query missing %q:\n%s", want, out)
		}
	}
}

func TestJoinInts(t *testing.T) {
	tests := []struct {
		name     string
		in       []int
		expected string
	}{
		{"Empty", nil, ""},
		{"Single", []int{7}, "7"},
		{"Many", []int{1, 2, 3}, "1, 2, 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinInts(tt.in); got != tt.expected {
				t.Errorf("joinInts(%v) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}
