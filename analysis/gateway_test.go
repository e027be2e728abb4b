package analysis

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"wow_check/wcl"
	"wow_check/wow"
)

// fakeGateway routes each query kind to a test-provided closure. A nil
// closure fails the query, so tests notice unexpected traffic.
type fakeGateway struct {
	fights func(vars wcl.ReportFightsVars) (*wcl.ReportFightsResponse, error)
	roster func(vars wcl.ReportRosterVars) (*wcl.ReportRosterResponse, error)
	events func(vars wcl.ReportEventsVars) (*wcl.ReportEventsResponse, error)
	table  func(vars wcl.ReportTableVars) (*wcl.ReportTableResponse, error)
	actors func(vars wcl.ReportActorsVars) (*wcl.ReportActorsResponse, error)
}

func (g *fakeGateway) ReportFights(_ context.Context, vars wcl.ReportFightsVars) (*wcl.ReportFightsResponse, error) {
	if g.fights == nil {
		return nil, errors.New("unexpected fights query")
	}
	return g.fights(vars)
}

func (g *fakeGateway) ReportRoster(_ context.Context, vars wcl.ReportRosterVars) (*wcl.ReportRosterResponse, error) {
	if g.roster == nil {
		return nil, errors.New("unexpected roster query")
	}
	return g.roster(vars)
}

func (g *fakeGateway) ReportEvents(_ context.Context, vars wcl.ReportEventsVars) (*wcl.ReportEventsResponse, error) {
	if g.events == nil {
		return nil, errors.New("unexpected events query")
	}
	return g.events(vars)
}

func (g *fakeGateway) ReportTable(_ context.Context, vars wcl.ReportTableVars) (*wcl.ReportTableResponse, error) {
	if g.table == nil {
		return nil, errors.New("unexpected table query")
	}
	return g.table(vars)
}

func (g *fakeGateway) ReportActors(_ context.Context, vars wcl.ReportActorsVars) (*wcl.ReportActorsResponse, error) {
	if g.actors == nil {
		return nil, errors.New("unexpected actors query")
	}
	return g.actors(vars)
}

////////////////////////////////////////////////////////////////////////////////////////////////////
// fixture builders, JSON in because that is how the data arrives

func mustDecode(body string, out interface{}) {
	if err := jsoniter.UnmarshalFromString(body, out); err != nil {
		panic(err)
	}
}

func fightsResp(body string) *wcl.ReportFightsResponse {
	resp := new(wcl.ReportFightsResponse)
	mustDecode(body, resp)
	return resp
}

func rosterResp(body string) *wcl.ReportRosterResponse {
	resp := new(wcl.ReportRosterResponse)
	mustDecode(body, resp)
	return resp
}

func eventsResp(body string) *wcl.ReportEventsResponse {
	resp := new(wcl.ReportEventsResponse)
	mustDecode(body, resp)
	return resp
}

func tableResp(body string) *wcl.ReportTableResponse {
	resp := new(wcl.ReportTableResponse)
	mustDecode(body, resp)
	return resp
}

func actorsResp(body string) *wcl.ReportActorsResponse {
	resp := new(wcl.ReportActorsResponse)
	mustDecode(body, resp)
	return resp
}

const nullReportBody = `{"data":{"reportData":{"report":null}}}`

// testRoster is the three-player stand-in raid used across evaluator tests.
func testRoster() []Player {
	return []Player{
		{ID: 1, Name: "Aldric", Class: "warrior", Role: wow.RoleTank},
		{ID: 2, Name: "Mirelle", Class: "priest", Role: wow.RoleHealer},
		{ID: 3, Name: "Kaelis", Class: "mage", Role: wow.RoleDps},
	}
}

func testEncounter(metrics ...wow.MetricConfig) *wow.Encounter {
	return &wow.Encounter{
		Slug:        "testenc",
		Name:        "Test Encounter",
		Zone:        "Test Zone",
		EncounterID: 9999,
		Difficulty:  wow.DifficultyMythic,
		Metrics:     metrics,
	}
}

func testInstance(gw Gateway) *analysisInstance {
	return &analysisInstance{
		ctx:       context.Background(),
		gw:        gw,
		encounter: testEncounter(),
		reportID:  "AbCdEf12",
		fightIDs:  []int{1, 2},
		fights: []wcl.ReportFight{
			{ID: 1, StartTime: 0, EndTime: 10000},
			{ID: 2, StartTime: 20000, EndTime: 35000},
		},
		duration: 25000,
		endTime:  35000,
	}
}
