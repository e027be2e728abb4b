package analysis

import (
	"reflect"
	"testing"

	"wow_check/wcl"
	"wow_check/wow"
)

func TestAnalyzeInterrupts(t *testing.T) {
	gw := &fakeGateway{
		events: func(vars wcl.ReportEventsVars) (*wcl.ReportEventsResponse, error) {
			if vars.DataType != wow.EventsInterrupts || vars.Hostility != wow.HostilityFriendlies {
				t.Errorf("query vars = %+v", vars)
			}
			return eventsResp(`{"data":{"reportData":{"report":{"events":{
				"data":[
					{"timestamp":1000,"type":"interrupt","sourceID":1,"targetID":50,"fight":1},
					{"timestamp":2000,"type":"interrupt","sourceID":3,"targetID":50,"fight":1},
					{"timestamp":3000,"type":"interrupt","sourceID":3,"targetID":50,"fight":2},
					{"timestamp":4000,"type":"interrupt","sourceID":99,"targetID":50,"fight":2}
				],
				"nextPageTimestamp":null}}}}}`), nil
		},
	}

	inst := testInstance(gw)
	cfg := &wow.MetricConfig{Name: "baboom-interrupts", Kind: wow.MetricInterrupts, AbilityID: 1216406}

	records, err := inst.analyzeInterrupts(cfg, testRoster())
	if err != nil {
		t.Fatalf("analyzeInterrupts() error = %v", err)
	}

	// source 99 is off the roster and dropped
	want := []MetricRecord{
		{PlayerName: "Aldric", Class: "warrior", Role: wow.RoleTank, Value: 1, Hits: 1},
		{PlayerName: "Mirelle", Class: "priest", Role: wow.RoleHealer},
		{PlayerName: "Kaelis", Class: "mage", Role: wow.RoleDps, Value: 2, Hits: 2},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
}
