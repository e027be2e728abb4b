package analysis

import (
	"encoding/json"
	"testing"

	"wow_check/wcl"
	"wow_check/wow"
)

func TestTableDebuffRecords(t *testing.T) {
	blob := json.RawMessage(`{
		"auras":[
			{"id":9,"name":"Aldric","totalUptime":30000,"totalUses":4},
			{"id":9,"name":"Kaelis","totalUptime":90000,"totalUses":2}
		],
		"totalTime":120000
	}`)

	records, err := tableDebuffRecords(blob, testRoster())
	if err != nil {
		t.Fatalf("tableDebuffRecords() error = %v", err)
	}

	if r := findByName(records, "Aldric"); r.Value != 25 || r.Hits != 4 {
		t.Errorf("Aldric = %+v, want 25%% over 4 uses", r)
	}
	if r := findByName(records, "Kaelis"); r.Value != 75 || r.Hits != 2 {
		t.Errorf("Kaelis = %+v, want 75%% over 2 uses", r)
	}
	if r := findByName(records, "Mirelle"); r.Value != 0 || r.Hits != 0 {
		t.Errorf("Mirelle = %+v, want zero-filled", r)
	}
}

func TestTableDebuffRecordsZeroTotalTime(t *testing.T) {
	blob := json.RawMessage(`{"auras":[{"id":9,"name":"Aldric","totalUptime":30000,"totalUses":4}],"totalTime":0}`)

	records, err := tableDebuffRecords(blob, testRoster())
	if err != nil {
		t.Fatalf("tableDebuffRecords() error = %v", err)
	}
	if r := findByName(records, "Aldric"); r.Value != 0 {
		t.Errorf("Aldric.Value = %v, want 0 when totalTime is 0", r.Value)
	}
}

func TestTableDamageTakenRecords(t *testing.T) {
	blob := json.RawMessage(`{"entries":[
		{"id":1,"name":"Aldric","total":50000,"totalReduced":42000,"overheal":1000,"hitCount":7}
	]}`)

	records, err := tableDamageTakenRecords(blob, testRoster())
	if err != nil {
		t.Fatalf("tableDamageTakenRecords() error = %v", err)
	}

	r := findByName(records, "Aldric")
	if r.Value != 50000 || r.Hits != 7 {
		t.Errorf("Aldric = %+v, want 50000/7", r)
	}
	if r.Extra["reduced"] != 42000 || r.Extra["overheal"] != 1000 {
		t.Errorf("Aldric.Extra = %v", r.Extra)
	}
}

func TestTableDeathRecords(t *testing.T) {
	blob := json.RawMessage(`{"entries":[
		{"id":1,"name":"Aldric"},
		{"id":1,"name":"Aldric"},
		{"id":3,"name":"Kaelis"},
		{"id":99,"name":"Stranger"}
	]}`)

	records, err := tableDeathRecords(blob, testRoster())
	if err != nil {
		t.Fatalf("tableDeathRecords() error = %v", err)
	}

	if r := findByName(records, "Aldric"); r.Value != 2 {
		t.Errorf("Aldric.Value = %v, want 2", r.Value)
	}
	if r := findByName(records, "Kaelis"); r.Value != 1 {
		t.Errorf("Kaelis.Value = %v, want 1", r.Value)
	}
	if r := findByName(records, "Mirelle"); r.Value != 0 {
		t.Errorf("Mirelle.Value = %v, want 0", r.Value)
	}
}

func TestTableSurvivabilityRecords(t *testing.T) {
	blob := json.RawMessage(`{"players":[
		{"name":"Aldric","fights":[
			{"id":1,"survivability":0.8},
			{"id":2,"survivability":null},
			{"id":3,"survivability":0.6}
		]},
		{"name":"Mirelle","fights":[{"id":1,"survivability":null}]}
	]}`)

	records, err := tableSurvivabilityRecords(blob, testRoster())
	if err != nil {
		t.Fatalf("tableSurvivabilityRecords() error = %v", err)
	}

	// null fights drop out of the average
	if r := findByName(records, "Aldric"); r.Value != 70.0 || r.Hits != 2 {
		t.Errorf("Aldric = %+v, want 70.0 over 2 fights", r)
	}
	if r := findByName(records, "Mirelle"); r.Value != 0 || r.Hits != 0 {
		t.Errorf("Mirelle = %+v, want 0.0 with no valid fights", r)
	}
}

func TestTablePassthroughRecords(t *testing.T) {
	blob := json.RawMessage(`{"entries":[
		{"id":7,"guid":99,"gameID":3,"name":"Aldric","type":"Warrior","total":1234,"activeTime":5000},
		{"id":8,"total":777}
	]}`)

	records, err := tablePassthroughRecords(blob, testRoster())
	if err != nil {
		t.Fatalf("tablePassthroughRecords() error = %v", err)
	}

	r := findByName(records, "Aldric")
	if r.Value != 1234 {
		t.Errorf("Aldric.Value = %v, want 1234", r.Value)
	}
	if r.Extra["activeTime"] != 5000 || r.Extra["total"] != 1234 {
		t.Errorf("Aldric.Extra = %v", r.Extra)
	}
	for _, k := range []string{"id", "guid", "gameID"} {
		if _, ok := r.Extra[k]; ok {
			t.Errorf("identity field %q leaked into Extra", k)
		}
	}
}

func TestEntryHits(t *testing.T) {
	tests := []struct {
		name     string
		entry    tableEntry
		expected int
	}{
		{"HitCount", tableEntry{HitCount: 5, TickCount: 3}, 5},
		{"TickFallback", tableEntry{TickCount: 3}, 3},
		{"DamageWithoutCounts", tableEntry{Total: 100}, 1},
		{"Nothing", tableEntry{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryHits(tt.entry); got != tt.expected {
				t.Errorf("entryHits() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func findByName(records []MetricRecord, name string) *MetricRecord {
	for i := range records {
		if records[i].PlayerName == name {
			return &records[i]
		}
	}
	return &MetricRecord{PlayerName: "(missing)"}
}

func TestAnalyzeTableDispatch(t *testing.T) {
	// the configured dataType picks both the query and the decode shape
	gw := &fakeGateway{
		table: func(vars wcl.ReportTableVars) (*wcl.ReportTableResponse, error) {
			if vars.DataType != wow.TableDeaths || vars.EncounterID != 9999 {
				t.Errorf("query vars = %+v", vars)
			}
			return tableResp(`{"data":{"reportData":{"report":{"table":{"data":
				{"entries":[{"id":1,"name":"Aldric"},{"id":1,"name":"Aldric"}]}
			}}}}}`), nil
		},
	}

	inst := testInstance(gw)
	cfg := &wow.MetricConfig{Name: "deaths", Kind: wow.MetricTable, DataType: wow.TableDeaths}

	records, err := inst.analyzeTable(cfg, testRoster())
	if err != nil {
		t.Fatalf("analyzeTable() error = %v", err)
	}
	if r := findByName(records, "Aldric"); r.Value != 2 {
		t.Errorf("Aldric.Value = %v, want 2", r.Value)
	}
}
