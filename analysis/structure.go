package analysis

import (
	"context"
	"fmt"
	"math"

	"wow_check/wcl"
	"wow_check/wow"
)

// Player is one roster member of one report. ID is only meaningful within
// that report; the stable identity across reports is Name.
type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
	Role  string `json:"role"`
}

// MetricRecord is one player's value for one metric in one report.
// Hits carries the metric's secondary count (uses, valid fights, ticks);
// Extra carries passthrough numeric fields from generic tables.
type MetricRecord struct {
	PlayerName string             `json:"player_name"`
	Class      string             `json:"class"`
	Role       string             `json:"role"`
	Value      float64            `json:"value"`
	Hits       int                `json:"hits,omitempty"`
	Extra      map[string]float64 `json:"extra,omitempty"`
}

type Analysis struct {
	Name string         `json:"name"`
	Data []MetricRecord `json:"data"`
}

// ReportResult is the finished bundle for one report. Append-only in the
// Store, never mutated afterwards.
type ReportResult struct {
	ReportID        string     `json:"report_id"`
	Label           string     `json:"label,omitempty"`
	StartTime       float64    `json:"start_time"` // unix seconds
	TotalDurationMS int64      `json:"total_duration_ms"`
	FightIDs        []int      `json:"fight_ids"`
	Analyses        []Analysis `json:"analyses"`
}

type analysisInstance struct {
	ctx context.Context
	gw  Gateway

	encounter *wow.Encounter

	reportID string
	label    string

	fights    []wcl.ReportFight
	fightIDs  []int
	startTime float64 // unix seconds of the earliest fight
	duration  int64   // ms, summed over fights
	endTime   int64   // ms, latest fight end, upper bound for event queries

	roster []Player

	progress func(string)
}

func (inst *analysisInstance) reportProgress(format string, args ...interface{}) {
	if inst.progress == nil {
		return
	}
	inst.progress(fmt.Sprintf(format, args...))
}

////////////////////////////////////////////////////////////////////////////////////////////////////

// recordSet is the shared evaluator output builder: one zeroed record per
// roster player up front, updated by name or report-scoped id.
type recordSet struct {
	records []MetricRecord
	index   map[string]int
	byIDMap map[int]int
	applied []bool
}

func newRecordSet(roster []Player) *recordSet {
	rs := &recordSet{
		records: make([]MetricRecord, len(roster)),
		index:   make(map[string]int, len(roster)),
		byIDMap: make(map[int]int, len(roster)),
		applied: make([]bool, len(roster)),
	}
	for i, p := range roster {
		rs.records[i] = MetricRecord{
			PlayerName: p.Name,
			Class:      p.Class,
			Role:       p.Role,
		}
		rs.index[p.Name] = i
		rs.byIDMap[p.ID] = i
	}
	return rs
}

func (rs *recordSet) get(name string) *MetricRecord {
	i, ok := rs.index[name]
	if !ok {
		return nil
	}
	return &rs.records[i]
}

func (rs *recordSet) byID(id int) *MetricRecord {
	i, ok := rs.byIDMap[id]
	if !ok {
		return nil
	}
	return &rs.records[i]
}

// apply sets one row's value. When the same name arrives twice (a player
// listed under two roles), the higher value wins; rows are never summed.
func (rs *recordSet) apply(name string, value float64, hits int, extra map[string]float64) bool {
	i, ok := rs.index[name]
	if !ok {
		return false
	}
	if rs.applied[i] && value <= rs.records[i].Value {
		return true
	}

	rs.applied[i] = true
	r := &rs.records[i]
	r.Value = value
	r.Hits = hits
	r.Extra = extra
	return true
}

func (rs *recordSet) list() []MetricRecord {
	return rs.records
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func filterRoster(roster []Player, roles []string) []Player {
	if len(roles) == 0 {
		return roster
	}

	want := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		want[r] = struct{}{}
	}

	out := make([]Player, 0, len(roster))
	for _, p := range roster {
		if _, ok := want[p.Role]; ok {
			out = append(out, p)
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
