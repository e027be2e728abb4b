package analysis

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Store accumulates one ReportResult per processed report. Append-only;
// results are never mutated after Record.
type Store struct {
	mu      sync.Mutex
	results []*ReportResult
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Record(r *ReportResult) {
	s.mu.Lock()
	s.results = append(s.results, r)
	s.mu.Unlock()
}

// Results returns a snapshot in insertion order.
func (s *Store) Results() []*ReportResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*ReportResult, len(s.results))
	copy(out, s.results)
	return out
}

// FindMetric returns the named metric's records from the most recent report
// carrying it, plus each current player's most recent prior value. Players
// with no prior value have no map entry. Asking for a metric no stored
// report contains is a caller bug and returns ErrNotFound.
func (s *Store) FindMetric(name string) ([]MetricRecord, map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	withMetric := make([]*ReportResult, 0, len(s.results))
	for _, r := range s.results {
		if findAnalysis(r, name) != nil {
			withMetric = append(withMetric, r)
		}
	}
	if len(withMetric) == 0 {
		return nil, nil, errors.Wrapf(ErrNotFound, "metric %q", name)
	}

	sort.SliceStable(withMetric, func(i, k int) bool {
		return withMetric[i].StartTime > withMetric[k].StartTime
	})

	current := findAnalysis(withMetric[0], name)

	previous := make(map[string]float64, len(current.Data))
	for _, rec := range current.Data {
		for _, r := range withMetric[1:] {
			prior := findAnalysis(r, name)
			if prior == nil {
				continue
			}
			if v, ok := findRecord(prior, rec.PlayerName); ok {
				previous[rec.PlayerName] = v
				break
			}
		}
	}

	return current.Data, previous, nil
}

func findAnalysis(r *ReportResult, name string) *Analysis {
	for i := range r.Analyses {
		if r.Analyses[i].Name == name {
			return &r.Analyses[i]
		}
	}
	return nil
}

func findRecord(a *Analysis, player string) (float64, bool) {
	for _, rec := range a.Data {
		if rec.PlayerName == player {
			return rec.Value, true
		}
	}
	return 0, false
}
