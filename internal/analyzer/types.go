package analyzer

import "github.com/blackwell-systems/venvman/internal/store"

// DefaultUnusedThresholdDays is the activity window used when the caller
// does not configure one: an environment whose last activation is older than
// this many days is classified unused.
const DefaultUnusedThresholdDays = 30

// Summary aggregates usage statistics over all environment records.
type Summary struct {
	Total          int
	ActiveCount    int
	UnusedCount    int
	TotalSizeBytes int64
	// MostUsed holds all records sorted by usage count descending, ties
	// broken by most recent LastUsedAt, then by name ascending.
	MostUsed []*store.Environment
}

// Efficiency returns the percentage of environments classified active,
// or 0 when there are no environments.
func (s *Summary) Efficiency() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ActiveCount) / float64(s.Total) * 100
}

// EnvironmentAnalytics is the per-environment detail view.
type EnvironmentAnalytics struct {
	Environment *store.Environment
	// DaysSinceUsed is the whole number of days since the last activation,
	// -1 if the environment was never activated.
	DaysSinceUsed int
	Unused        bool
}
