// Package analyzer computes read-only usage summaries over environment
// records. All functions are pure over their inputs and the supplied clock,
// so they are testable without a store or filesystem.
package analyzer

import (
	"sort"
	"time"

	"github.com/blackwell-systems/venvman/internal/store"
)

// IsUnused reports whether env counts as unused at time now: never activated,
// or last activated strictly more than thresholdDays ago. An environment
// activated exactly thresholdDays ago is still active.
func IsUnused(env *store.Environment, now time.Time, thresholdDays int) bool {
	if env.LastUsedAt == nil {
		return true
	}
	threshold := time.Duration(thresholdDays) * 24 * time.Hour
	return now.Sub(*env.LastUsedAt) > threshold
}

// Summarize classifies every record as active or unused at time now and
// returns aggregate statistics. thresholdDays <= 0 falls back to
// DefaultUnusedThresholdDays.
func Summarize(envs []*store.Environment, now time.Time, thresholdDays int) *Summary {
	if thresholdDays <= 0 {
		thresholdDays = DefaultUnusedThresholdDays
	}

	summary := &Summary{Total: len(envs)}

	for _, env := range envs {
		if IsUnused(env, now, thresholdDays) {
			summary.UnusedCount++
		} else {
			summary.ActiveCount++
		}
		summary.TotalSizeBytes += env.SizeBytes
	}

	summary.MostUsed = sortByUsage(envs)
	return summary
}

// EnvironmentDetail returns the per-environment analytics view for env at
// time now.
func EnvironmentDetail(env *store.Environment, now time.Time, thresholdDays int) *EnvironmentAnalytics {
	if thresholdDays <= 0 {
		thresholdDays = DefaultUnusedThresholdDays
	}

	days := -1 // never used
	if env.LastUsedAt != nil {
		days = int(now.Sub(*env.LastUsedAt).Hours() / 24)
	}

	return &EnvironmentAnalytics{
		Environment:   env,
		DaysSinceUsed: days,
		Unused:        IsUnused(env, now, thresholdDays),
	}
}

// sortByUsage returns a copy of envs ordered by usage count descending, then
// most recent LastUsedAt (never-used last), then name ascending. The ordering
// is total, so the result is deterministic for any input permutation.
func sortByUsage(envs []*store.Environment) []*store.Environment {
	sorted := make([]*store.Environment, len(envs))
	copy(sorted, envs)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		aNever := a.LastUsedAt == nil
		bNever := b.LastUsedAt == nil
		if aNever != bNever {
			return bNever
		}
		if !aNever && !a.LastUsedAt.Equal(*b.LastUsedAt) {
			return a.LastUsedAt.After(*b.LastUsedAt)
		}
		return a.Name < b.Name
	})

	return sorted
}
