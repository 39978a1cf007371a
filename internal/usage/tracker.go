// Package usage updates an environment record's usage counters in response
// to activation events. It is a pure transformation of (record, timestamp);
// the registry facade is responsible for loading and persisting records.
package usage

import (
	"time"

	"github.com/blackwell-systems/venvman/internal/store"
)

// RecordActivation returns a copy of env with the activation at now applied:
// LastUsedAt is set to now and UsageCount is incremented. The input record is
// not modified.
func RecordActivation(env *store.Environment, now time.Time) *store.Environment {
	out := env.Clone()
	t := now
	out.LastUsedAt = &t
	out.UsageCount++
	return out
}
