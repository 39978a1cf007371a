package store

import "time"

// Environment is the persistent metadata record for one named virtual
// environment. Name is the unique key and is immutable after creation.
type Environment struct {
	Name            string
	CreatedAt       time.Time
	LastUsedAt      *time.Time // nil = never activated
	UsageCount      int
	PythonVersion   string
	SizeBytes       int64 // measured lazily, not kept continuously accurate
	PackageCount    int
	Tags            []string
	Description     string
	TrackedPackages []string // specifiers added via `venvman add`, first-seen order
}

// Clone returns a deep copy so callers can mutate the copy without aliasing
// the original's pointer and slice fields.
func (e *Environment) Clone() *Environment {
	out := *e
	if e.LastUsedAt != nil {
		t := *e.LastUsedAt
		out.LastUsedAt = &t
	}
	out.Tags = append([]string(nil), e.Tags...)
	out.TrackedPackages = append([]string(nil), e.TrackedPackages...)
	return &out
}
