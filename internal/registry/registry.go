// Package registry is the entry point used by CLI commands. It composes the
// metadata store, the usage tracker, the analytics engine and the
// freeze/thaw orchestrator behind one facade.
package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/venvman/internal/analyzer"
	"github.com/blackwell-systems/venvman/internal/freeze"
	"github.com/blackwell-systems/venvman/internal/store"
	"github.com/blackwell-systems/venvman/internal/usage"
	"github.com/blackwell-systems/venvman/internal/uv"
)

// Registry composes the engine components behind the operations the CLI
// invokes. Each CLI invocation builds one Registry; nothing is cached across
// processes beyond the store itself.
type Registry struct {
	store         *store.Store
	manager       *freeze.Manager
	installer     freeze.Installer
	provisioner   freeze.Provisioner
	thresholdDays int
}

// New creates a Registry with lockfiles stored under lockDir. thresholdDays
// configures the unused classification window; <= 0 selects the default.
func New(st *store.Store, installer freeze.Installer, provisioner freeze.Provisioner, lockDir string, thresholdDays int) *Registry {
	if thresholdDays <= 0 {
		thresholdDays = analyzer.DefaultUnusedThresholdDays
	}
	return &Registry{
		store:         st,
		manager:       freeze.NewManager(st, installer, provisioner, lockDir),
		installer:     installer,
		provisioner:   provisioner,
		thresholdDays: thresholdDays,
	}
}

// Create provisions a new environment and records it. Fails with ErrExists
// when a record with the same name is present.
func (r *Registry) Create(name, pythonVersion, description string, tags []string, now time.Time) (*store.Environment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	if _, err := r.store.Get(name); err == nil {
		return nil, fmt.Errorf("environment %s: %w", name, ErrExists)
	}

	if err := r.provisioner.Create(name, pythonVersion); err != nil {
		return nil, fmt.Errorf("failed to provision environment %s: %w", name, err)
	}

	env := &store.Environment{
		Name:          name,
		CreatedAt:     now,
		PythonVersion: pythonVersion,
		Tags:          tags,
		Description:   description,
	}
	if err := r.store.Put(env); err != nil {
		return nil, fmt.Errorf("failed to record environment %s: %w", name, err)
	}

	return env, nil
}

// Activate records an activation of the named environment at now and
// persists the updated counters.
func (r *Registry) Activate(name string, now time.Time) (*store.Environment, error) {
	env, err := r.store.Get(name)
	if err != nil {
		return nil, err
	}

	updated := usage.RecordActivation(env, now)
	if err := r.store.Put(updated); err != nil {
		return nil, fmt.Errorf("failed to record activation of %s: %w", name, err)
	}

	return updated, nil
}

// Get returns the metadata record for the named environment.
func (r *Registry) Get(name string) (*store.Environment, error) {
	return r.store.Get(name)
}

// List returns all environment records.
func (r *Registry) List() ([]*store.Environment, error) {
	return r.store.List()
}

// Remove deletes the environment's on-disk directory, its lockfile and its
// metadata record.
func (r *Registry) Remove(name string) error {
	if _, err := r.store.Get(name); err != nil {
		return err
	}

	if err := r.provisioner.Remove(name); err != nil {
		return fmt.Errorf("failed to remove environment %s: %w", name, err)
	}
	if err := r.manager.RemoveLockfile(name); err != nil {
		return err
	}
	return r.store.Delete(name)
}

// Summarize aggregates usage statistics over all environments at time now.
func (r *Registry) Summarize(now time.Time) (*analyzer.Summary, error) {
	envs, err := r.store.List()
	if err != nil {
		return nil, err
	}
	return analyzer.Summarize(envs, now, r.thresholdDays), nil
}

// EnvironmentAnalytics returns the per-environment detail view. The on-disk
// size is measured on demand and the refreshed value is persisted; the size
// field is otherwise not kept continuously accurate.
func (r *Registry) EnvironmentAnalytics(name string, now time.Time) (*analyzer.EnvironmentAnalytics, error) {
	env, err := r.store.Get(name)
	if err != nil {
		return nil, err
	}

	size, err := r.installer.DiskUsage(name)
	if err != nil {
		return nil, fmt.Errorf("failed to measure environment %s: %w", name, err)
	}
	env.SizeBytes = size
	if err := r.store.Put(env); err != nil {
		return nil, fmt.Errorf("failed to update record for %s: %w", name, err)
	}

	return analyzer.EnvironmentDetail(env, now, r.thresholdDays), nil
}

// Freeze captures the environment's installed closure into its lockfile.
func (r *Registry) Freeze(name string) error {
	return r.manager.Freeze(name)
}

// Thaw reconstructs the environment's package set from its lockfile.
func (r *Registry) Thaw(name string) error {
	return r.manager.Thaw(name)
}

// AddPackages installs specifiers into the named environment and tracks
// them.
func (r *Registry) AddPackages(name string, specs []string) error {
	return r.manager.AddPackages(name, specs)
}

// AddPackagesToCurrent resolves the currently active environment and adds
// the specifiers there. This is deliberately a thin wrapper over
// AddPackages so "operate on current" and "operate on a name" stay two
// distinct entry points.
func (r *Registry) AddPackagesToCurrent(specs []string) (string, error) {
	name, err := r.provisioner.Current()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current environment: %w", err)
	}
	if name == "" {
		return "", ErrNoActiveEnvironment
	}
	return name, r.AddPackages(name, specs)
}

// TrackedPackages returns the specifiers explicitly added by the user.
func (r *Registry) TrackedPackages(name string) ([]string, error) {
	return r.manager.TrackedPackages(name)
}

// InstalledPackages returns the environment's full installed closure from
// the installer.
func (r *Registry) InstalledPackages(name string) ([]uv.Package, error) {
	if _, err := r.store.Get(name); err != nil {
		return nil, err
	}
	pkgs, err := r.installer.ListInstalled(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", freeze.ErrInstallerUnavailable, err)
	}
	return pkgs, nil
}

// Current returns the name of the currently active environment, or "".
func (r *Registry) Current() (string, error) {
	return r.provisioner.Current()
}

// SetTags replaces the environment's tag set.
func (r *Registry) SetTags(name string, tags []string) error {
	env, err := r.store.Get(name)
	if err != nil {
		return err
	}
	env.Tags = tags
	return r.store.Put(env)
}

// SetDescription replaces the environment's description.
func (r *Registry) SetDescription(name, description string) error {
	env, err := r.store.Get(name)
	if err != nil {
		return err
	}
	env.Description = description
	return r.store.Put(env)
}

// LockfilePath returns where the environment's lockfile lives.
func (r *Registry) LockfilePath(name string) string {
	return r.manager.LockfilePath(name)
}

// UnusedThresholdDays returns the configured classification window.
func (r *Registry) UnusedThresholdDays() int {
	return r.thresholdDays
}
