// Package freeze captures an environment's installed-package closure into a
// lockfile and reconstructs environments from lockfiles, coordinating the
// metadata store and the external installer.
package freeze

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/venvman/internal/lockfile"
	"github.com/blackwell-systems/venvman/internal/store"
	"github.com/blackwell-systems/venvman/internal/uv"
)

// Installer is the package-management surface venvman consumes from uv.
type Installer interface {
	ListInstalled(name string) ([]uv.Package, error)
	InstallExact(name string, pkgs []uv.Package) error
	InstallSpecifiers(name string, specs []string) error
	DiskUsage(name string) (int64, error)
}

// Provisioner creates and destroys environments on disk and resolves the
// currently active one.
type Provisioner interface {
	Create(name, pythonVersion string) error
	Remove(name string) error
	Current() (string, error)
}

// Manager orchestrates freeze, thaw and package-add operations for one
// invocation. It holds no cross-call state; everything durable lives in the
// store and the lockfile directory.
type Manager struct {
	store       *store.Store
	installer   Installer
	provisioner Provisioner
	lockDir     string
}

// NewManager creates a Manager writing lockfiles under lockDir.
func NewManager(st *store.Store, installer Installer, provisioner Provisioner, lockDir string) *Manager {
	return &Manager{
		store:       st,
		installer:   installer,
		provisioner: provisioner,
		lockDir:     lockDir,
	}
}

// LockfilePath returns the lockfile location for the named environment.
func (m *Manager) LockfilePath(name string) string {
	return filepath.Join(m.lockDir, name+".lock")
}

// Freeze captures the environment's full installed closure into its
// lockfile and refreshes the record's package count. A new freeze replaces
// the prior snapshot atomically.
func (m *Manager) Freeze(name string) error {
	env, err := m.store.Get(name)
	if err != nil {
		return err
	}

	installed, err := m.installer.ListInstalled(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallerUnavailable, err)
	}

	snap := &lockfile.Snapshot{PythonVersion: env.PythonVersion}
	for _, pkg := range installed {
		snap.Entries = append(snap.Entries, lockfile.Entry{Name: pkg.Name, Version: pkg.Version})
	}

	if err := writeFileAtomic(m.LockfilePath(name), []byte(lockfile.Encode(snap))); err != nil {
		return fmt.Errorf("failed to write lockfile for %s: %w", name, err)
	}

	env.PackageCount = len(installed)
	if err := m.store.Put(env); err != nil {
		return fmt.Errorf("failed to update record for %s: %w", name, err)
	}

	return nil
}

// ReadSnapshot reads and decodes the environment's lockfile without touching
// the installer.
func (m *Manager) ReadSnapshot(name string) (*lockfile.Snapshot, error) {
	data, err := os.ReadFile(m.LockfilePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("environment %s: %w", name, ErrLockfileMissing)
		}
		return nil, fmt.Errorf("failed to read lockfile for %s: %w", name, err)
	}

	snap, err := lockfile.Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("environment %s: %w: %v", name, ErrLockfileCorrupt, err)
	}
	return snap, nil
}

// Thaw reconstructs the environment's package set from its lockfile: the
// environment is reset to an empty state and the locked (name, version)
// pairs are installed exactly, with no resolution. On any single install
// failure the thaw aborts and returns an *InstallError naming the failing
// package; the prior lockfile is left untouched. The environment may be left
// partially populated — that is reported, never silently swallowed.
func (m *Manager) Thaw(name string) error {
	env, err := m.store.Get(name)
	if err != nil {
		return err
	}

	// Lockfile problems must surface before any installer call.
	snap, err := m.ReadSnapshot(name)
	if err != nil {
		return err
	}

	pythonVersion := snap.PythonVersion
	if pythonVersion == "" {
		pythonVersion = env.PythonVersion
	}

	// Reset to an empty package state.
	if err := m.provisioner.Remove(name); err != nil {
		return fmt.Errorf("failed to reset environment %s: %w", name, err)
	}
	if err := m.provisioner.Create(name, pythonVersion); err != nil {
		return fmt.Errorf("failed to recreate environment %s: %w", name, err)
	}

	// Install sequentially so a failure is attributed to the exact package.
	for i, entry := range snap.Entries {
		pkg := uv.Package{Name: entry.Name, Version: entry.Version}
		if err := m.installer.InstallExact(name, []uv.Package{pkg}); err != nil {
			return &InstallError{
				Env:       name,
				Failed:    []string{pkg.Specifier()},
				Remaining: specifiers(snap.Entries[i+1:]),
				Err:       err,
			}
		}
	}

	env.PackageCount = len(snap.Entries)
	if err := m.store.Put(env); err != nil {
		return fmt.Errorf("failed to update record for %s: %w", name, err)
	}

	return nil
}

// AddPackages installs the given specifiers into the environment, records
// any newly-seen specifiers as tracked packages (deduplicated, first-seen
// order preserved), and refreshes the package count.
func (m *Manager) AddPackages(name string, specs []string) error {
	env, err := m.store.Get(name)
	if err != nil {
		return err
	}

	if err := m.installer.InstallSpecifiers(name, specs); err != nil {
		return &InstallError{Env: name, Failed: specs, Err: err}
	}

	env.TrackedPackages = appendNew(env.TrackedPackages, specs)

	// Tracked packages reflect user intent; the closure reflects reality.
	// Refresh the count from the installer so transitive deps are included.
	installed, err := m.installer.ListInstalled(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstallerUnavailable, err)
	}
	env.PackageCount = len(installed)

	if err := m.store.Put(env); err != nil {
		return fmt.Errorf("failed to update record for %s: %w", name, err)
	}

	return nil
}

// TrackedPackages returns the specifiers explicitly added by the user, in
// first-seen order.
func (m *Manager) TrackedPackages(name string) ([]string, error) {
	env, err := m.store.Get(name)
	if err != nil {
		return nil, err
	}
	return env.TrackedPackages, nil
}

// RemoveLockfile deletes the environment's lockfile if present.
func (m *Manager) RemoveLockfile(name string) error {
	if err := os.Remove(m.LockfilePath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile for %s: %w", name, err)
	}
	return nil
}

// appendNew appends the elements of add not already present in base,
// preserving first-seen order.
func appendNew(base, add []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range add {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}

func specifiers(entries []lockfile.Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name + "==" + e.Version
	}
	return out
}

// writeFileAtomic writes data to path via a temp-file rename so a reader
// never observes a truncated lockfile.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create lockfile directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
