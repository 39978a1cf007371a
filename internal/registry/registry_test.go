package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/venvman/internal/store"
	"github.com/blackwell-systems/venvman/internal/uv"
)

// fakeBackend implements freeze.Installer and freeze.Provisioner over an
// in-memory package map, standing in for the external uv tool.
type fakeBackend struct {
	envs    map[string][]uv.Package
	sizes   map[string]int64
	current string
	removed []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		envs:  make(map[string][]uv.Package),
		sizes: make(map[string]int64),
	}
}

func (f *fakeBackend) ListInstalled(name string) ([]uv.Package, error) {
	return f.envs[name], nil
}

func (f *fakeBackend) InstallExact(name string, pkgs []uv.Package) error {
	f.envs[name] = append(f.envs[name], pkgs...)
	return nil
}

func (f *fakeBackend) InstallSpecifiers(name string, specs []string) error {
	for _, s := range specs {
		f.envs[name] = append(f.envs[name], uv.Package{Name: s, Version: "0.0.0"})
	}
	return nil
}

func (f *fakeBackend) DiskUsage(name string) (int64, error) {
	return f.sizes[name], nil
}

func (f *fakeBackend) Create(name, pythonVersion string) error {
	f.envs[name] = nil
	return nil
}

func (f *fakeBackend) Remove(name string) error {
	f.removed = append(f.removed, name)
	delete(f.envs, name)
	return nil
}

func (f *fakeBackend) Current() (string, error) {
	return f.current, nil
}

func newTestRegistry(t *testing.T) (*Registry, *fakeBackend) {
	t.Helper()

	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	backend := newFakeBackend()
	return New(st, backend, backend, t.TempDir(), 30), backend
}

func TestCreate(t *testing.T) {
	r, _ := newTestRegistry(t)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	env, err := r.Create("demo", "3.12.1", "scratch env", []string{"ml"}, now)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if env.Name != "demo" || env.PythonVersion != "3.12.1" {
		t.Errorf("env = %+v", env)
	}
	if env.UsageCount != 0 || env.LastUsedAt != nil {
		t.Error("new environment must start never-used")
	}

	got, err := r.Get("demo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description != "scratch env" || len(got.Tags) != 1 || got.Tags[0] != "ml" {
		t.Errorf("persisted env = %+v", got)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	r, _ := newTestRegistry(t)
	now := time.Now()

	if _, err := r.Create("demo", "3.12.1", "", nil, now); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := r.Create("demo", "3.12.1", "", nil, now)
	if !errors.Is(err, ErrExists) {
		t.Errorf("duplicate Create error = %v, want ErrExists", err)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Create("  ", "3.12.1", "", nil, time.Now())
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("Create error = %v, want ErrInvalidName", err)
	}
}

func TestActivate(t *testing.T) {
	r, _ := newTestRegistry(t)
	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if _, err := r.Create("demo", "3.12.1", "", nil, t0); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)
	if _, err := r.Activate("demo", t1); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	env, err := r.Activate("demo", t2)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	if env.UsageCount != 2 {
		t.Errorf("UsageCount = %d, want 2", env.UsageCount)
	}
	if env.LastUsedAt == nil || !env.LastUsedAt.Equal(t2) {
		t.Errorf("LastUsedAt = %v, want %v", env.LastUsedAt, t2)
	}

	// Persisted too, not just returned.
	got, err := r.Get("demo")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UsageCount != 2 {
		t.Errorf("persisted UsageCount = %d, want 2", got.UsageCount)
	}
}

func TestActivate_NotFound(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Activate("missing", time.Now())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Activate error = %v, want ErrNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	r, backend := newTestRegistry(t)
	now := time.Now()
	if _, err := r.Create("demo", "3.12.1", "", nil, now); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := r.Remove("demo"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := r.Get("demo"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get after Remove error = %v, want ErrNotFound", err)
	}
	if len(backend.removed) != 1 || backend.removed[0] != "demo" {
		t.Errorf("provisioner removals = %v, want [demo]", backend.removed)
	}
}

func TestRemove_NotFound(t *testing.T) {
	r, backend := newTestRegistry(t)

	err := r.Remove("missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Remove error = %v, want ErrNotFound", err)
	}
	if len(backend.removed) != 0 {
		t.Error("Remove of unknown environment must not touch the provisioner")
	}
}

func TestSummarize(t *testing.T) {
	r, _ := newTestRegistry(t)
	t0 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	if _, err := r.Create("old", "3.12.1", "", nil, t0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create("hot", "3.12.1", "", nil, t0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Activate("hot", t0.AddDate(0, 0, 30)); err != nil {
		t.Fatal(err)
	}

	s, err := r.Summarize(t0.AddDate(0, 0, 31))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Total != 2 || s.ActiveCount != 1 || s.UnusedCount != 1 {
		t.Errorf("summary = %+v, want 2 total / 1 active / 1 unused", s)
	}
	if s.MostUsed[0].Name != "hot" {
		t.Errorf("MostUsed[0] = %s, want hot", s.MostUsed[0].Name)
	}
	if s.Efficiency() != 50 {
		t.Errorf("Efficiency = %v, want 50", s.Efficiency())
	}
}

func TestEnvironmentAnalytics_MeasuresSizeLazily(t *testing.T) {
	r, backend := newTestRegistry(t)
	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if _, err := r.Create("demo", "3.12.1", "", nil, t0); err != nil {
		t.Fatal(err)
	}
	backend.sizes["demo"] = 4096

	detail, err := r.EnvironmentAnalytics("demo", t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("EnvironmentAnalytics failed: %v", err)
	}

	if detail.Environment.SizeBytes != 4096 {
		t.Errorf("SizeBytes = %d, want 4096 (measured on demand)", detail.Environment.SizeBytes)
	}
	if detail.DaysSinceUsed != -1 {
		t.Errorf("DaysSinceUsed = %d, want -1 for never used", detail.DaysSinceUsed)
	}

	// The measured size is persisted.
	got, err := r.Get("demo")
	if err != nil {
		t.Fatal(err)
	}
	if got.SizeBytes != 4096 {
		t.Errorf("persisted SizeBytes = %d, want 4096", got.SizeBytes)
	}
}

func TestAddPackagesToCurrent(t *testing.T) {
	r, backend := newTestRegistry(t)
	now := time.Now()
	if _, err := r.Create("demo", "3.12.1", "", nil, now); err != nil {
		t.Fatal(err)
	}

	// No active environment.
	if _, err := r.AddPackagesToCurrent([]string{"requests"}); !errors.Is(err, ErrNoActiveEnvironment) {
		t.Errorf("error = %v, want ErrNoActiveEnvironment", err)
	}

	backend.current = "demo"
	name, err := r.AddPackagesToCurrent([]string{"requests"})
	if err != nil {
		t.Fatalf("AddPackagesToCurrent failed: %v", err)
	}
	if name != "demo" {
		t.Errorf("resolved name = %q, want demo", name)
	}

	tracked, err := r.TrackedPackages("demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(tracked) != 1 || tracked[0] != "requests" {
		t.Errorf("tracked = %v, want [requests]", tracked)
	}
}

func TestSetTagsAndDescription(t *testing.T) {
	r, _ := newTestRegistry(t)
	if _, err := r.Create("demo", "3.12.1", "", nil, time.Now()); err != nil {
		t.Fatal(err)
	}

	if err := r.SetTags("demo", []string{"web", "prod"}); err != nil {
		t.Fatalf("SetTags failed: %v", err)
	}
	if err := r.SetDescription("demo", "the demo env"); err != nil {
		t.Fatalf("SetDescription failed: %v", err)
	}

	env, err := r.Get("demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(env.Tags) != 2 || env.Tags[0] != "web" {
		t.Errorf("Tags = %v", env.Tags)
	}
	if env.Description != "the demo env" {
		t.Errorf("Description = %q", env.Description)
	}
}

func TestFreezeThawThroughFacade(t *testing.T) {
	r, backend := newTestRegistry(t)
	if _, err := r.Create("demo", "3.12.1", "", nil, time.Now()); err != nil {
		t.Fatal(err)
	}
	backend.envs["demo"] = []uv.Package{
		{Name: "requests", Version: "2.31.0"},
		{Name: "urllib3", Version: "2.0.0"},
	}

	if err := r.Freeze("demo"); err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}

	backend.envs["demo"] = []uv.Package{{Name: "stray", Version: "9.9"}}
	if err := r.Thaw("demo"); err != nil {
		t.Fatalf("Thaw failed: %v", err)
	}

	pkgs, err := r.InstalledPackages("demo")
	if err != nil {
		t.Fatalf("InstalledPackages failed: %v", err)
	}
	if len(pkgs) != 2 || pkgs[0].Name != "requests" || pkgs[1].Name != "urllib3" {
		t.Errorf("closure = %+v, want the two locked packages", pkgs)
	}
}
