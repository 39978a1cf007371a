package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_NilActivator(t *testing.T) {
	if _, err := New(nil, t.TempDir()); err == nil {
		t.Error("expected error for nil activator")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	dir := t.TempDir()
	act := newFakeActivator("demo")

	w, err := New(act, filepath.Join(dir, "events"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestWatcher_ProcessesSpoolOnStart(t *testing.T) {
	spoolDir := filepath.Join(t.TempDir(), "events")
	if err := os.MkdirAll(spoolDir, 0755); err != nil {
		t.Fatal(err)
	}
	act := newFakeActivator("demo")
	writeSpool(t, spoolDir, "1756296000,demo\n")

	w, err := New(act, spoolDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if n := len(act.activations()); n != 1 {
		t.Errorf("activations after Start = %d, want 1", n)
	}
}

func TestWatcher_PicksUpWrites(t *testing.T) {
	spoolDir := filepath.Join(t.TempDir(), "events")
	act := newFakeActivator("demo")

	w, err := New(act, spoolDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	appendSpool(t, spoolDir, "1756296000,demo\n")

	// fsnotify delivery is asynchronous; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(act.activations()) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("activation not observed within deadline")
}
