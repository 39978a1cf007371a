package watcher

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher applies activation events from the spool log to the registry.
// Writes to the spool directory are observed with fsnotify so activations
// land in the database within moments of the shell hook firing; a periodic
// ticker catches anything the filesystem notification missed.
type Watcher struct {
	activator Activator
	spoolDir  string
	stopCh    chan struct{}
	wg        sync.WaitGroup
	fs        *fsnotify.Watcher
	ticker    *time.Ticker
}

// New creates a new Watcher processing the spool under spoolDir.
func New(activator Activator, spoolDir string) (*Watcher, error) {
	if activator == nil {
		return nil, fmt.Errorf("activator cannot be nil")
	}
	return &Watcher{
		activator: activator,
		spoolDir:  spoolDir,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start processes any events already in the spool, then begins observing the
// spool directory. Returns once the background goroutine is running.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.spoolDir, 0755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}

	if err := ProcessSpool(w.activator, w.spoolDir); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: initial spool processing: %v\n", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := fs.Add(w.spoolDir); err != nil {
		fs.Close()
		return fmt.Errorf("failed to watch spool directory: %w", err)
	}
	w.fs = fs

	w.ticker = time.NewTicker(30 * time.Second)

	w.wg.Add(1)
	go w.run()

	return nil
}

// run drains spool events until the stop signal is received, then does a
// final flush.
func (w *Watcher) run() {
	defer w.wg.Done()

	process := func(context string) {
		if err := ProcessSpool(w.activator, w.spoolDir); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: %s spool processing: %v\n", context, err)
		}
	}

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				process("event-driven")
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: filesystem watch error: %v\n", err)
		case <-w.ticker.C:
			process("periodic")
		case <-w.stopCh:
			process("final")
			return
		}
	}
}

// Stop halts the watcher and flushes any remaining spool entries.
func (w *Watcher) Stop() error {
	close(w.stopCh)

	if w.ticker != nil {
		w.ticker.Stop()
	}
	w.wg.Wait()

	if w.fs != nil {
		if err := w.fs.Close(); err != nil {
			return fmt.Errorf("failed to close filesystem watcher: %w", err)
		}
	}
	return nil
}
