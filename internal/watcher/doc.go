// Package watcher tracks environment activations via a spool log.
//
// The shell hook installed by `venvman setup` appends an entry to
// ~/.venvman/events/spool.log whenever an environment is activated. The
// Watcher observes the spool directory with fsnotify and applies pending
// activations to the registry as they arrive, with a periodic ticker as a
// fallback for missed filesystem events.
//
// Key properties:
//   - Crash-safe offset tracking (temp file + rename pattern)
//   - Unknown environment names are skipped, never fatal
//   - Daemon mode support with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT handling
package watcher
