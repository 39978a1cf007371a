package watcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/venvman/internal/store"
)

const (
	// SpoolFile is the append-only activation log written by the shell hook.
	SpoolFile = "spool.log"

	offsetFile           = "spool.offset"
	maxSpoolLinesPerTick = 10_000
)

// Activator applies one activation event. *registry.Registry satisfies it.
type Activator interface {
	Activate(name string, now time.Time) (*store.Environment, error)
}

// ProcessSpool reads new entries from {spoolDir}/spool.log since the last
// processed offset and applies each activation through the activator.
//
// Log format (one entry per line, written by the shell hook):
//
//	<unix_seconds>,<environment_name>
//
// Example:
//
//	1756296000,ml-sandbox
//
// Entries naming unknown environments are skipped; the hook may fire for an
// environment whose record was removed. Returns nil when the spool file does
// not yet exist.
func ProcessSpool(activator Activator, spoolDir string) error {
	spoolPath := filepath.Join(spoolDir, SpoolFile)
	offsetPath := filepath.Join(spoolDir, offsetFile)

	// No-op: the shell hook has not been set up yet.
	if _, err := os.Stat(spoolPath); os.IsNotExist(err) {
		return nil
	}

	offset, err := readSpoolOffset(offsetPath)
	if err != nil {
		return fmt.Errorf("spool: read offset: %w", err)
	}

	f, err := os.Open(spoolPath)
	if err != nil {
		return fmt.Errorf("spool: open log: %w", err)
	}
	defer f.Close()

	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			// Offset may be stale after log rotation, reset to 0.
			log.Printf("spool: seek failed (offset=%d), resetting: %v", offset, err)
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("spool: seek reset failed: %w", err)
			}
		}
	}

	processed := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && processed < maxSpoolLinesPerTick {
		line := scanner.Text()
		if line == "" {
			continue
		}

		ts, name, ok := parseSpoolLine(line)
		if !ok {
			log.Printf("spool: skipping malformed line: %q", line)
			continue
		}

		if _, err := activator.Activate(name, time.Unix(ts, 0).UTC()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue // Not a registered environment.
			}
			return fmt.Errorf("spool: record activation of %s: %w", name, err)
		}
		processed++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("spool: scan log: %w", err)
	}

	newOffset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("spool: get new offset: %w", err)
	}

	// Advance the offset even when nothing matched so malformed or unknown
	// entries are not reprocessed forever.
	if newOffset != offset {
		return writeSpoolOffsetAtomic(offsetPath, newOffset)
	}
	return nil
}

// parseSpoolLine parses a line of the form "<unix_seconds>,<name>".
// Returns (0, "", false) on any parse error.
func parseSpoolLine(line string) (int64, string, bool) {
	idx := strings.IndexByte(line, ',')
	if idx <= 0 || idx >= len(line)-1 {
		return 0, "", false
	}

	ts, err := strconv.ParseInt(line[:idx], 10, 64)
	if err != nil || ts <= 0 {
		return 0, "", false
	}

	name := strings.TrimSpace(line[idx+1:])
	if name == "" {
		return 0, "", false
	}

	return ts, name, true
}

// readSpoolOffset reads the byte offset from the offset tracking file.
// Returns 0 if the file does not exist.
func readSpoolOffset(offsetPath string) (int64, error) {
	data, err := os.ReadFile(offsetPath)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse offset %q: %w", s, err)
	}
	return offset, nil
}

// writeSpoolOffsetAtomic writes newOffset to offsetPath via a temp-file
// rename, ensuring the update is atomic and crash-safe.
func writeSpoolOffsetAtomic(offsetPath string, newOffset int64) error {
	dir := filepath.Dir(offsetPath)
	tmpPath := filepath.Join(dir, ".offset.tmp")

	if err := os.WriteFile(tmpPath, []byte(strconv.FormatInt(newOffset, 10)), 0600); err != nil {
		return fmt.Errorf("write temp offset file: %w", err)
	}
	if err := os.Rename(tmpPath, offsetPath); err != nil {
		return fmt.Errorf("rename offset file: %w", err)
	}
	return nil
}
