// Package lockfile encodes and decodes package-closure snapshots in a
// stable line-based text format:
//
//	# venvman lockfile
//	# python: 3.12.1
//	requests==2.31.0
//	urllib3==2.0.0 --hash=sha256:0102...
//
// Entries are sorted by package name (case-sensitive ascending) on encode,
// so two freezes of an identical closure are byte-for-byte identical.
package lockfile

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
)

// Snapshot is a point-in-time capture of an environment's full installed
// closure and the Python version it was captured against.
type Snapshot struct {
	PythonVersion string
	Entries       []Entry
}

// Entry is one locked package: an exact (name, version) pair with an
// optional content hash.
type Entry struct {
	Name    string
	Version string
	Hash    string // "<algo>:<digest>", empty when not recorded
}

// ParseError describes a malformed lockfile line.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lockfile line %d: %s", e.Line, e.Reason)
}

const (
	headerLine   = "# venvman lockfile"
	pythonPrefix = "# python: "
	hashPrefix   = "--hash="
)

// Encode renders snap in the stable text format. The input is not modified;
// entries are sorted by name before rendering.
func Encode(snap *Snapshot) string {
	sorted := make([]Entry, len(snap.Entries))
	copy(sorted, snap.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var sb strings.Builder
	sb.WriteString(headerLine)
	sb.WriteByte('\n')
	sb.WriteString(pythonPrefix)
	sb.WriteString(snap.PythonVersion)
	sb.WriteByte('\n')

	for _, e := range sorted {
		sb.WriteString(e.Name)
		sb.WriteString("==")
		sb.WriteString(e.Version)
		if e.Hash != "" {
			sb.WriteByte(' ')
			sb.WriteString(hashPrefix)
			sb.WriteString(e.Hash)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Decode parses text into a Snapshot. It returns a *ParseError for malformed
// lines (missing version, unrecognized fields) and rejects duplicate package
// names: a lockfile is a set keyed by name, not a multiset.
func Decode(text string) (*Snapshot, error) {
	snap := &Snapshot{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if v, ok := strings.CutPrefix(line, pythonPrefix); ok {
				snap.PythonVersion = strings.TrimSpace(v)
			}
			continue
		}

		entry, err := parseEntry(line, lineNo)
		if err != nil {
			return nil, err
		}
		if seen[entry.Name] {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("duplicate package %q", entry.Name)}
		}
		seen[entry.Name] = true
		snap.Entries = append(snap.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan lockfile: %w", err)
	}

	return snap, nil
}

func parseEntry(line string, lineNo int) (Entry, error) {
	fields := strings.Fields(line)

	spec := fields[0]
	name, version, ok := strings.Cut(spec, "==")
	if !ok {
		return Entry{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("missing version in %q (want name==version)", spec)}
	}
	if name == "" {
		return Entry{}, &ParseError{Line: lineNo, Reason: "empty package name"}
	}
	if version == "" {
		return Entry{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("empty version for %q", name)}
	}

	entry := Entry{Name: name, Version: version}

	for _, f := range fields[1:] {
		h, ok := strings.CutPrefix(f, hashPrefix)
		if !ok {
			return Entry{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("unrecognized field %q", f)}
		}
		if entry.Hash != "" {
			return Entry{}, &ParseError{Line: lineNo, Reason: fmt.Sprintf("multiple hashes for %q", name)}
		}
		entry.Hash = h
	}

	return entry, nil
}
