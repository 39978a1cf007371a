package lockfile

import (
	"errors"
	"strings"
	"testing"
)

func TestEncode_SortsByName(t *testing.T) {
	snap := &Snapshot{
		PythonVersion: "3.12.1",
		Entries: []Entry{
			{Name: "urllib3", Version: "2.0.0"},
			{Name: "requests", Version: "2.31.0"},
		},
	}

	text := Encode(snap)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	want := []string{
		"# venvman lockfile",
		"# python: 3.12.1",
		"requests==2.31.0",
		"urllib3==2.0.0",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), text)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

// TestEncode_Deterministic verifies that two snapshots holding the same
// (name, version) set in different input orders encode to identical text.
func TestEncode_Deterministic(t *testing.T) {
	a := &Snapshot{PythonVersion: "3.12.1", Entries: []Entry{
		{Name: "b", Version: "2"}, {Name: "a", Version: "1"}, {Name: "c", Version: "3"},
	}}
	b := &Snapshot{PythonVersion: "3.12.1", Entries: []Entry{
		{Name: "c", Version: "3"}, {Name: "a", Version: "1"}, {Name: "b", Version: "2"},
	}}

	if Encode(a) != Encode(b) {
		t.Error("encodings differ for identical closures in different input order")
	}
}

func TestEncode_CaseSensitiveOrder(t *testing.T) {
	snap := &Snapshot{Entries: []Entry{
		{Name: "pyyaml", Version: "6.0"},
		{Name: "Django", Version: "5.0"}, // uppercase sorts before lowercase
	}}

	text := Encode(snap)
	if strings.Index(text, "Django==") > strings.Index(text, "pyyaml==") {
		t.Errorf("expected case-sensitive ascending order:\n%s", text)
	}
}

func TestEncode_DoesNotMutateInput(t *testing.T) {
	snap := &Snapshot{Entries: []Entry{
		{Name: "b", Version: "2"}, {Name: "a", Version: "1"},
	}}
	Encode(snap)
	if snap.Entries[0].Name != "b" {
		t.Error("Encode reordered the caller's entries")
	}
}

func TestRoundTrip(t *testing.T) {
	snap := &Snapshot{
		PythonVersion: "3.11.8",
		Entries: []Entry{
			{Name: "certifi", Version: "2026.1.4"},
			{Name: "requests", Version: "2.31.0", Hash: "sha256:6b1f2c3d"},
		},
	}

	decoded, err := Decode(Encode(snap))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if decoded.PythonVersion != snap.PythonVersion {
		t.Errorf("PythonVersion = %q, want %q", decoded.PythonVersion, snap.PythonVersion)
	}
	if len(decoded.Entries) != len(snap.Entries) {
		t.Fatalf("got %d entries, want %d", len(decoded.Entries), len(snap.Entries))
	}
	for i, want := range snap.Entries {
		if decoded.Entries[i] != want {
			t.Errorf("entry %d = %+v, want %+v", i, decoded.Entries[i], want)
		}
	}
}

func TestDecode_DuplicatePackage(t *testing.T) {
	text := "requests==2.31.0\nrequests==2.30.0\n"

	_, err := Decode(text)
	if err == nil {
		t.Fatal("Decode should reject duplicate package names")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if parseErr.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", parseErr.Line)
	}
}

func TestDecode_MissingVersion(t *testing.T) {
	for _, text := range []string{"requests\n", "requests==\n", "==2.31.0\n"} {
		_, err := Decode(text)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Decode(%q) error = %v, want *ParseError", text, err)
		}
	}
}

func TestDecode_UnrecognizedField(t *testing.T) {
	_, err := Decode("requests==2.31.0 extra-garbage\n")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %v, want *ParseError for unrecognized field", err)
	}
}

func TestDecode_SkipsBlanksAndComments(t *testing.T) {
	text := "# venvman lockfile\n\n# a comment\n# python: 3.12.1\nrequests==2.31.0\n"

	snap, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.PythonVersion != "3.12.1" {
		t.Errorf("PythonVersion = %q, want 3.12.1", snap.PythonVersion)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].Name != "requests" {
		t.Errorf("Entries = %+v, want single requests entry", snap.Entries)
	}
}

func TestDecode_Empty(t *testing.T) {
	snap, err := Decode("")
	if err != nil {
		t.Fatalf("Decode of empty text failed: %v", err)
	}
	if len(snap.Entries) != 0 {
		t.Errorf("Entries = %+v, want none", snap.Entries)
	}
}

func TestDecode_HashField(t *testing.T) {
	snap, err := Decode("requests==2.31.0 --hash=sha256:abcd\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if snap.Entries[0].Hash != "sha256:abcd" {
		t.Errorf("Hash = %q, want sha256:abcd", snap.Entries[0].Hash)
	}
}
