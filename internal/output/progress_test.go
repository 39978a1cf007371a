package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar_NonTTYEmitsOnlyCompletion(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgress(3, "installing")
	bar.SetWriter(&buf)

	bar.Increment()
	bar.Increment()
	if buf.Len() != 0 {
		t.Errorf("non-TTY bar emitted before completion: %q", buf.String())
	}

	bar.Increment()
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("missing completion line: %q", out)
	}
	if strings.Count(out, "100%") != 1 {
		t.Errorf("duplicate completion line: %q", out)
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgress(0, "nothing to do")
	bar.SetWriter(&buf)
	bar.Finish() // must not panic or divide by zero

	if strings.Count(buf.String(), "\n") > 1 {
		t.Errorf("zero-total Finish output: %q", buf.String())
	}
}

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("freezing demo")
	s.SetWriter(&buf)

	s.Start()
	s.Stop()

	out := buf.String()
	if out != "freezing demo...\n" {
		t.Errorf("spinner output = %q", out)
	}
}

func TestSpinner_StopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("working")
	s.SetWriter(&buf)

	s.Start()
	s.StopWithMessage("done")

	if !strings.HasSuffix(buf.String(), "done\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("idle")
	s.SetWriter(&buf)
	s.Stop() // must not panic or write

	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
