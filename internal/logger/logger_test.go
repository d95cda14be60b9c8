package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestDebugSuppressedWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestVerboseOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(true)
	defer SetVerbose(false)

	Section("Turn Processing")
	Debug("value=%d", 42)
	Info("ready")
	Warn("slow")

	out := buf.String()
	for _, want := range []string{"=== Turn Processing ===", "[DEBUG] value=42", "[INFO] ready", "[WARN] slow"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestErrorAlwaysPrinted(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	SetVerbose(false)

	Error("boom: %v", "disk")

	if !strings.Contains(buf.String(), "[ERROR] boom: disk") {
		t.Errorf("expected error output, got %q", buf.String())
	}
}
