package logger

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

// capture redirects output to a buffer and restores defaults afterwards.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("loaded %d articles", 3)

	if got := buf.String(); got != "[DEBUG] loaded 3 articles\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Section("section")
	Elapsed("step", time.Now())

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Embedding")

	if got := buf.String(); got != "\n=== Embedding ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestInfo(t *testing.T) {
	buf := capture(t, true)

	Info("dimension %d", 1024)

	if got := buf.String(); got != "[INFO] dimension 1024\n" {
		t.Errorf("unexpected info output: %q", got)
	}
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("skipping %s", "a.txt")

	if got := buf.String(); got != "[WARN] skipping a.txt\n" {
		t.Errorf("unexpected warn output: %q", got)
	}
}

func TestElapsed(t *testing.T) {
	buf := capture(t, true)

	Elapsed("Embedding time", time.Now().Add(-1500*time.Millisecond))

	got := buf.String()
	if !strings.HasPrefix(got, "[TIME] Embedding time: 1.5") {
		t.Errorf("unexpected elapsed output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	SetOutput(io.Discard)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
