package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

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
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{"debug verbose", true, func() { Debug("test message %s", "arg") }, "[DEBUG] test message arg\n"},
		{"debug quiet", false, func() { Debug("hidden") }, ""},
		{"info verbose", true, func() { Info("info message %d", 42) }, "[INFO] info message 42\n"},
		{"info quiet", false, func() { Info("hidden") }, ""},
		{"section verbose", true, func() { Section("Ingest") }, "\n=== Ingest ===\n"},
		{"section quiet", false, func() { Section("Ingest") }, ""},
		{"warn quiet", false, func() { Warn("discarded %d vectors", 3) }, "[WARN] discarded 3 vectors\n"},
		{"error quiet", false, func() { Error("load failed: %v", "boom") }, "[ERROR] load failed: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcurrentAccess(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("concurrent %d", n)
			Warn("concurrent %d", n)
			IsVerbose()
		}(i)
	}
	wg.Wait()

	if buf.Len() == 0 {
		t.Error("expected output from concurrent writers")
	}
}
