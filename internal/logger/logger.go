// Package logger provides leveled logging for the Recruitr CLI.
//
// Debug, Info and Section output is printed only in verbose mode (the
// --verbose flag). Warnings and errors are always printed, since they report
// data loss or a failed startup step the user must see.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(true, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(true, "[INFO] ", format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	logf(false, "[WARN] ", format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	logf(false, "[ERROR] ", format, args...)
}

// logf holds the write lock so concurrent callers never interleave output.
func logf(verboseOnly bool, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verboseOnly && !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
