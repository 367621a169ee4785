package testutil

import (
	"fmt"
	"sync"
	"testing"
)

// CommonCoreScript is a minimal but complete common-core library defining
// every primitive the collaborator loader requires.
const CommonCoreScript = `#!/usr/bin/env bash
# common_core.sh - shared shell library (test fixture)

cmd_exists() { command -v "$1" >/dev/null 2>&1; }

copy_with_backup() {
    local src="$1" dst="$2"
    [ -e "$dst" ] && mv "$dst" "$dst.old.$(date -u +%Y%m%d%H%M%S)"
    cp "$src" "$dst"
}

restore_from_backup() {
    local dst="$1"
    local latest
    latest=$(ls "$dst".old.* 2>/dev/null | sort | tail -n 1)
    [ -n "$latest" ] && mv "$latest" "$dst"
}

log_info()  { printf 'INFO  %s\n' "$*"; }
log_warn()  { printf 'WARN  %s\n' "$*"; }
log_fail()  { printf 'FAIL  %s\n' "$*"; }
log_pass()  { printf 'PASS  %s\n' "$*"; }
log_debug() { printf 'DEBUG %s\n' "$*"; }
`

// WriteCommonCore writes a complete common-core library into dir and returns
// the entry-point path.
func WriteCommonCore(t *testing.T, dir string) string {
	t.Helper()
	return CreateFile(t, dir, "common_core.sh", CommonCoreScript)
}

// Message is one recorded diagnostic.
type Message struct {
	Severity string
	Text     string
}

// RecordingDiag implements ui.Diag and records every message for assertions.
type RecordingDiag struct {
	mu       sync.Mutex
	Messages []Message
}

func (d *RecordingDiag) record(severity, format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Messages = append(d.Messages, Message{Severity: severity, Text: fmt.Sprintf(format, args...)})
}

func (d *RecordingDiag) Info(format string, args ...interface{}) {
	d.record("info", format, args...)
}

func (d *RecordingDiag) Warn(format string, args ...interface{}) {
	d.record("warn", format, args...)
}

func (d *RecordingDiag) Fail(format string, args ...interface{}) {
	d.record("fail", format, args...)
}

func (d *RecordingDiag) Pass(format string, args ...interface{}) {
	d.record("pass", format, args...)
}

func (d *RecordingDiag) Debug(format string, args ...interface{}) {
	d.record("debug", format, args...)
}

// BySeverity returns the recorded message texts at the given severity.
func (d *RecordingDiag) BySeverity(severity string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for _, m := range d.Messages {
		if m.Severity == severity {
			out = append(out, m.Text)
		}
	}
	return out
}
