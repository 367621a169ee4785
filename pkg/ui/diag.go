// Package ui carries all user-facing terminal output for dotbash.
//
// The Diag interface mirrors the logging primitives of the common-core shell
// library (info/warn/fail/pass/debug). A console implementation always
// exists, so diagnostics work before the collaborator is loaded and in
// otherwise broken environments (help, version, parse errors).
package ui

import (
	"github.com/pterm/pterm"
)

// Diag is the severity-structured diagnostic surface used for everything a
// user sees. Executors and the collaborator receive it by injection.
type Diag interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Fail(format string, args ...interface{})
	Pass(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Console is the default Diag backed by pterm severity printers.
// Quiet suppresses info/pass/debug but never warnings or failures.
type Console struct {
	Quiet bool
}

// NewConsole returns a console Diag
func NewConsole(quiet bool) *Console {
	return &Console{Quiet: quiet}
}

func (c *Console) Info(format string, args ...interface{}) {
	if c.Quiet {
		return
	}
	pterm.Info.Printfln(format, args...)
}

func (c *Console) Warn(format string, args ...interface{}) {
	pterm.Warning.Printfln(format, args...)
}

func (c *Console) Fail(format string, args ...interface{}) {
	pterm.Error.Printfln(format, args...)
}

func (c *Console) Pass(format string, args ...interface{}) {
	if c.Quiet {
		return
	}
	pterm.Success.Printfln(format, args...)
}

func (c *Console) Debug(format string, args ...interface{}) {
	if c.Quiet {
		return
	}
	pterm.Debug.Printfln(format, args...)
}
