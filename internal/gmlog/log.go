/*
File   : lattice/internal/gmlog/log.go
*/

// Package gmlog is the small structured-logging wrapper used throughout
// lattice instead of bare fmt.Println/log.Println calls, so that parse and
// evaluation diagnostics come out in one consistent, colorized shape
// regardless of which package raised them.
package gmlog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgCyan)
)

// Logger writes leveled, colorized lines to an underlying writer. The zero
// value is not usable; construct one with New.
type Logger struct {
	out io.Writer
}

// New returns a Logger writing to out.
func New(out io.Writer) *Logger {
	return &Logger{out: out}
}

// Default writes to os.Stderr, the logger every package falls back to when
// no explicit Logger has been wired in (e.g. library use outside the CLI).
func Default() *Logger {
	return New(os.Stderr)
}

// Errorf logs an error line, typically a parse or eval failure at its
// point of detection. A parse error's text carries the offending token's
// line and column; an eval error's text names the operator and operand
// types. Callers still match on Kind for control flow.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintln(l.out, errorColor.Sprint("error: ")+fmt.Sprintf(format, args...))
}

// Infof logs ambient progress information, such as the bench harness's
// per-run timing lines.
func (l *Logger) Infof(format string, args ...any) {
	fmt.Fprintln(l.out, infoColor.Sprint("info: ")+fmt.Sprintf(format, args...))
}
