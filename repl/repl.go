/*
File   : lattice/repl/repl.go
*/

// Package repl implements the interactive read-eval-print loop: readline
// editing and history via chzyer/readline, colorized banner/prompt/result
// output via fatih/color, one Evaluator kept alive across lines so `let`
// bindings and closures persist across REPL turns.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/monkeylang/lattice/evaluator"
	"github.com/monkeylang/lattice/internal/gmlog"
	"github.com/monkeylang/lattice/lexer"
	"github.com/monkeylang/lattice/parser"
)

const (
	banner = `
 _       _   _   _
| | __ _| |_| |_(_) ___ ___
| |/ _' | __| __| |/ __/ _ \
| | (_| | |_| |_| | (_|  __/
|_|\__,_|\__|\__|_|\___\___|
`
	version = "v0.1.0"
	prompt  = "lattice >>> "
	exit    = ".exit"
)

var (
	bannerColor = color.New(color.FgCyan, color.Bold)
	promptColor = color.New(color.FgGreen)
	resultColor = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed, color.Bold)
)

// Repl owns one long-lived Evaluator and the logger its diagnostics go
// through; Start creates the readline instance for the session.
type Repl struct {
	eval *evaluator.Evaluator
	log  *gmlog.Logger
}

// New constructs a Repl with a fresh Evaluator.
func New() *Repl {
	return &Repl{eval: evaluator.New()}
}

// PrintBanner writes the startup banner and version line to out.
func (r *Repl) PrintBanner(out io.Writer) {
	fmt.Fprintln(out, bannerColor.Sprint(banner))
	fmt.Fprintf(out, "lattice %s (type %s to quit)\n\n", version, exit)
}

// Start runs the loop until the user types `.exit`, enters EOF, or an
// unrecoverable readline error occurs. The Evaluator is closed on exit so
// every object it still owns is freed.
func (r *Repl) Start(out io.Writer) error {
	defer r.eval.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptColor.Sprint(prompt),
		HistoryFile:     "/tmp/.lattice_history",
		InterruptPrompt: "^C",
		EOFPrompt:       exit,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	r.log = gmlog.New(out)
	r.eval.SetLogger(r.log)
	r.PrintBanner(out)

	for {
		line, readErr := rl.Readline()
		if readErr == readline.ErrInterrupt {
			continue
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == exit {
			return nil
		}

		r.executeWithRecovery(line, out)
	}
}

// executeWithRecovery parses and evaluates one line of input, recovering
// from any panic so a single bad line never takes down the session.
func (r *Repl) executeWithRecovery(line string, out io.Writer) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintln(out, errColor.Sprintf("panic: %v", rec))
		}
	}()

	p := parser.New(lexer.New(line))
	p.SetLogger(r.log)
	program, perr := p.ParseProgram()
	if perr != nil {
		fmt.Fprintln(out, errColor.Sprintf("parse error: %v", perr))
		return
	}

	result, eerr := r.eval.Eval(program)
	if eerr != nil {
		fmt.Fprintln(out, errColor.Sprintf("eval error: %v", eerr))
		return
	}

	fmt.Fprintln(out, resultColor.Sprint(result.Inspect()))
}
