/*
File   : lattice/cmd/monkey/main.go
*/

// Command monkey is the lattice interpreter's CLI entry point: a -file
// flag runs a script and prints its result, otherwise the process falls
// into REPL mode.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/monkeylang/lattice/evaluator"
	"github.com/monkeylang/lattice/internal/gmlog"
	"github.com/monkeylang/lattice/parser"
	"github.com/monkeylang/lattice/repl"
)

var errColor = color.New(color.FgRed, color.Bold)

func main() {
	file := flag.String("file", "", "path to a lattice source file to run; omit to start the REPL")
	flag.Parse()

	if *file == "" {
		r := repl.New()
		if err := r.Start(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, errColor.Sprintf("repl error: %v", err))
			os.Exit(1)
		}
		return
	}

	runFile(*file)
}

// runFile reads and evaluates a single source file, printing either the
// result of the final statement or the first error encountered.
func runFile(path string) {
	log := gmlog.Default()

	src, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("could not read file %q: %v", path, err)
		os.Exit(1)
	}

	program, perr := parser.Parse(string(src))
	if perr != nil {
		log.Errorf("%v", perr)
		os.Exit(1)
	}

	ev := evaluator.New()
	defer ev.Close()
	ev.SetLogger(log)

	result, eerr := ev.Eval(program)
	if eerr != nil {
		log.Errorf("%v", eerr)
		os.Exit(1)
	}

	fmt.Println(result.Inspect())
}
