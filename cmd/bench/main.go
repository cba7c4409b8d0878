/*
File   : lattice/cmd/bench/main.go
*/

// Command bench runs the classic recursive-Fibonacci lattice program a
// configurable number of times and reports wall-clock timing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/monkeylang/lattice/evaluator"
	"github.com/monkeylang/lattice/internal/gmlog"
	"github.com/monkeylang/lattice/parser"
)

const fibProgram = `
let fib = fn(x) {
	if (x < 3) { 1 } else { fib(x - 1) + fib(x - 2) }
};
fib(%d);
`

func main() {
	n := flag.Int("n", 30, "fibonacci argument to evaluate")
	runs := flag.Int("runs", 5, "number of timed runs")
	flag.Parse()

	log := gmlog.New(os.Stdout)
	source := fmt.Sprintf(fibProgram, *n)

	program, perr := parser.Parse(source)
	if perr != nil {
		log.Errorf("%v", perr)
		os.Exit(1)
	}

	var total time.Duration
	for i := 0; i < *runs; i++ {
		ev := evaluator.New()

		start := time.Now()
		result, eerr := ev.Eval(program)
		elapsed := time.Since(start)
		ev.Close()

		if eerr != nil {
			log.Errorf("%v", eerr)
			os.Exit(1)
		}

		log.Infof("run %d: fib(%d) = %s in %s", i+1, *n, result.Inspect(), elapsed)
		total += elapsed
	}

	log.Infof("average over %d runs: %s", *runs, total/time.Duration(*runs))
}
