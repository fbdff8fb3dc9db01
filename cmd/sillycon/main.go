// Command sillycon reads prefix constraint expressions from a file (or
// stdin) and prints every named variable's value in each satisfying
// solution, one expression at a time.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/kr/pretty"

	"github.com/kwikrick/sillycon/internal/ast"
	"github.com/kwikrick/sillycon/internal/compile"
	"github.com/kwikrick/sillycon/internal/problem"
	"github.com/kwikrick/sillycon/internal/solver"
)

var flagDebug = flag.Bool(
	"debug",
	false,
	"pretty-print the parsed expression and compiled rule set before solving",
)

var flagMaxSolutions = flag.Int(
	"maxSolutions",
	compile.MaxSolutions,
	"stop enumerating solutions after this many, with a truncation warning",
)

type config struct {
	inputFile    string
	debug        bool
	maxSolutions int
}

func parseConfig() *config {
	flag.Parse()
	return &config{
		inputFile:    flag.Arg(0),
		debug:        *flagDebug,
		maxSolutions: *flagMaxSolutions,
	}
}

func openInput(cfg *config) (io.ReadCloser, error) {
	if cfg.inputFile == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(cfg.inputFile)
}

func run(cfg *config) error {
	in, err := openInput(cfg)
	if err != nil {
		return fmt.Errorf("could not open input: %w", err)
	}
	defer in.Close()

	p := ast.NewParser(in)
	for {
		expr, err := p.ParseExpr()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		wrapped := compile.WrapTopLevel(expr)
		if cfg.debug {
			pretty.Println(wrapped)
		}

		if err := solveOne(cfg, wrapped); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func solveOne(cfg *config, wrapped *ast.Expr) error {
	pr := problem.New()
	c := compile.New(pr)
	if _, err := c.Convert(wrapped); err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}

	names := pr.AllVariableNames()
	sort.Ints(names)

	simplified, _ := compile.Simplify(pr, problem.Number{pr.False})
	if cfg.debug {
		pretty.Println(simplified.Rules())
	}
	simplified.PinAllVariables()

	s := solver.New(simplified.Rules())
	numSol := 0
	for s.NextSolution() {
		numSol++
		if numSol > cfg.maxSolutions {
			fmt.Fprintf(os.Stderr, "WARNING: more than %d solutions, result truncated\n", cfg.maxSolutions)
			break
		}
		fmt.Printf("Solution #%d:\n", numSol)
		for _, id := range names {
			name := problem.VarName(id)
			lits, err := simplified.GetVariable(name)
			if err != nil || lits == nil {
				continue
			}
			fmt.Printf(" %s=%d\n", name, decode(s, lits))
		}
	}
	fmt.Printf("%d solution(s)\n", numSol)
	return nil
}

func decode(s *solver.Solver, n problem.Number) int {
	lits := make([]solver.Literal, len(n))
	for i, l := range n {
		lits[i] = solver.Literal(l)
	}
	return s.Number(lits)
}

func main() {
	cfg := parseConfig()
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}
