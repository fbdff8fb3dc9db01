package compile_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kwikrick/sillycon/internal/ast"
	"github.com/kwikrick/sillycon/internal/compile"
	"github.com/kwikrick/sillycon/internal/problem"
	"github.com/kwikrick/sillycon/internal/solver"
)

func parse(t *testing.T, src string) *ast.Expr {
	t.Helper()
	e, err := ast.NewParser(strings.NewReader(src)).ParseExpr()
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", src, err)
	}
	return e
}

func decode(s *solver.Solver, n problem.Number) int {
	lits := make([]solver.Literal, len(n))
	for i, l := range n {
		lits[i] = solver.Literal(l)
	}
	return s.Number(lits)
}

// solveNumber compiles src's top-level wrapped form, solves it, and returns
// the value bound to the well-known answer variable "?1".
func solveNumber(t *testing.T, src string) int {
	t.Helper()
	e := compile.WrapTopLevel(parse(t, src))

	p := problem.New()
	c := compile.New(p)
	if _, err := c.Convert(e); err != nil {
		t.Fatalf("Convert(%q): %v", src, err)
	}

	answer, err := p.GetVariable("?1")
	if err != nil {
		t.Fatalf("GetVariable(?1): %v", err)
	}

	p.PinAllVariables()
	s := solver.New(p.Rules())
	if !s.NextSolution() {
		t.Fatalf("expected a solution for %q", src)
	}
	return decode(s, answer)
}

func TestConvert_arithmeticIdentity(t *testing.T) {
	if got, want := solveNumber(t, "+ 3 4"), 7; got != want {
		t.Errorf("+ 3 4 = %d, want %d", got, want)
	}
}

func TestConvert_negativeResult(t *testing.T) {
	if got, want := solveNumber(t, "- 5"), -5; got != want {
		t.Errorf("- 5 = %d, want %d", got, want)
	}
}

func TestConvert_namedVariableNegativeSolution(t *testing.T) {
	e := compile.WrapTopLevel(parse(t, "= a - 1"))

	p := problem.New()
	c := compile.New(p)
	if _, err := c.Convert(e); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	a, err := p.GetVariable("a")
	if err != nil {
		t.Fatalf("GetVariable(a): %v", err)
	}
	p.PinAllVariables()
	s := solver.New(p.Rules())
	if !s.NextSolution() {
		t.Fatalf("expected a = -1 to be satisfiable")
	}
	if got := decode(s, a); got != -1 {
		t.Errorf("a = %d, want -1", got)
	}
}

func TestConvert_mulZeroTimesNegativeOne(t *testing.T) {
	e := &ast.Expr{Op: ast.Mul, Term: "*",
		Left:  &ast.Expr{Op: ast.Num, Term: "0"},
		Right: &ast.Expr{Op: ast.Neg, Term: "-", Left: &ast.Expr{Op: ast.Num, Term: "1"}},
	}
	wrapped := compile.WrapTopLevel(e)

	p := problem.New()
	c := compile.New(p)
	if _, err := c.Convert(wrapped); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	answer, err := p.GetVariable("?1")
	if err != nil {
		t.Fatalf("GetVariable(?1): %v", err)
	}
	p.PinAllVariables()
	s := solver.New(p.Rules())
	if !s.NextSolution() {
		t.Fatalf("expected 0 * -1 to be satisfiable")
	}
	if got := decode(s, answer); got != 0 {
		t.Errorf("0 * -1 = %d, want 0", got)
	}
}

func TestConvert_comparison(t *testing.T) {
	e := parse(t, "< 3 4")
	wrapped := compile.WrapTopLevel(e)
	if wrapped.Op != ast.Con {
		t.Fatalf("expected a bare CON wrapper for a comparison root, got %v", wrapped.Op)
	}

	p := problem.New()
	c := compile.New(p)
	if _, err := c.Convert(wrapped); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	p.PinAllVariables()
	s := solver.New(p.Rules())
	if !s.NextSolution() {
		t.Fatalf("expected 3 < 4 to be satisfiable")
	}
}

func TestCount_countsSolutions(t *testing.T) {
	// COUNT(= x 1) over a single free bit slice has exactly one solution
	// where the whole number equals 1.
	e := &ast.Expr{
		Op:   ast.Count,
		Term: "#",
		Left: &ast.Expr{Op: ast.Eq, Term: "=",
			Left:  &ast.Expr{Op: ast.Var, Term: "x"},
			Right: &ast.Expr{Op: ast.Num, Term: "1"},
		},
	}
	wrapped := compile.WrapTopLevel(e)

	p := problem.New()
	c := compile.New(p)
	if _, err := c.Convert(wrapped); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	answer, err := p.GetVariable("?1")
	if err != nil {
		t.Fatalf("GetVariable(?1): %v", err)
	}
	p.PinAllVariables()
	s := solver.New(p.Rules())
	if !s.NextSolution() {
		t.Fatalf("expected a solution")
	}
	if got := decode(s, answer); got != 1 {
		t.Errorf("COUNT(x==1) = %d, want 1", got)
	}
}

func TestSimplify_fixesForcedVariables(t *testing.T) {
	p := problem.New()
	c := compile.New(p)
	e := compile.WrapTopLevel(parse(t, "+ 2 2"))
	if _, err := c.Convert(e); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	answer, err := p.GetVariable("?1")
	if err != nil {
		t.Fatalf("GetVariable(?1): %v", err)
	}

	simplified, newAnswer := compile.Simplify(p, answer)
	simplified.PinAllVariables()
	s := solver.New(simplified.Rules())
	if !s.NextSolution() {
		t.Fatalf("expected the simplified problem to stay satisfiable")
	}
	if got := decode(s, newAnswer); got != 4 {
		t.Errorf("simplified 2+2 = %d, want 4", got)
	}
}

func TestSimplify_conflictYieldsUnsatisfiable(t *testing.T) {
	p := problem.New()
	p.ConstrainTrue(p.False) // an immediate, unconditional conflict
	unsat, _ := compile.Simplify(p, problem.Number{p.False})
	unsat.PinAllVariables()
	s := solver.New(unsat.Rules())
	if s.NextSolution() {
		t.Errorf("expected the simplified conflict problem to stay unsatisfiable")
	}
}

func TestWrapTopLevel_conDoesNotDoubleWrap(t *testing.T) {
	e := parse(t, "@ ! x")
	if diff := cmp.Diff(e, compile.WrapTopLevel(e)); diff != "" {
		t.Errorf("WrapTopLevel should leave an existing CON alone (-want +got):\n%s", diff)
	}
}
