package compile

import (
	"log"
	"strconv"

	"github.com/kwikrick/sillycon/internal/ast"
	"github.com/kwikrick/sillycon/internal/problem"
	"github.com/kwikrick/sillycon/internal/solver"
)

// toLiterals converts a Number (problem.Lit slice) into the solver's own
// Literal type. The two types share an encoding; only the conversion needs
// writing out since Go does not implicitly convert named slice element
// types.
func toLiterals(n problem.Number) []solver.Literal {
	out := make([]solver.Literal, len(n))
	for i, l := range n {
		out[i] = solver.Literal(l)
	}
	return out
}

// newSolver builds a Solver over sub's current rules, first pinning every
// literal sub has allocated so the solver accounts for unconstrained
// variables too (matching the reference implementation's `addRule2(p, 0, 0,
// p->maxlit, 0)` before every nested solve).
func newSolver(sub *problem.Problem, ordered []int) *solver.Solver {
	sub.PinAllVariables()
	return solver.NewOrdered(sub.Rules(), ordered)
}

// makeEval implements the EVAL meta-operator: enumerate every solution of
// rhs==1 in a fresh sub-problem, fold the set of values lhs takes across
// those solutions into an OR of equalities in the parent, and return the
// fresh result variable.
func (c *Compiler) makeEval(e *ast.Expr) (problem.Number, error) {
	sub := problem.New()
	subC := New(sub)

	left, err := subC.Convert(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := subC.Convert(e.Right)
	if err != nil {
		return nil, err
	}
	sub.ConstrainConst(right, 1)

	s := newSolver(sub, nil)

	result := c.p.NumVar()
	acc := problem.Number{c.p.False, c.p.False}
	for count := 0; s.NextSolution(); count++ {
		if count >= MaxSolutions {
			log.Printf("compile: EVAL sub-problem has more than %d solutions, truncating", MaxSolutions)
			break
		}
		value := s.Number(toLiterals(left))
		eq := c.p.NumEq(result, c.p.MakeNumber(value))
		acc = c.p.NumOr(acc, eq)
	}
	c.p.ConstrainConst(acc, 1)
	return result, nil
}

// makeCount implements the COUNT meta-operator: count the solutions of
// lhs==1 in a fresh sub-problem and emit the count as a constant in the
// parent.
func (c *Compiler) makeCount(e *ast.Expr) (problem.Number, error) {
	sub := problem.New()
	subC := New(sub)

	left, err := subC.Convert(e.Left)
	if err != nil {
		return nil, err
	}
	sub.ConstrainConst(left, 1)

	s := newSolver(sub, nil)

	count := 0
	for s.NextSolution() {
		count++
		if count > MaxSolutions {
			log.Printf("compile: COUNT sub-problem has more than %d solutions, truncating", MaxSolutions)
			break
		}
	}
	return c.p.MakeNumber(count), nil
}

// extremum is the shared core of MIN and MAX: build a sub-problem for lhs
// and rhs==1, order the search so the first solution found is the
// minimal/maximal value of lhs (by adding an offset that maps two's
// complement ordering onto sort ordering), and emit that first solution's
// lhs value as a constant in the parent. toSortOrder receives the
// sub-problem and lhs and returns the Number whose bits, read MSB-first,
// give the search order (ascending for MIN, descending for MAX).
func (c *Compiler) extremum(e *ast.Expr, toSortOrder func(sub *problem.Problem, left problem.Number) problem.Number) (problem.Number, error) {
	sub := problem.New()
	subC := New(sub)

	left, err := subC.Convert(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := subC.Convert(e.Right)
	if err != nil {
		return nil, err
	}
	sub.ConstrainConst(right, 1)

	positive := toSortOrder(sub, left)
	ordered := make([]int, len(positive))
	for i, lit := range positive {
		ordered[i] = int(sub.AsVar(lit))
	}

	s := newSolver(sub, ordered)

	if !s.NextSolution() {
		return problem.Number{c.p.Unsatisfiable()}, nil
	}
	value := s.Number(toLiterals(left))
	return c.p.MakeNumber(value), nil
}

func (c *Compiler) makeMin(e *ast.Expr) (problem.Number, error) {
	return c.extremum(e, func(sub *problem.Problem, left problem.Number) problem.Number {
		maxPositive := make(problem.Number, len(left)+1)
		maxPositive[0] = sub.False
		for i := 1; i < len(maxPositive); i++ {
			maxPositive[i] = sub.True
		}
		return sub.NumAdd(left, maxPositive)
	})
}

func (c *Compiler) makeMax(e *ast.Expr) (problem.Number, error) {
	return c.extremum(e, func(sub *problem.Problem, left problem.Number) problem.Number {
		maxPositive := make(problem.Number, len(left)+2)
		maxPositive[0] = sub.False
		for i := 1; i < len(maxPositive); i++ {
			maxPositive[i] = sub.True
		}
		return sub.NumSub(maxPositive, left)
	})
}

// makeInd implements the IND meta-operator: for every solution of rhs==1 in
// a fresh sub-problem, substitute every variable reference (and
// ?-indirection) in lhs with its value under that solution, AND all the
// resulting expressions together, and lower that expression in the parent.
func (c *Compiler) makeInd(e *ast.Expr) (problem.Number, error) {
	sub := problem.New()
	subC := New(sub)

	right, err := subC.Convert(e.Right)
	if err != nil {
		return nil, err
	}
	sub.ConstrainConst(right, 1)

	s := newSolver(sub, nil)

	folded := &ast.Expr{Op: ast.Num, Term: "1"}
	for count := 0; s.NextSolution(); count++ {
		if count >= MaxSolutions {
			log.Printf("compile: IND sub-problem has more than %d solutions, truncating", MaxSolutions)
			break
		}
		replaced := replaceIndirections(e.Left, sub, s)
		folded = &ast.Expr{Op: ast.And, Term: "&(indirection)", Left: folded, Right: replaced}
	}

	return c.Convert(folded)
}

// replaceIndirections copies expr, replacing every VAR reference that was
// allocated in sub with a VAR reference to the variable whose number is
// that variable's value under s's current assignment (problem.VarName of
// the value), and resolving PNTR nodes the same way the
// reference implementation does: by looking up the raw operand text as a
// variable name, which only succeeds for alpha or `?n` text — a numeric
// PNTR operand (the documented use) falls through unresolved and is copied
// as-is, reproducing the original's indirection-inside-IND limitation.
func replaceIndirections(expr *ast.Expr, sub *problem.Problem, s *solver.Solver) *ast.Expr {
	if expr == nil {
		return nil
	}

	if expr.Op == ast.Pntr || expr.Op == ast.Var {
		name := expr.Term
		if expr.Op == ast.Pntr {
			name = expr.Left.Term
		}
		if lits, err := sub.GetVariable(name); err == nil && lits != nil {
			value := s.Number(toLiterals(lits))
			if expr.Op == ast.Pntr {
				return &ast.Expr{Op: ast.Num, Term: strconv.Itoa(value)}
			}
			return &ast.Expr{Op: ast.Var, Term: problem.VarName(value)}
		}
	}

	return &ast.Expr{
		Op:    expr.Op,
		Term:  expr.Term,
		Left:  replaceIndirections(expr.Left, sub, s),
		Right: replaceIndirections(expr.Right, sub, s),
	}
}
