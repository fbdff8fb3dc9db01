// Package compile lowers parsed prefix expressions (internal/ast) into
// rules against a Problem builder (internal/problem), the direct Go
// counterpart of the reference implementation's convertExpr and its family
// of meta-operator solvers.
package compile

import (
	"fmt"
	"strconv"

	"github.com/kwikrick/sillycon/internal/ast"
	"github.com/kwikrick/sillycon/internal/problem"
)

// MaxSolutions caps how many solutions a meta-operator's nested solver will
// enumerate before giving up and warning about truncation.
const MaxSolutions = 100

// Compiler lowers expression trees into rules against a single Problem.
// Each meta-operator gets its own Compiler over its own nested Problem.
type Compiler struct {
	p *problem.Problem
}

// New returns a Compiler that lowers expressions into p.
func New(p *problem.Problem) *Compiler {
	return &Compiler{p: p}
}

// Problem returns the Problem this Compiler lowers into.
func (c *Compiler) Problem() *problem.Problem {
	return c.p
}

// Convert walks e and returns the Number representing its value: for
// boolean-valued nodes (comparisons, gates) this is the two-bit
// {problem.False, valueBit} convention NumEq and friends already use, so
// the result composes uniformly with every other arithmetic constructor.
func (c *Compiler) Convert(e *ast.Expr) (problem.Number, error) {
	if e == nil {
		return nil, fmt.Errorf("compile: nil expression")
	}

	switch e.Op {
	case ast.Var:
		return c.p.AddOrGetVariable(e.Term)

	case ast.Num:
		n, err := strconv.Atoi(e.Term)
		if err != nil {
			return nil, fmt.Errorf("compile: bad number literal %q: %w", e.Term, err)
		}
		return c.p.MakeNumber(n), nil

	case ast.Pntr:
		if e.Left == nil || e.Left.Op != ast.Num {
			return nil, fmt.Errorf("compile: ?-indirection requires a number literal operand")
		}
		varno, err := strconv.Atoi(e.Left.Term)
		if err != nil {
			return nil, fmt.Errorf("compile: bad ?-indirection operand %q: %w", e.Left.Term, err)
		}
		return c.p.AddOrGetVariable(problem.VarName(varno))

	case ast.Con:
		left, err := c.Convert(e.Left)
		if err != nil {
			return nil, err
		}
		c.p.ConstrainConst(left, 1)
		return append(problem.Number(nil), left...), nil

	case ast.Not:
		left, err := c.Convert(e.Left)
		if err != nil {
			return nil, err
		}
		return c.p.NumNot(left), nil

	case ast.Neg:
		left, err := c.Convert(e.Left)
		if err != nil {
			return nil, err
		}
		return c.p.Neg(left), nil

	case ast.Eval:
		return c.makeEval(e)
	case ast.Ind:
		return c.makeInd(e)
	case ast.Min:
		return c.makeMin(e)
	case ast.Max:
		return c.makeMax(e)
	case ast.Count:
		return c.makeCount(e)
	}

	left, err := c.Convert(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.Convert(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.Eq:
		return c.p.NumEq(left, right), nil
	case ast.Impl:
		return c.p.NumImpl(left, right), nil
	case ast.And:
		return c.p.NumAnd(left, right), nil
	case ast.Or:
		return c.p.NumOr(left, right), nil
	case ast.Xor:
		return c.p.NumXor(left, right), nil
	case ast.Add:
		return c.p.NumAdd(left, right), nil
	case ast.Mul:
		return c.p.Mul(left, right), nil
	case ast.Div:
		return c.p.Div(left, right), nil
	case ast.Mod:
		return c.p.Mod(left, right), nil
	case ast.Lt:
		return c.p.Lt(left, right), nil
	case ast.Gt:
		return c.p.Gt(left, right), nil
	}

	return nil, fmt.Errorf("compile: unhandled operator %v", e.Op)
}

// WrapTopLevel mirrors the reference implementation's implicit top-level
// wrapping: a value-producing expression is constrained to equal the
// well-known answer variable "?1" (`@(= ?1 expr)`), a boolean/comparison
// expression is merely constrained to hold (`@ expr`), and an expression
// that is already a CON is left untouched.
func WrapTopLevel(e *ast.Expr) *ast.Expr {
	switch e.Op {
	case ast.Con:
		return e

	case ast.Not, ast.Ind, ast.Eq, ast.Impl, ast.And, ast.Or, ast.Xor, ast.Lt, ast.Gt:
		return &ast.Expr{Op: ast.Con, Term: "@", Left: e}

	default: // Var, Pntr, Num, Eval, Min, Max, Count, Neg, Add, Mul, Div, Mod
		answer := &ast.Expr{Op: ast.Var, Term: "?1"}
		eq := &ast.Expr{Op: ast.Eq, Term: "=", Left: answer, Right: e}
		return &ast.Expr{Op: ast.Con, Term: "@", Left: eq}
	}
}
