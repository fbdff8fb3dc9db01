package compile

import (
	"fmt"

	"github.com/kwikrick/sillycon/internal/container"
	"github.com/kwikrick/sillycon/internal/problem"
	"github.com/kwikrick/sillycon/internal/solver"
)

// rawRule is one (lhs, rhs) pair read back out of a Problem's flat rule
// array, the inverse of Problem.addRule2's wire encoding.
type rawRule struct {
	lhs, rhs []int
}

func parseRawRules(flat []int) []rawRule {
	var rules []rawRule
	i := 0
	for {
		var lhs, rhs []int
		for flat[i] != 0 {
			lhs = append(lhs, flat[i])
			i++
		}
		i++
		for flat[i] != 0 {
			rhs = append(rhs, flat[i])
			i++
		}
		i++
		if len(lhs) == 0 && len(rhs) == 0 {
			break
		}
		rules = append(rules, rawRule{lhs: lhs, rhs: rhs})
	}
	return rules
}

// Simplify runs one forced-move fixpoint over p and rewrites it into a
// smaller, equivalent Problem: every literal the fixpoint pinned collapses
// to the new problem's canonical true or false, every literal still free
// gets a fresh literal, and every rule is rewritten under that mapping,
// deduplicated per side, and dropped if it can never usefully fire. answer
// is rewritten under the same mapping so the caller keeps a valid handle on
// the top-level expression's value. On conflict, the result is a trivially
// unsatisfiable Problem and answer is meaningless.
func Simplify(p *problem.Problem, answer problem.Number) (*problem.Problem, problem.Number) {
	p.PinAllVariables()
	s := solver.New(p.Rules())

	if !s.RunForcedMovePass() {
		unsat := problem.New()
		unsat.ConstrainFalse(unsat.True)
		return unsat, problem.Number{unsat.False, unsat.False}
	}

	newP := problem.New()
	maxLit := int(p.MaxLit())
	mapping := make([]problem.Lit, maxLit+1) // 1-indexed; mapping[0] unused

	// Named variables keep a fresh, unconstrained literal each, even if the
	// forced-move pass pinned their value: the point of a name is to stay
	// printable after solving, which folding to a true/false constant would
	// defeat.
	for id, first := range p.NamedVariables() {
		lits, err := newP.AddOrGetVariable(problem.VarName(id))
		if err != nil {
			panic(fmt.Sprintf("compile: re-registering named variable %d: %v", id, err))
		}
		for i, lit := range lits {
			mapping[int(first)+i] = lit
		}
	}

	for v := 1; v <= maxLit; v++ {
		if mapping[v] != 0 {
			continue
		}
		switch {
		case s.IsFree(v):
			mapping[v] = newP.NewLit()
		case s.Value(solver.Literal(v)):
			mapping[v] = newP.True
		default:
			mapping[v] = newP.False
		}
	}

	remap := func(lit problem.Lit) problem.Lit {
		if lit == 0 {
			return 0
		}
		if lit < 0 {
			return -mapping[-lit]
		}
		return mapping[lit]
	}
	litKey := func(lit problem.Lit) int {
		if lit >= 0 {
			return int(2 * lit)
		}
		return int(-2*lit + 1)
	}

	dedup := container.NewResetSet(litKey(newP.MaxLit()) + 2)
	rewriteSide := func(raw []int) (lits []problem.Lit, hasFalse bool) {
		dedup.Clear()
		for _, v := range raw {
			m := remap(problem.Lit(v))
			if m == newP.False {
				hasFalse = true
			}
			if m == newP.True {
				continue // trivially satisfied; carrying it adds no information
			}
			key := litKey(m)
			if dedup.Contains(key) {
				continue
			}
			dedup.Add(key)
			lits = append(lits, m)
		}
		return lits, hasFalse
	}

	for _, r := range parseRawRules(p.Rules()) {
		lhs, lhsHasFalse := rewriteSide(r.lhs)
		if lhsHasFalse {
			continue // a literal that's permanently false never gets assigned: this rule can never fire
		}
		rhs, _ := rewriteSide(r.rhs)
		if len(lhs) == 0 || len(rhs) == 0 {
			continue // LHS-only rules are no-ops; empty-LHS rules are the canonical-true rule's shape, already rebuilt fresh above
		}
		newP.AddRule(lhs, rhs)
	}

	out := make(problem.Number, len(answer))
	for i, lit := range answer {
		out[i] = remap(lit)
	}
	return newP, out
}
