package solver

// ruleSet is the flattened, indexed form of a problem's rule array. A rule
// is `lhs... 0 rhs... 0`; the array ends at the first empty rule (`0 0`).
// Loading happens in two passes over the flat array, exactly as the
// reference implementation does it: the first pass counts variables, rules,
// and per-literal/per-rule fan-out so the second pass can allocate exact
// slices instead of growing them.
type ruleSet struct {
	numVars  int
	numRules int

	// lit2Rules[idx] lists the rules whose LHS contains the literal at
	// index idx; counters[r] is decremented once per LHS literal of rule r
	// that gets propagated.
	lit2Rules [][]int
	counters  []int

	// rule2Lits[r] lists the RHS literals to propagate when counters[r]
	// reaches zero.
	rule2Lits [][]Literal
}

// loadRules parses the flat rule array into a ruleSet.
func loadRules(problem []int) *ruleSet {
	numVars := 0
	addVar := func(v int) {
		if v < 0 {
			v = -v
		}
		if v > numVars {
			numVars = v
		}
	}

	// Pass 1: count variables and rules, and find where the array ends.
	numRules := 0
	pos := 0
	stop := 0
	for {
		lhsCount := 0
		for problem[pos] != 0 {
			addVar(problem[pos])
			pos++
			lhsCount++
		}
		pos++ // skip the terminating 0
		rhsCount := 0
		for problem[pos] != 0 {
			addVar(problem[pos])
			pos++
			rhsCount++
		}
		pos++
		if lhsCount == 0 && rhsCount == 0 {
			stop = pos
			break
		}
		numRules++
	}

	numLits := 2 * numVars
	rs := &ruleSet{
		numVars:   numVars,
		numRules:  numRules,
		lit2Rules: make([][]int, numLits),
		counters:  make([]int, numRules),
		rule2Lits: make([][]Literal, numRules),
	}

	lit2N := make([]int, numLits)
	rule2N := make([]int, numRules)

	// Pass 2a: count fan-out per literal and per rule.
	pos = 0
	r := 0
	for pos < stop {
		for problem[pos] != 0 {
			li := toIndex(Literal(problem[pos]))
			rs.counters[r]++
			lit2N[li]++
			pos++
		}
		pos++
		for problem[pos] != 0 {
			rule2N[r]++
			pos++
		}
		pos++
		r++
	}

	for li := range rs.lit2Rules {
		rs.lit2Rules[li] = make([]int, 0, lit2N[li])
	}
	for r := range rs.rule2Lits {
		rs.rule2Lits[r] = make([]Literal, 0, rule2N[r])
	}

	// Pass 2b: fill the indices.
	pos = 0
	r = 0
	for pos < stop {
		for problem[pos] != 0 {
			li := toIndex(Literal(problem[pos]))
			rs.lit2Rules[li] = append(rs.lit2Rules[li], r)
			pos++
		}
		pos++
		for problem[pos] != 0 {
			rs.rule2Lits[r] = append(rs.rule2Lits[r], Literal(problem[pos]))
			pos++
		}
		pos++
		r++
	}

	return rs
}
