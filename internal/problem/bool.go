package problem

// Not returns a fresh literal constrained to hold the negation of lit. It
// is needed (rather than just using -lit) whenever the caller requires the
// *variable* for the negation, e.g. to order on it or to number it.
func (p *Problem) Not(lit Lit) Lit {
	v := p.newLit()
	p.addRule2(v, 0, -lit, 0)
	p.addRule2(-v, 0, lit, 0)
	p.addRule2(lit, 0, -v, 0)
	p.addRule2(-lit, 0, v, 0)
	return v
}

// AsVar returns a literal that is always a positive variable equal in value
// to lit: lit itself if it is already positive, or a fresh Not(lit) gate
// otherwise.
func (p *Problem) AsVar(lit Lit) Lit {
	if lit > 0 {
		return lit
	}
	return p.Not(lit)
}

// And returns a fresh literal constrained to hold iff both l and r hold.
func (p *Problem) And(l, r Lit) Lit {
	v := p.newLit()
	p.addRule2(l, r, v, 0)
	p.addRule2(-l, 0, -v, 0)
	p.addRule2(-r, 0, -v, 0)
	p.addRule2(v, 0, l, r)
	p.addRule2(-v, l, -r, 0)
	p.addRule2(-v, r, -l, 0)
	return v
}

// Or returns a fresh literal constrained to hold iff l or r (or both) hold.
func (p *Problem) Or(l, r Lit) Lit {
	v := p.newLit()
	p.addRule2(-l, -r, -v, 0)
	p.addRule2(l, 0, v, 0)
	p.addRule2(r, 0, v, 0)
	p.addRule2(-v, 0, -l, -r)
	p.addRule2(v, -l, r, 0)
	p.addRule2(v, -r, l, 0)
	return v
}

// Xor returns a fresh literal constrained to hold iff exactly one of l, r
// holds.
func (p *Problem) Xor(l, r Lit) Lit {
	v := p.newLit()
	p.addRule2(-l, -r, -v, 0)
	p.addRule2(-l, r, v, 0)
	p.addRule2(l, r, -v, 0)
	p.addRule2(l, -r, v, 0)
	p.addRule2(-v, -l, -r, 0)
	p.addRule2(-v, -r, -l, 0)
	p.addRule2(-v, l, r, 0)
	p.addRule2(-v, r, l, 0)
	p.addRule2(v, -l, r, 0)
	p.addRule2(v, -r, l, 0)
	p.addRule2(v, l, -r, 0)
	p.addRule2(v, r, -l, 0)
	return v
}

// Eq returns a fresh literal constrained to hold iff l and r have the same
// value.
func (p *Problem) Eq(l, r Lit) Lit {
	v := p.newLit()
	p.addRule2(l, r, v, 0)
	p.addRule2(-l, -r, v, 0)
	p.addRule2(l, -r, -v, 0)
	p.addRule2(-l, r, -v, 0)
	p.addRule2(v, l, r, 0)
	p.addRule2(v, -l, -r, 0)
	p.addRule2(v, r, l, 0)
	p.addRule2(v, -r, -l, 0)
	p.addRule2(-v, l, -r, 0)
	p.addRule2(-v, -l, r, 0)
	p.addRule2(-v, r, -l, 0)
	p.addRule2(-v, -r, l, 0)
	return v
}

// Impl returns a fresh literal constrained to hold iff l implies r.
func (p *Problem) Impl(l, r Lit) Lit {
	v := p.newLit()
	p.addRule2(-l, 0, v, 0)
	p.addRule2(l, r, v, 0)
	p.addRule2(l, -r, -v, 0)
	p.addRule2(v, l, r, 0)
	p.addRule2(-v, 0, l, -r)
	return v
}

// fullAdder returns the sum and carry-out literals for a, b, carryIn.
func (p *Problem) fullAdder(a, b, carryIn Lit) (sum, carryOut Lit) {
	out1 := p.And(a, p.And(-b, -carryIn))
	out2 := p.And(b, p.And(-a, -carryIn))
	out3 := p.And(carryIn, p.And(-a, -b))
	out4 := p.And(a, p.And(b, carryIn))
	sum = p.Or(out1, p.Or(out2, p.Or(out3, out4)))
	carryOut = p.Or(p.And(a, b), p.Or(p.And(a, carryIn), p.And(carryIn, b)))
	return sum, carryOut
}
