package ir

// Optimize runs the bottom-up IR rewrite pass: children are optimized
// before the parent is inspected, so a simplification performed deep in
// the tree (e.g. a singleton group unwrapping to a bare literal) is
// visible to the optimizations applied one level up.
func Optimize(n Node) Node {
	switch v := n.(type) {
	case *Group:
		return optimizeGroup(v)
	case *Alternation:
		return optimizeAlternation(v)
	case *Repetition:
		return optimizeRepetition(v)
	case *Lookaround:
		return &Lookaround{Inner: Optimize(v.Inner), Kind: v.Kind}
	case *CompoundCharSet:
		return v
	default:
		return n
	}
}

func isEmptyLiteral(n Node) bool {
	lit, ok := n.(*Literal)
	return ok && lit.Text == ""
}

func optimizeGroup(g *Group) Node {
	parts := make([]Node, 0, len(g.Parts))
	for _, p := range g.Parts {
		opt := Optimize(p)
		if isEmptyLiteral(opt) {
			continue // empty literals (Count::Zero) are dropped by the parent
		}
		parts = append(parts, opt)
	}
	if len(parts) == 0 {
		return &Literal{Text: ""}
	}
	if len(parts) == 1 && (g.Kind == GroupNormal || g.Kind == GroupImplicit) {
		return parts[0]
	}
	return &Group{Parts: parts, Kind: g.Kind, Name: g.Name, Number: g.Number}
}

func optimizeAlternation(a *Alternation) Node {
	parts := make([]Node, 0, len(a.Parts))
	for _, p := range a.Parts {
		parts = append(parts, Optimize(p))
	}
	parts = fuseSingleCharAlternatives(parts)
	if len(parts) == 1 {
		return parts[0]
	}
	return &Alternation{Parts: parts}
}

// fuseSingleCharAlternatives merges consecutive single-character
// alternatives ('a' | 'b' | CharSet['c'-'c']) into one CharSet.
func fuseSingleCharAlternatives(parts []Node) []Node {
	var out []Node
	for _, p := range parts {
		c, ok := singleChar(p)
		if !ok {
			out = append(out, p)
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*CharSet); ok && !prev.Negative {
				prev.Set.AddRange(c, c)
				continue
			}
		}
		set := NewUnicodeSet()
		set.AddRange(c, c)
		out = append(out, &CharSet{Set: set})
	}
	return out
}

func singleChar(n Node) (rune, bool) {
	switch v := n.(type) {
	case *Char:
		return v.C, true
	case *Literal:
		runes := []rune(v.Text)
		if len(runes) == 1 {
			return runes[0], true
		}
	case *CharSet:
		if !v.Negative {
			return v.Set.IsSingleChar()
		}
	}
	return 0, false
}

func optimizeRepetition(r *Repetition) Node {
	inner := Optimize(r.Inner)

	if r.Lower == 1 && r.Upper != nil && *r.Upper == 1 {
		return inner
	}

	if innerRep, ok := inner.(*Repetition); ok {
		if lo, hi, ok := foldRepetitionBounds(r.Lower, r.Upper, innerRep.Lower, innerRep.Upper); ok {
			return &Repetition{Inner: innerRep.Inner, Lower: lo, Upper: hi, Lazy: r.Lazy}
		}
	}

	return &Repetition{Inner: inner, Lower: r.Lower, Upper: r.Upper, Lazy: r.Lazy}
}

const repetitionFoldCap = 1 << 16

func isZeroOrOne(n uint32) bool { return n == 0 || n == 1 }

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// foldRepetitionBounds implements spec §4.I's nested-repetition fold table.
// Rows are checked from most to least specific since some are special
// cases of a more general one (e.g. {0|1,n} x {0,1} -> {0,n} is exactly
// what the {0|1,u1} x {0|1,u2} row computes when u2 == 1).
func foldRepetitionBounds(outerLower uint32, outerUpper *uint32, innerLower uint32, innerUpper *uint32) (uint32, *uint32, bool) {
	// {n,n} x {m,m} -> {n*m, n*m}
	if outerUpper != nil && *outerUpper == outerLower && innerUpper != nil && *innerUpper == innerLower {
		prod := uint64(outerLower) * uint64(innerLower)
		if prod > repetitionFoldCap {
			return 0, nil, false
		}
		n := uint32(prod)
		return n, &n, true
	}

	// {l1,inf} x {l2,inf} -> {l1*l2, inf}
	if outerUpper == nil && innerUpper == nil {
		prod := uint64(outerLower) * uint64(innerLower)
		if prod > repetitionFoldCap {
			return 0, nil, false
		}
		return uint32(prod), nil, true
	}

	// {0|1,*} x {0|1,inf} and its symmetric form {0|1,inf} x {0|1,*} ->
	// {min(l_o,l_i), inf}
	if isZeroOrOne(outerLower) && isZeroOrOne(innerLower) && (outerUpper == nil || innerUpper == nil) {
		return minU32(outerLower, innerLower), nil, true
	}

	// {0|1,u1} x {0|1,u2} -> {min(l_o,l_i), u1*u2} (covers {0|1,n} x {0,1}
	// -> {0,n} as the u2 == 1 case)
	if outerUpper != nil && innerUpper != nil && isZeroOrOne(outerLower) && isZeroOrOne(innerLower) {
		prod := uint64(*outerUpper) * uint64(*innerUpper)
		if prod > repetitionFoldCap {
			return 0, nil, false
		}
		u := uint32(prod)
		return minU32(outerLower, innerLower), &u, true
	}

	return 0, nil, false
}
