// Package rangeexpr implements the decimal/radix-range-to-regex expansion
// algorithm: given two digit strings lo <= hi in some base, it builds the IR
// subtree that matches exactly the integers in [lo, hi], written in that
// base with no leading zeros (unless zero itself is in range).
package rangeexpr

import (
	"fmt"
	"reflect"

	"github.com/pomsky-lang/pomsky-sub000/ir"
)

// digits is a vector of digit values, most significant first.
type digits []int

func parseDigitString(s string, radix int) (digits, error) {
	out := make(digits, len(s))
	for i := 0; i < len(s); i++ {
		v, err := digitValue(s[i], radix)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func digitValue(c byte, radix int) (int, error) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return 0, fmt.Errorf("invalid digit %q", c)
	}
	if v >= radix {
		return 0, fmt.Errorf("digit %q out of range for base %d", c, radix)
	}
	return v, nil
}

// Expand builds the IR node matching every integer in [loDigits, hiDigits]
// (inclusive) written in the given base, per spec's range-expander
// algorithm (§4.H). Callers are expected to have already validated that
// loDigits/hiDigits hold only valid digits for radix and that the numeric
// value of lo does not exceed hi (parse/range.go does this at parse time).
func Expand(loDigits, hiDigits string, radix int) (ir.Node, error) {
	a, err := parseDigitString(loDigits, radix)
	if err != nil {
		return nil, err
	}
	b, err := parseDigitString(hiDigits, radix)
	if err != nil {
		return nil, err
	}
	return rangeExpand(a, b, radix, true), nil
}

func fullDigits(d, n int) digits {
	out := make(digits, n)
	for i := range out {
		out[i] = d
	}
	return out
}

func u32p(v uint32) *uint32 { return &v }

func charClass(lo, hi int, radix int) *ir.CharSet {
	set := ir.NewUnicodeSet()
	set.AddRange(digitRune(lo, radix), digitRune(hi, radix))
	return &ir.CharSet{Set: set}
}

func digitRune(d, radix int) rune {
	if d < 10 {
		return rune('0' + d)
	}
	return rune('a' + d - 10)
}

func repeatRange(inner ir.Node, lower, upper uint32) ir.Node {
	return &ir.Repetition{Inner: inner, Lower: lower, Upper: u32p(upper)}
}

// seq builds an implicit-group sequence, collapsing the common cases: empty
// parts are dropped (they're Literal{""} "Count::Zero" placeholders), a
// single remaining part is returned bare, and two-or-more are simplified
// via collapseSeqRepeats before being wrapped.
func seq(parts ...ir.Node) ir.Node {
	var filtered []ir.Node
	for _, p := range parts {
		if lit, ok := p.(*ir.Literal); ok && lit.Text == "" {
			continue
		}
		filtered = append(filtered, p)
	}
	filtered = collapseSeqRepeats(filtered)
	switch len(filtered) {
	case 0:
		return &ir.Literal{Text: ""}
	case 1:
		return filtered[0]
	default:
		return &ir.Group{Kind: ir.GroupImplicit, Parts: filtered}
	}
}

func alt(nodes ...ir.Node) ir.Node {
	nodes = mergeAlternatives(nodes)
	if len(nodes) == 1 {
		return nodes[0]
	}
	return &ir.Alternation{Parts: nodes}
}

// rangeExpand is the recursive core, following spec §4.H's five
// enumerated cases. topLevel controls whether a leading digit of 0 is
// disallowed (lo_digit = 1) except when the value zero itself is in range.
func rangeExpand(a, b digits, radix int, topLevel bool) ir.Node {
	loDigit := 0
	if topLevel {
		loDigit = 1
	}
	hiDigit := radix - 1

	if len(a) == 0 && len(b) == 0 {
		return &ir.Literal{Text: ""}
	}
	if len(a) == 0 && len(b) != 0 {
		inner := rangeExpand(digits{0}, b, radix, false)
		return repeatRange(inner, 0, 1)
	}
	if len(a) == 1 && len(b) == 1 {
		return charClass(a[0], b[0], radix)
	}

	ax, aRest := a[0], a[1:]
	bx, bRest := b[0], b[1:]
	min, max := ax, bx
	if min > max {
		min, max = max, min
	}

	var alts []ir.Node

	if min > loDigit && len(aRest) < len(bRest) {
		alts = append(alts, seq(
			charClass(loDigit, min-1, radix),
			repeatRange(charClass(0, hiDigit, radix), uint32(len(aRest)+1), uint32(len(bRest))),
		))
	}

	switch {
	case ax == bx:
		alts = append(alts, seq(charClass(ax, ax, radix), rangeExpand(aRest, bRest, radix, false)))
	case ax < bx:
		if topLevel && ax == 0 && len(aRest) == 0 {
			alts = append(alts, charClass(0, 0, radix))
		} else {
			alts = append(alts, seq(charClass(min, min, radix), rangeExpand(aRest, fullDigits(hiDigit, len(bRest)), radix, false)))
		}
		if max-min >= 2 {
			alts = append(alts, seq(
				charClass(min+1, max-1, radix),
				repeatRange(charClass(0, hiDigit, radix), uint32(len(aRest)), uint32(len(bRest))),
			))
		}
		alts = append(alts, seq(charClass(max, max, radix), rangeExpand(fullDigits(0, len(aRest)), bRest, radix, false)))
	case ax > bx:
		alts = append(alts, seq(charClass(min, min, radix), rangeExpand(fullDigits(0, len(aRest)), bRest, radix, false)))
		if max-min >= 2 && len(aRest)+2 <= len(bRest) {
			alts = append(alts, seq(
				charClass(min+1, max-1, radix),
				repeatRange(charClass(0, hiDigit, radix), uint32(len(aRest)+1), uint32(len(bRest)-1)),
			))
		}
		alts = append(alts, seq(charClass(max, max, radix), rangeExpand(aRest, fullDigits(hiDigit, len(bRest)-1), radix, false)))
	}

	if max < hiDigit && len(aRest) < len(bRest) {
		alts = append(alts, seq(
			charClass(max+1, hiDigit, radix),
			repeatRange(charClass(0, hiDigit, radix), uint32(len(aRest)), uint32(len(bRest)-1)),
		))
	}

	return alt(alts...)
}

func nodesEqual(a, b ir.Node) bool {
	return reflect.DeepEqual(a, b)
}

// collapseSeqRepeats applies the two within-sequence post-optimizations:
// (i) X X -> X{2}, (ii) X X{k,l} (either order) -> X{k+1,l+1}.
func collapseSeqRepeats(parts []ir.Node) []ir.Node {
	changed := true
	for changed {
		changed = false
		for i := 0; i+1 < len(parts); i++ {
			if nodesEqual(parts[i], parts[i+1]) {
				merged := repeatRange(parts[i], 2, 2)
				parts = spliceTwo(parts, i, merged)
				changed = true
				break
			}
			if rep, ok := parts[i+1].(*ir.Repetition); ok && rep.Upper != nil && nodesEqual(parts[i], rep.Inner) {
				merged := repeatRange(rep.Inner, rep.Lower+1, *rep.Upper+1)
				parts = spliceTwo(parts, i, merged)
				changed = true
				break
			}
			if rep, ok := parts[i].(*ir.Repetition); ok && rep.Upper != nil && nodesEqual(parts[i+1], rep.Inner) {
				merged := repeatRange(rep.Inner, rep.Lower+1, *rep.Upper+1)
				parts = spliceTwo(parts, i, merged)
				changed = true
				break
			}
		}
	}
	return parts
}

func spliceTwo(parts []ir.Node, i int, merged ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(parts)-1)
	out = append(out, parts[:i]...)
	out = append(out, merged)
	out = append(out, parts[i+2:]...)
	return out
}

// firstAndRest splits a sequence node into its leading CharSet (if the node
// is, or starts with, one) and the remaining tail, for the adjacent-
// alternative merge below.
func firstAndRest(n ir.Node) (*ir.CharSet, []ir.Node, bool) {
	switch v := n.(type) {
	case *ir.CharSet:
		return v, nil, true
	case *ir.Group:
		if v.Kind == ir.GroupImplicit && len(v.Parts) > 0 {
			if cs, ok := v.Parts[0].(*ir.CharSet); ok {
				return cs, v.Parts[1:], true
			}
		}
	}
	return nil, nil, false
}

func tailsEqual(a, b []ir.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// adjacentRanges reports whether a and b are each a single, non-negated,
// property-free range and they are immediately consecutive, returning the
// merged bounds.
func adjacentRanges(a, b *ir.CharSet) (lo, hi rune, ok bool) {
	if a.Negative || b.Negative || len(a.Set.Properties) != 0 || len(b.Set.Properties) != 0 {
		return 0, 0, false
	}
	if len(a.Set.Ranges) != 1 || len(b.Set.Ranges) != 1 {
		return 0, 0, false
	}
	ra, rb := a.Set.Ranges[0], b.Set.Ranges[0]
	if ra.Last+1 == rb.First {
		return ra.First, rb.Last, true
	}
	if rb.Last+1 == ra.First {
		return rb.First, ra.Last, true
	}
	return 0, 0, false
}

// mergeAlternatives folds `[lo..x] Tail | [x+1..hi] Tail` pairs into
// `[lo..hi] Tail`, repeating until no adjacent pair merges.
func mergeAlternatives(alts []ir.Node) []ir.Node {
	changed := true
	for changed {
		changed = false
		for i := 0; i+1 < len(alts); i++ {
			firstA, restA, okA := firstAndRest(alts[i])
			firstB, restB, okB := firstAndRest(alts[i+1])
			if !okA || !okB || !tailsEqual(restA, restB) {
				continue
			}
			lo, hi, ok := adjacentRanges(firstA, firstB)
			if !ok {
				continue
			}
			set := ir.NewUnicodeSet()
			set.AddRange(lo, hi)
			merged := seq(append([]ir.Node{&ir.CharSet{Set: set}}, restA...)...)
			alts = spliceTwo(alts, i, merged)
			changed = true
			break
		}
	}
	return alts
}
