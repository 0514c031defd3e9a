package ir

import "testing"

func TestOptimizeDropsEmptyLiteralFromGroup(t *testing.T) {
	g := &Group{Kind: GroupImplicit, Parts: []Node{&Literal{Text: ""}, &Literal{Text: "a"}}}
	got := Optimize(g)
	lit, ok := got.(*Literal)
	if !ok || lit.Text != "a" {
		t.Fatalf("Optimize(%#v) = %#v, want Literal(a)", g, got)
	}
}

func TestOptimizeUnwrapsSingletonNormalGroup(t *testing.T) {
	g := &Group{Kind: GroupNormal, Parts: []Node{&Literal{Text: "a"}}}
	got := Optimize(g)
	if _, ok := got.(*Group); ok {
		t.Fatalf("Optimize(%#v) = %#v, want unwrapped", g, got)
	}
}

func TestOptimizeKeepsSingletonCapturingGroup(t *testing.T) {
	g := &Group{Kind: GroupCapturing, Number: 1, Parts: []Node{&Literal{Text: "a"}}}
	got := Optimize(g)
	if _, ok := got.(*Group); !ok {
		t.Fatalf("Optimize(%#v) = %#v, want capturing group kept", g, got)
	}
}

func TestOptimizeUnwrapsExactlyOneRepetition(t *testing.T) {
	one := uint32(1)
	r := &Repetition{Inner: &Literal{Text: "a"}, Lower: 1, Upper: &one}
	got := Optimize(r)
	if _, ok := got.(*Repetition); ok {
		t.Fatalf("Optimize({1,1}) = %#v, want unwrapped", got)
	}
}

func TestOptimizeFusesAdjacentSingleCharAlternatives(t *testing.T) {
	a := &Alternation{Parts: []Node{&Literal{Text: "a"}, &Literal{Text: "b"}, &Literal{Text: "c"}}}
	got := Optimize(a)
	cs, ok := got.(*CharSet)
	if !ok {
		t.Fatalf("Optimize(%#v) = %#v, want a fused CharSet", a, got)
	}
	if len(cs.Set.Ranges) != 1 || cs.Set.Ranges[0].First != 'a' || cs.Set.Ranges[0].Last != 'c' {
		t.Fatalf("fused ranges = %#v, want [a-c]", cs.Set.Ranges)
	}
}

func TestOptimizeFoldsExactByExactRepetition(t *testing.T) {
	three := uint32(3)
	two := uint32(2)
	outer := &Repetition{Inner: &Repetition{Inner: &Literal{Text: "a"}, Lower: 2, Upper: &two}, Lower: 3, Upper: &three}
	got := Optimize(outer)
	rep, ok := got.(*Repetition)
	if !ok || rep.Lower != 6 || rep.Upper == nil || *rep.Upper != 6 {
		t.Fatalf("Optimize(nested {3,3} x {2,2}) = %#v, want {6,6}", got)
	}
}

func TestOptimizeFoldsInfiniteByInfiniteRepetition(t *testing.T) {
	outer := &Repetition{Inner: &Repetition{Inner: &Literal{Text: "a"}, Lower: 2, Upper: nil}, Lower: 3, Upper: nil}
	got := Optimize(outer)
	rep, ok := got.(*Repetition)
	if !ok || rep.Lower != 6 || rep.Upper != nil {
		t.Fatalf("Optimize(nested {3,inf} x {2,inf}) = %#v, want {6,inf}", got)
	}
}

func TestOptimizeRefusesFoldAboveSaturationCap(t *testing.T) {
	bigLower := uint32(1000)
	bigUpper := uint32(1000)
	innerBigUpper := uint32(1000)
	outer := &Repetition{
		Inner: &Repetition{Inner: &Literal{Text: "a"}, Lower: bigLower, Upper: &innerBigUpper},
		Lower: bigLower, Upper: &bigUpper,
	}
	got := Optimize(outer)
	rep, ok := got.(*Repetition)
	if !ok {
		t.Fatalf("Optimize(saturating fold) = %#v, want a kept (unfused) Repetition", got)
	}
	if _, innerIsRep := rep.Inner.(*Repetition); !innerIsRep {
		t.Fatalf("Optimize(saturating fold) folded despite exceeding the 2^16 cap: %#v", rep)
	}
}
