package codegen

import (
	"testing"

	"github.com/pomsky-lang/pomsky-sub000/ir"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

func mustGen(t *testing.T, n ir.Node, flavor unicodetab.Flavor) string {
	t.Helper()
	out, diags := Generate(n, flavor)
	if len(diags) != 0 {
		t.Fatalf("Generate(%#v, %v) diagnostics: %v", n, flavor, diags)
	}
	return out
}

func TestGenerateLiteralSequence(t *testing.T) {
	n := &ir.Group{Kind: ir.GroupImplicit, Parts: []ir.Node{&ir.Literal{Text: "ab"}, &ir.Literal{Text: "c"}}}
	if got := mustGen(t, n, unicodetab.Pcre); got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}

func TestGenerateEscapesMetacharacters(t *testing.T) {
	n := &ir.Literal{Text: "a.b*c"}
	if got := mustGen(t, n, unicodetab.Pcre); got != `a\.b\*c` {
		t.Fatalf("got %q, want %q", got, `a\.b\*c`)
	}
}

func TestGenerateNamedGroupHeaderVariesByFlavor(t *testing.T) {
	n := &ir.Group{Kind: ir.GroupCapturing, Name: "x", Number: 1, Parts: []ir.Node{&ir.Literal{Text: "a"}}}
	if got := mustGen(t, n, unicodetab.Pcre); got != "(?P<x>a)" {
		t.Fatalf("pcre: got %q", got)
	}
	if got := mustGen(t, n, unicodetab.DotNet); got != "(?<x>a)" {
		t.Fatalf("dotnet: got %q", got)
	}
}

func TestGenerateAtomicGroup(t *testing.T) {
	n := &ir.Group{Kind: ir.GroupAtomic, Parts: []ir.Node{&ir.Literal{Text: "a"}}}
	if got := mustGen(t, n, unicodetab.Pcre); got != "(?>a)" {
		t.Fatalf("got %q, want (?>a)", got)
	}
}

func TestGenerateBackreference(t *testing.T) {
	n := &ir.Reference{Number: 2}
	if got := mustGen(t, n, unicodetab.Pcre); got != `\2` {
		t.Fatalf("got %q, want \\2", got)
	}
}

func TestGenerateRepetitionQuantifiers(t *testing.T) {
	one := uint32(1)
	three := uint32(3)
	five := uint32(5)
	cases := []struct {
		lower uint32
		upper *uint32
		lazy  bool
		want  string
	}{
		{0, nil, false, "a*"},
		{1, nil, false, "a+"},
		{0, &one, false, "a?"},
		{2, &five, false, "a{2,5}"},
		{3, &three, false, "a{3}"},
		{0, nil, true, "a*?"},
	}
	for _, c := range cases {
		n := &ir.Repetition{Inner: &ir.Literal{Text: "a"}, Lower: c.lower, Upper: c.upper, Lazy: c.lazy}
		if got := mustGen(t, n, unicodetab.Pcre); got != c.want {
			t.Fatalf("Repetition{%d,%v,lazy=%v} = %q, want %q", c.lower, c.upper, c.lazy, got, c.want)
		}
	}
}

func TestGenerateRepetitionWrapsAlternation(t *testing.T) {
	n := &ir.Repetition{Inner: &ir.Alternation{Parts: []ir.Node{&ir.Literal{Text: "a"}, &ir.Literal{Text: "b"}}}, Lower: 0, Upper: nil}
	if got := mustGen(t, n, unicodetab.Pcre); got != "(?:a|b)*" {
		t.Fatalf("got %q, want (?:a|b)*", got)
	}
}

func TestGenerateRepetitionWrapsMultiCharLiteral(t *testing.T) {
	n := &ir.Repetition{Inner: &ir.Literal{Text: "ab"}, Lower: 0, Upper: nil}
	if got := mustGen(t, n, unicodetab.Pcre); got != "(?:ab)*" {
		t.Fatalf("got %q, want (?:ab)*", got)
	}
}

func TestGenerateSingleElementCharSetUnwraps(t *testing.T) {
	set := ir.NewUnicodeSet()
	set.AddProperty(ir.Property{Kind: unicodetab.KindWord})
	n := &ir.CharSet{Set: set}
	if got := mustGen(t, n, unicodetab.Pcre); got != `\w` {
		t.Fatalf("got %q, want \\w", got)
	}
}

func TestGenerateMultiElementCharSetWrapsInBrackets(t *testing.T) {
	set := ir.NewUnicodeSet()
	set.AddRange('a', 'z')
	set.AddRange('0', '9')
	n := &ir.CharSet{Set: set}
	got := mustGen(t, n, unicodetab.Pcre)
	if got != "[0-9a-z]" {
		t.Fatalf("got %q, want [0-9a-z]", got)
	}
}

func TestGenerateNegatedSingleWordPropertyFlipsToUppercase(t *testing.T) {
	set := ir.NewUnicodeSet()
	set.AddProperty(ir.Property{Kind: unicodetab.KindWord})
	n := &ir.CharSet{Set: set, Negative: true}
	if got := mustGen(t, n, unicodetab.Pcre); got != `\W` {
		t.Fatalf("got %q, want \\W", got)
	}
}

func TestGenerateCategoryShortFormOnPcre(t *testing.T) {
	set := ir.NewUnicodeSet()
	set.AddProperty(ir.Property{Kind: unicodetab.KindCategory, Value: "L"})
	n := &ir.CharSet{Set: set}
	if got := mustGen(t, n, unicodetab.Pcre); got != `\pL` {
		t.Fatalf("got %q, want \\pL", got)
	}
}

func TestGenerateScriptUsesScPrefixOnJavaScript(t *testing.T) {
	set := ir.NewUnicodeSet()
	set.AddProperty(ir.Property{Kind: unicodetab.KindScript, Value: "Greek"})
	n := &ir.CharSet{Set: set}
	if got := mustGen(t, n, unicodetab.JavaScript); got != `\p{sc=Greek}` {
		t.Fatalf("got %q, want \\p{sc=Greek}", got)
	}
	if got := mustGen(t, n, unicodetab.Pcre); got != `\p{Greek}` {
		t.Fatalf("got %q, want \\p{Greek}", got)
	}
}

func TestGenerateLookaroundForms(t *testing.T) {
	cases := []struct {
		kind ir.LookaroundKind
		want string
	}{
		{ir.LookaheadPos, "(?=a)"},
		{ir.LookaheadNeg, "(?!a)"},
		{ir.LookbehindPos, "(?<=a)"},
		{ir.LookbehindNeg, "(?<!a)"},
	}
	for _, c := range cases {
		n := &ir.Lookaround{Inner: &ir.Literal{Text: "a"}, Kind: c.kind}
		if got := mustGen(t, n, unicodetab.Pcre); got != c.want {
			t.Fatalf("lookaround %v = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestGenerateLineBreakNormalization(t *testing.T) {
	n := &ir.Literal{Text: "a\r\nb\rc\nd"}
	got := mustGen(t, n, unicodetab.Pcre)
	if got != `a\nb\nc\nd` {
		t.Fatalf("got %q, want a\\nb\\nc\\nd", got)
	}
}
