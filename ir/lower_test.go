package ir

import (
	"testing"

	"github.com/pomsky-lang/pomsky-sub000/parse"
	"github.com/pomsky-lang/pomsky-sub000/resolve"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

func TestLowerLiteralSequence(t *testing.T) {
	root, _, err := parse.Parse(`'a' 'b'`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, diags := resolve.Resolve(root)
	if len(diags) != 0 {
		t.Fatalf("resolve diagnostics: %v", diags)
	}
	node, lowerDiags := Lower(root, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	g, ok := node.(*Group)
	if !ok || g.Kind != GroupImplicit || len(g.Parts) != 2 {
		t.Fatalf("lower(%q) = %#v, want 2-part implicit group", `'a' 'b'`, node)
	}
	if lit, ok := g.Parts[0].(*Literal); !ok || lit.Text != "a" {
		t.Fatalf("first part = %#v, want Literal(a)", g.Parts[0])
	}
}

func TestLowerCapturingGroupUsesResolvedNumber(t *testing.T) {
	m, _, err := parse.Parse(`:name('x')`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, diags := resolve.Resolve(m)
	if len(diags) != 0 {
		t.Fatalf("resolve diagnostics: %v", diags)
	}
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	g, ok := node.(*Group)
	if !ok || g.Kind != GroupCapturing || g.Number != 1 || g.Name != "name" {
		t.Fatalf("lower(%q) = %#v, want capturing group #1 named name", `:name('x')`, node)
	}
}

func TestLowerNegatedCharClassSetsNegativeBit(t *testing.T) {
	m, _, err := parse.Parse(`!['a'-'z']`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	cs, ok := node.(*CharSet)
	if !ok || !cs.Negative {
		t.Fatalf("lower(%q) = %#v, want negative CharSet", `!['a'-'z']`, node)
	}
}

func TestLowerNegatedWordBoundaryBecomesNotWord(t *testing.T) {
	m, _, err := parse.Parse(`!%`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	b, ok := node.(*Boundary)
	if !ok || b.Kind != BoundaryNotWord {
		t.Fatalf("lower(%q) = %#v, want NotWord boundary", `!%`, node)
	}
}

func TestLowerNegatedLookaheadFlipsPolarity(t *testing.T) {
	m, _, err := parse.Parse(`!>> 'x'`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	la, ok := node.(*Lookaround)
	if !ok || la.Kind != LookaheadNeg {
		t.Fatalf("lower(%q) = %#v, want negative lookahead", `!>> 'x'`, node)
	}
}

func TestLowerIllegalNegationTargetReportsDiagnostic(t *testing.T) {
	m, _, err := parse.Parse(`!('a' 'b')`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	_, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) == 0 {
		t.Fatalf("expected a diagnostic negating a multi-part group")
	}
}

func TestLowerSingleCharClassCollapsesToChar(t *testing.T) {
	m, _, err := parse.Parse(`['a']`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	c, ok := node.(*Char)
	if !ok || c.C != 'a' {
		t.Fatalf("lower(%q) = %#v, want Char(a)", `['a']`, node)
	}
}

func TestLowerAsciiModeWordShorthandExpandsToRanges(t *testing.T) {
	m, _, err := parse.Parse(`disable unicode; [word]`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	cs, ok := node.(*CharSet)
	if !ok || len(cs.Set.Properties) != 0 || len(cs.Set.Ranges) == 0 {
		t.Fatalf("lower(%q) = %#v, want explicit-range CharSet", `disable unicode; [word]`, node)
	}
}

func TestLowerIntersectionProducesCompoundCharSet(t *testing.T) {
	m, _, err := parse.Parse(`['a'-'z'] & ['a'-'m']`, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	if _, ok := node.(*CompoundCharSet); !ok {
		t.Fatalf("lower(%q) = %#v, want CompoundCharSet", `['a'-'z'] & ['a'-'m']`, node)
	}
}

func TestLowerRangeLiteralDelegatesToRangeExpr(t *testing.T) {
	src := `range '0'-'9' base 10`
	m, _, err := parse.Parse(src, 0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res, _ := resolve.Resolve(m)
	node, lowerDiags := Lower(m, res, unicodetab.Pcre)
	if len(lowerDiags) != 0 {
		t.Fatalf("lower diagnostics: %v", lowerDiags)
	}
	if _, ok := node.(*CharSet); !ok {
		t.Fatalf("lower(%q) = %#v, want a single CharSet for a one-digit range", src, node)
	}
}
