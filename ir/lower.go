package ir

import (
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/parse"
	"github.com/pomsky-lang/pomsky-sub000/rangeexpr"
	"github.com/pomsky-lang/pomsky-sub000/resolve"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

// Lowerer turns a resolved parse.Modified into IR (spec component G). It
// shares the resolver's expand-once policy for variables (see
// resolve.Result and DESIGN.md): a `let`-bound value is lowered the first
// time its Variable is reached and the resulting Node reused verbatim for
// every later reference.
type Lowerer struct {
	res       *resolve.Result
	letValues map[string]parse.Rule
	flavor    unicodetab.Flavor

	expanded map[string]Node
	diags    []diag.Diagnostic
}

// Lower lowers m.Root (and transitively any `let` bodies it reaches) into
// IR for the given flavor, using res for group numbers and reference
// targets.
func Lower(m *parse.Modified, res *resolve.Result, flavor unicodetab.Flavor) (Node, []diag.Diagnostic) {
	l := &Lowerer{
		res:       res,
		letValues: map[string]parse.Rule{},
		flavor:    flavor,
		expanded:  map[string]Node{},
	}
	for _, s := range m.Stmts {
		if let, ok := s.(*parse.LetStmt); ok {
			l.letValues[let.Name] = let.Value
		}
	}
	root := l.lower(m.Root)
	return root, l.diags
}

func (l *Lowerer) illegalNegation(span diag.Span, what string) Node {
	l.diags = append(l.diags, diag.New(diag.KindOther, diag.CodeIllegalNegationTarget, span,
		fmt.Sprintf("cannot negate %s", what)))
	return &Literal{Text: ""}
}

func (l *Lowerer) lower(r parse.Rule) Node {
	switch n := r.(type) {
	case *parse.Literal:
		return &Literal{Text: n.Text}
	case *parse.Dot:
		return &Dot{}
	case *parse.Grapheme:
		return &Grapheme{}
	case *parse.Recursion:
		return &Recursion{}
	case *parse.RegexLit:
		return &Unescaped{Text: n.Raw}
	case *parse.RangeLit:
		return l.lowerRange(n)
	case *parse.Boundary:
		return &Boundary{Kind: lowerBoundaryKind(n.Kind)}
	case *parse.Reference:
		target, ok := l.res.RefTarget[n]
		if !ok {
			return &Literal{Text: ""}
		}
		return &Reference{Number: target.Number}
	case *parse.Lookaround:
		return &Lookaround{Inner: l.lower(n.Inner), Kind: lowerLookaroundKind(n.Kind)}
	case *parse.Repetition:
		return &Repetition{Inner: l.lower(n.Inner), Lower: n.Lower, Upper: n.Upper, Lazy: n.Quantifier.IsLazy()}
	case *parse.Group:
		return l.lowerGroup(n)
	case *parse.Alternation:
		parts := make([]Node, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = l.lower(p)
		}
		return &Alternation{Parts: parts}
	case *parse.Intersection:
		return l.lowerIntersection(n)
	case *parse.CharClass:
		return l.lowerCharClass(n, false)
	case *parse.Variable:
		return l.lowerVariable(n)
	case *parse.Negation:
		return l.lowerNegation(n)
	default:
		return &Literal{Text: ""}
	}
}

func (l *Lowerer) lowerVariable(n *parse.Variable) Node {
	if cached, ok := l.expanded[n.Name]; ok {
		return cached
	}
	val, ok := l.letValues[n.Name]
	if !ok {
		return &Literal{Text: ""} // already reported by resolve
	}
	lowered := l.lower(val)
	l.expanded[n.Name] = lowered
	return lowered
}

func (l *Lowerer) lowerGroup(n *parse.Group) Node {
	parts := make([]Node, len(n.Parts))
	for i, p := range n.Parts {
		parts[i] = l.lower(p)
	}
	g := &Group{Parts: parts}
	switch n.Kind {
	case parse.GroupImplicit:
		g.Kind = GroupImplicit
	case parse.GroupNormal:
		g.Kind = GroupNormal
	case parse.GroupAtomic:
		g.Kind = GroupAtomic
	case parse.GroupCapturing:
		g.Kind = GroupCapturing
		g.Name = n.Name
		g.Number = l.res.GroupNumber[n]
	}
	return g
}

func (l *Lowerer) lowerIntersection(n *parse.Intersection) Node {
	var sets []CharSet
	for _, p := range n.Parts {
		lowered := l.lower(p)
		cs, ok := asCharSet(lowered)
		if !ok {
			l.diags = append(l.diags, diag.New(diag.KindOther, "", p.Span(),
				"intersection operands must all be character classes"))
			continue
		}
		sets = append(sets, cs)
	}
	return &CompoundCharSet{Intersections: sets}
}

// asCharSet normalizes a lowered Node into a CharSet, when possible:
// CharSet as-is, or Char promoted to a one-element CharSet.
func asCharSet(n Node) (CharSet, bool) {
	switch v := n.(type) {
	case *CharSet:
		return *v, true
	case *Char:
		s := NewUnicodeSet()
		s.AddRange(v.C, v.C)
		return CharSet{Set: s}, true
	default:
		return CharSet{}, false
	}
}

func (l *Lowerer) lowerCharClass(cc *parse.CharClass, negate bool) Node {
	set := NewUnicodeSet()
	for _, item := range cc.Items {
		switch item.Kind {
		case parse.ItemChar:
			set.AddRange(item.Char, item.Char)
		case parse.ItemRange:
			set.AddRange(item.First, item.Last)
		case parse.ItemNamed:
			l.lowerNamedItem(set, item, cc.UnicodeAware)
		}
	}

	if !negate {
		if c, ok := set.IsSingleChar(); ok {
			return &Char{C: c}
		}
	} else if set.coversEntireCodeSpace() {
		l.diags = append(l.diags, diag.New(diag.KindOther, diag.CodeAlwaysEmptyNegatedClass, cc.Span(),
			"negating this character class always fails to match"))
	}
	return &CharSet{Negative: negate, Set: set}
}

// lowerNamedItem resolves one `[... name ...]` char-class item. For the
// explicit `sc=`/`scx=`/`gc=` prefixed forms the parser already pinned down
// whether the name is a script or a category (parse.NamedScript /
// parse.NamedCategory), so that choice is honored as-is rather than
// re-disambiguated by name lookup. Every other item — including bare
// shorthand spellings like "word"/"w" — is resolved through
// unicodetab.Lookup, which carries those shorthand aliases itself.
func (l *Lowerer) lowerNamedItem(set *UnicodeSet, item parse.GroupItem, unicodeAware bool) {
	switch item.NamedKind {
	case parse.NamedScript:
		set.AddProperty(Property{Kind: unicodetab.KindScript, Value: item.Name, ScriptExtension: item.ScriptExtension, Negative: item.Negative})
		return
	case parse.NamedCategory:
		set.AddProperty(Property{Kind: unicodetab.KindCategory, Value: item.Name, Negative: item.Negative})
		return
	}

	name, ok := unicodetab.Lookup(item.Name)
	if !ok {
		l.diags = append(l.diags, diag.New(diag.KindOther, "", item.Span,
			fmt.Sprintf("unknown Unicode property, script, or block %q", item.Name)))
		return
	}

	switch name.Kind {
	case unicodetab.KindWord, unicodetab.KindDigit, unicodetab.KindSpace, unicodetab.KindHorizSpace, unicodetab.KindVertSpace:
		applyShorthand(set, name.Kind, item.Negative, unicodeAware, l.flavor)
	default:
		set.AddProperty(Property{Kind: name.Kind, Value: name.Value, ScriptExtension: name.ScriptExtension || item.ScriptExtension, Negative: item.Negative})
	}
}

func (l *Lowerer) lowerNegation(n *parse.Negation) Node {
	switch inner := n.Inner.(type) {
	case *parse.CharClass:
		return l.lowerCharClass(inner, true)
	case *parse.Literal:
		runes := []rune(inner.Text)
		if len(runes) == 1 {
			set := NewUnicodeSet()
			set.AddRange(runes[0], runes[0])
			return &CharSet{Negative: true, Set: set}
		}
		return l.illegalNegation(n.Span(), "a multi-character literal")
	case *parse.Boundary:
		if inner.Kind == parse.BoundaryWord {
			return &Boundary{Kind: BoundaryNotWord}
		}
		return l.illegalNegation(n.Span(), "this boundary")
	case *parse.Lookaround:
		return &Lookaround{Inner: l.lower(inner.Inner), Kind: lowerLookaroundKind(inner.Kind.Negate())}
	case *parse.Group:
		if inner.Kind == parse.GroupNormal && len(inner.Parts) == 1 {
			return l.lowerNegation(&parse.Negation{Inner: inner.Parts[0], NotSpan: n.NotSpan})
		}
		return l.illegalNegation(n.Span(), "this group")
	case *parse.Negation:
		// double negation: recurse on the grandchild directly rather than
		// re-wrapping, since `!!x` means `x`.
		return l.lower(inner.Inner)
	default:
		return l.illegalNegation(n.Span(), "this expression")
	}
}

func lowerBoundaryKind(k parse.BoundaryKind) BoundaryKind {
	switch k {
	case parse.BoundaryStart:
		return BoundaryStart
	case parse.BoundaryEnd:
		return BoundaryEnd
	case parse.BoundaryWord:
		return BoundaryWord
	case parse.BoundaryWordStart:
		return BoundaryWordStart
	case parse.BoundaryWordEnd:
		return BoundaryWordEnd
	default:
		return BoundaryNotWord
	}
}

func (l *Lowerer) lowerRange(n *parse.RangeLit) Node {
	expanded, err := rangeexpr.Expand(n.LoDigits, n.HiDigits, n.Radix)
	if err != nil {
		l.diags = append(l.diags, diag.New(diag.KindOther, "", n.Span(),
			fmt.Sprintf("could not expand range: %s", err)))
		return &Literal{Text: ""}
	}
	return expanded
}

func lowerLookaroundKind(k parse.LookaroundKind) LookaroundKind {
	switch k {
	case parse.LookaheadPos:
		return LookaheadPos
	case parse.LookbehindPos:
		return LookbehindPos
	case parse.LookaheadNeg:
		return LookaheadNeg
	default:
		return LookbehindNeg
	}
}
