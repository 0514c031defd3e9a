// Package parse turns a lexer.Token stream into the pomsky AST (component D
// in spec §2) via a hand-written recursive-descent parser, and defines the
// AST's node types (spec §3 "AST (Rule)"). The AST is immutable once
// built: lowering (package ir) always produces fresh nodes rather than
// mutating these.
package parse

import "github.com/pomsky-lang/pomsky-sub000/diag"

// Rule is the tagged-variant AST node spec §3 describes. Go has no sum
// types, so the variant set is closed by a sealed interface (only types in
// this package implement it). Consumers (validator, resolver, lowering)
// type-switch on the concrete node; a variant a switch does not list falls
// to its default branch, which does nothing in the validator and resolver
// and lowers to an empty Literal in package ir.
type Rule interface {
	Span() diag.Span
	sealedRule()
}

type base struct{ Sp diag.Span }

func (b base) Span() diag.Span { return b.Sp }
func (base) sealedRule()       {}

// Literal is a quoted string matched verbatim.
type Literal struct {
	base
	Text string
}

// GroupItemKind discriminates a character-class item.
type GroupItemKind int

const (
	ItemChar GroupItemKind = iota
	ItemRange
	ItemNamed
)

// NamedKind mirrors unicodetab.Kind but lives in the AST so parse doesn't
// need to import unicodetab for every char-class item (lowering resolves
// the name string against unicodetab later, in package ir).
type NamedKind int

const (
	NamedWord NamedKind = iota
	NamedDigit
	NamedSpace
	NamedHorizSpace
	NamedVertSpace
	NamedCategory
	NamedScript
	NamedCodeBlock
	NamedOtherProperty
)

// GroupItem is one element of a CharClass's item list.
type GroupItem struct {
	Kind GroupItemKind

	Char rune // ItemChar

	First, Last rune // ItemRange

	Name            string // ItemNamed: the raw source identifier, e.g. "Greek", "Lu", "word"
	NamedKind       NamedKind
	ScriptExtension bool // scx= form
	Negative        bool // item-level negation, e.g. !word inside [... !word ...]
	Span            diag.Span
}

// CharClass is a `[...]` character-set expression.
type CharClass struct {
	base
	Items        []GroupItem
	UnicodeAware bool // captured from the enclosing enable/disable unicode scope
}

// GroupKind discriminates the four kinds of grouping construct.
type GroupKind int

const (
	GroupImplicit GroupKind = iota // bare concatenation, no parens
	GroupNormal                    // (...), no capture
	GroupCapturing                 // (...), capturing; Name == "" means numbered-only
	GroupAtomic                    // atomic (?>...)
)

// Group is a sequence of parts, optionally parenthesized and/or capturing.
type Group struct {
	base
	Parts []Rule
	Kind  GroupKind
	Name  string // only meaningful when Kind == GroupCapturing
}

// Alternation is `a | b | c`.
type Alternation struct {
	base
	Parts []Rule
}

// Intersection is `a & b & c` (character-set intersection when all parts
// are character classes; any other operand is reported during lowering).
type Intersection struct {
	base
	Parts []Rule
}

// Quantifier is the greediness mode of a Repetition.
type Quantifier int

const (
	QuantifierDefaultGreedy Quantifier = iota // ambient mode was greedy, no explicit keyword
	QuantifierDefaultLazy                     // ambient mode was lazy, no explicit keyword
	QuantifierGreedy                          // explicit `greedy`
	QuantifierLazy                            // explicit `lazy`
)

// IsLazy reports whether the resolved quantifier is lazy.
func (q Quantifier) IsLazy() bool {
	return q == QuantifierLazy || q == QuantifierDefaultLazy
}

// Repetition is `inner{lower,upper}` with a resolved quantifier.
type Repetition struct {
	base
	Inner      Rule
	Lower      uint32
	Upper      *uint32 // nil means unbounded
	Quantifier Quantifier
}

// BoundaryKind discriminates the five zero-width boundary assertions.
type BoundaryKind int

const (
	BoundaryStart BoundaryKind = iota
	BoundaryEnd
	BoundaryWord
	BoundaryWordStart
	BoundaryWordEnd
	BoundaryNotWord // never produced by the parser; lowering a negated BoundaryWord yields ir.BoundaryNotWord
)

// Boundary is a zero-width assertion.
type Boundary struct {
	base
	Kind         BoundaryKind
	UnicodeAware bool
}

// LookaroundKind discriminates the four lookaround forms.
type LookaroundKind int

const (
	LookaheadPos LookaroundKind = iota
	LookbehindPos
	LookaheadNeg
	LookbehindNeg
)

// Negate flips the polarity of k, used when a `!` wraps a Lookaround.
func (k LookaroundKind) Negate() LookaroundKind {
	switch k {
	case LookaheadPos:
		return LookaheadNeg
	case LookaheadNeg:
		return LookaheadPos
	case LookbehindPos:
		return LookbehindNeg
	default:
		return LookbehindPos
	}
}

// Lookaround is `>>`, `<<`, their negations, or the parenthesized forms.
type Lookaround struct {
	base
	Inner Rule
	Kind  LookaroundKind
}

// Variable is a reference to a `let`-bound name.
type Variable struct {
	base
	Name string
}

// RefMode discriminates how a Reference targets a capturing group.
type RefMode int

const (
	RefByName RefMode = iota
	RefByNumber
	RefByRelative
)

// Reference is a backreference, `::name`, `::3`, or a relative `::+1`/`::-1`.
type Reference struct {
	base
	Mode     RefMode
	Name     string // RefByName
	Number   uint32 // RefByNumber
	Relative int32  // RefByRelative: positive looks forward, negative looks backward
}

// RangeLit is `range "lo"-"hi" base N`.
type RangeLit struct {
	base
	LoDigits string
	HiDigits string
	Radix    int
}

// RegexLit is a `regex 'raw pattern'` escape hatch: raw target-flavor
// syntax passed through verbatim; its contents, delimiters included, are
// not validated.
type RegexLit struct {
	base
	Raw string
}

// Recursion is the `recursion` keyword.
type Recursion struct {
	base
}

// Dot is `.`.
type Dot struct {
	base
}

// Grapheme is the `Grapheme` keyword: matches one extended grapheme
// cluster, gated by the Grapheme feature bit. It's spelled as an ordinary
// capitalized identifier rather than a reserved word (same surface as real
// pomsky), so the parser recognizes it by name rather than by lexer Kind.
type Grapheme struct {
	base
}

// Negation wraps a Rule negated with `!`. NotSpan is the span of the `!`
// token itself, kept for diagnostics distinct from the whole node's span.
type Negation struct {
	base
	Inner   Rule
	NotSpan diag.Span
}

// Setting names one of the two lexical toggles `enable`/`disable` affect.
type Setting int

const (
	SettingLazy Setting = iota
	SettingUnicode
)

// Stmt is the tagged variant for top-level and `let`-scope statements.
type Stmt interface {
	sealedStmt()
}

type baseStmt struct{}

func (baseStmt) sealedStmt() {}

// EnableStmt is `enable lazy;` / `enable unicode;`.
type EnableStmt struct {
	baseStmt
	Setting Setting
	Sp      diag.Span
}

// DisableStmt is `disable lazy;` / `disable unicode;`.
type DisableStmt struct {
	baseStmt
	Setting Setting
	Sp      diag.Span
}

// LetStmt is `let name = rule;`.
type LetStmt struct {
	baseStmt
	Name    string
	Value   Rule
	NameSp  diag.Span
	Sp      diag.Span
}

// Capture is one `n: "text"` or `name: "text"` assertion inside a
// `match ... as { ... }` clause.
type Capture struct {
	Mode     RefMode
	Name     string
	Number   uint32
	Relative int32
	Text     string
	Sp       diag.Span
}

// MatchAlt is one literal (with optional capture assertions) inside a
// `match` test case.
type MatchAlt struct {
	Literal  string
	Captures []Capture
	Sp       diag.Span
}

// MatchCase asserts that the compiled pattern finds one of Alts, either as
// the whole of Haystack (when Haystack == nil, each Alts entry is its own
// haystack and len(Alts) == 1 is enforced by the parser) or somewhere
// within *Haystack.
type MatchCase struct {
	Alts     []MatchAlt
	Haystack *string
	Sp       diag.Span
}

// RejectCase asserts that the compiled pattern does not match (Substring:
// does not match anywhere within) Literal.
type RejectCase struct {
	Literal   string
	Substring bool
	Sp        diag.Span
}

// TestCase is either a MatchCase or a RejectCase.
type TestCase interface {
	sealedTestCase()
}

func (MatchCase) sealedTestCase()  {}
func (RejectCase) sealedTestCase() {}

// TestStmt is a `test { ... }` block.
type TestStmt struct {
	baseStmt
	Cases []TestCase
	Sp    diag.Span
}

// StmtExpr wraps a Rule with the list of statements (enable/disable/let
// that precede it, or the enclosing `test` block) that scope it. The
// parser does not build one: top-level statements are returned in
// Modified.Stmts and a `let` value is a plain Rule. The validator and
// resolver walk a StmtExpr when one is present; lowering does not handle
// it.
type StmtExpr struct {
	base
	Stmts []Stmt
	Inner Rule
}

// Modified is the parsed form of an entire source file: `stmt* or_expr`.
type Modified struct {
	Stmts []Stmt
	Root  Rule
}
