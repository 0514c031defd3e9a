package feature

import (
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/parse"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

// DefaultMaxRangeDigits is the max-range-size default from spec §6.
const DefaultMaxRangeDigits = 12

// Validator walks a parsed AST once, checking every node against the
// caller-enabled feature bitset and the selected flavor's support table.
// It accumulates findings rather than stopping at the first one (spec §7:
// "the validator... run[s] to completion").
type Validator struct {
	Flavor         unicodetab.Flavor
	Allowed        Set
	MaxRangeDigits int

	diags diag.Bag
}

// NewValidator builds a Validator. maxRangeDigits <= 0 selects
// DefaultMaxRangeDigits.
func NewValidator(flavor unicodetab.Flavor, allowed Set, maxRangeDigits int) *Validator {
	if maxRangeDigits <= 0 {
		maxRangeDigits = DefaultMaxRangeDigits
	}
	return &Validator{Flavor: flavor, Allowed: allowed, MaxRangeDigits: maxRangeDigits}
}

// Validate walks m and returns every diagnostic found.
func (v *Validator) Validate(m *parse.Modified) []diag.Diagnostic {
	v.diags = diag.Bag{}
	v.walkStmts(m.Stmts, true)
	v.walkRule(m.Root)
	return v.diags.All()
}

func (v *Validator) reject(code diag.Code, span diag.Span, format string, args ...interface{}) {
	v.diags.Add(diag.New(diag.KindLimits, code, span, fmt.Sprintf(format, args...)))
}

func (v *Validator) rejectCompat(span diag.Span, format string, args ...interface{}) {
	v.diags.Add(diag.New(diag.KindCompat, diag.CodeFlavorUnsupported, span, fmt.Sprintf(format, args...)))
}

func (v *Validator) requireFeature(have bool, code diag.Code, span diag.Span, name string) {
	if !have {
		v.diags.Add(diag.New(diag.KindUnsupported, diag.CodeFeatureDisabled, span,
			fmt.Sprintf("%s is not enabled for this compilation", name)))
	}
	_ = code
}

func (v *Validator) walkStmts(stmts []parse.Stmt, topLevel bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *parse.EnableStmt:
			v.checkSetting(st.Setting, st.Sp)
		case *parse.DisableStmt:
			v.checkSetting(st.Setting, st.Sp)
		case *parse.LetStmt:
			v.walkRule(st.Value)
		case *parse.TestStmt:
			if !topLevel {
				v.diags.Add(diag.New(diag.KindSyntax, diag.CodeNestedTest, st.Sp,
					"`test` blocks are only allowed at the top level of a file"))
			}
			v.walkTestCases(st.Cases)
		}
	}
}

func (v *Validator) checkSetting(setting parse.Setting, sp diag.Span) {
	switch setting {
	case parse.SettingLazy:
		v.requireFeature(v.Allowed.Has(LazyMode), diag.CodeFeatureDisabled, sp, "lazy mode")
	case parse.SettingUnicode:
		v.requireFeature(v.Allowed.Has(AsciiMode), diag.CodeFeatureDisabled, sp, "ASCII/Unicode mode switching")
	}
}

func (v *Validator) walkTestCases(cases []parse.TestCase) {
	for _, c := range cases {
		if mc, ok := c.(parse.MatchCase); ok {
			for _, alt := range mc.Alts {
				_ = alt
			}
		}
	}
}

func (v *Validator) walkRule(r parse.Rule) {
	if r == nil {
		return
	}
	switch n := r.(type) {
	case *parse.Literal:
		// nothing to check
	case *parse.CharClass:
		for _, item := range n.Items {
			if item.Kind == parse.ItemNamed && item.ScriptExtension {
				if !unicodetab.SupportsScriptExtension(v.Flavor) {
					v.rejectCompat(item.Span, "script-extension (`scx=`) properties aren't supported by this flavor")
				}
			}
		}
	case *parse.Group:
		switch n.Kind {
		case parse.GroupAtomic:
			v.requireFeature(v.Allowed.Has(AtomicGroups), diag.CodeFeatureDisabled, n.Span(), "atomic groups")
			if !unicodetab.SupportsAtomicGroups(v.Flavor) {
				v.rejectCompat(n.Span(), "atomic groups are not supported by this flavor")
			}
		case parse.GroupCapturing:
			if n.Name == "" {
				v.requireFeature(v.Allowed.Has(NumberedGroups), diag.CodeFeatureDisabled, n.Span(), "numbered capturing groups")
			} else {
				v.requireFeature(v.Allowed.Has(NamedGroups), diag.CodeFeatureDisabled, n.Span(), "named capturing groups")
			}
		}
		for _, part := range n.Parts {
			v.walkRule(part)
		}
	case *parse.Alternation:
		for _, part := range n.Parts {
			v.walkRule(part)
		}
	case *parse.Intersection:
		v.requireFeature(v.Allowed.Has(Intersection), diag.CodeFeatureDisabled, n.Span(), "character-class intersection")
		if v.Flavor != unicodetab.Java && v.Flavor != unicodetab.Ruby {
			v.rejectCompat(n.Span(), "character-class intersection is not supported by this flavor")
		}
		for _, part := range n.Parts {
			v.walkRule(part)
		}
	case *parse.Repetition:
		if n.Upper != nil {
			if cap := unicodetab.MaxRepetitionUpperBound(v.Flavor); cap > 0 && *n.Upper > uint32(cap) {
				v.rejectCompat(n.Span(), "repetition upper bound %d exceeds this flavor's limit of %d", *n.Upper, cap)
			}
		}
		v.walkRule(n.Inner)
	case *parse.Boundary:
		v.requireFeature(v.Allowed.Has(Boundaries), diag.CodeFeatureDisabled, n.Span(), "boundary assertions")
	case *parse.Lookaround:
		switch n.Kind {
		case parse.LookaheadPos, parse.LookaheadNeg:
			v.requireFeature(v.Allowed.Has(Lookahead), diag.CodeFeatureDisabled, n.Span(), "lookahead")
		case parse.LookbehindPos, parse.LookbehindNeg:
			v.requireFeature(v.Allowed.Has(Lookbehind), diag.CodeFeatureDisabled, n.Span(), "lookbehind")
		}
		if !unicodetab.SupportsLookaround(v.Flavor) {
			v.rejectCompat(n.Span(), "lookaround is not supported by this flavor")
		}
		v.walkRule(n.Inner)
	case *parse.Variable:
		v.requireFeature(v.Allowed.Has(Variables), diag.CodeFeatureDisabled, n.Span(), "variables")
	case *parse.Reference:
		v.requireFeature(v.Allowed.Has(References), diag.CodeFeatureDisabled, n.Span(), "backreferences")
	case *parse.RangeLit:
		v.requireFeature(v.Allowed.Has(Ranges), diag.CodeFeatureDisabled, n.Span(), "numeric ranges")
		digits := len(n.HiDigits)
		if len(n.LoDigits) > digits {
			digits = len(n.LoDigits)
		}
		if digits > v.MaxRangeDigits {
			v.reject(diag.CodeRangeTooBig, n.Span(), "range has %d digits, exceeding the configured maximum of %d", digits, v.MaxRangeDigits)
		}
	case *parse.RegexLit:
		v.requireFeature(v.Allowed.Has(Regexes), diag.CodeFeatureDisabled, n.Span(), "raw regex escape hatch")
	case *parse.Recursion:
		v.requireFeature(v.Allowed.Has(Recursion), diag.CodeFeatureDisabled, n.Span(), "recursion")
		if !unicodetab.SupportsRecursion(v.Flavor) {
			v.rejectCompat(n.Span(), "recursion is not supported by this flavor")
		}
	case *parse.Grapheme:
		v.requireFeature(v.Allowed.Has(Grapheme), diag.CodeFeatureDisabled, n.Span(), "grapheme cluster matching")
	case *parse.Dot:
		v.requireFeature(v.Allowed.Has(Dot), diag.CodeFeatureDisabled, n.Span(), "`.`")
	case *parse.Negation:
		v.walkRule(n.Inner)
	case *parse.StmtExpr:
		v.walkStmts(n.Stmts, false)
		v.walkRule(n.Inner)
	}
}
