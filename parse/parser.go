package parse

import (
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/lexer"
)

// DefaultMaxRecursion is the parser's recursion budget when the caller
// doesn't override it (spec §4.D: "default ≈ 127").
const DefaultMaxRecursion = 127

// DefaultMaxIdentLen is the maximum length of a named-capture identifier
// (spec §4.D).
const DefaultMaxIdentLen = 32

// Parser is a hand-written recursive-descent parser over a pre-lexed token
// slice. It carries the same four pieces of mutable state spec §4.D calls
// for: cursor index, recursion budget, lazy-mode flag and unicode-aware
// flag.
type Parser struct {
	source string
	toks   []lexer.Token
	pos    int

	budget int

	lazyMode     bool
	unicodeAware bool

	letNames map[string]bool // dedup within the single statement-list scope this grammar has

	deferred []diag.Diagnostic
	warnings []diag.Diagnostic
}

// Parse compiles source into a Modified AST. maxRecursion <= 0 selects
// DefaultMaxRecursion. On success it returns the AST and any warnings
// (deprecated syntax etc.) collected along the way; on failure it returns a
// *Error carrying the single most specific diagnostic plus any lexical
// errors that had already been deferred (spec §4.D "Propagation policy").
func Parse(source string, maxRecursion int) (*Modified, []diag.Diagnostic, error) {
	if maxRecursion <= 0 {
		maxRecursion = DefaultMaxRecursion
	}
	clean, deferred, warnings := lexAndSplit(source)

	p := &Parser{
		source:       source,
		toks:         clean,
		budget:       maxRecursion,
		unicodeAware: true, // unicode mode is the ambient default until `disable unicode;`
		letNames:     map[string]bool{},
		deferred:     deferred,
		warnings:     warnings,
	}

	m, err := p.parseModified()
	if err != nil {
		if perr, ok := err.(*Error); ok {
			return nil, nil, perr
		}
		return nil, nil, &Error{Primary: diag.New(diag.KindOther, "", diag.Empty, err.Error()), Deferred: p.deferred}
	}

	if len(p.deferred) > 0 {
		return nil, nil, &Error{Primary: p.deferred[0], Deferred: p.deferred[1:]}
	}
	return m, p.warnings, nil
}

// lexAndSplit tokenizes source and separates error-carrying tokens (turned
// into deferred diagnostics) and deprecated-form tokens (turned into
// warnings) from the clean token stream the grammar actually consumes.
func lexAndSplit(source string) (clean []lexer.Token, deferred, warnings []diag.Diagnostic) {
	lx := lexer.New(source)
	toks, deprecatedIdx := lx.TokenizeDeprecated()
	for i, t := range toks {
		if t.IsError() {
			deferred = append(deferred, lexErrorDiagnostic(t))
			continue
		}
		if deprecatedIdx[i] {
			warnings = append(warnings, diag.NewWarning(diag.KindDeprecated, diag.CodeDeprecatedSyntax, t.Span,
				fmt.Sprintf("code point literal %q is missing the `+` sign", t.Text)).
				WithHelp(fmt.Sprintf("write U+%s instead", t.Text)))
		}
		clean = append(clean, t)
	}
	return clean, deferred, warnings
}

func (p *Parser) errorf(code diag.Code, span diag.Span, format string, args ...interface{}) error {
	return &Error{Primary: diag.New(diag.KindSyntax, code, span, fmt.Sprintf(format, args...)), Deferred: p.deferred}
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k lexer.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) eat(k lexer.Kind) (lexer.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if tok, ok := p.eat(k); ok {
		return tok, nil
	}
	return lexer.Token{}, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "expected %s", what)
}

// enter decrements the recursion budget for the duration of one nested
// grammar rule, returning a func to restore it. On exhaustion it returns a
// RecursionLimit error instead of letting the Go call stack itself overflow
// on adversarial input (spec §4.D, §5).
func (p *Parser) enter() (func(), error) {
	if p.budget <= 0 {
		return nil, p.errorf(diag.CodeRecursionLimit, p.peek().Span, "recursion limit exceeded")
	}
	p.budget--
	return func() { p.budget++ }, nil
}

func spanOfAll(rules []Rule) diag.Span {
	if len(rules) == 0 {
		return diag.Empty
	}
	s := rules[0].Span()
	for _, r := range rules[1:] {
		s = diag.JoinUnchecked(s, r.Span())
	}
	return s
}

// --- modified := stmt* or_expr -----------------------------------------

func (p *Parser) parseModified() (*Modified, error) {
	var stmts []Stmt
	for {
		stmt, matched, err := p.tryParseStmt()
		if err != nil {
			return nil, err
		}
		if !matched {
			break
		}
		stmts = append(stmts, stmt)
	}

	root, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.KindEOF) {
		return nil, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "unexpected trailing input")
	}
	return &Modified{Stmts: stmts, Root: root}, nil
}

func (p *Parser) tryParseStmt() (Stmt, bool, error) {
	switch p.peek().Kind {
	case lexer.KindKwEnable, lexer.KindKwDisable:
		s, err := p.parseEnableDisable()
		return s, true, err
	case lexer.KindKwLet:
		s, err := p.parseLet()
		return s, true, err
	case lexer.KindKwTest:
		s, err := p.parseTest()
		return s, true, err
	default:
		return nil, false, nil
	}
}

func (p *Parser) parseEnableDisable() (Stmt, error) {
	kw := p.advance()
	enable := kw.Kind == lexer.KindKwEnable

	var setting Setting
	switch {
	case p.at(lexer.KindKwLazy):
		p.advance()
		setting = SettingLazy
	case p.at(lexer.KindIdent) && p.peek().Text == "unicode":
		p.advance()
		setting = SettingUnicode
	default:
		return nil, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "expected `lazy` or `unicode`")
	}

	semi, err := p.expect(lexer.KindSemi, "`;`")
	if err != nil {
		return nil, err
	}

	sp := diag.JoinUnchecked(kw.Span, semi.Span)
	if setting == SettingLazy {
		p.lazyMode = enable
	} else {
		p.unicodeAware = enable
	}
	if enable {
		return &EnableStmt{Setting: setting, Sp: sp}, nil
	}
	return &DisableStmt{Setting: setting, Sp: sp}, nil
}

func (p *Parser) parseLet() (Stmt, error) {
	kw := p.advance()
	nameTok, err := p.expect(lexer.KindIdent, "a binding name")
	if err != nil {
		return nil, err
	}
	if p.letNames[nameTok.Text] {
		return nil, p.errorf(diag.CodeLetBindingExists, nameTok.Span, "variable %q is already bound in this scope", nameTok.Text)
	}

	if _, err := p.expect(lexer.KindEquals, "`=`"); err != nil {
		return nil, err
	}
	value, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(lexer.KindSemi, "`;`")
	if err != nil {
		return nil, err
	}

	p.letNames[nameTok.Text] = true
	return &LetStmt{
		Name:   nameTok.Text,
		Value:  value,
		NameSp: nameTok.Span,
		Sp:     diag.JoinUnchecked(kw.Span, semi.Span),
	}, nil
}

func (p *Parser) parseTest() (Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(lexer.KindLBrace, "`{`"); err != nil {
		return nil, err
	}
	var cases []TestCase
	for !p.at(lexer.KindRBrace) && !p.at(lexer.KindEOF) {
		c, err := p.parseTestCase()
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	rbrace, err := p.expect(lexer.KindRBrace, "`}`")
	if err != nil {
		return nil, err
	}
	return &TestStmt{Cases: cases, Sp: diag.JoinUnchecked(kw.Span, rbrace.Span)}, nil
}

func (p *Parser) parseTestCase() (TestCase, error) {
	switch {
	case p.at(lexer.KindKwMatch):
		return p.parseMatchCase()
	case p.at(lexer.KindKwReject):
		return p.parseRejectCase()
	default:
		return nil, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "expected `match` or `reject`")
	}
}

func (p *Parser) parseMatchCase() (TestCase, error) {
	kw := p.advance()
	first, err := p.parseMatchAlt()
	if err != nil {
		return nil, err
	}
	alts := []MatchAlt{first}
	for {
		if _, ok := p.eat(lexer.KindComma); !ok {
			break
		}
		alt, err := p.parseMatchAlt()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}

	var haystack *string
	if _, ok := p.eat(lexer.KindKwIn); ok {
		strTok, err := p.expect(lexer.KindString, "a string literal")
		if err != nil {
			return nil, err
		}
		h := strTok.Text
		haystack = &h
	}
	semi, err := p.expect(lexer.KindSemi, "`;`")
	if err != nil {
		return nil, err
	}
	if haystack == nil && len(alts) > 1 {
		return nil, p.errorf(diag.CodeMultipleLiteralsInTestCase, diag.JoinUnchecked(kw.Span, semi.Span),
			"multiple `match` alternatives require an explicit `in \"...\"` haystack; write each as its own case otherwise")
	}
	return MatchCase{Alts: alts, Haystack: haystack, Sp: diag.JoinUnchecked(kw.Span, semi.Span)}, nil
}

func (p *Parser) parseMatchAlt() (MatchAlt, error) {
	strTok, err := p.expect(lexer.KindString, "a string literal")
	if err != nil {
		return MatchAlt{}, err
	}
	alt := MatchAlt{Literal: strTok.Text, Sp: strTok.Span}

	if _, ok := p.eat(lexer.KindKwAs); ok {
		if _, err := p.expect(lexer.KindLBrace, "`{`"); err != nil {
			return MatchAlt{}, err
		}
		if !p.at(lexer.KindRBrace) {
			for {
				cap, err := p.parseCapture()
				if err != nil {
					return MatchAlt{}, err
				}
				alt.Captures = append(alt.Captures, cap)
				if _, ok := p.eat(lexer.KindComma); !ok {
					break
				}
			}
		}
		rbrace, err := p.expect(lexer.KindRBrace, "`}`")
		if err != nil {
			return MatchAlt{}, err
		}
		alt.Sp = diag.JoinUnchecked(alt.Sp, rbrace.Span)
	}
	return alt, nil
}

func (p *Parser) parseCapture() (Capture, error) {
	var cap Capture
	switch {
	case p.at(lexer.KindNumber):
		tok := p.advance()
		cap.Mode, cap.Number = RefByNumber, uint32(tok.Number)
		cap.Sp = tok.Span
	case p.at(lexer.KindPlus) || p.at(lexer.KindMinus):
		sign := p.advance()
		numTok, err := p.expect(lexer.KindNumber, "a number")
		if err != nil {
			return Capture{}, err
		}
		rel := int32(numTok.Number)
		if sign.Kind == lexer.KindMinus {
			rel = -rel
		}
		cap.Mode, cap.Relative = RefByRelative, rel
		cap.Sp = diag.JoinUnchecked(sign.Span, numTok.Span)
	case p.at(lexer.KindIdent):
		tok := p.advance()
		cap.Mode, cap.Name = RefByName, tok.Text
		cap.Sp = tok.Span
	default:
		return Capture{}, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "expected a capture number, name, or relative reference")
	}

	if _, err := p.expect(lexer.KindColon, "`:`"); err != nil {
		return Capture{}, err
	}
	strTok, err := p.expect(lexer.KindString, "a string literal")
	if err != nil {
		return Capture{}, err
	}
	cap.Text = strTok.Text
	cap.Sp = diag.JoinUnchecked(cap.Sp, strTok.Span)
	return cap, nil
}

func (p *Parser) parseRejectCase() (TestCase, error) {
	kw := p.advance()
	substring := false
	if _, ok := p.eat(lexer.KindKwIn); ok {
		substring = true
	}
	strTok, err := p.expect(lexer.KindString, "a string literal")
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(lexer.KindSemi, "`;`")
	if err != nil {
		return nil, err
	}
	return RejectCase{Literal: strTok.Text, Substring: substring, Sp: diag.JoinUnchecked(kw.Span, semi.Span)}, nil
}

// --- expression grammar --------------------------------------------------

func (p *Parser) parseOrExpr() (Rule, error) {
	leave, err := p.enter()
	if err != nil {
		return nil, err
	}
	defer leave()

	p.eat(lexer.KindPipe) // optional leading '|'
	first, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	parts := []Rule{first}
	for {
		if _, ok := p.eat(lexer.KindPipe); !ok {
			break
		}
		next, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &Alternation{Parts: parts, base: base{Sp: spanOfAll(parts)}}, nil
}

func (p *Parser) parseAndExpr() (Rule, error) {
	leave, err := p.enter()
	if err != nil {
		return nil, err
	}
	defer leave()

	p.eat(lexer.KindAmp) // optional leading '&'
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	parts := []Rule{first}
	for {
		if _, ok := p.eat(lexer.KindAmp); !ok {
			break
		}
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &Intersection{Parts: parts, base: base{Sp: spanOfAll(parts)}}, nil
}

func (p *Parser) parseSequence() (Rule, error) {
	leave, err := p.enter()
	if err != nil {
		return nil, err
	}
	defer leave()

	var parts []Rule
	for p.canStartSequenceItem() {
		item, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		parts = append(parts, item)
	}
	if len(parts) == 0 {
		return nil, p.errorf(diag.CodeExpectedAtom, p.peek().Span, "expected an expression")
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &Group{Kind: GroupImplicit, Parts: parts, base: base{Sp: spanOfAll(parts)}}, nil
}

func (p *Parser) canStartSequenceItem() bool {
	switch p.peek().Kind {
	case lexer.KindBang, lexer.KindGtGt, lexer.KindLtLt,
		lexer.KindLParen, lexer.KindColon, lexer.KindKwAtomic,
		lexer.KindString, lexer.KindLBracket,
		lexer.KindCaret, lexer.KindDollar, lexer.KindPercent,
		lexer.KindDColon, lexer.KindCodePoint,
		lexer.KindKwRange, lexer.KindKwRegex,
		lexer.KindIdent, lexer.KindDot, lexer.KindKwRecursion:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrefix() (Rule, error) {
	var notSpans []diag.Span
	for p.at(lexer.KindBang) {
		notSpans = append(notSpans, p.advance().Span)
	}
	inner, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for i := len(notSpans) - 1; i >= 0; i-- {
		inner = &Negation{
			Inner:   inner,
			NotSpan: notSpans[i],
			base:    base{Sp: diag.JoinUnchecked(notSpans[i], inner.Span())},
		}
	}
	return inner, nil
}

func (p *Parser) parsePostfix() (Rule, error) {
	lookKind, hasLook, lookSpan := p.tryLookaroundPrefix()

	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.canStartRepetition() {
		atom, err = p.parseRepetitionSuffix(atom)
		if err != nil {
			return nil, err
		}
		if p.canStartRepetition() {
			return nil, p.errorf(diag.CodeRepetitionSuffixStacking, p.peek().Span,
				"only one repetition suffix is allowed per atom; use `lazy`/`greedy` for the quantifier mode, or parenthesize to repeat a repetition")
		}
	}

	if hasLook {
		atom = &Lookaround{Inner: atom, Kind: lookKind, base: base{Sp: diag.JoinUnchecked(lookSpan, atom.Span())}}
	}
	return atom, nil
}

func (p *Parser) tryLookaroundPrefix() (LookaroundKind, bool, diag.Span) {
	if tok, ok := p.eat(lexer.KindGtGt); ok {
		return LookaheadPos, true, tok.Span
	}
	if tok, ok := p.eat(lexer.KindLtLt); ok {
		return LookbehindPos, true, tok.Span
	}
	return 0, false, diag.Empty
}

func (p *Parser) canStartRepetition() bool {
	switch p.peek().Kind {
	case lexer.KindPlus, lexer.KindStar, lexer.KindQuestion, lexer.KindLBrace:
		return true
	default:
		return false
	}
}

func (p *Parser) parseRepetitionSuffix(atom Rule) (Rule, error) {
	start := atom.Span()
	var lower uint32
	var upper *uint32
	var end diag.Span

	switch {
	case p.at(lexer.KindPlus):
		tok := p.advance()
		lower, upper, end = 1, nil, tok.Span
	case p.at(lexer.KindStar):
		tok := p.advance()
		lower, upper, end = 0, nil, tok.Span
	case p.at(lexer.KindQuestion):
		tok := p.advance()
		u := uint32(1)
		lower, upper, end = 0, &u, tok.Span
	case p.at(lexer.KindLBrace):
		lb := p.advance()
		gotLower := false
		if p.at(lexer.KindNumber) {
			t := p.advance()
			lower = uint32(t.Number)
			gotLower = true
		}
		if _, ok := p.eat(lexer.KindComma); ok {
			if p.at(lexer.KindNumber) {
				t := p.advance()
				u := uint32(t.Number)
				upper = &u
			}
		} else {
			if !gotLower {
				return nil, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "expected a number inside `{}`")
			}
			u := lower
			upper = &u
		}
		rb, err := p.expect(lexer.KindRBrace, "`}`")
		if err != nil {
			return nil, err
		}
		end = diag.JoinUnchecked(lb.Span, rb.Span)
	}

	if upper != nil && *upper < lower {
		return nil, p.errorf(diag.CodeRangeNotIncreasing, end, "repetition upper bound is smaller than its lower bound")
	}

	quantifier := QuantifierDefaultGreedy
	if p.lazyMode {
		quantifier = QuantifierDefaultLazy
	}
	if _, ok := p.eat(lexer.KindKwGreedy); ok {
		quantifier = QuantifierGreedy
		end = diag.JoinUnchecked(end, end)
	} else if tok, ok := p.eat(lexer.KindKwLazy); ok {
		quantifier = QuantifierLazy
		end = diag.JoinUnchecked(end, tok.Span)
	}

	return &Repetition{
		Inner: atom, Lower: lower, Upper: upper, Quantifier: quantifier,
		base: base{Sp: diag.JoinUnchecked(start, end)},
	}, nil
}

// --- atoms -----------------------------------------------------------

func (p *Parser) parseAtom() (Rule, error) {
	switch p.peek().Kind {
	case lexer.KindLParen, lexer.KindColon, lexer.KindKwAtomic:
		return p.parseGroup()
	case lexer.KindString:
		tok := p.advance()
		return &Literal{Text: tok.Text, base: base{Sp: tok.Span}}, nil
	case lexer.KindLBracket:
		return p.parseCharClass()
	case lexer.KindCaret:
		tok := p.advance()
		return &Boundary{Kind: BoundaryStart, UnicodeAware: p.unicodeAware, base: base{Sp: tok.Span}}, nil
	case lexer.KindDollar:
		tok := p.advance()
		return &Boundary{Kind: BoundaryEnd, UnicodeAware: p.unicodeAware, base: base{Sp: tok.Span}}, nil
	case lexer.KindPercent:
		return p.parseWordBoundary()
	case lexer.KindDColon:
		return p.parseReference()
	case lexer.KindCodePoint:
		tok := p.advance()
		return &Literal{Text: string(tok.CodePoint), base: base{Sp: tok.Span}}, nil
	case lexer.KindKwRange:
		return p.parseRange()
	case lexer.KindKwRegex:
		return p.parseRegexLit()
	case lexer.KindDot:
		tok := p.advance()
		return &Dot{base: base{Sp: tok.Span}}, nil
	case lexer.KindKwRecursion:
		tok := p.advance()
		return &Recursion{base: base{Sp: tok.Span}}, nil
	case lexer.KindIdent:
		tok := p.advance()
		if tok.Text == "Grapheme" {
			return &Grapheme{base: base{Sp: tok.Span}}, nil
		}
		return &Variable{Name: tok.Text, base: base{Sp: tok.Span}}, nil
	default:
		return nil, p.errorf(diag.CodeExpectedAtom, p.peek().Span, "expected an expression")
	}
}

// parseGroup handles `(...)`, `:name(...)`, `:(...)` and `atomic(...)`. The
// token-level lexer already emitted `(` as a plain KindLParen (it doesn't
// look ahead for the following `?`, since that would have to special-case
// every legitimate `(` a real group also starts with); it's the parser,
// right here where a `(` is expected to open a pomsky group, that asks
// lexer.LexParenAlien whether the raw source immediately continues with
// regex-flavored syntax pomsky has no equivalent token for.
func (p *Parser) parseGroup() (Rule, error) {
	if p.at(lexer.KindKwAtomic) {
		kw := p.advance()
		lp, err := p.expect(lexer.KindLParen, "`(`")
		if err != nil {
			return nil, err
		}
		inner, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(lexer.KindRParen, "`)`")
		if err != nil {
			return nil, err
		}
		return &Group{Kind: GroupAtomic, Parts: []Rule{inner}, base: base{Sp: diag.JoinUnchecked(kw.Span, rp.Span)}}, nil
	}

	if p.at(lexer.KindColon) {
		colon := p.advance()
		name := ""
		if p.at(lexer.KindIdent) {
			idTok := p.advance()
			if len(idTok.Text) > DefaultMaxIdentLen {
				return nil, p.errorf(diag.CodeIdentTooLong, idTok.Span, "capture name %q is longer than %d characters", idTok.Text, DefaultMaxIdentLen)
			}
			name = idTok.Text
		}
		lp, err := p.expect(lexer.KindLParen, "`(`")
		if err != nil {
			return nil, err
		}
		inner, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(lexer.KindRParen, "`)`")
		if err != nil {
			return nil, err
		}
		_ = lp
		return &Group{Kind: GroupCapturing, Name: name, Parts: []Rule{inner}, base: base{Sp: diag.JoinUnchecked(colon.Span, rp.Span)}}, nil
	}

	lp := p.advance() // KindLParen
	if errKind, _, ok := lexer.LexParenAlien(p.source, int(lp.Span.Start)); ok {
		fakeTok := lexer.Token{Kind: lexer.KindErrorMsg, ErrKind: errKind, Span: lp.Span}
		return nil, &Error{Primary: lexErrorDiagnostic(fakeTok), Deferred: p.deferred}
	}
	inner, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	rp, err := p.expect(lexer.KindRParen, "`)`")
	if err != nil {
		return nil, err
	}
	return &Group{Kind: GroupNormal, Parts: []Rule{inner}, base: base{Sp: diag.JoinUnchecked(lp.Span, rp.Span)}}, nil
}

// parseWordBoundary handles `%`, `%start` and `%end`.
func (p *Parser) parseWordBoundary() (Rule, error) {
	pct := p.advance()
	if p.at(lexer.KindIdent) {
		switch p.peek().Text {
		case "start":
			idTok := p.advance()
			return &Boundary{Kind: BoundaryWordStart, UnicodeAware: p.unicodeAware, base: base{Sp: diag.JoinUnchecked(pct.Span, idTok.Span)}}, nil
		case "end":
			idTok := p.advance()
			return &Boundary{Kind: BoundaryWordEnd, UnicodeAware: p.unicodeAware, base: base{Sp: diag.JoinUnchecked(pct.Span, idTok.Span)}}, nil
		}
	}
	return &Boundary{Kind: BoundaryWord, UnicodeAware: p.unicodeAware, base: base{Sp: pct.Span}}, nil
}

func (p *Parser) parseReference() (Rule, error) {
	dc := p.advance() // '::'
	switch {
	case p.at(lexer.KindNumber):
		tok := p.advance()
		return &Reference{Mode: RefByNumber, Number: uint32(tok.Number), base: base{Sp: diag.JoinUnchecked(dc.Span, tok.Span)}}, nil
	case p.at(lexer.KindPlus) || p.at(lexer.KindMinus):
		sign := p.advance()
		numTok, err := p.expect(lexer.KindNumber, "a number")
		if err != nil {
			return nil, err
		}
		rel := int32(numTok.Number)
		if sign.Kind == lexer.KindMinus {
			rel = -rel
		}
		return &Reference{Mode: RefByRelative, Relative: rel, base: base{Sp: diag.JoinUnchecked(dc.Span, numTok.Span)}}, nil
	case p.at(lexer.KindIdent):
		idTok := p.advance()
		if len(idTok.Text) > DefaultMaxIdentLen {
			return nil, p.errorf(diag.CodeIdentTooLong, idTok.Span, "reference name %q is longer than %d characters", idTok.Text, DefaultMaxIdentLen)
		}
		for _, r := range idTok.Text {
			if r > 127 {
				return nil, p.errorf(diag.CodeNonAsciiIdentAfterColon, idTok.Span, "reference name must be ASCII")
			}
		}
		return &Reference{Mode: RefByName, Name: idTok.Text, base: base{Sp: diag.JoinUnchecked(dc.Span, idTok.Span)}}, nil
	default:
		return nil, p.errorf(diag.CodeUnexpectedToken, p.peek().Span, "expected a group name, number, or relative offset after `::`")
	}
}

func (p *Parser) parseRange() (Rule, error) {
	kw := p.advance() // 'range'
	loTok, err := p.expect(lexer.KindString, "the lower bound, as a string")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindMinus, "`-`"); err != nil {
		return nil, err
	}
	hiTok, err := p.expect(lexer.KindString, "the upper bound, as a string")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindKwBase, "`base`"); err != nil {
		return nil, err
	}
	baseTok, err := p.expect(lexer.KindNumber, "a radix")
	if err != nil {
		return nil, err
	}
	radix := int(baseTok.Number)
	sp := diag.JoinUnchecked(kw.Span, baseTok.Span)
	if radix < 2 || radix > 36 {
		return nil, p.errorf(diag.CodeRangeTooBig, sp, "`base` must be between 2 and 36, got %d", radix)
	}
	if err := validateRangeDigits(loTok.Text, hiTok.Text, radix); err != nil {
		return nil, p.errorf(diag.CodeRangeNotIncreasing, diag.JoinUnchecked(loTok.Span, hiTok.Span), "%s", err.Error())
	}
	return &RangeLit{LoDigits: loTok.Text, HiDigits: hiTok.Text, Radix: radix, base: base{Sp: sp}}, nil
}

func (p *Parser) parseRegexLit() (Rule, error) {
	kw := p.advance()
	strTok, err := p.expect(lexer.KindString, "a raw regex string")
	if err != nil {
		return nil, err
	}
	return &RegexLit{Raw: strTok.Text, base: base{Sp: diag.JoinUnchecked(kw.Span, strTok.Span)}}, nil
}

// --- character classes -------------------------------------------------

func (p *Parser) parseCharClass() (Rule, error) {
	lb := p.advance() // '['
	var items []GroupItem
	for !p.at(lexer.KindRBracket) && !p.at(lexer.KindEOF) {
		item, err := p.parseCharClassItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	rb, err := p.expect(lexer.KindRBracket, "`]`")
	if err != nil {
		return nil, err
	}
	sp := diag.JoinUnchecked(lb.Span, rb.Span)
	if len(items) == 0 {
		return nil, p.errorf(diag.CodeEmptyCharClass, sp, "character class cannot be empty")
	}
	return &CharClass{Items: items, UnicodeAware: p.unicodeAware, base: base{Sp: sp}}, nil
}

func (p *Parser) parseCharClassItem() (GroupItem, error) {
	itemNegative := false
	if _, ok := p.eat(lexer.KindBang); ok {
		itemNegative = true
	}

	switch {
	case p.at(lexer.KindString):
		strTok := p.advance()
		runes := []rune(strTok.Text)
		if len(runes) != 1 {
			return GroupItem{}, p.errorf(diag.CodeExpectedCharClassElement, strTok.Span,
				"a string inside a character class must be exactly one character")
		}
		first := runes[0]
		if _, ok := p.eat(lexer.KindMinus); ok {
			hiTok, err := p.expect(lexer.KindString, "the upper end of the range")
			if err != nil {
				return GroupItem{}, err
			}
			hiRunes := []rune(hiTok.Text)
			if len(hiRunes) != 1 {
				return GroupItem{}, p.errorf(diag.CodeExpectedCharClassElement, hiTok.Span,
					"a string inside a character class must be exactly one character")
			}
			if hiRunes[0] < first {
				return GroupItem{}, p.errorf(diag.CodeRangeNotIncreasing, diag.JoinUnchecked(strTok.Span, hiTok.Span), "character range must be ascending")
			}
			return GroupItem{Kind: ItemRange, First: first, Last: hiRunes[0], Negative: itemNegative, Span: diag.JoinUnchecked(strTok.Span, hiTok.Span)}, nil
		}
		return GroupItem{Kind: ItemChar, Char: first, Negative: itemNegative, Span: strTok.Span}, nil

	case p.at(lexer.KindCodePoint):
		cpTok := p.advance()
		if _, ok := p.eat(lexer.KindMinus); ok {
			hiTok, err := p.expect(lexer.KindCodePoint, "the upper end of the range")
			if err != nil {
				return GroupItem{}, err
			}
			if hiTok.CodePoint < cpTok.CodePoint {
				return GroupItem{}, p.errorf(diag.CodeRangeNotIncreasing, diag.JoinUnchecked(cpTok.Span, hiTok.Span), "character range must be ascending")
			}
			return GroupItem{Kind: ItemRange, First: cpTok.CodePoint, Last: hiTok.CodePoint, Negative: itemNegative, Span: diag.JoinUnchecked(cpTok.Span, hiTok.Span)}, nil
		}
		return GroupItem{Kind: ItemChar, Char: cpTok.CodePoint, Negative: itemNegative, Span: cpTok.Span}, nil

	case p.at(lexer.KindIdent):
		idTok := p.advance()
		name := idTok.Text
		scriptExt := false
		if (name == "sc" || name == "scx") && p.at(lexer.KindEquals) {
			p.advance()
			nameTok, err := p.expect(lexer.KindIdent, "a script name")
			if err != nil {
				return GroupItem{}, err
			}
			scriptExt = name == "scx"
			name = nameTok.Text
			return GroupItem{Kind: ItemNamed, Name: name, NamedKind: NamedScript, ScriptExtension: scriptExt, Negative: itemNegative, Span: diag.JoinUnchecked(idTok.Span, nameTok.Span)}, nil
		}
		if name == "gc" && p.at(lexer.KindEquals) {
			p.advance()
			nameTok, err := p.expect(lexer.KindIdent, "a category name")
			if err != nil {
				return GroupItem{}, err
			}
			return GroupItem{Kind: ItemNamed, Name: nameTok.Text, NamedKind: NamedCategory, Negative: itemNegative, Span: diag.JoinUnchecked(idTok.Span, nameTok.Span)}, nil
		}
		return GroupItem{Kind: ItemNamed, Name: name, Negative: itemNegative, Span: idTok.Span}, nil

	default:
		return GroupItem{}, p.errorf(diag.CodeExpectedCharClassElement, p.peek().Span,
			"Expected character class, string, code point, Unicode property or `]`")
	}
}
