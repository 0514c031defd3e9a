package lexer

import "testing"

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeBasicPunctuation(t *testing.T) {
	toks := New("::<<>>").Tokenize()
	got := kinds(toks)
	want := []Kind{KindDColon, KindLtLt, KindGtGt, KindEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeReservedWord(t *testing.T) {
	toks := New("let x").Tokenize()
	if toks[0].Kind != KindKwLet {
		t.Fatalf("first token kind = %v, want KindKwLet", toks[0].Kind)
	}
	if toks[1].Kind != KindIdent || toks[1].Text != "x" {
		t.Fatalf("second token = %+v, want ident x", toks[1])
	}
}

func TestTokenizeRawString(t *testing.T) {
	toks := New(`'a\b'`).Tokenize()
	if toks[0].Kind != KindString {
		t.Fatalf("kind = %v, want KindString", toks[0].Kind)
	}
	if toks[0].Text != `a\b` {
		t.Fatalf("text = %q, want %q (raw strings don't process escapes)", toks[0].Text, `a\b`)
	}
}

func TestTokenizeEscapedStringEscapes(t *testing.T) {
	toks := New(`"a\"b\\c"`).Tokenize()
	if toks[0].Kind != KindString {
		t.Fatalf("kind = %v, want KindString", toks[0].Kind)
	}
	if toks[0].Text != `a"b\c` {
		t.Fatalf("text = %q, want %q", toks[0].Text, `a"b\c`)
	}
}

func TestTokenizeInvalidEscapeInString(t *testing.T) {
	toks := New(`"a\nb"`).Tokenize()
	if toks[0].Kind != KindErrorMsg || toks[0].ErrKind != ErrInvalidEscapeInString {
		t.Fatalf("token = %+v, want ErrorMsg(ErrInvalidEscapeInString)", toks[0])
	}
}

func TestTokenizeLeadingZero(t *testing.T) {
	toks := New("007").Tokenize()
	if toks[0].Kind != KindErrorMsg || toks[0].ErrKind != ErrLeadingZero {
		t.Fatalf("token = %+v, want ErrorMsg(ErrLeadingZero)", toks[0])
	}
	if toks[0].Number != 7 {
		t.Fatalf("number = %d, want 7", toks[0].Number)
	}
}

func TestTokenizeCodePointLiteral(t *testing.T) {
	toks := New("U+1F600").Tokenize()
	if toks[0].Kind != KindCodePoint {
		t.Fatalf("kind = %v, want KindCodePoint", toks[0].Kind)
	}
	if toks[0].CodePoint != 0x1F600 {
		t.Fatalf("codepoint = %x, want 1f600", toks[0].CodePoint)
	}
}

func TestTokenizeCodePointDeprecatedForm(t *testing.T) {
	toks, deprecated := New("U1F600").TokenizeDeprecated()
	if toks[0].Kind != KindCodePoint {
		t.Fatalf("kind = %v, want KindCodePoint", toks[0].Kind)
	}
	if !deprecated[0] {
		t.Fatal("expected the old U-without-+ form to be flagged deprecated")
	}
}

func TestTokenizeBareUIdentifier(t *testing.T) {
	toks := New("U").Tokenize()
	if toks[0].Kind != KindKwU {
		t.Fatalf("kind = %v, want KindKwU (bare U with no payload is the reserved word)", toks[0].Kind)
	}
}

func TestTokenizeWordBoundaryEscapeIsAlien(t *testing.T) {
	toks := New(`\b`).Tokenize()
	if toks[0].Kind != KindErrorMsg || toks[0].ErrKind != ErrWordBoundaryEscape {
		t.Fatalf("token = %+v, want ErrorMsg(ErrWordBoundaryEscape)", toks[0])
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	toks := New("let # comment\nx").Tokenize()
	if toks[0].Kind != KindKwLet || toks[1].Kind != KindIdent {
		t.Fatalf("got %v, want [KindKwLet, KindIdent, KindEOF]", kinds(toks))
	}
}

func TestResetAtRestartsMidSource(t *testing.T) {
	src := "let x = 'a';"
	l := New(src)
	l.ResetAt(8) // right at 'a'
	tok := l.Next()
	if tok.Kind != KindString || tok.Text != "a" {
		t.Fatalf("token after ResetAt = %+v", tok)
	}
}

func TestLexParenAlienDetectsNonCaptureGroup(t *testing.T) {
	src := "(?:abc)"
	kind, _, ok := LexParenAlien(src, 0)
	if !ok || kind != ErrNonCaptureGroup {
		t.Fatalf("LexParenAlien = (%v, %v), want ErrNonCaptureGroup", kind, ok)
	}
}
