package parse

import (
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/lexer"
)

// Error is the parser's own error type, returned from Parse on failure. It
// carries the single most specific diagnostic plus whatever lexical errors
// were deferred while scanning ahead of it (spec §4.D "Propagation policy").
// Callers that only want a plain Go error still get one: Error implements
// the error interface.
type Error struct {
	Primary  diag.Diagnostic
	Deferred []diag.Diagnostic
}

func (e *Error) Error() string {
	return e.Primary.Message
}

// Diagnostics returns every diagnostic this parse failure produced, most
// specific first.
func (e *Error) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, 1+len(e.Deferred))
	out = append(out, e.Primary)
	out = append(out, e.Deferred...)
	return out
}

// lexErrorDiagnostic converts an error-carrying Token into a Diagnostic.
func lexErrorDiagnostic(tok lexer.Token) diag.Diagnostic {
	if tok.Kind == lexer.KindError {
		return diag.New(diag.KindSyntax, diag.CodeUnknownToken, tok.Span, "unrecognized character")
	}
	switch tok.ErrKind {
	case lexer.ErrUnclosedString:
		return diag.New(diag.KindSyntax, diag.CodeUnclosedString, tok.Span, "unterminated string literal")
	case lexer.ErrInvalidEscapeInString:
		return diag.New(diag.KindSyntax, diag.CodeInvalidEscapeInString, tok.Span,
			`invalid escape sequence in string literal (only \\ and \" are allowed)`)
	case lexer.ErrInvalidCodePoint:
		return diag.New(diag.KindSyntax, diag.CodeInvalidCodePoint, tok.Span,
			fmt.Sprintf("invalid code point literal %q: expected hexadecimal digits", tok.Text))
	case lexer.ErrLeadingZero:
		return diag.New(diag.KindSyntax, diag.CodeLeadingZero, tok.Span,
			fmt.Sprintf("number %q has a leading zero", tok.Text))
	case lexer.ErrNonCaptureGroup:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "non-capturing groups are written `(...)` in pomsky").
			WithHelp("remove the `?:`; plain parentheses are already non-capturing unless you use `:name(...)`")
	case lexer.ErrNamedCaptureGroupP, lexer.ErrNamedCaptureGroupLt:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "named capturing groups use `:name(...)` in pomsky").
			WithHelp("try `:name(...)` instead")
	case lexer.ErrLookaheadPos:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "lookahead is written `>> ...` in pomsky").
			WithHelp("try `>> (...)` instead of `(?=...)`")
	case lexer.ErrLookaheadNeg:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "negative lookahead is written `!>> ...` in pomsky").
			WithHelp("try `!>> (...)` instead of `(?!...)`")
	case lexer.ErrLookbehindPos:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "lookbehind is written `<< ...` in pomsky").
			WithHelp("try `<< (...)` instead of `(?<=...)`")
	case lexer.ErrLookbehindNeg:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "negative lookbehind is written `!<< ...` in pomsky").
			WithHelp("try `!<< (...)` instead of `(?<!...)`")
	case lexer.ErrWordBoundaryEscape:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "word boundary is written `%` in pomsky, not `\\b`").
			WithHelp("try `%` (word boundary) instead of `\\b`")
	case lexer.ErrBackrefEscape:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "backreferences are written `::name` or `::N` in pomsky").
			WithHelp("try `::name` instead of `\\k<name>`")
	case lexer.ErrUnicodeEscape:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "code points are written `U+hex` in pomsky").
			WithHelp(`try "U+..." instead of "\u{...}"`)
	case lexer.ErrUnicodePropEscape:
		return diag.New(diag.KindSyntax, diag.CodeUnexpectedToken, tok.Span, "Unicode properties are written as bare names inside `[...]` in pomsky").
			WithHelp("try `[Greek]` instead of `\\p{Greek}`")
	default:
		return diag.New(diag.KindSyntax, diag.CodeUnknownToken, tok.Span, "unrecognized token")
	}
}
