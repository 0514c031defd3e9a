// Package diag provides the source-position and diagnostic model shared by
// every stage of the compiler: the lexer, parser, validator, resolver and
// code generator all report their findings as diag.Diagnostic values
// carrying a diag.Span, rather than by panicking or returning bare errors.
package diag

import "fmt"

// Span is a half-open byte-offset range [Start, End) into the source text
// being compiled. Offsets count UTF-8 bytes from the start of the source,
// matching the wire schema in spec §6.
//
// The zero Span (Start == End == 0) is the sentinel "empty" span used where
// no real source location applies; it is never a valid location for real
// source content located at offset 0 (a one-byte token at the very start of
// the file has Span{0, 1}, not Span{0, 0}).
type Span struct {
	Start uint32
	End   uint32
}

// Empty is the sentinel empty span.
var Empty = Span{}

// New constructs a Span, panicking if End < Start.
func New(start, end uint32) Span {
	if end < start {
		panic(fmt.Sprintf("diag: invalid span [%d, %d)", start, end))
	}
	return Span{Start: start, End: end}
}

// IsEmpty reports whether s is the sentinel empty span.
func (s Span) IsEmpty() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether s lies entirely within other.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Join returns the smallest span covering both a and b.
// Both a and b must be non-empty; use JoinUnchecked when either may be the
// empty sentinel.
func Join(a, b Span) Span {
	if a.IsEmpty() || b.IsEmpty() {
		panic("diag: Join requires two non-empty spans; use JoinUnchecked")
	}
	return JoinUnchecked(a, b)
}

// JoinUnchecked returns the smallest span covering both a and b, treating
// an empty sentinel operand as "no location" and returning the other span
// unchanged. If both are empty, returns Empty.
func JoinUnchecked(a, b Span) Span {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// Slice returns the substring of source covered by s.
// Panics if s extends past len(source); callers that maintain invariant 1
// of the data model (every emitted span is contained in the original
// source) never hit this.
func (s Span) Slice(source string) string {
	return source[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
