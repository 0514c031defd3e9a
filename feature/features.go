// Package feature implements the feature bitset and validator pass (spec
// component E): a single AST walk that rejects constructs the caller
// disabled via CompileOptions, constructs the selected flavor can't
// express, and a handful of other closed-set checks (test nesting,
// negative range/repetition limits) that don't belong to resolve or ir.
package feature

// Set is a bitset over the closed feature enumeration from spec §6. The
// zero Set enables nothing; All() enables every bit, the default a host
// normally starts from.
type Set uint32

const (
	Grapheme Set = 1 << iota
	NumberedGroups
	NamedGroups
	AtomicGroups
	References
	LazyMode
	AsciiMode
	Ranges
	Variables
	Lookahead
	Lookbehind
	Boundaries
	Regexes
	Dot
	Recursion
	Intersection

	numFeatures = iota
)

// All returns a Set with every defined feature enabled.
func All() Set {
	return Set(1<<numFeatures) - 1
}

// Has reports whether every bit in want is present in s.
func (s Set) Has(want Set) bool {
	return s&want == want
}

// With returns a copy of s with want enabled.
func (s Set) With(want Set) Set {
	return s | want
}

// Without returns a copy of s with want disabled.
func (s Set) Without(want Set) Set {
	return s &^ want
}
