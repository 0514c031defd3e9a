package pomsky

import (
	"github.com/pomsky-lang/pomsky-sub000/feature"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

// CompileOptions is the flat record a host passes to Compile, matching the
// closed field set in spec §6. The zero CompileOptions is not valid on its
// own: Flavor has no sensible zero value, so callers should build one with
// NewCompileOptions or set Flavor explicitly.
type CompileOptions struct {
	// Flavor selects the target regex engine's dialect.
	Flavor unicodetab.Flavor

	// MaxRangeDigits caps the digit count of a `range` expression. <= 0
	// selects feature.DefaultMaxRangeDigits (12), the documented default.
	MaxRangeDigits int

	// AllowedFeatures gates which constructs the source may use; a
	// construct outside this set is rejected with CodeFeatureDisabled
	// regardless of whether the target flavor could otherwise express it.
	AllowedFeatures feature.Set

	// MaxRecursion bounds the parser's recursion budget (spec §4.D,
	// §5 "the only bounded resource is the recursion budget"). <= 0
	// selects parse.DefaultMaxRecursion.
	MaxRecursion int
}

// NewCompileOptions returns CompileOptions for flavor with every feature
// enabled and the documented defaults for the remaining limits, the
// starting point most hosts build from.
func NewCompileOptions(flavor unicodetab.Flavor) CompileOptions {
	return CompileOptions{
		Flavor:          flavor,
		MaxRangeDigits:  feature.DefaultMaxRangeDigits,
		AllowedFeatures: feature.All(),
	}
}
