package ir

import "github.com/pomsky-lang/pomsky-sub000/unicodetab"

// asciiRangesFor returns the explicit ASCII range set a shorthand expands
// to in ASCII mode (spec §4.G: "in ASCII mode, shorthands expand to
// explicit ASCII ranges").
func asciiRangesFor(kind unicodetab.Kind) []CharRange {
	switch kind {
	case unicodetab.KindWord:
		return []CharRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	case unicodetab.KindDigit:
		return []CharRange{{'0', '9'}}
	case unicodetab.KindSpace:
		return []CharRange{{'\t', '\r'}, {' ', ' '}}
	case unicodetab.KindHorizSpace:
		return []CharRange{{'\t', '\t'}, {' ', ' '}}
	case unicodetab.KindVertSpace:
		return []CharRange{{'\n', '\r'}}
	default:
		return nil
	}
}

// applyShorthand adds the set membership for a `word`/`digit`/`space`/
// `horiz_space`/`vert_space` shorthand item to dst, choosing between a
// plain Property and an explicit ASCII expansion depending on flavor and
// ASCII/Unicode mode (spec §4.G's flavor-specific substitution bullets).
func applyShorthand(dst *UnicodeSet, kind unicodetab.Kind, negative, unicodeAware bool, flavor unicodetab.Flavor) {
	if !unicodeAware {
		for _, r := range asciiRangesFor(kind) {
			dst.AddRange(r.First, r.Last)
		}
		return
	}

	if kind == unicodetab.KindWord && flavor == unicodetab.JavaScript {
		for _, cat := range []string{"Alphabetic", "Mark", "Decimal_Number", "Connector_Punctuation"} {
			dst.AddProperty(Property{Kind: unicodetab.KindOtherProperty, Value: cat, Negative: negative})
		}
		return
	}

	if kind == unicodetab.KindSpace && flavor == unicodetab.RE2 {
		dst.AddProperty(Property{Kind: unicodetab.KindSpace, Value: "space", Negative: negative})
		// RE2's \s is ASCII-only; add the common additional Unicode
		// whitespace code points explicitly so Unicode-mode `space` still
		// matches them.
		for _, r := range []CharRange{{0x0085, 0x0085}, {0x00A0, 0x00A0}, {0x1680, 0x1680}, {0x2000, 0x200A}, {0x2028, 0x2029}, {0x202F, 0x202F}, {0x205F, 0x205F}, {0x3000, 0x3000}} {
			dst.AddRange(r.First, r.Last)
		}
		return
	}

	if (kind == unicodetab.KindHorizSpace || kind == unicodetab.KindVertSpace) && !flavorHasHVShorthand(flavor) {
		for _, r := range asciiHVUnicodeExpansion(kind) {
			dst.AddRange(r.First, r.Last)
		}
		return
	}

	dst.AddProperty(Property{Kind: kind, Value: shorthandName(kind), Negative: negative})
}

func shorthandName(kind unicodetab.Kind) string {
	switch kind {
	case unicodetab.KindWord:
		return "word"
	case unicodetab.KindDigit:
		return "digit"
	case unicodetab.KindSpace:
		return "space"
	case unicodetab.KindHorizSpace:
		return "horiz_space"
	case unicodetab.KindVertSpace:
		return "vert_space"
	default:
		return ""
	}
}

// flavorHasHVShorthand reports whether the flavor's native regex syntax has
// direct `\h`/`\v` escapes, per spec §4.J's codegen bullet on the same
// shorthands; flavors without them get an explicit range expansion instead.
func flavorHasHVShorthand(flavor unicodetab.Flavor) bool {
	switch flavor {
	case unicodetab.Pcre, unicodetab.Ruby:
		return true
	default:
		return false
	}
}

func asciiHVUnicodeExpansion(kind unicodetab.Kind) []CharRange {
	if kind == unicodetab.KindHorizSpace {
		return []CharRange{
			{'\t', '\t'}, {' ', ' '}, {0x00A0, 0x00A0}, {0x1680, 0x1680},
			{0x2000, 0x200A}, {0x202F, 0x202F}, {0x205F, 0x205F}, {0x3000, 0x3000},
		}
	}
	return []CharRange{{'\n', '\r'}, {0x0085, 0x0085}, {0x2028, 0x2029}}
}
