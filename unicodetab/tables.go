// Package unicodetab resolves the canonical names and aliases accepted
// after a Unicode shorthand, property, script or block reference (spec
// §4.C) to a Name value, and records which flavor supports which ones.
//
// A compile-time-generated lookup maps every canonical name and alias to
// a GroupName enum discriminant, built from UCD data files. No third-party
// Unicode-properties library appears anywhere in the retrieved example
// pack (see DESIGN.md), and the standard library's unicode.Categories /
// unicode.Scripts / unicode.Blocks already are exactly such UCD-derived,
// canonically-named tables — so this package builds its sorted lookup
// array directly from them at package init, serving as that build step
// without vendoring a second copy of the UCD.
package unicodetab

import (
	"sort"
	"unicode"
)

// Kind discriminates what a Name refers to.
type Kind int

const (
	KindWord Kind = iota
	KindDigit
	KindSpace
	KindHorizSpace
	KindVertSpace
	KindCategory
	KindScript
	KindCodeBlock
	KindOtherProperty
)

// Name is the resolved form of a character-class item name: one of the five
// built-in shorthands, or a Unicode category/script/block/binary-property
// reference. Value holds the canonical UCD name for the latter four kinds
// (e.g. "Lu", "Greek", "Basic_Latin", "White_Space").
type Name struct {
	Kind            Kind
	Value           string
	ScriptExtension bool // scx= form, only meaningful when Kind == KindScript
}

type entry struct {
	alias string
	name  Name
}

var table []entry

func init() {
	var entries []entry

	for alias, canon := range shorthandAliases {
		entries = append(entries, entry{alias: alias, name: Name{Kind: canon}})
	}
	for code := range unicode.Categories {
		entries = append(entries, entry{alias: code, name: Name{Kind: KindCategory, Value: code}})
	}
	for alias, code := range categoryAliases {
		entries = append(entries, entry{alias: alias, name: Name{Kind: KindCategory, Value: code}})
	}
	for name := range unicode.Scripts {
		entries = append(entries, entry{alias: name, name: Name{Kind: KindScript, Value: name}})
	}
	for name := range unicode.Blocks {
		entries = append(entries, entry{alias: "In" + name, name: Name{Kind: KindCodeBlock, Value: name}})
		entries = append(entries, entry{alias: name, name: Name{Kind: KindCodeBlock, Value: name}})
	}
	for name := range unicode.Properties {
		entries = append(entries, entry{alias: name, name: Name{Kind: KindOtherProperty, Value: name}})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].alias < entries[j].alias })
	table = entries
}

// shorthandAliases maps every accepted spelling of the five built-in
// shorthands to their Kind. Listed directly (rather than derived) since
// these are pomsky-specific names, not UCD data.
var shorthandAliases = map[string]Kind{
	"word":        KindWord,
	"w":           KindWord,
	"digit":       KindDigit,
	"d":           KindDigit,
	"space":       KindSpace,
	"s":           KindSpace,
	"horiz_space": KindHorizSpace,
	"h":           KindHorizSpace,
	"vert_space":  KindVertSpace,
	"v":           KindVertSpace,
}

// categoryAliases lists the common long-form and lowercase aliases for
// general categories, e.g. "Lowercase_Letter" and "lower" for "Ll".
var categoryAliases = map[string]string{
	"Uppercase_Letter":      "Lu",
	"upper":                 "Lu",
	"Lowercase_Letter":      "Ll",
	"lower":                 "Ll",
	"Titlecase_Letter":      "Lt",
	"Cased_Letter":          "LC",
	"Modifier_Letter":       "Lm",
	"Other_Letter":          "Lo",
	"Letter":                "L",
	"alpha":                 "L",
	"Nonspacing_Mark":       "Mn",
	"Spacing_Mark":          "Mc",
	"Enclosing_Mark":        "Me",
	"Mark":                  "M",
	"Decimal_Number":        "Nd",
	"Letter_Number":         "Nl",
	"Other_Number":          "No",
	"Number":                "N",
	"Connector_Punctuation": "Pc",
	"Dash_Punctuation":      "Pd",
	"Open_Punctuation":      "Ps",
	"Close_Punctuation":     "Pe",
	"Initial_Punctuation":   "Pi",
	"Final_Punctuation":     "Pf",
	"Other_Punctuation":     "Po",
	"Punctuation":           "P",
	"punct":                 "P",
	"Math_Symbol":           "Sm",
	"Currency_Symbol":       "Sc",
	"Modifier_Symbol":       "Sk",
	"Other_Symbol":          "So",
	"Symbol":                "S",
	"Space_Separator":       "Zs",
	"Line_Separator":        "Zl",
	"Paragraph_Separator":   "Zp",
	"Separator":             "Z",
	"Control":               "Cc",
	"cntrl":                 "Cc",
	"Format":                "Cf",
	"Surrogate":             "Cs",
	"Private_Use":           "Co",
	"Unassigned":            "Cn",
	"Other":                 "C",
}

// Lookup resolves a case-sensitive name to its canonical Name, the same
// binary search an implementer generates a static array for in spec §4.C.
func Lookup(alias string) (Name, bool) {
	i := sort.Search(len(table), func(i int) bool { return table[i].alias >= alias })
	if i < len(table) && table[i].alias == alias {
		return table[i].name, true
	}
	return Name{}, false
}

// IsCategoryCode reports whether code is a recognized one- or two-letter
// general category code (e.g. "L", "Lu").
func IsCategoryCode(code string) bool {
	_, ok := unicode.Categories[code]
	return ok
}
