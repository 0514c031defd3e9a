package unicodetab

// Flavor identifies one of the eight regex dialects pomsky compiles to
// (spec §6, GLOSSARY). Defined here rather than in codegen to avoid an
// import cycle: both the feature validator and the code generator need it.
type Flavor int

const (
	Pcre Flavor = iota
	JavaScript
	Java
	DotNet
	Python
	Ruby
	Rust
	RE2
)

func (f Flavor) String() string {
	switch f {
	case Pcre:
		return "pcre"
	case JavaScript:
		return "javascript"
	case Java:
		return "java"
	case DotNet:
		return "dotnet"
	case Python:
		return "python"
	case Ruby:
		return "ruby"
	case Rust:
		return "rust"
	case RE2:
		return "re2"
	default:
		return "unknown"
	}
}

// blockSupport, scriptSupport and propertySupport are snapshot allow-lists,
// not a stability contract (spec §9 Open Question: the exact set drifts as
// engines update). Each lists, for a flavor lacking universal Unicode
// support, the subset of blocks/scripts/binary-properties it is known to
// accept; flavors not present in a map accept everything unicodetab knows
// about for that axis.
var blockSupport = map[Flavor]map[string]bool{
	DotNet: {
		"Basic_Latin": true, "Latin-1_Supplement": true, "Latin_Extended-A": true,
		"Latin_Extended-B": true, "Greek_and_Coptic": true, "Cyrillic": true,
		"Hebrew": true, "Arabic": true, "General_Punctuation": true,
		"CJK_Unified_Ideographs": true, "Hiragana": true, "Katakana": true,
	},
}

var scriptSupport = map[Flavor]map[string]bool{
	RE2: {
		"Latin": true, "Greek": true, "Cyrillic": true, "Han": true,
		"Hiragana": true, "Katakana": true, "Hangul": true, "Arabic": true,
		"Hebrew": true, "Armenian": true, "Georgian": true, "Thai": true,
	},
}

var propertySupport = map[Flavor]map[string]bool{
	Java: {
		"Alphabetic": true, "White_Space": true, "Uppercase": true, "Lowercase": true,
		"Noncharacter_Code_Point": true, "Assigned": true,
	},
	JavaScript: {
		"Alphabetic": true, "White_Space": true, "Uppercase": true, "Lowercase": true,
		"ASCII": true, "Emoji": true, "Math": true,
	},
}

// flavorsWithoutLookaround is named by spec §4.E ("lookaround in Rust/RE2").
var flavorsWithoutLookaround = map[Flavor]bool{Rust: true, RE2: true}

// flavorsWithRecursion is named by spec §4.E ("recursion outside PCRE/Ruby").
var flavorsWithRecursion = map[Flavor]bool{Pcre: true, Ruby: true}

// flavorsWithAtomicGroups support `(?>...)`.
var flavorsWithAtomicGroups = map[Flavor]bool{Pcre: true, Java: true, DotNet: true, Ruby: true}

// flavorsWithForwardReferences allow a backreference to a group defined
// later in the pattern.
var flavorsWithForwardReferences = map[Flavor]bool{Pcre: true, DotNet: true, Python: true, Ruby: true}

// SupportsLookaround reports whether flavor implements lookahead/lookbehind
// at all (RE2/Rust are both linear-time engines with no backtracking, so
// neither supports any lookaround).
func SupportsLookaround(f Flavor) bool { return !flavorsWithoutLookaround[f] }

// SupportsRecursion reports whether flavor implements the `recursion`
// keyword (i.e. pattern self-reference, `(?R)`/`\g<0>`-style).
func SupportsRecursion(f Flavor) bool { return flavorsWithRecursion[f] }

// SupportsAtomicGroups reports whether flavor implements `(?>...)`.
func SupportsAtomicGroups(f Flavor) bool { return flavorsWithAtomicGroups[f] }

// SupportsForwardReferences reports whether flavor allows a backreference
// whose target group is defined later in the pattern.
func SupportsForwardReferences(f Flavor) bool { return flavorsWithForwardReferences[f] }

// MaxRepetitionUpperBound returns the largest upper bound flavor accepts in
// a bounded repetition, or 0 for "no flavor-specific cap" (spec §4.E: "RE2"
// has a bound of 1000).
func MaxRepetitionUpperBound(f Flavor) int {
	if f == RE2 {
		return 1000
	}
	return 0
}

// SupportsBlock, SupportsScript and SupportsProperty report whether flavor
// is known to accept the given canonical UCD name. A flavor absent from the
// relevant allow-list map is treated as supporting everything on that axis
// (PCRE, Python, Ruby and Rust on every axis; .NET is restricted only for
// blocks, RE2 only for scripts, Java and JavaScript only for properties).
func SupportsBlock(f Flavor, block string) bool {
	allow, restricted := blockSupport[f]
	if !restricted {
		return true
	}
	return allow[block]
}

func SupportsScript(f Flavor, script string) bool {
	allow, restricted := scriptSupport[f]
	if !restricted {
		return true
	}
	return allow[script]
}

func SupportsProperty(f Flavor, property string) bool {
	allow, restricted := propertySupport[f]
	if !restricted {
		return true
	}
	return allow[property]
}

// SupportsScriptExtension reports whether flavor's engine supports the
// scx= script-extension variant at all (only a handful do).
func SupportsScriptExtension(f Flavor) bool {
	switch f {
	case Rust, JavaScript, Java:
		return true
	default:
		return false
	}
}
