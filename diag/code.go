package diag

// Code is a stable diagnostic identifier of the form "PNNNN", part of the
// closed taxonomy enumerated in spec §7. Codes are grouped by numeric range
// per error kind, though a handful (the Deprecated warnings) share the
// Syntax range since they are detected at the same lexer/parser stage.
type Code string

// Syntax errors, P0001-P0199.
const (
	CodeUnknownToken              Code = "P0001"
	CodeUnclosedString            Code = "P0002"
	CodeReservedWordMisuse        Code = "P0003"
	CodeInvalidEscapeInString      Code = "P0004"
	CodeInvalidCodePoint           Code = "P0005"
	CodeLeadingZero                Code = "P0006"
	CodeRangeNotIncreasing          Code = "P0007"
	CodeIllegalNegationStacking     Code = "P0008"
	CodeRepetitionSuffixStacking     Code = "P0009"
	CodeMultipleLiteralsInTestCase  Code = "P0010"
	CodeNonAsciiIdentAfterColon     Code = "P0011"
	CodeIdentTooLong                Code = "P0012"
	CodeLetBindingExists            Code = "P0013"
	CodeNestedTest                   Code = "P0014"
	CodeExpectedCharClassElement     Code = "P0100"
	CodeExpectedAtom                 Code = "P0101"
	CodeUnexpectedToken               Code = "P0102"
	CodeUnexpectedEOF                 Code = "P0103"
	CodeDeprecatedSyntax               Code = "P0105"
)

// Compat, P0301.
const (
	CodeFlavorUnsupported Code = "P0301"
)

// Unsupported (disabled feature), P0302.
const (
	CodeFeatureDisabled Code = "P0302"
)

// Limits, P0303, P0312, P0313.
const (
	CodeRangeTooBig              Code = "P0303"
	CodeReferenceNumberTooLarge  Code = "P0312"
	CodeRecursionLimit           Code = "P0313"
)

// Resolve, P0304, P0305, P0308-P0311.
const (
	CodeUnknownReferenceName Code = "P0304"
	CodeUnknownReferenceNumber Code = "P0305"
	CodeNameUsedMultipleTimes Code = "P0308"
	CodeReferenceInsideLet    Code = "P0309"
	CodeUnknownVariable       Code = "P0310"
	CodeRecursiveVariable     Code = "P0311"
)

// Other (empty-class / illegal negation), P0306, P0307, P0317.
const (
	CodeEmptyCharClass           Code = "P0306"
	CodeAlwaysEmptyNegatedClass  Code = "P0307"
	CodeIllegalNegationTarget    Code = "P0317"
)

// Test, P0501-P0506.
const (
	CodeTestMatchFailed      Code = "P0501"
	CodeTestRejectFailed     Code = "P0502"
	CodeTestCaptureMismatch  Code = "P0503"
	CodeTestCaptureMissing   Code = "P0504"
	CodeTestNoMatchInHaystack Code = "P0505"
	CodeTestEngineError       Code = "P0506"
)
