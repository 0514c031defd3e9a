package diag

// Severity distinguishes a hard compilation failure from an advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind classifies a diagnostic; see spec §7 for the taxonomy each maps to.
type Kind string

const (
	KindSyntax      Kind = "syntax"
	KindResolve     Kind = "resolve"
	KindCompat      Kind = "compat"
	KindUnsupported Kind = "unsupported"
	KindDeprecated  Kind = "deprecated"
	KindLimits      Kind = "limits"
	KindTest        Kind = "test"
	KindOther       Kind = "other"
)

// Replacement is one non-overlapping text edit within a quick-fix.
type Replacement struct {
	Start  uint32
	End    uint32
	Insert string
}

// Fix is a suggested edit that would resolve (or improve) a diagnostic.
// Replacements must be ordered and non-overlapping, per spec §4.A.
type Fix struct {
	Description  string
	Replacements []Replacement
}

// SpanLabel pairs a span with an optional short label, matching the
// `spans: [{start, end, label?}]` wire field in spec §6. The core always
// emits exactly one entry.
type SpanLabel struct {
	Span  Span
	Label string
}

// Diagnostic is a single finding produced by any compiler stage.
type Diagnostic struct {
	Severity    Severity
	Kind        Kind
	Code        Code // may be "" if no stable code applies
	Span        Span
	Message     string
	Help        []string
	Fixes       []Fix
	MatchedText string // populated only for Test diagnostics with an actual match to report
}

// New constructs an error-severity diagnostic.
func New(kind Kind, code Code, span Span, message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Kind: kind, Code: code, Span: span, Message: message}
}

// NewWarning constructs a warning-severity diagnostic.
func NewWarning(kind Kind, code Code, span Span, message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Kind: kind, Code: code, Span: span, Message: message}
}

// WithHelp returns a copy of d with a help string appended.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = append(append([]string(nil), d.Help...), help)
	return d
}

// WithFix returns a copy of d with a quick-fix appended.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(append([]Fix(nil), d.Fixes...), fix)
	return d
}

// IsError reports whether d has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// Bag accumulates diagnostics across a compilation, the way every stage
// after the parser (validator, resolver, code generator) collects its
// findings before returning rather than aborting on the first one (spec
// §4 "Propagation policy").
type Bag struct {
	diagnostics []Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// Error is a convenience for Add(New(...)).
func (b *Bag) Error(kind Kind, code Code, span Span, message string) {
	b.Add(New(kind, code, span, message))
}

// Warning is a convenience for Add(NewWarning(...)).
func (b *Bag) Warning(kind Kind, code Code, span Span, message string) {
	b.Add(NewWarning(kind, code, span, message))
}

// HasErrors reports whether any diagnostic in the bag is error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// All returns the accumulated diagnostics in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.diagnostics
}

// Filter removes diagnostics whose Kind is in the given set, never removing
// errors — this backs the host-provided `diagnostics-filter` option from
// spec §7, which may silence whole kinds ("compat", "deprecated") but never
// errors.
func (b *Bag) Filter(kinds map[Kind]bool) {
	kept := b.diagnostics[:0]
	for _, d := range b.diagnostics {
		if d.IsError() || !kinds[d.Kind] {
			kept = append(kept, d)
		}
	}
	b.diagnostics = kept
}
