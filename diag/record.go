package diag

// Record is the stable, version "1" JSON encoding of a Diagnostic, per the
// wire schema in spec §6. Field names and shapes are part of the external
// contract, so unlike Diagnostic this type is never extended without a
// version bump.
type Record struct {
	Severity    string         `json:"severity"`
	Kind        string         `json:"kind"`
	Code        string         `json:"code,omitempty"`
	Spans       []SpanRecord   `json:"spans"`
	Description string         `json:"description"`
	Help        []string       `json:"help"`
	Fixes       []FixRecord    `json:"fixes"`
	Visual      string         `json:"visual,omitempty"`
}

// SpanRecord is the wire form of a SpanLabel: byte offsets, UTF-8, end
// exclusive.
type SpanRecord struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Label string `json:"label,omitempty"`
}

// ReplacementRecord is the wire form of a Replacement.
type ReplacementRecord struct {
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Insert string `json:"insert"`
}

// FixRecord is the wire form of a Fix.
type FixRecord struct {
	Description  string              `json:"description"`
	Replacements []ReplacementRecord `json:"replacements"`
}

// ToRecord converts a Diagnostic to its wire record. renderVisual controls
// whether the pre-rendered terminal excerpt is populated; callers that only
// want the machine-readable fields (e.g. IDE integrations) pass false to
// avoid the rendering cost.
func (d Diagnostic) ToRecord(source string, renderVisual bool) Record {
	help := d.Help
	if help == nil {
		help = []string{}
	}
	r := Record{
		Severity:    string(d.Severity),
		Kind:        string(d.Kind),
		Code:        string(d.Code),
		Description: d.Message,
		Help:        help,
		Fixes:       make([]FixRecord, 0, len(d.Fixes)),
	}
	if !d.Span.IsEmpty() || d.Span == (Span{}) {
		r.Spans = []SpanRecord{{Start: d.Span.Start, End: d.Span.End}}
	}
	for _, f := range d.Fixes {
		fr := FixRecord{Description: f.Description, Replacements: make([]ReplacementRecord, 0, len(f.Replacements))}
		for _, rep := range f.Replacements {
			fr.Replacements = append(fr.Replacements, ReplacementRecord{Start: rep.Start, End: rep.End, Insert: rep.Insert})
		}
		r.Fixes = append(r.Fixes, fr)
	}
	if renderVisual {
		r.Visual = d.Render(source)
	}
	return r
}
