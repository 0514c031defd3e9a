package pomsky

import (
	"time"

	"github.com/pomsky-lang/pomsky-sub000/diag"
)

// Timings is the `{all, tests}` timing pair from spec §6, both in
// microseconds. Tests is zero whenever the source has no `test { ... }`
// blocks for a host's runner to have executed (the core itself never runs
// one; see DESIGN.md).
type Timings struct {
	AllMicros   int64 `json:"all"`
	TestsMicros int64 `json:"tests"`
}

// CompilationResult is the `{version, success, path?, output?, diagnostics,
// timings}` record from spec §6. Path is populated by a host (a single
// Compile call has no file of its own); Output is omitted on the wire when
// Success is false, matching "when success = false, output is absent".
// Diagnostics reuses diag.Record, the package that already owns the
// diagnostic wire schema, rather than re-deriving a second copy of it here.
type CompilationResult struct {
	Version     string        `json:"version"`
	Success     bool          `json:"success"`
	Path        string        `json:"path,omitempty"`
	Output      *string       `json:"output,omitempty"`
	Diagnostics []diag.Record `json:"diagnostics"`
	Timings     Timings       `json:"timings"`
}

// NewCompilationResult builds the wire-schema record for one Compile call,
// given the path the source came from (empty for an in-memory call), the
// original source text (needed only to render each diagnostic's visual
// excerpt when renderVisual is set), and the wall-clock duration the call
// took.
func NewCompilationResult(path, source, regex string, diagnostics []diag.Diagnostic, elapsed time.Duration, renderVisual bool) CompilationResult {
	records := make([]diag.Record, 0, len(diagnostics))
	success := true
	for _, d := range diagnostics {
		records = append(records, d.ToRecord(source, renderVisual))
		if d.IsError() {
			success = false
		}
	}

	result := CompilationResult{
		Version:     "1",
		Success:     success,
		Path:        path,
		Diagnostics: records,
		Timings:     Timings{AllMicros: elapsed.Microseconds()},
	}
	if success {
		out := regex
		result.Output = &out
	}
	return result
}
