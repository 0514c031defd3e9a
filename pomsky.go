// Package pomsky compiles the high-level pomsky source language into
// concrete regex syntax for one of eight target engines. Compile is the
// single entry point: it wires the parser, feature validator, capturing-
// group resolver, AST-to-IR lowerer, IR optimizer and code generator into
// the straight-line, single-threaded pipeline described in spec §5 — each
// call owns its own source buffer and options and shares no state with any
// other concurrent call.
package pomsky

import (
	"errors"
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/codegen"
	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/feature"
	"github.com/pomsky-lang/pomsky-sub000/ir"
	"github.com/pomsky-lang/pomsky-sub000/parse"
	"github.com/pomsky-lang/pomsky-sub000/resolve"
)

// ErrEmptySource is returned when source has no content at all; every other
// failure is reported through diagnostics rather than a Go error, per spec
// §7 ("errors cause exit code 1 and suppress output" — a host decides exit
// codes from diagnostics, not from Compile's error return).
var ErrEmptySource = errors.New("pomsky: empty source")

// Compile runs source through the full pipeline and returns the generated
// regex text, the diagnostics collected along the way, and a Go error only
// for an empty source buffer (ErrEmptySource) or a parse failure that does
// not come as a *parse.Error; a panic inside a stage is not recovered. A nil regex with a
// nil error and no error-severity diagnostics is a codegen bug: the
// validator is supposed to have rejected anything codegen can't handle
// (spec §7, "the code generator never reports errors for constructs that
// passed the validator").
func Compile(source string, opts CompileOptions) (regex string, diagnostics []diag.Diagnostic, err error) {
	if source == "" {
		return "", nil, ErrEmptySource
	}

	modified, parseDiags, perr := parse.Parse(source, opts.MaxRecursion)
	diagnostics = append(diagnostics, parseDiags...)
	if perr != nil {
		var pe *parse.Error
		if errors.As(perr, &pe) {
			diagnostics = append(diagnostics, pe.Diagnostics()...)
			return "", diagnostics, nil
		}
		return "", diagnostics, fmt.Errorf("pomsky: parse %q: %w", truncate(source), perr)
	}

	validator := feature.NewValidator(opts.Flavor, opts.AllowedFeatures, opts.MaxRangeDigits)
	diagnostics = append(diagnostics, validator.Validate(modified)...)
	if hasErrors(diagnostics) {
		return "", diagnostics, nil
	}

	res, resolveDiags := resolve.Resolve(modified)
	diagnostics = append(diagnostics, resolveDiags...)
	if hasErrors(diagnostics) {
		return "", diagnostics, nil
	}

	node, lowerDiags := ir.Lower(modified, res, opts.Flavor)
	diagnostics = append(diagnostics, lowerDiags...)
	if hasErrors(diagnostics) {
		return "", diagnostics, nil
	}

	node = ir.Optimize(node)

	out, genDiags := codegen.Generate(node, opts.Flavor)
	diagnostics = append(diagnostics, genDiags...)
	if hasErrors(diagnostics) {
		return "", diagnostics, nil
	}

	return out, diagnostics, nil
}

// hasErrors reports whether diags contains any error-severity entry; a
// Compile pipeline stops advancing as soon as one appears, per spec §7's
// propagation policy for the stages after the parser.
func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

// truncate bounds an error-message preview so a pathologically long source
// buffer doesn't blow up a wrapped error's own message.
func truncate(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
