package pomsky

import (
	"testing"

	"github.com/pomsky-lang/pomsky-sub000/feature"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

func mustCompile(t *testing.T, source string, opts CompileOptions) string {
	t.Helper()
	regex, diags, err := Compile(source, opts)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", source, err)
	}
	if len(diags) != 0 {
		t.Fatalf("Compile(%q) diagnostics: %v", source, diags)
	}
	return regex
}

func TestCompileNamedGroupWithQuantifierJavaScript(t *testing.T) {
	got := mustCompile(t, `:foo('test')+`, NewCompileOptions(unicodetab.JavaScript))
	if got != "(?<foo>test)+" {
		t.Fatalf("got %q, want (?<foo>test)+", got)
	}
}

func TestCompileWordShorthandRust(t *testing.T) {
	got := mustCompile(t, `..[word]`, NewCompileOptions(unicodetab.Rust))
	if got != `..\w` {
		t.Fatalf("got %q, want ..\\w", got)
	}
}

func TestCompileCaretInsideCharClassIsSyntaxError(t *testing.T) {
	_, diags, err := Compile(`[.][^test]`, NewCompileOptions(unicodetab.Pcre))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if len(diags) == 0 || !diags[0].IsError() {
		t.Fatalf("expected a syntax error diagnostic, got %v", diags)
	}
}

func TestCompileDecimalRangePcre(t *testing.T) {
	got := mustCompile(t, `range '0'-'255' base 10`, NewCompileOptions(unicodetab.Pcre))
	if got == "" {
		t.Fatal("expected a non-empty regex for range '0'-'255' base 10")
	}
}

func TestCompileLetLookaheadQuantifierPcre(t *testing.T) {
	got := mustCompile(t, `let x = >> 'test'?; x{2}`, NewCompileOptions(unicodetab.Pcre))
	if got != `(?=(?:test)?){2}` {
		t.Fatalf("got %q, want (?=(?:test)?){2}", got)
	}
}

func TestCompileEmptySourceIsError(t *testing.T) {
	_, _, err := Compile("", NewCompileOptions(unicodetab.Pcre))
	if err != ErrEmptySource {
		t.Fatalf("got err %v, want ErrEmptySource", err)
	}
}

func TestCompileDisabledFeatureIsUnsupportedDiagnostic(t *testing.T) {
	opts := NewCompileOptions(unicodetab.Pcre)
	opts.AllowedFeatures = feature.All().Without(feature.Ranges)
	_, diags, err := Compile(`range '0'-'9' base 10`, opts)
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if len(diags) == 0 || !diags[0].IsError() {
		t.Fatalf("expected a feature-disabled diagnostic, got %v", diags)
	}
}

func TestCompileUnsupportedFlavorConstructIsCompatDiagnostic(t *testing.T) {
	_, diags, err := Compile(`recursion`, NewCompileOptions(unicodetab.RE2))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if len(diags) == 0 || !diags[0].IsError() {
		t.Fatalf("expected a compat diagnostic for recursion on RE2, got %v", diags)
	}
}

func TestNewCompilationResultSuccess(t *testing.T) {
	source := `'a'`
	regex, diags, err := Compile(source, NewCompileOptions(unicodetab.Pcre))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	res := NewCompilationResult("a.pomsky", source, regex, diags, 0, false)
	if !res.Success || res.Output == nil || *res.Output != "a" {
		t.Fatalf("got %+v, want success with output %q", res, "a")
	}
	if res.Version != "1" {
		t.Fatalf("Version = %q, want \"1\"", res.Version)
	}
}

func TestNewCompilationResultFailureHasNoOutput(t *testing.T) {
	source := `[.][^test]`
	_, diags, err := Compile(source, NewCompileOptions(unicodetab.Pcre))
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	res := NewCompilationResult("bad.pomsky", source, "", diags, 0, false)
	if res.Success || res.Output != nil {
		t.Fatalf("got %+v, want a failed result with no output", res)
	}
	if len(res.Diagnostics) == 0 || len(res.Diagnostics[0].Spans) != 1 {
		t.Fatalf("expected exactly one span per diagnostic, got %+v", res.Diagnostics)
	}
}
