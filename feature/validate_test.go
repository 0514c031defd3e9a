package feature

import (
	"testing"

	"github.com/pomsky-lang/pomsky-sub000/parse"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

func parseOrFail(t *testing.T, src string) *parse.Modified {
	t.Helper()
	m, _, err := parse.Parse(src, 0)
	if err != nil {
		t.Fatalf("parse(%q) failed: %v", src, err)
	}
	return m
}

func TestValidatorRejectsLookaroundOnRust(t *testing.T) {
	m := parseOrFail(t, `>> 'a'`)
	v := NewValidator(unicodetab.Rust, All(), 0)
	diags := v.Validate(m)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for lookahead on Rust")
	}
}

func TestValidatorAllowsLookaroundOnPcre(t *testing.T) {
	m := parseOrFail(t, `>> 'a'`)
	v := NewValidator(unicodetab.Pcre, All(), 0)
	if diags := v.Validate(m); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestValidatorRejectsDisabledFeature(t *testing.T) {
	m := parseOrFail(t, `::3`)
	v := NewValidator(unicodetab.Pcre, All().Without(References), 0)
	if diags := v.Validate(m); len(diags) == 0 {
		t.Fatal("expected a diagnostic for disabled References feature")
	}
}

func TestValidatorRejectsOversizedRange(t *testing.T) {
	m := parseOrFail(t, `range '0'-'123456789012345' base 10`)
	v := NewValidator(unicodetab.Pcre, All(), 5)
	if diags := v.Validate(m); len(diags) == 0 {
		t.Fatal("expected a diagnostic for a range exceeding the digit cap")
	}
}

func TestValidatorRejectsRecursionOnJavaScript(t *testing.T) {
	m := parseOrFail(t, `recursion`)
	v := NewValidator(unicodetab.JavaScript, All(), 0)
	if diags := v.Validate(m); len(diags) == 0 {
		t.Fatal("expected a diagnostic for recursion on JavaScript")
	}
}

func TestValidatorRejectsRepetitionOverRE2Cap(t *testing.T) {
	m := parseOrFail(t, `'a'{1001}`)
	v := NewValidator(unicodetab.RE2, All(), 0)
	if diags := v.Validate(m); len(diags) == 0 {
		t.Fatal("expected a diagnostic for repetition bound over RE2's cap")
	}
}
