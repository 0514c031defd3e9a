package resolve

import (
	"testing"

	"github.com/pomsky-lang/pomsky-sub000/parse"
)

func parseOrFail(t *testing.T, src string) *parse.Modified {
	t.Helper()
	m, _, err := parse.Parse(src, 0)
	if err != nil {
		t.Fatalf("parse(%q) failed: %v", src, err)
	}
	return m
}

func TestResolveNumbersGroupsInSourceOrder(t *testing.T) {
	m := parseOrFail(t, `:a('x') :b('y')`)
	res, diags := Resolve(m)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if res.NameToNumber["a"] != 1 || res.NameToNumber["b"] != 2 {
		t.Fatalf("NameToNumber = %v, want a:1 b:2", res.NameToNumber)
	}
	if res.TotalGroups != 2 {
		t.Fatalf("TotalGroups = %d, want 2", res.TotalGroups)
	}
}

func TestResolveDuplicateNameIsDiagnostic(t *testing.T) {
	m := parseOrFail(t, `:a('x') :a('y')`)
	_, diags := Resolve(m)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a duplicate group name")
	}
}

func TestResolveByNameAndNumber(t *testing.T) {
	m := parseOrFail(t, `:a('x') ::a ::1`)
	res, diags := Resolve(m)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(res.RefTarget) != 2 {
		t.Fatalf("len(RefTarget) = %d, want 2", len(res.RefTarget))
	}
	for _, target := range res.RefTarget {
		if target.Number != 1 || target.Forward {
			t.Fatalf("target = %+v, want {Number:1 Forward:false}", target)
		}
	}
}

func TestResolveUnknownReferenceName(t *testing.T) {
	m := parseOrFail(t, `:a('x') ::nope`)
	_, diags := Resolve(m)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an unknown reference name")
	}
}

func TestResolveSuggestsCloseName(t *testing.T) {
	m := parseOrFail(t, `:alpha('x') ::alphaa`)
	_, diags := Resolve(m)
	if len(diags) == 0 || len(diags[0].Help) == 0 {
		t.Fatal("expected a diagnostic with a 'did you mean' suggestion")
	}
}

func TestResolveOutOfRangeNumber(t *testing.T) {
	m := parseOrFail(t, `:a('x') ::5`)
	_, diags := Resolve(m)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an out-of-range group number")
	}
}

func TestResolveRecursiveVariable(t *testing.T) {
	m := parseOrFail(t, "let x = x;\nx")
	_, diags := Resolve(m)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for a self-referential variable")
	}
}

func TestResolveUnknownVariable(t *testing.T) {
	m := parseOrFail(t, `nope`)
	_, diags := Resolve(m)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an unknown variable")
	}
}

func TestResolveReferenceInsideLetIsRejected(t *testing.T) {
	m := parseOrFail(t, "let x = :a('y') ::a;\n:a('z') x")
	_, diags := Resolve(m)
	found := false
	for _, d := range diags {
		if d.Code == "P0309" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ReferenceInsideLet diagnostic, got %v", diags)
	}
}
