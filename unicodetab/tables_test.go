package unicodetab

import "testing"

func TestLookupShorthandAliases(t *testing.T) {
	for _, alias := range []string{"word", "w"} {
		n, ok := Lookup(alias)
		if !ok || n.Kind != KindWord {
			t.Fatalf("Lookup(%q) = (%v, %v), want KindWord", alias, n, ok)
		}
	}
}

func TestLookupCategoryAliases(t *testing.T) {
	n, ok := Lookup("Lowercase_Letter")
	if !ok || n.Kind != KindCategory || n.Value != "Ll" {
		t.Fatalf("Lookup(Lowercase_Letter) = (%v, %v)", n, ok)
	}
	n2, ok := Lookup("Ll")
	if !ok || n2.Kind != KindCategory || n2.Value != "Ll" {
		t.Fatalf("Lookup(Ll) = (%v, %v)", n2, ok)
	}
	n3, ok := Lookup("lower")
	if !ok || n3.Value != "Ll" {
		t.Fatalf("Lookup(lower) = (%v, %v)", n3, ok)
	}
}

func TestLookupScriptAndBlock(t *testing.T) {
	if n, ok := Lookup("Greek"); !ok || n.Kind != KindScript {
		t.Fatalf("Lookup(Greek) = (%v, %v), want KindScript", n, ok)
	}
	if n, ok := Lookup("Basic_Latin"); !ok || n.Kind != KindCodeBlock {
		t.Fatalf("Lookup(Basic_Latin) = (%v, %v), want KindCodeBlock", n, ok)
	}
	if n, ok := Lookup("InBasic_Latin"); !ok || n.Kind != KindCodeBlock {
		t.Fatalf("Lookup(InBasic_Latin) = (%v, %v), want KindCodeBlock", n, ok)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("NotARealProperty"); ok {
		t.Fatal("Lookup succeeded for a name that should not resolve")
	}
}

func TestFlavorSupportDefaults(t *testing.T) {
	if !SupportsBlock(Pcre, "Basic_Latin") {
		t.Fatal("PCRE should accept any block (not in the restricted list)")
	}
	if SupportsLookaround(Rust) {
		t.Fatal("Rust regex does not support lookaround")
	}
	if !SupportsRecursion(Pcre) {
		t.Fatal("PCRE supports recursion")
	}
	if SupportsRecursion(Python) {
		t.Fatal("Python regex does not support recursion")
	}
	if MaxRepetitionUpperBound(RE2) != 1000 {
		t.Fatalf("RE2 repetition cap = %d, want 1000", MaxRepetitionUpperBound(RE2))
	}
}
