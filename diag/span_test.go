package diag

import "testing"

func TestSpanJoinUnchecked(t *testing.T) {
	a := New(2, 5)
	b := New(10, 12)
	got := JoinUnchecked(a, b)
	if got != (Span{Start: 2, End: 12}) {
		t.Fatalf("JoinUnchecked(%v, %v) = %v", a, b, got)
	}

	got = JoinUnchecked(Empty, b)
	if got != b {
		t.Fatalf("JoinUnchecked(Empty, %v) = %v, want %v", b, got, b)
	}

	got = JoinUnchecked(a, Empty)
	if got != a {
		t.Fatalf("JoinUnchecked(%v, Empty) = %v, want %v", a, got, a)
	}

	if got := JoinUnchecked(Empty, Empty); !got.IsEmpty() {
		t.Fatalf("JoinUnchecked(Empty, Empty) = %v, want empty", got)
	}
}

func TestSpanJoinPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Join did not panic on empty operand")
		}
	}()
	Join(Empty, New(1, 2))
}

func TestSpanContains(t *testing.T) {
	outer := New(0, 10)
	inner := New(2, 5)
	if !outer.Contains(inner) {
		t.Fatalf("%v.Contains(%v) = false, want true", outer, inner)
	}
	if outer.Contains(New(9, 11)) {
		t.Fatal("Contains reported true for a span extending past the end")
	}
}

func TestBagFilterNeverDropsErrors(t *testing.T) {
	var b Bag
	b.Error(KindSyntax, CodeUnknownToken, New(0, 1), "bad token")
	b.Warning(KindDeprecated, CodeDeprecatedSyntax, New(1, 2), "old syntax")

	b.Filter(map[Kind]bool{KindDeprecated: true})

	all := b.All()
	if len(all) != 1 {
		t.Fatalf("Filter left %d diagnostics, want 1 (errors survive, warnings filtered)", len(all))
	}
	if !all[0].IsError() {
		t.Fatal("Filter removed the error diagnostic instead of the warning")
	}
}

func TestRenderLocatesMultilineSource(t *testing.T) {
	source := "abc\ndefgh\nij"
	d := New(KindSyntax, CodeUnknownToken, New(4, 7), "bad token")
	out := d.Render(source)
	if out == "" {
		t.Fatal("Render returned empty string")
	}
}
