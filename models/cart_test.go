package models

import (
	"strings"
	"testing"
)

func TestVariantItemIDFormat(t *testing.T) {
	if got := VariantItemID("6911eb5a", 10); got != "6911eb5a-10ml" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := VariantItemID("6911eb5a", 7.5); got != "6911eb5a-7.5ml" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestItemIDPrefersExplicitID(t *testing.T) {
	in := CartLineInput{CartItemID: "set-123", ProductID: "p1", Size: 10}
	if got := in.ItemID(); got != "set-123" {
		t.Fatalf("explicit id must win, got %q", got)
	}

	in.CartItemID = ""
	if got := in.ItemID(); got != "p1-10ml" {
		t.Fatalf("expected derived variant id, got %q", got)
	}
}

func TestCompositeItemIDKeepsProductPrefix(t *testing.T) {
	got := CompositeItemID("discovery-set")
	if !strings.HasPrefix(got, "discovery-set-") {
		t.Fatalf("expected product prefix, got %q", got)
	}
	if got == "discovery-set-" {
		t.Fatalf("expected a timestamp suffix, got %q", got)
	}
}

func TestLineTotal(t *testing.T) {
	l := CartLine{UnitPrice: 45.5, Quantity: 3}
	if got := l.LineTotal(); got != 136.5 {
		t.Fatalf("expected 136.5, got %v", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.12345, 10.12},
		{10.126, 10.13},
		{59.999999999, 60.0},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Fatalf("Round2(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestProductValidate(t *testing.T) {
	valid := Product{ID: "p1", Name: "Noir Absolu", TotalStockMl: 100, Variants: []Variant{{Size: 10, Price: 45}}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	for _, p := range []Product{
		{Name: "No ID"},
		{ID: "p2"},
		{ID: "p3", Name: "Negative", TotalStockMl: -1},
		{ID: "p4", Name: "Bad variant", Variants: []Variant{{Size: 0, Price: 10}}},
	} {
		if err := p.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", p)
		}
	}
}
