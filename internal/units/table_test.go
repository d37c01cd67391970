package units

import (
	"errors"
	"math"
	"testing"
)

func TestDefault_Order(t *testing.T) {
	tbl := Default()
	got := tbl.Symbols(Length)
	want := []string{"m", "cm", "mm", "μm", "nm", "Å", "pm", "fm"}
	if len(got) != len(want) {
		t.Fatalf("expected %d length units, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != Normalize(want[i]) {
			t.Errorf("unit %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDefault_IsCopy(t *testing.T) {
	a := Default()
	a[Length][0].Factor = 42
	b := Default()
	if b[Length][0].Factor != 1 {
		t.Error("mutating one default table leaked into another")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"micro sign", "\u00b5m", "\u03bcm"},
		{"greek mu", "\u03bcm", "\u03bcm"},
		{"angstrom sign", "Å", "Å"},
		{"trim", "  nm ", "nm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Length")
	if err != nil || k != Length {
		t.Errorf("expected length, got %q (%v)", k, err)
	}
	k, err = ParseKind("")
	if err != nil || k != None {
		t.Errorf("expected none for empty kind, got %q (%v)", k, err)
	}
	if _, err := ParseKind("luminosity"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestTable_Kinds(t *testing.T) {
	tbl, err := Default().Merge(Table{"area": {{Symbol: "barn", Factor: 1e-28}}, "angle": {{Symbol: "rad", Factor: 1}}})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	kinds := tbl.Kinds()
	if kinds[0] != Length {
		t.Errorf("expected length first, got %s", kinds[0])
	}
	n := len(kinds)
	if kinds[n-2] != "angle" || kinds[n-1] != "area" {
		t.Errorf("expected extra kinds sorted at the end, got %v", kinds[n-2:])
	}
}

func TestTable_Merge(t *testing.T) {
	base := Default()
	merged, err := base.Merge(Table{
		Length: {{Symbol: "km", Factor: 1e3}, {Symbol: "nm", Factor: 2e-9}},
	})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if f, ok := merged.Factor(Length, "km"); !ok || f != 1e3 {
		t.Errorf("expected km appended with 1e3, got %v %v", f, ok)
	}
	if f, _ := merged.Factor(Length, "nm"); f != 2e-9 {
		t.Errorf("expected nm overridden to 2e-9, got %v", f)
	}
	if f, _ := base.Factor(Length, "nm"); f != 1e-9 {
		t.Errorf("merge mutated the base table: nm = %v", f)
	}
	if _, ok := base.Factor(Length, "km"); ok {
		t.Error("merge mutated the base table: km present")
	}
}

func TestTable_MergeRejectsBadFactors(t *testing.T) {
	for _, f := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := Default().Merge(Table{Length: {{Symbol: "bad", Factor: f}}})
		if !errors.Is(err, ErrInvalidFactor) {
			t.Errorf("factor %v: expected ErrInvalidFactor, got %v", f, err)
		}
	}
}
