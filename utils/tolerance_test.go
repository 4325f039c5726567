package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestToleranceBound_GreaterOf(t *testing.T) {
	// Small target: the absolute bound dominates.
	small := ToleranceBound(dec("500"), "greater_of", dec("100"), dec("0.5"))
	if !small.Equal(dec("100")) {
		t.Fatalf("small target: expected bound 100, got %s", small)
	}

	// Large target: the percentage bound dominates. 0.5% of 1,000,000 = 5,000.
	large := ToleranceBound(dec("1000000"), "greater_of", dec("100"), dec("0.5"))
	if !large.Equal(dec("5000")) {
		t.Fatalf("large target: expected bound 5000, got %s", large)
	}

	// Negative target: percentage bound uses |target|.
	neg := ToleranceBound(dec("-1000000"), "greater_of", dec("100"), dec("0.5"))
	if !neg.Equal(dec("5000")) {
		t.Fatalf("negative target: expected bound 5000, got %s", neg)
	}
}

func TestWithinTolerance_Modes(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		target   string
		mode     string
		abs, pct string
		want     bool
	}{
		{"absolute exact", "1999000.00", "1999000.00", "absolute", "100", "0", true},
		{"absolute at bound", "1999100.00", "1999000.00", "absolute", "100", "0", true},
		{"absolute over bound", "2000000.00", "1999000.00", "absolute", "100", "0", false},
		{"percent within", "1005", "1000", "percent", "0", "1", true},
		{"percent over", "1011", "1000", "percent", "0", "1", false},
		{"cents never spurious", "1999000.004", "1999000.00", "absolute", "0.01", "0", true},
	}
	for _, c := range cases {
		got := WithinTolerance(dec(c.source), dec(c.target), c.mode, dec(c.abs), dec(c.pct))
		if got != c.want {
			t.Errorf("%s: WithinTolerance=%v, want %v", c.name, got, c.want)
		}
	}
}

func TestWithinTolerance_Monotonic(t *testing.T) {
	// Shrinking |difference| must never turn a PASS into a FAIL.
	target := dec("1000000")
	abs, pct := dec("100"), dec("0.5")
	prevPass := false
	for _, diff := range []string{"100000", "10000", "5000", "4999", "100", "1", "0"} {
		source := target.Add(dec(diff))
		pass := WithinTolerance(source, target, "greater_of", abs, pct)
		if prevPass && !pass {
			t.Fatalf("monotonicity violated at diff=%s", diff)
		}
		prevPass = pass
	}
	if !prevPass {
		t.Fatal("zero difference must pass")
	}
}

func TestVariancePct(t *testing.T) {
	v := VariancePct(dec("110"), dec("100"))
	if !v.Equal(dec("10")) {
		t.Fatalf("expected 10%%, got %s", v)
	}
	if !VariancePct(dec("50"), dec("0")).IsZero() {
		t.Fatal("zero target must yield zero variance, caller decides SKIP")
	}
}

func TestSafeDiv_ZeroDenominator(t *testing.T) {
	if _, ok := SafeDiv(dec("500000"), dec("0"), 4); ok {
		t.Fatal("zero denominator must report not-ok")
	}
	q, ok := SafeDiv(dec("500000"), dec("350000"), 4)
	if !ok {
		t.Fatal("expected ok")
	}
	if q.StringFixed(2) != "1.43" {
		t.Fatalf("expected 1.43, got %s", q.StringFixed(2))
	}
}
