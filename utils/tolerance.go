package utils

import (
	"github.com/shopspring/decimal"
)

// Tolerance comparison for tie-out rules. Everything is decimal: cents-level
// rounding must not produce spurious FAILs, so float64 never touches a
// comparison.

// ToleranceBound resolves the allowed |difference| for a target value.
// mode semantics:
//   - absolute:   abs
//   - percent:    |target| * pct / 100
//   - greater_of: max of the two. Small-dollar accounts would otherwise fail
//     on tiny absolute differences while large accounts would pass on
//     proportionally huge ones.
func ToleranceBound(target decimal.Decimal, mode string, abs, pct decimal.Decimal) decimal.Decimal {
	pctBound := target.Abs().Mul(pct).DivRound(decimal.NewFromInt(100), 6)
	switch mode {
	case "percent":
		return pctBound
	case "greater_of":
		if pctBound.GreaterThan(abs) {
			return pctBound
		}
		return abs
	default: // absolute
		return abs
	}
}

// WithinTolerance reports whether source agrees with target under the bound.
func WithinTolerance(source, target decimal.Decimal, mode string, abs, pct decimal.Decimal) bool {
	bound := ToleranceBound(target, mode, abs, pct)
	return source.Sub(target).Abs().LessThanOrEqual(bound)
}

// VariancePct is 100 * (source-target)/target, zero when target is zero
// (the caller decides whether a zero target means SKIP).
func VariancePct(source, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return source.Sub(target).DivRound(target, 6).Mul(decimal.NewFromInt(100)).Round(4)
}

// ClassifyVariance reports whether an out-of-tolerance |difference| still
// sits inside the warning band (within warnFactor x bound). A zero bound has
// no band: every breach is a hard failure.
func ClassifyVariance(diff, bound, warnFactor decimal.Decimal) bool {
	if bound.IsZero() {
		return false
	}
	return diff.Abs().LessThanOrEqual(bound.Mul(warnFactor))
}

// SafeDiv returns numerator/denominator and false when the denominator is
// zero. Ratio calculators must never propagate NaN or Inf.
func SafeDiv(numerator, denominator decimal.Decimal, places int32) (decimal.Decimal, bool) {
	if denominator.IsZero() {
		return decimal.Zero, false
	}
	return numerator.DivRound(denominator, places), true
}
