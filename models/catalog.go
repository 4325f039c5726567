package models

import (
	"github.com/shopspring/decimal"
)

// CatalogVersion identifies the shipped rule set. Rule ids are durable across
// versions; bumping the version never renumbers a rule.
const CatalogVersion = "2026.08"

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Compact constructors for the seed tables below. Rules are data; the
// evaluator owns all behavior.

func eqRule(id, name string, cat RuleCategory, sev Severity, mode ToleranceMode, abs, pct float64, src, tgt LineExpr) ReconciliationRule {
	return ReconciliationRule{
		RuleId: id, Name: name, Category: cat, Severity: sev,
		Shape: RuleShapeEquation, ToleranceMode: mode,
		ToleranceAbs: dec(abs), TolerancePct: dec(pct),
		Source: src, Target: tgt,
	}
}

func trendRule(id, name string, cat RuleCategory, sev Severity, src LineExpr, tc TrendConstraint, maxDeltaPct float64) ReconciliationRule {
	return ReconciliationRule{
		RuleId: id, Name: name, Category: cat, Severity: sev,
		Shape: RuleShapeTrend, Source: src,
		TrendConstraint: tc, MaxDeltaPct: dec(maxDeltaPct),
		ToleranceMode: ToleranceModePercent, TolerancePct: dec(0.5),
	}
}

func thresholdRule(id, name string, cat RuleCategory, sev Severity, src LineExpr, op Comparison, bound float64) ReconciliationRule {
	return ReconciliationRule{
		RuleId: id, Name: name, Category: cat, Severity: sev,
		Shape: RuleShapeThreshold, Source: src,
		BoundOp: op, Bound: dec(bound),
	}
}

func ratioThresholdRule(id, name string, cat RuleCategory, sev Severity, num, div LineExpr, op Comparison, bound float64) ReconciliationRule {
	r := thresholdRule(id, name, cat, sev, num, op, bound)
	r.Divisor = div
	return r
}

func meta(r ReconciliationRule) ReconciliationRule {
	r.MetaRule = true
	return r
}

func info(r ReconciliationRule) ReconciliationRule {
	r.Severity = SeverityInfo
	return r
}

// DefaultRuleCatalog assembles the shipped catalog. Each call builds a fresh
// immutable value, so tests can hold divergent catalog versions side by side.
func DefaultRuleCatalog() (*RuleCatalog, error) {
	var rules []ReconciliationRule
	rules = append(rules, balanceSheetRules()...)
	rules = append(rules, incomeStatementRules()...)
	rules = append(rules, cashFlowRules()...)
	rules = append(rules, mortgageRules()...)
	rules = append(rules, rentRollRules()...)
	rules = append(rules, crossStatementRules()...)
	return NewRuleCatalog(CatalogVersion, rules)
}

// MustDefaultRuleCatalog panics on a broken seed; the seed is compiled-in
// data, so a failure here is a programming error, not runtime input.
func MustDefaultRuleCatalog() *RuleCatalog {
	c, err := DefaultRuleCatalog()
	if err != nil {
		panic(err)
	}
	return c
}
