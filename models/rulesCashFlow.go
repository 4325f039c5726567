package models

// Cash flow statement rules: the roll-forward identity, section tie-outs and
// plausibility bounds on investing/financing activity.
func cashFlowRules() []ReconciliationRule {
	const cf = DocumentTypeCashFlow
	cat := RuleCategoryCashFlow

	return []ReconciliationRule{
		eqRule("CF-1", "Net change in cash ties to the three sections", cat, SeverityCritical,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(cf, AccNetChangeInCash),
			Sum(cf, AccCashFromOperations, AccCashFromInvesting, AccCashFromFinancing)),
		eqRule("CF-2", "Ending cash equals beginning cash plus net change", cat, SeverityCritical,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(cf, AccEndingCash),
			Line(cf, AccBeginningCash).Plus(cf, AccNetChangeInCash)),
		eqRule("CF-13", "Net change in cash ties to ending less beginning cash", cat, SeverityMedium,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(cf, AccNetChangeInCash),
			Line(cf, AccEndingCash).Minus(cf, AccBeginningCash)),

		thresholdRule("CF-3", "Ending cash is not negative", cat, SeverityCritical,
			Line(cf, AccEndingCash), ComparisonGTE, 0),
		thresholdRule("CF-4", "Beginning cash is not negative", cat, SeverityHigh,
			Line(cf, AccBeginningCash), ComparisonGTE, 0),
		thresholdRule("CF-5", "Capital expenditures reported as outflow", cat, SeverityMedium,
			OptionalLine(cf, AccCapitalExpenditures), ComparisonLTE, 0),
		thresholdRule("CF-6", "Debt service reported as outflow", cat, SeverityHigh,
			Line(cf, AccDebtServicePaid), ComparisonLTE, 0),
		thresholdRule("CF-7", "Operating cash flow above breakeven", cat, SeverityHigh,
			Line(cf, AccCashFromOperations), ComparisonGTE, 0),
		ratioThresholdRule("CF-14", "Debt service covered by operating cash flow", cat, SeverityMedium,
			Scaled(Line(cf, AccDebtServicePaid), -1), Line(cf, AccCashFromOperations), ComparisonLTE, 1.0),
		ratioThresholdRule("CF-15", "Capital spending under twice operating cash flow", cat, SeverityLow,
			Scaled(OptionalLine(cf, AccCapitalExpenditures), -1), Line(cf, AccCashFromOperations), ComparisonLTE, 2.0),

		trendRule("CF-8", "Operating cash flow within normal movement", cat, SeverityMedium,
			Line(cf, AccCashFromOperations), TrendBoundedDelta, 40),
		trendRule("CF-9", "Ending cash not collapsing", cat, SeverityHigh,
			Line(cf, AccEndingCash), TrendBoundedDelta, 50),
		trendRule("CF-10", "Capital spending within plan bounds", cat, SeverityLow,
			OptionalLine(cf, AccCapitalExpenditures), TrendBoundedDelta, 100),
		trendRule("CF-16", "Beginning cash within normal movement", cat, SeverityLow,
			Line(cf, AccBeginningCash), TrendBoundedDelta, 50),
		trendRule("CF-17", "Financing activity within refinance bounds", cat, SeverityLow,
			OptionalLine(cf, AccCashFromFinancing), TrendBoundedDelta, 150),

		info(thresholdRule("CF-11", "Investing section reported", cat, SeverityInfo,
			OptionalLine(cf, AccCashFromInvesting), ComparisonLTE, 0)),
		info(thresholdRule("CF-12", "Financing section reported", cat, SeverityInfo,
			OptionalLine(cf, AccCashFromFinancing), ComparisonLTE, 0)),
		info(thresholdRule("CF-18", "Net change in cash reported", cat, SeverityInfo,
			OptionalLine(cf, AccNetChangeInCash), ComparisonGTE, 0)),
	}
}
