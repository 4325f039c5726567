package models

// Balance sheet tie-out rules. BS-1 is the accounting equation; the rest
// validate every reported total against its components and sanity-check
// account signs and movement.
func balanceSheetRules() []ReconciliationRule {
	const bs = DocumentTypeBalanceSheet
	cat := RuleCategoryBalanceSheet

	return []ReconciliationRule{
		eqRule("BS-1", "Total assets equal total liabilities plus equity", cat, SeverityCritical,
			ToleranceModeAbsolute, 100, 0,
			Line(bs, AccTotalAssets),
			Line(bs, AccTotalLiabilities).Plus(bs, AccTotalEquity)),
		eqRule("BS-2", "Current assets tie to component lines", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccCurrentAssets),
			Sum(bs, AccCash, AccRestrictedCash, AccAccountsReceivable, AccPrepaidExpenses, AccInventory)),
		eqRule("BS-3", "Fixed assets net ties to cost less accumulated depreciation", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccFixedAssetsNet),
			Sum(bs, AccLandValue, AccBuildingValue).Plus(bs, AccAccumDepreciation)),
		eqRule("BS-4", "Total assets tie to current plus fixed plus other", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccTotalAssets),
			Sum(bs, AccCurrentAssets, AccFixedAssetsNet, AccOtherAssets)),
		eqRule("BS-5", "Current liabilities tie to component lines", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccCurrentLiabilities),
			Sum(bs, AccAccountsPayable, AccAccruedExpenses, AccSecurityDeposits)),
		eqRule("BS-6", "Total liabilities tie to current plus mortgage plus other", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccTotalLiabilities),
			Sum(bs, AccCurrentLiabilities, AccMortgagePayable, AccOtherLiabilities)),
		eqRule("BS-7", "Equity ties to contributions, distributions and earnings", cat, SeverityMedium,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccTotalEquity),
			Sum(bs, AccOwnerContributions, AccRetainedEarnings, AccCurrentYearEarnings).Minus(bs, AccOwnerDistributions)),

		thresholdRule("BS-8", "Cash balance is not negative", cat, SeverityCritical,
			Line(bs, AccCash), ComparisonGTE, 0),
		thresholdRule("BS-9", "Restricted cash is not negative", cat, SeverityHigh,
			OptionalLine(bs, AccRestrictedCash), ComparisonGTE, 0),
		thresholdRule("BS-10", "Accounts receivable is not negative", cat, SeverityHigh,
			Line(bs, AccAccountsReceivable), ComparisonGTE, 0),
		thresholdRule("BS-11", "Accumulated depreciation is not positive", cat, SeverityMedium,
			Line(bs, AccAccumDepreciation), ComparisonLTE, 0),
		thresholdRule("BS-12", "Security deposit liability is not negative", cat, SeverityMedium,
			OptionalLine(bs, AccSecurityDeposits), ComparisonGTE, 0),
		thresholdRule("BS-13", "Mortgage payable is not negative", cat, SeverityHigh,
			Line(bs, AccMortgagePayable), ComparisonGTE, 0),
		thresholdRule("BS-14", "Total assets are positive", cat, SeverityCritical,
			Line(bs, AccTotalAssets), ComparisonGTE, 1),
		ratioThresholdRule("BS-15", "Current ratio at or above 1.0", cat, SeverityMedium,
			Line(bs, AccCurrentAssets), Line(bs, AccCurrentLiabilities), ComparisonGTE, 1.0),
		ratioThresholdRule("BS-16", "Receivables under 10 percent of total assets", cat, SeverityLow,
			Line(bs, AccAccountsReceivable), Line(bs, AccTotalAssets), ComparisonLTE, 0.10),

		trendRule("BS-17", "Building value stable period over period", cat, SeverityMedium,
			Line(bs, AccBuildingValue), TrendBoundedDelta, 5),
		trendRule("BS-18", "Land value stable period over period", cat, SeverityMedium,
			Line(bs, AccLandValue), TrendBoundedDelta, 2),
		trendRule("BS-19", "Accumulated depreciation non-increasing", cat, SeverityMedium,
			Line(bs, AccAccumDepreciation), TrendNonIncreasing, 0),
		trendRule("BS-20", "Mortgage payable non-increasing absent refinance", cat, SeverityHigh,
			Line(bs, AccMortgagePayable), TrendNonIncreasing, 0),
		trendRule("BS-21", "Security deposits within normal churn", cat, SeverityLow,
			OptionalLine(bs, AccSecurityDeposits), TrendBoundedDelta, 25),
		trendRule("BS-22", "Total equity within normal movement", cat, SeverityLow,
			Line(bs, AccTotalEquity), TrendBoundedDelta, 30),
		trendRule("BS-23", "Receivables not ballooning", cat, SeverityMedium,
			Line(bs, AccAccountsReceivable), TrendBoundedDelta, 50),
		trendRule("BS-26", "Other liabilities within normal movement", cat, SeverityLow,
			OptionalLine(bs, AccOtherLiabilities), TrendBoundedDelta, 50),

		thresholdRule("BS-27", "Land reported above zero", cat, SeverityMedium,
			Line(bs, AccLandValue), ComparisonGTE, 1),
		thresholdRule("BS-28", "Building reported above zero", cat, SeverityMedium,
			Line(bs, AccBuildingValue), ComparisonGTE, 1),
		ratioThresholdRule("BS-29", "Cash at least 1 percent of total assets", cat, SeverityLow,
			Line(bs, AccCash), Line(bs, AccTotalAssets), ComparisonGTE, 0.01),

		info(thresholdRule("BS-24", "Prepaid expenses reported", cat, SeverityInfo,
			OptionalLine(bs, AccPrepaidExpenses), ComparisonGTE, 0)),
		info(thresholdRule("BS-25", "Other assets reported", cat, SeverityInfo,
			OptionalLine(bs, AccOtherAssets), ComparisonGTE, 0)),
	}
}
