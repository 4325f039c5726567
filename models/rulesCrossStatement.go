package models

// Cross-statement tie-outs: the same economic quantity reported on two
// documents must agree. Rules spanning all five documents are meta-rules and
// run only when every document is present.
func crossStatementRules() []ReconciliationRule {
	const (
		bs = DocumentTypeBalanceSheet
		is = DocumentTypeIncomeStatement
		cf = DocumentTypeCashFlow
		mg = DocumentTypeMortgageStatement
		rr = DocumentTypeRentRoll
	)
	cat := RuleCategoryCrossStatement

	return []ReconciliationRule{
		eqRule("XS-1", "Balance sheet cash ties to cash flow ending cash", cat, SeverityCritical,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(bs, AccCash),
			Line(cf, AccEndingCash)),
		eqRule("XS-2", "Mortgage payable ties to loan statement balance", cat, SeverityCritical,
			ToleranceModeGreaterOf, 500, 1,
			Line(bs, AccMortgagePayable),
			Line(mg, AccLoanBalance)),
		eqRule("XS-3", "Interest expense ties to mortgage interest paid", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 2,
			Line(is, AccInterestExpense),
			Scaled(Line(mg, AccInterestPortion), 12)),
		eqRule("XS-4", "Rental income ties to rent roll scheduled rent", cat, SeverityHigh,
			ToleranceModeGreaterOf, 500, 5,
			Line(is, AccRentalIncome),
			Line(rr, AccScheduledRent)),
		eqRule("XS-5", "Security deposit liability ties to rent roll deposits", cat, SeverityMedium,
			ToleranceModeGreaterOf, 250, 2,
			Line(bs, AccSecurityDeposits),
			Line(rr, AccSecurityDepositsRR)),
		eqRule("XS-6", "Net income ties to current year earnings on balance sheet", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 1,
			Line(is, AccNetIncome),
			Line(bs, AccCurrentYearEarnings)),
		eqRule("XS-7", "Debt service paid ties to mortgage payment schedule", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 1,
			Scaled(Line(cf, AccDebtServicePaid), -1),
			Scaled(Line(mg, AccMonthlyPayment), 12)),
		eqRule("XS-8", "Delinquent rent ties to accounts receivable", cat, SeverityMedium,
			ToleranceModeGreaterOf, 500, 10,
			Line(rr, AccDelinquentRent),
			Line(bs, AccAccountsReceivable)),

		ratioThresholdRule("XS-9", "Collected rent supports reported income", cat, SeverityHigh,
			Line(rr, AccCollectedRent), Line(is, AccRentalIncome), ComparisonGTE, 0.80),
		ratioThresholdRule("XS-10", "Operating cash conversion of NOI above 50 percent", cat, SeverityMedium,
			Line(cf, AccCashFromOperations), Line(is, AccNetOperatingIncome), ComparisonGTE, 0.50),
		ratioThresholdRule("XS-14", "Tax and insurance roughly funded by escrow", cat, SeverityLow,
			Sum(is, AccPropertyTax, AccInsurance), Scaled(Line(mg, AccEscrowPayment), 12), ComparisonLTE, 1.5),
		ratioThresholdRule("XS-15", "Rental income under gross potential rent", cat, SeverityMedium,
			Line(is, AccRentalIncome), Line(rr, AccGrossPotentialRent), ComparisonLTE, 1.0),
		ratioThresholdRule("XS-16", "Operating cash under total income", cat, SeverityLow,
			Line(cf, AccCashFromOperations), Line(is, AccTotalIncome), ComparisonLTE, 1.0),
		ratioThresholdRule("XS-17", "Bad debt under 5 percent of scheduled rent", cat, SeverityLow,
			OptionalLine(is, AccBadDebt), Line(rr, AccScheduledRent), ComparisonLTE, 0.05),
		eqRule("XS-18", "Restricted cash ties to mortgage escrow balance", cat, SeverityLow,
			ToleranceModeGreaterOf, 250, 5,
			Line(bs, AccRestrictedCash),
			Line(mg, AccEscrowBalance)),
		ratioThresholdRule("XS-19", "Operating cash consistent with collected rent", cat, SeverityLow,
			Line(cf, AccCashFromOperations), Line(rr, AccCollectedRent), ComparisonLTE, 1.5),

		meta(eqRule("XS-11", "All-document cash roll-forward consistency", cat, SeverityHigh,
			ToleranceModeGreaterOf, 250, 1,
			Line(bs, AccCash).Plus(bs, AccRestrictedCash),
			Line(cf, AccEndingCash).Plus(mg, AccEscrowBalance))),
		meta(trendRule("XS-12", "Portfolio document set complete across periods", cat, SeverityLow,
			Line(bs, AccTotalAssets), TrendBoundedDelta, 20)),
		meta(info(thresholdRule("XS-13", "Full document set present", cat, SeverityInfo,
			Line(bs, AccTotalAssets), ComparisonGTE, 0))),
		meta(thresholdRule("XS-20", "Aggregate reported cash is not negative", cat, SeverityMedium,
			Sum(bs, AccCash, AccRestrictedCash).Plus(cf, AccEndingCash), ComparisonGTE, 0)),
	}
}
