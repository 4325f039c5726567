package models

// Mortgage statement rules: payment decomposition, escrow sanity, rate and
// amortization movement.
func mortgageRules() []ReconciliationRule {
	const mg = DocumentTypeMortgageStatement
	cat := RuleCategoryMortgage

	return []ReconciliationRule{
		eqRule("MG-1", "Monthly payment ties to principal plus interest plus escrow", cat, SeverityCritical,
			ToleranceModeGreaterOf, 50, 0.25,
			Line(mg, AccMonthlyPayment),
			Sum(mg, AccPrincipalPortion, AccInterestPortion, AccEscrowPayment)),
		eqRule("MG-2", "Annual debt service ties to twelve monthly payments", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(mg, AccAnnualDebtService),
			Scaled(Line(mg, AccMonthlyPayment), 12)),

		thresholdRule("MG-3", "Outstanding loan balance is positive", cat, SeverityCritical,
			Line(mg, AccLoanBalance), ComparisonGTE, 1),
		thresholdRule("MG-4", "Escrow balance is not negative", cat, SeverityHigh,
			OptionalLine(mg, AccEscrowBalance), ComparisonGTE, 0),
		thresholdRule("MG-5", "Interest rate within plausible range (upper)", cat, SeverityHigh,
			Line(mg, AccInterestRate), ComparisonLTE, 15),
		thresholdRule("MG-6", "Interest rate within plausible range (lower)", cat, SeverityHigh,
			Line(mg, AccInterestRate), ComparisonGTE, 0.5),
		thresholdRule("MG-7", "Principal portion is positive on an amortizing loan", cat, SeverityMedium,
			Line(mg, AccPrincipalPortion), ComparisonGTE, 0),
		thresholdRule("MG-8", "Interest portion is positive", cat, SeverityMedium,
			Line(mg, AccInterestPortion), ComparisonGTE, 0),
		ratioThresholdRule("MG-9", "Loan balance under appraised value", cat, SeverityHigh,
			Line(mg, AccLoanBalance), Line(mg, AccPropertyValue), ComparisonLTE, 1.0),
		thresholdRule("MG-15", "Escrow payment is not negative", cat, SeverityMedium,
			OptionalLine(mg, AccEscrowPayment), ComparisonGTE, 0),
		ratioThresholdRule("MG-16", "Interest portion within total payment", cat, SeverityLow,
			Line(mg, AccInterestPortion), Line(mg, AccMonthlyPayment), ComparisonLTE, 1.0),
		ratioThresholdRule("MG-17", "Principal portion within total payment", cat, SeverityLow,
			Line(mg, AccPrincipalPortion), Line(mg, AccMonthlyPayment), ComparisonLTE, 1.0),

		trendRule("MG-10", "Loan balance non-increasing on an amortizing loan", cat, SeverityHigh,
			Line(mg, AccLoanBalance), TrendNonIncreasing, 0),
		trendRule("MG-11", "Monthly payment stable between rate resets", cat, SeverityMedium,
			Line(mg, AccMonthlyPayment), TrendBoundedDelta, 10),
		trendRule("MG-12", "Interest rate stable between resets", cat, SeverityMedium,
			Line(mg, AccInterestRate), TrendBoundedDelta, 15),
		trendRule("MG-13", "Escrow balance within funding cycle bounds", cat, SeverityLow,
			OptionalLine(mg, AccEscrowBalance), TrendBoundedDelta, 60),
		trendRule("MG-18", "Principal portion non-decreasing on fixed amortization", cat, SeverityLow,
			Line(mg, AccPrincipalPortion), TrendNonDecreasing, 0),
		trendRule("MG-19", "Interest portion non-increasing on fixed amortization", cat, SeverityLow,
			Line(mg, AccInterestPortion), TrendNonIncreasing, 0),

		info(thresholdRule("MG-14", "Appraised property value reported", cat, SeverityInfo,
			OptionalLine(mg, AccPropertyValue), ComparisonGTE, 0)),
		info(thresholdRule("MG-20", "Escrow payment reported", cat, SeverityInfo,
			OptionalLine(mg, AccEscrowPayment), ComparisonGTE, 0)),
	}
}
