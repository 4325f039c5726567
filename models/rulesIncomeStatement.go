package models

// Income statement rules: total tie-outs, NOI derivation, expense-ratio
// sanity, and period-over-period movement bounds.
func incomeStatementRules() []ReconciliationRule {
	const is = DocumentTypeIncomeStatement
	cat := RuleCategoryIncomeStatement

	return []ReconciliationRule{
		eqRule("IS-1", "Total income ties to income component lines", cat, SeverityCritical,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(is, AccTotalIncome),
			Sum(is, AccRentalIncome, AccOtherIncome, AccParkingIncome, AccLateFeeIncome).
				Minus(is, AccVacancyLoss, AccConcessions, AccBadDebt)),
		eqRule("IS-2", "Total operating expenses tie to expense component lines", cat, SeverityCritical,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(is, AccTotalOperatingExpense),
			Sum(is, AccPropertyTax, AccInsurance, AccUtilities, AccRepairsMaintenance,
				AccManagementFees, AccPayroll, AccMarketing, AccAdministrative)),
		eqRule("IS-3", "NOI equals total income less operating expenses", cat, SeverityCritical,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(is, AccNetOperatingIncome),
			Line(is, AccTotalIncome).Minus(is, AccTotalOperatingExpense)),
		eqRule("IS-4", "Net income equals NOI less interest and depreciation", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 0.5,
			Line(is, AccNetIncome),
			Line(is, AccNetOperatingIncome).Minus(is, AccInterestExpense, AccDepreciationExpense)),

		thresholdRule("IS-5", "Rental income is positive", cat, SeverityCritical,
			Line(is, AccRentalIncome), ComparisonGTE, 1),
		thresholdRule("IS-6", "Vacancy loss is not negative", cat, SeverityHigh,
			OptionalLine(is, AccVacancyLoss), ComparisonGTE, 0),
		thresholdRule("IS-7", "Bad debt is not negative", cat, SeverityMedium,
			OptionalLine(is, AccBadDebt), ComparisonGTE, 0),
		thresholdRule("IS-8", "Property taxes reported above zero", cat, SeverityMedium,
			Line(is, AccPropertyTax), ComparisonGTE, 1),
		thresholdRule("IS-9", "Insurance expense reported above zero", cat, SeverityMedium,
			Line(is, AccInsurance), ComparisonGTE, 1),
		ratioThresholdRule("IS-10", "Operating expense ratio under 75 percent of income", cat, SeverityHigh,
			Line(is, AccTotalOperatingExpense), Line(is, AccTotalIncome), ComparisonLTE, 0.75),
		ratioThresholdRule("IS-11", "Management fees within 3-8 percent band (upper)", cat, SeverityMedium,
			Line(is, AccManagementFees), Line(is, AccTotalIncome), ComparisonLTE, 0.08),
		ratioThresholdRule("IS-12", "Vacancy and credit loss under 15 percent of gross", cat, SeverityHigh,
			Sum(is, AccVacancyLoss, AccConcessions, AccBadDebt), Line(is, AccRentalIncome), ComparisonLTE, 0.15),
		ratioThresholdRule("IS-13", "Repairs and maintenance under 20 percent of income", cat, SeverityMedium,
			Line(is, AccRepairsMaintenance), Line(is, AccTotalIncome), ComparisonLTE, 0.20),
		ratioThresholdRule("IS-14", "Payroll under 25 percent of income", cat, SeverityLow,
			OptionalLine(is, AccPayroll), Line(is, AccTotalIncome), ComparisonLTE, 0.25),
		ratioThresholdRule("IS-24", "Management fees within 3-8 percent band (lower)", cat, SeverityLow,
			Line(is, AccManagementFees), Line(is, AccTotalIncome), ComparisonGTE, 0.03),
		thresholdRule("IS-25", "Depreciation expense is not negative", cat, SeverityMedium,
			Line(is, AccDepreciationExpense), ComparisonGTE, 0),
		thresholdRule("IS-26", "Concessions are not negative", cat, SeverityLow,
			OptionalLine(is, AccConcessions), ComparisonGTE, 0),

		trendRule("IS-15", "Rental income within normal movement", cat, SeverityHigh,
			Line(is, AccRentalIncome), TrendBoundedDelta, 15),
		trendRule("IS-16", "Total income within normal movement", cat, SeverityHigh,
			Line(is, AccTotalIncome), TrendBoundedDelta, 20),
		trendRule("IS-17", "Operating expenses within normal movement", cat, SeverityMedium,
			Line(is, AccTotalOperatingExpense), TrendBoundedDelta, 25),
		trendRule("IS-18", "NOI not deteriorating sharply", cat, SeverityHigh,
			Line(is, AccNetOperatingIncome), TrendBoundedDelta, 25),
		trendRule("IS-19", "Property taxes within reassessment bounds", cat, SeverityLow,
			Line(is, AccPropertyTax), TrendBoundedDelta, 20),
		trendRule("IS-20", "Insurance premium within renewal bounds", cat, SeverityLow,
			Line(is, AccInsurance), TrendBoundedDelta, 35),
		trendRule("IS-21", "Utilities within seasonal bounds", cat, SeverityLow,
			OptionalLine(is, AccUtilities), TrendBoundedDelta, 50),
		trendRule("IS-27", "Net income within normal movement", cat, SeverityLow,
			Line(is, AccNetIncome), TrendBoundedDelta, 40),

		info(thresholdRule("IS-22", "Other income reported", cat, SeverityInfo,
			OptionalLine(is, AccOtherIncome), ComparisonGTE, 0)),
		info(thresholdRule("IS-23", "Late fee income reported", cat, SeverityInfo,
			OptionalLine(is, AccLateFeeIncome), ComparisonGTE, 0)),
		info(thresholdRule("IS-28", "Parking income reported", cat, SeverityInfo,
			OptionalLine(is, AccParkingIncome), ComparisonGTE, 0)),
	}
}
