package models

// Rent roll rules: unit count identities, occupancy and collection sanity,
// deposit and delinquency movement.
func rentRollRules() []ReconciliationRule {
	const rr = DocumentTypeRentRoll
	cat := RuleCategoryRentRoll

	return []ReconciliationRule{
		eqRule("RR-1", "Total units tie to occupied plus vacant", cat, SeverityCritical,
			ToleranceModeAbsolute, 0, 0,
			Line(rr, AccTotalUnits),
			Sum(rr, AccOccupiedUnits, AccVacantUnits)),
		eqRule("RR-2", "Scheduled rent ties to gross potential rent", cat, SeverityHigh,
			ToleranceModeGreaterOf, 100, 1,
			Line(rr, AccScheduledRent),
			Line(rr, AccGrossPotentialRent)),

		thresholdRule("RR-3", "Total units is positive", cat, SeverityCritical,
			Line(rr, AccTotalUnits), ComparisonGTE, 1),
		thresholdRule("RR-4", "Occupied units not negative", cat, SeverityCritical,
			Line(rr, AccOccupiedUnits), ComparisonGTE, 0),
		thresholdRule("RR-5", "Vacant units not negative", cat, SeverityCritical,
			Line(rr, AccVacantUnits), ComparisonGTE, 0),
		thresholdRule("RR-6", "Total square footage is positive", cat, SeverityHigh,
			Line(rr, AccTotalSquareFeet), ComparisonGTE, 1),
		thresholdRule("RR-7", "Gross potential rent is positive", cat, SeverityHigh,
			Line(rr, AccGrossPotentialRent), ComparisonGTE, 1),
		thresholdRule("RR-8", "Delinquent rent not negative", cat, SeverityMedium,
			OptionalLine(rr, AccDelinquentRent), ComparisonGTE, 0),
		thresholdRule("RR-9", "Prepaid rent not negative", cat, SeverityLow,
			OptionalLine(rr, AccPrepaidRent), ComparisonGTE, 0),
		ratioThresholdRule("RR-10", "Occupancy at or above 70 percent", cat, SeverityHigh,
			Line(rr, AccOccupiedUnits), Line(rr, AccTotalUnits), ComparisonGTE, 0.70),
		ratioThresholdRule("RR-11", "Collected rent at least 85 percent of scheduled", cat, SeverityHigh,
			Line(rr, AccCollectedRent), Line(rr, AccScheduledRent), ComparisonGTE, 0.85),
		ratioThresholdRule("RR-12", "Delinquency under 8 percent of scheduled rent", cat, SeverityMedium,
			OptionalLine(rr, AccDelinquentRent), Line(rr, AccScheduledRent), ComparisonLTE, 0.08),
		ratioThresholdRule("RR-21", "Average scheduled rent per unit above floor", cat, SeverityLow,
			Line(rr, AccScheduledRent), Line(rr, AccTotalUnits), ComparisonGTE, 100),
		ratioThresholdRule("RR-22", "Prepaid rent under 5 percent of scheduled", cat, SeverityLow,
			OptionalLine(rr, AccPrepaidRent), Line(rr, AccScheduledRent), ComparisonLTE, 0.05),

		trendRule("RR-13", "Total units stable", cat, SeverityHigh,
			Line(rr, AccTotalUnits), TrendBoundedDelta, 0.5),
		trendRule("RR-14", "Square footage stable", cat, SeverityHigh,
			Line(rr, AccTotalSquareFeet), TrendBoundedDelta, 0.5),
		trendRule("RR-15", "Occupied units within normal churn", cat, SeverityMedium,
			Line(rr, AccOccupiedUnits), TrendBoundedDelta, 15),
		trendRule("RR-16", "Scheduled rent within normal movement", cat, SeverityMedium,
			Line(rr, AccScheduledRent), TrendBoundedDelta, 10),
		trendRule("RR-17", "Delinquent rent not accelerating", cat, SeverityMedium,
			OptionalLine(rr, AccDelinquentRent), TrendBoundedDelta, 50),
		trendRule("RR-18", "Gross potential rent within normal movement", cat, SeverityLow,
			Line(rr, AccGrossPotentialRent), TrendBoundedDelta, 10),
		trendRule("RR-23", "Collected rent within normal movement", cat, SeverityMedium,
			OptionalLine(rr, AccCollectedRent), TrendBoundedDelta, 15),
		trendRule("RR-24", "Vacant units not accelerating", cat, SeverityLow,
			Line(rr, AccVacantUnits), TrendBoundedDelta, 50),

		info(thresholdRule("RR-19", "Security deposits on rent roll reported", cat, SeverityInfo,
			OptionalLine(rr, AccSecurityDepositsRR), ComparisonGTE, 0)),
		info(thresholdRule("RR-20", "Collected rent reported", cat, SeverityInfo,
			OptionalLine(rr, AccCollectedRent), ComparisonGTE, 0)),
		info(thresholdRule("RR-25", "Prepaid rent reported", cat, SeverityInfo,
			OptionalLine(rr, AccPrepaidRent), ComparisonGTE, 0)),
	}
}
