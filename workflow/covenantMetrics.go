package workflow

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/audit_backend/models"
	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

var twelve = decimal.NewFromInt(12)

// ComputeCovenantMetrics runs every ratio calculator against the snapshot.
// A metric whose inputs are missing or whose denominator is zero is omitted
// rather than reported with a fabricated value; the aggregator treats an
// absent metric as absent data, never as a breach.
func ComputeCovenantMetrics(facts *models.FactSnapshot, priors []*models.FactSnapshot, thresholds models.CovenantThresholds) []models.CovenantMetric {
	var out []models.CovenantMetric
	for _, name := range []models.MetricName{
		models.MetricDSCR,
		models.MetricLTV,
		models.MetricICR,
		models.MetricCurrentRatio,
		models.MetricQuickRatio,
	} {
		value, ok := computeMetricValue(name, facts)
		if !ok {
			continue
		}
		m := buildMetric(name, value, thresholds.For(name), facts)
		m.Trend = resolveTrend(name, value, priors)
		out = append(out, m)
	}
	return out
}

func buildMetric(name models.MetricName, value, threshold decimal.Decimal, facts *models.FactSnapshot) models.CovenantMetric {
	status, inCompliance := ResolveCovenantStatus(name, value, threshold)

	// Cushion sign convention: positive always means headroom.
	var cushion decimal.Decimal
	if name.Direction() == models.ComparisonLTE {
		cushion = threshold.Sub(value)
	} else {
		cushion = value.Sub(threshold)
	}
	cushionPct := decimal.Zero
	if !threshold.IsZero() {
		cushionPct = cushion.DivRound(threshold, 6).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return models.CovenantMetric{
		PropertyId:   facts.PropertyId,
		PeriodId:     facts.PeriodId,
		MetricName:   name,
		Value:        value,
		Threshold:    threshold,
		Cushion:      cushion.Round(4),
		CushionPct:   cushionPct,
		Status:       status,
		Band:         ClassifyBand(name, value, threshold),
		InCompliance: inCompliance,
	}
}

func computeMetricValue(name models.MetricName, facts *models.FactSnapshot) (decimal.Decimal, bool) {
	switch name {
	case models.MetricDSCR:
		noi, ok := annualNOI(facts)
		if !ok {
			return decimal.Zero, false
		}
		ds, ok := annualDebtService(facts)
		if !ok {
			return decimal.Zero, false
		}
		return utils.SafeDiv(noi, ds, 4)
	case models.MetricLTV:
		balance, ok := facts.Lookup(models.DocumentTypeMortgageStatement, models.AccLoanBalance)
		if !ok {
			return decimal.Zero, false
		}
		value, ok := facts.Lookup(models.DocumentTypeMortgageStatement, models.AccPropertyValue)
		if !ok {
			return decimal.Zero, false
		}
		return utils.SafeDiv(balance, value, 4)
	case models.MetricICR:
		noi, ok := annualNOI(facts)
		if !ok {
			return decimal.Zero, false
		}
		interest, ok := annualInterest(facts)
		if !ok {
			return decimal.Zero, false
		}
		return utils.SafeDiv(noi, interest, 4)
	case models.MetricCurrentRatio:
		ca, ok := facts.Lookup(models.DocumentTypeBalanceSheet, models.AccCurrentAssets)
		if !ok {
			return decimal.Zero, false
		}
		cl, ok := facts.Lookup(models.DocumentTypeBalanceSheet, models.AccCurrentLiabilities)
		if !ok {
			return decimal.Zero, false
		}
		return utils.SafeDiv(ca, cl, 4)
	case models.MetricQuickRatio:
		ca, ok := facts.Lookup(models.DocumentTypeBalanceSheet, models.AccCurrentAssets)
		if !ok {
			return decimal.Zero, false
		}
		cl, ok := facts.Lookup(models.DocumentTypeBalanceSheet, models.AccCurrentLiabilities)
		if !ok {
			return decimal.Zero, false
		}
		inventory, _ := facts.Lookup(models.DocumentTypeBalanceSheet, models.AccInventory)
		prepaid, _ := facts.Lookup(models.DocumentTypeBalanceSheet, models.AccPrepaidExpenses)
		return utils.SafeDiv(ca.Sub(inventory).Sub(prepaid), cl, 4)
	}
	return decimal.Zero, false
}

// annualNOI prefers the precomputed NOI line and falls back to total income
// less operating expenses. Monthly statements are annualized x12.
func annualNOI(facts *models.FactSnapshot) (decimal.Decimal, bool) {
	noi, ok := facts.Lookup(models.DocumentTypeIncomeStatement, models.AccNetOperatingIncome)
	if !ok {
		income, iok := facts.Lookup(models.DocumentTypeIncomeStatement, models.AccTotalIncome)
		expense, eok := facts.Lookup(models.DocumentTypeIncomeStatement, models.AccTotalOperatingExpense)
		if !iok || !eok {
			return decimal.Zero, false
		}
		noi = income.Sub(expense)
	}
	if facts.IsMonthly() {
		noi = noi.Mul(twelve)
	}
	return noi, true
}

// annualDebtService resolves the annual obligation in priority order:
// reported annual figure, monthly payment x12, cash flow debt service paid.
func annualDebtService(facts *models.FactSnapshot) (decimal.Decimal, bool) {
	if ds, ok := facts.Lookup(models.DocumentTypeMortgageStatement, models.AccAnnualDebtService); ok {
		return ds, true
	}
	if monthly, ok := facts.Lookup(models.DocumentTypeMortgageStatement, models.AccMonthlyPayment); ok {
		return monthly.Mul(twelve), true
	}
	if paid, ok := facts.Lookup(models.DocumentTypeCashFlow, models.AccDebtServicePaid); ok {
		paid = paid.Abs()
		if facts.IsMonthly() {
			paid = paid.Mul(twelve)
		}
		return paid, true
	}
	return decimal.Zero, false
}

func annualInterest(facts *models.FactSnapshot) (decimal.Decimal, bool) {
	if interest, ok := facts.Lookup(models.DocumentTypeIncomeStatement, models.AccInterestExpense); ok {
		if facts.IsMonthly() {
			interest = interest.Mul(twelve)
		}
		return interest, true
	}
	if portion, ok := facts.Lookup(models.DocumentTypeMortgageStatement, models.AccInterestPortion); ok {
		return portion.Mul(twelve), true
	}
	return decimal.Zero, false
}

// trendEpsilonPct classifies movement against the prior mean: under 2% either
// way is STABLE.
var trendEpsilonPct = decimal.NewFromInt(2)

// resolveTrend compares the current value against the same metric over up to
// three prior periods. With fewer than two data points (current included)
// trend is STABLE by definition; a single point cannot establish direction
// and reporting stable avoids spurious alerting on the first period.
func resolveTrend(name models.MetricName, current decimal.Decimal, priors []*models.FactSnapshot) models.Trend {
	var history []decimal.Decimal
	for i, p := range priors {
		if i >= 3 {
			break
		}
		if v, ok := computeMetricValue(name, p); ok {
			history = append(history, v)
		}
	}
	if len(history) == 0 {
		return models.TrendStable
	}

	sum := decimal.Zero
	for _, v := range history {
		sum = sum.Add(v)
	}
	mean := sum.DivRound(decimal.NewFromInt(int64(len(history))), 6)
	if mean.IsZero() {
		return models.TrendStable
	}

	deltaPct := current.Sub(mean).DivRound(mean.Abs(), 6).Mul(decimal.NewFromInt(100))
	switch {
	case deltaPct.GreaterThan(trendEpsilonPct):
		return models.TrendUp
	case deltaPct.LessThan(trendEpsilonPct.Neg()):
		return models.TrendDown
	default:
		return models.TrendStable
	}
}
