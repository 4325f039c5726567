package workflow

import (
	"testing"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

func findMetric(metrics []models.CovenantMetric, name models.MetricName) *models.CovenantMetric {
	for i := range metrics {
		if metrics[i].MetricName == name {
			return &metrics[i]
		}
	}
	return nil
}

func TestDSCR_Healthy(t *testing.T) {
	// NOI (annual) 500,000 / debt service 350,000 at threshold 1.25.
	facts := snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeIncomeStatement, models.AccNetOperatingIncome, 500000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccAnnualDebtService, 350000},
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)

	m := findMetric(metrics, models.MetricDSCR)
	if m == nil {
		t.Fatal("DSCR metric missing")
	}
	if m.Value.StringFixed(2) != "1.43" {
		t.Fatalf("expected DSCR 1.43, got %s", m.Value.StringFixed(2))
	}
	if m.Status != models.CovenantStatusGreen {
		t.Fatalf("expected GREEN, got %s", m.Status)
	}
	if m.Cushion.StringFixed(2) != "0.18" {
		t.Fatalf("expected cushion 0.18, got %s", m.Cushion.StringFixed(2))
	}
	if m.Band != models.BandAdequate {
		t.Fatalf("DSCR 1.43 sits in the adequate band, got %s", m.Band)
	}
	if !m.InCompliance {
		t.Fatal("expected in_compliance=true")
	}
	if m.Trend != models.TrendStable {
		t.Fatalf("no history: trend must be STABLE, got %s", m.Trend)
	}
}

func TestDSCR_Breach(t *testing.T) {
	facts := snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeIncomeStatement, models.AccNetOperatingIncome, 300000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccAnnualDebtService, 350000},
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)

	m := findMetric(metrics, models.MetricDSCR)
	if m.Value.StringFixed(3) != "0.857" {
		t.Fatalf("expected DSCR 0.857, got %s", m.Value.StringFixed(3))
	}
	if m.Status != models.CovenantStatusRed {
		t.Fatalf("expected RED, got %s", m.Status)
	}
	if m.InCompliance {
		t.Fatal("expected in_compliance=false")
	}
	if m.Band != models.BandDefaultRisk {
		t.Fatal("sub-1.0 DSCR must classify as default risk")
	}
}

func TestDSCR_AtThreshold_YellowButCompliant(t *testing.T) {
	facts := snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeIncomeStatement, models.AccNetOperatingIncome, 437500}, // exactly 1.25x
		factSpec{models.DocumentTypeMortgageStatement, models.AccAnnualDebtService, 350000},
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)

	m := findMetric(metrics, models.MetricDSCR)
	if m.Status != models.CovenantStatusYellow {
		t.Fatalf("value exactly at threshold must be YELLOW, got %s", m.Status)
	}
	if !m.InCompliance {
		t.Fatal("value exactly at threshold is compliant")
	}
	if m.Band != models.BandAdequate {
		t.Fatalf("DSCR at 1.25 is the adequate band floor, got %s", m.Band)
	}
}

func TestDSCR_NOIFallback_AndAnnualization(t *testing.T) {
	// Monthly statement without a precomputed NOI line: NOI falls back to
	// income-expenses and annualizes x12. (45,000-20,000)*12 = 300,000.
	facts := snapshot("prop-1", "2026-07", 31,
		factSpec{models.DocumentTypeIncomeStatement, models.AccTotalIncome, 45000},
		factSpec{models.DocumentTypeIncomeStatement, models.AccTotalOperatingExpense, 20000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccMonthlyPayment, 20000}, // 240,000/yr
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)

	m := findMetric(metrics, models.MetricDSCR)
	if m == nil {
		t.Fatal("DSCR metric missing")
	}
	if m.Value.StringFixed(2) != "1.25" {
		t.Fatalf("expected DSCR 1.25 from fallback NOI, got %s", m.Value.StringFixed(2))
	}
}

func TestDSCR_ZeroDebtService_MetricOmitted(t *testing.T) {
	facts := snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeIncomeStatement, models.AccNetOperatingIncome, 500000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccAnnualDebtService, 0},
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)
	if findMetric(metrics, models.MetricDSCR) != nil {
		t.Fatal("zero debt service: DSCR must be omitted, never Inf")
	}
}

func TestLTV_DirectionReversed(t *testing.T) {
	facts := snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeMortgageStatement, models.AccLoanBalance, 6000000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccPropertyValue, 10000000},
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)

	m := findMetric(metrics, models.MetricLTV)
	if m.Value.StringFixed(2) != "0.60" {
		t.Fatalf("expected LTV 0.60, got %s", m.Value.StringFixed(2))
	}
	// 0.60 against a 0.75 ceiling: compliant with headroom.
	if m.Status != models.CovenantStatusGreen || !m.InCompliance {
		t.Fatalf("expected GREEN compliant, got %s/%v", m.Status, m.InCompliance)
	}
	if m.Cushion.StringFixed(2) != "0.15" {
		t.Fatalf("LTV cushion must be threshold-value, got %s", m.Cushion.StringFixed(2))
	}
}

func TestLTV_OverLeveraged(t *testing.T) {
	facts := snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeMortgageStatement, models.AccLoanBalance, 8000000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccPropertyValue, 10000000},
	)
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)

	m := findMetric(metrics, models.MetricLTV)
	if m.Status != models.CovenantStatusRed || m.InCompliance {
		t.Fatalf("LTV 0.80 over 0.75 ceiling must be RED non-compliant, got %s/%v", m.Status, m.InCompliance)
	}
}

func TestCovenantOverride_ThreeTierResolution(t *testing.T) {
	cfg := models.CovenantConfig{
		Overrides: []models.CovenantOverride{
			{PropertyId: "prop-1", MetricName: models.MetricDSCR, Threshold: d(1.40)},
			{PropertyId: "prop-other", MetricName: models.MetricDSCR, Threshold: d(2.00)},
		},
	}
	resolved := cfg.ResolveThresholds("prop-1")
	if resolved.DSCR.StringFixed(2) != "1.40" {
		t.Fatalf("override must win: got %s", resolved.DSCR.StringFixed(2))
	}
	// Un-overridden metrics fall through to the fallback constant.
	if resolved.LTV.StringFixed(2) != "0.75" {
		t.Fatalf("fallback must apply: got %s", resolved.LTV.StringFixed(2))
	}

	// Configured defaults sit between overrides and fallback.
	defaults := models.FallbackCovenantThresholds
	defaults.LTV = d(0.70)
	cfg.Defaults = &defaults
	resolved = cfg.ResolveThresholds("prop-1")
	if resolved.LTV.StringFixed(2) != "0.70" {
		t.Fatalf("configured default must win over fallback: got %s", resolved.LTV.StringFixed(2))
	}
	if resolved.DSCR.StringFixed(2) != "1.40" {
		t.Fatalf("override must still win over defaults: got %s", resolved.DSCR.StringFixed(2))
	}
}

func TestTrend_RequiresTwoPoints(t *testing.T) {
	facts := snapshot("prop-1", "2026-07", 31,
		factSpec{models.DocumentTypeBalanceSheet, models.AccCurrentAssets, 300000},
		factSpec{models.DocumentTypeBalanceSheet, models.AccCurrentLiabilities, 200000},
	)

	// No priors at all: STABLE by definition, not UNKNOWN.
	metrics := ComputeCovenantMetrics(facts, nil, models.FallbackCovenantThresholds)
	if m := findMetric(metrics, models.MetricCurrentRatio); m.Trend != models.TrendStable {
		t.Fatalf("single data point must be STABLE, got %s", m.Trend)
	}

	// A prior with a clearly higher ratio: DOWN.
	prior := snapshot("prop-1", "2026-06", 30,
		factSpec{models.DocumentTypeBalanceSheet, models.AccCurrentAssets, 500000},
		factSpec{models.DocumentTypeBalanceSheet, models.AccCurrentLiabilities, 200000},
	)
	metrics = ComputeCovenantMetrics(facts, []*models.FactSnapshot{prior}, models.FallbackCovenantThresholds)
	if m := findMetric(metrics, models.MetricCurrentRatio); m.Trend != models.TrendDown {
		t.Fatalf("expected DOWN, got %s", m.Trend)
	}
}
