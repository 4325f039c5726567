package workflow

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

// Health score component weights.
var (
	weightMathIntegrity = decimal.NewFromInt(20)
	weightCrossDocument = decimal.NewFromInt(25)
	weightFraudAnomaly  = decimal.NewFromInt(20)
	weightCovenant      = decimal.NewFromInt(20)
	weightCollections   = decimal.NewFromInt(15)
)

// ResolveTrafficLight rolls results and metrics into one light. RED
// conditions are checked first and short-circuit.
func ResolveTrafficLight(results []models.ReconciliationResult, metrics []models.CovenantMetric) models.TrafficLight {
	for i := range results {
		r := &results[i]
		if r.Severity == models.SeverityCritical && r.Status == models.ResultStatusFail && r.IsMaterial() {
			return models.TrafficLightRed
		}
	}
	for _, m := range metrics {
		if m.Status == models.CovenantStatusRed {
			return models.TrafficLightRed
		}
	}

	for _, m := range metrics {
		if m.Status == models.CovenantStatusYellow {
			return models.TrafficLightYellow
		}
	}
	for i := range results {
		if results[i].Status == models.ResultStatusFail {
			return models.TrafficLightYellow
		}
	}
	return models.TrafficLightGreen
}

// ComputeHealthScore builds the 0-100 score from five weighted components.
// Missing component data (no evaluable rules, no metrics, absent external
// signals) defaults to full credit for that component rather than zero, so a
// property is not penalized for analyses that were never run.
func ComputeHealthScore(results []models.ReconciliationResult, metrics []models.CovenantMetric, signals models.ExternalSignals, catalog *models.RuleCatalog) (int, models.HealthScoreBreakdown) {
	b := models.HealthScoreBreakdown{
		MathematicalIntegrity: mathIntegrityComponent(results, catalog),
		CrossDocument:         crossDocumentComponent(results),
		FraudAnomaly:          fraudComponent(signals.FraudRiskLevel),
		CovenantCompliance:    covenantComponent(metrics),
		CollectionsQuality:    collectionsComponent(signals.CollectionsQuality),
	}

	total := b.MathematicalIntegrity.
		Add(b.CrossDocument).
		Add(b.FraudAnomaly).
		Add(b.CovenantCompliance).
		Add(b.CollectionsQuality)

	score := int(total.Round(0).IntPart())
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, b
}

// mathIntegrityComponent is pass/fail: any failed equation rule zeroes it.
func mathIntegrityComponent(results []models.ReconciliationResult, catalog *models.RuleCatalog) decimal.Decimal {
	for i := range results {
		r := &results[i]
		rule, ok := catalog.Get(r.RuleId)
		if !ok || rule.Shape != models.RuleShapeEquation {
			continue
		}
		if r.Status == models.ResultStatusFail {
			return decimal.Zero
		}
	}
	return weightMathIntegrity
}

// crossDocumentComponent is pass-rate x 25 over evaluated cross-statement
// rules. SKIP and INFO rows carry no signal and are excluded; with nothing
// evaluated the component earns full credit.
func crossDocumentComponent(results []models.ReconciliationResult) decimal.Decimal {
	var passed, evaluated int
	for i := range results {
		r := &results[i]
		if r.Category != models.RuleCategoryCrossStatement {
			continue
		}
		switch r.Status {
		case models.ResultStatusPass:
			passed++
			evaluated++
		case models.ResultStatusWarning, models.ResultStatusFail:
			evaluated++
		}
	}
	if evaluated == 0 {
		return weightCrossDocument
	}
	return decimal.NewFromInt(int64(passed)).
		DivRound(decimal.NewFromInt(int64(evaluated)), 6).
		Mul(weightCrossDocument).Round(2)
}

func fraudComponent(level *models.RiskLevel) decimal.Decimal {
	if level == nil {
		return weightFraudAnomaly
	}
	switch *level {
	case models.RiskLevelHigh:
		return decimal.Zero
	case models.RiskLevelModerate:
		return decimal.NewFromInt(10)
	default:
		return weightFraudAnomaly
	}
}

// covenantComponent bands on the worst metric status: GREEN 20, YELLOW 12,
// RED 0.
func covenantComponent(metrics []models.CovenantMetric) decimal.Decimal {
	if len(metrics) == 0 {
		return weightCovenant
	}
	worst := models.CovenantStatusGreen
	for _, m := range metrics {
		if m.Status == models.CovenantStatusRed {
			worst = models.CovenantStatusRed
			break
		}
		if m.Status == models.CovenantStatusYellow {
			worst = models.CovenantStatusYellow
		}
	}
	switch worst {
	case models.CovenantStatusRed:
		return decimal.Zero
	case models.CovenantStatusYellow:
		return decimal.NewFromInt(12)
	default:
		return weightCovenant
	}
}

func collectionsComponent(quality *decimal.Decimal) decimal.Decimal {
	if quality == nil {
		return weightCollections
	}
	q := *quality
	if q.LessThan(decimal.Zero) {
		q = decimal.Zero
	}
	if q.GreaterThan(decimal.NewFromInt(100)) {
		q = decimal.NewFromInt(100)
	}
	return q.DivRound(decimal.NewFromInt(100), 6).Mul(weightCollections).Round(2)
}
