package workflow

import (
	"fmt"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

// maxPriorityRisks caps the ranked list on the scorecard.
const maxPriorityRisks = 10

// BuildPriorityRisks ranks findings: failed rules plus warned or breached
// covenants, stable-sorted by severity then |financial impact| descending,
// capped at the top N.
func BuildPriorityRisks(results []models.ReconciliationResult, metrics []models.CovenantMetric) []models.PriorityRisk {
	var risks []models.PriorityRisk

	for i := range results {
		r := &results[i]
		if r.Status != models.ResultStatusFail {
			continue
		}
		risks = append(risks, models.PriorityRisk{
			RiskLevel: riskLevelForSeverity(r.Severity),
			Severity:  r.Severity,
			Category:  r.Category,
			RuleId:    r.RuleId,
			Title:     r.RuleName,
			Detail:    r.Explanation,
			Impact:    r.Difference.Abs(),
		})
	}

	for _, m := range metrics {
		if m.Status == models.CovenantStatusGreen {
			continue
		}
		sev := models.SeverityHigh
		level := models.RiskLevelModerate
		if m.Status == models.CovenantStatusRed {
			sev = models.SeverityCritical
			level = models.RiskLevelHigh
		}
		risks = append(risks, models.PriorityRisk{
			RiskLevel:  level,
			Severity:   sev,
			Category:   models.RuleCategoryCrossStatement,
			MetricName: m.MetricName,
			Title:      fmt.Sprintf("%s covenant %s", m.MetricName, m.Status),
			Detail: fmt.Sprintf("%s at %s against covenant %s, cushion %s (%s%%)",
				m.MetricName, m.Value.StringFixed(4), m.Threshold.StringFixed(4),
				m.Cushion.StringFixed(4), m.CushionPct.StringFixed(2)),
			Impact: m.Cushion.Neg(),
		})
	}

	sort.SliceStable(risks, func(a, b int) bool {
		if risks[a].Severity.Rank() != risks[b].Severity.Rank() {
			return risks[a].Severity.Rank() < risks[b].Severity.Rank()
		}
		return risks[a].Impact.Abs().GreaterThan(risks[b].Impact.Abs())
	})

	if len(risks) > maxPriorityRisks {
		risks = risks[:maxPriorityRisks]
	}
	for i := range risks {
		risks[i].Rank = i + 1
	}
	return risks
}

// BuildActionItems derives one remediation item per risk. Priority inherits
// the risk level (HIGH->URGENT, MODERATE->HIGH, LOW->MEDIUM); the due-date
// offset is a function of severity: critical reconciliation failures carry a
// 7-day SLA, covenant warnings 90 days.
func BuildActionItems(risks []models.PriorityRisk, now time.Time) []models.ActionItem {
	items := make([]models.ActionItem, 0, len(risks))
	for _, r := range risks {
		items = append(items, models.ActionItem{
			Priority:  priorityForRiskLevel(r.RiskLevel),
			OwnerRole: ownerRoleFor(r),
			Title:     "Resolve: " + r.Title,
			Detail:    r.Detail,
			DueDate:   now.Add(dueOffsetFor(r)),
		})
	}
	return items
}

func riskLevelForSeverity(s models.Severity) models.RiskLevel {
	switch s {
	case models.SeverityCritical, models.SeverityHigh:
		return models.RiskLevelHigh
	case models.SeverityMedium:
		return models.RiskLevelModerate
	default:
		return models.RiskLevelLow
	}
}

func priorityForRiskLevel(l models.RiskLevel) models.ActionPriority {
	switch l {
	case models.RiskLevelHigh:
		return models.ActionPriorityUrgent
	case models.RiskLevelModerate:
		return models.ActionPriorityHigh
	default:
		return models.ActionPriorityMedium
	}
}

func dueOffsetFor(r models.PriorityRisk) time.Duration {
	const day = 24 * time.Hour
	if r.MetricName != "" {
		// Covenant findings: breaches escalate fast, warnings get a quarter.
		if r.Severity == models.SeverityCritical {
			return 7 * day
		}
		return 90 * day
	}
	switch r.Severity {
	case models.SeverityCritical:
		return 7 * day
	case models.SeverityHigh:
		return 14 * day
	case models.SeverityMedium:
		return 30 * day
	default:
		return 60 * day
	}
}

func ownerRoleFor(r models.PriorityRisk) string {
	if r.MetricName != "" {
		return "Asset Manager"
	}
	switch r.Category {
	case models.RuleCategoryBalanceSheet, models.RuleCategoryCrossStatement:
		return "Controller"
	case models.RuleCategoryMortgage:
		return "Asset Manager"
	case models.RuleCategoryRentRoll:
		return "Property Manager"
	default:
		return "Property Accountant"
	}
}

// GenerateScorecard composes the final report object from one run's outputs.
func GenerateScorecard(facts *models.FactSnapshot, results []models.ReconciliationResult, metrics []models.CovenantMetric, signals models.ExternalSignals, catalog *models.RuleCatalog, now time.Time) *models.AuditScorecard {
	score, breakdown := ComputeHealthScore(results, metrics, signals, catalog)
	risks := BuildPriorityRisks(results, metrics)

	return &models.AuditScorecard{
		PropertyId:    facts.PropertyId,
		PeriodId:      facts.PeriodId,
		CatalogVer:    catalog.Version(),
		HealthScore:   score,
		TrafficLight:  ResolveTrafficLight(results, metrics),
		AuditOpinion:  SynthesizeOpinion(results, metrics),
		Breakdown:     breakdown,
		PriorityRisks: risks,
		ActionItems:   BuildActionItems(risks, now),
		Results:       results,
		Metrics:       metrics,
		GeneratedAt:   now,
	}
}
