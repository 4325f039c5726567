package workflow

import (
	"bitbucket.org/mmdatafocus/audit_backend/models"
)

// SynthesizeOpinion is a decision table, evaluated in precedence order:
//
//	ADVERSE    critical failure count >= 2 OR any covenant RED
//	QUALIFIED  critical failure count == 1
//	UNQUALIFIED otherwise
//
// The opinion must stay explainable by enumerable cause; a weighted or
// blended score never substitutes for this table.
func SynthesizeOpinion(results []models.ReconciliationResult, metrics []models.CovenantMetric) models.AuditOpinion {
	criticalFails := 0
	for i := range results {
		r := &results[i]
		if r.Severity == models.SeverityCritical && r.Status == models.ResultStatusFail {
			criticalFails++
		}
	}
	covenantRed := false
	for _, m := range metrics {
		if m.Status == models.CovenantStatusRed {
			covenantRed = true
			break
		}
	}

	switch {
	case criticalFails >= 2 || covenantRed:
		return models.AuditOpinionAdverse
	case criticalFails == 1:
		return models.AuditOpinionQualified
	default:
		return models.AuditOpinionUnqualified
	}
}
