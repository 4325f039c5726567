package workflow

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

type factSpec struct {
	doc    models.DocumentType
	code   string
	amount float64
}

func snapshot(propertyId, periodId string, periodDays int, specs ...factSpec) *models.FactSnapshot {
	facts := make([]models.FinancialFact, 0, len(specs))
	for _, s := range specs {
		facts = append(facts, models.FinancialFact{
			PropertyId:   propertyId,
			PeriodId:     periodId,
			DocumentType: s.doc,
			AccountCode:  s.code,
			Amount:       d(s.amount),
		})
	}
	return models.NewFactSnapshot(propertyId, periodId, periodDays, facts)
}

// annualBalanceSheet builds a minimal internally-consistent balance sheet
// snapshot over a full year.
func annualBalanceSheet(assets, liabilities, equity float64) *models.FactSnapshot {
	return snapshot("prop-1", "2026-FY", 365,
		factSpec{models.DocumentTypeBalanceSheet, models.AccTotalAssets, assets},
		factSpec{models.DocumentTypeBalanceSheet, models.AccTotalLiabilities, liabilities},
		factSpec{models.DocumentTypeBalanceSheet, models.AccTotalEquity, equity},
	)
}

func findResult(results []models.ReconciliationResult, ruleId string) *models.ReconciliationResult {
	for i := range results {
		if results[i].RuleId == ruleId {
			return &results[i]
		}
	}
	return nil
}

func balanceEquationRule() models.ReconciliationRule {
	c := models.MustDefaultRuleCatalog()
	r, ok := c.Get("BS-1")
	if !ok {
		panic("BS-1 missing from catalog")
	}
	return r
}
