package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriorityRisk is one ranked finding on the scorecard. The list is stably
// sorted by severity then |financial impact|, capped at the generator's top-N.
type PriorityRisk struct {
	Rank        int             `json:"rank"`
	RiskLevel   RiskLevel       `json:"risk_level"`
	Severity    Severity        `json:"severity"`
	Category    RuleCategory    `json:"category"`
	RuleId      string          `json:"rule_id,omitempty"`
	MetricName  MetricName      `json:"metric_name,omitempty"`
	Title       string          `json:"title"`
	Detail      string          `json:"detail"`
	Impact      decimal.Decimal `json:"financial_impact"`
}

// ActionItem is the remediation entry derived from one priority risk.
type ActionItem struct {
	Priority  ActionPriority `json:"priority"`
	OwnerRole string         `json:"owner_role"`
	Title     string         `json:"title"`
	Detail    string         `json:"detail"`
	DueDate   time.Time      `json:"due_date"`
}

// HealthScoreBreakdown records the five weighted components behind the 0-100
// score, so the number stays explainable.
type HealthScoreBreakdown struct {
	MathematicalIntegrity decimal.Decimal `json:"mathematical_integrity"` // of 20
	CrossDocument         decimal.Decimal `json:"cross_document"`         // of 25
	FraudAnomaly          decimal.Decimal `json:"fraud_anomaly"`          // of 20
	CovenantCompliance    decimal.Decimal `json:"covenant_compliance"`    // of 20
	CollectionsQuality    decimal.Decimal `json:"collections_quality"`    // of 15
}

// AuditScorecard is the top-level aggregate: one per (property, period)
// audit invocation, always written atomically as a whole (upsert), never
// partially mutated.
type AuditScorecard struct {
	ID           int          `gorm:"primary_key" json:"id"`
	PropertyId   string       `gorm:"size:64;uniqueIndex:uniq_scorecard_prop_period;not null" json:"property_id"`
	PeriodId     string       `gorm:"size:64;uniqueIndex:uniq_scorecard_prop_period;not null" json:"period_id"`
	AuditRunId   string       `gorm:"size:64;index" json:"audit_run_id"`
	CatalogVer   string       `gorm:"size:32" json:"catalog_version"`
	HealthScore  int          `json:"health_score"`
	TrafficLight TrafficLight `gorm:"size:16" json:"traffic_light"`
	AuditOpinion AuditOpinion `gorm:"size:16" json:"audit_opinion"`

	Breakdown     HealthScoreBreakdown `gorm:"serializer:json" json:"health_score_breakdown"`
	PriorityRisks []PriorityRisk       `gorm:"serializer:json" json:"priority_risks"`
	ActionItems   []ActionItem         `gorm:"serializer:json" json:"action_items"`

	// Owned by composition: the full result/metric set of this run.
	Results []ReconciliationResult `gorm:"-" json:"results"`
	Metrics []CovenantMetric       `gorm:"-" json:"covenant_metrics"`

	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ExternalSignals are inputs the engine does not compute itself but weighs in
// the health score: the fraud/anomaly risk level from the anomaly service and
// the 0-100 collections quality score from the collections analysis. Nil
// pointers mean "analysis absent" and default to full component credit.
type ExternalSignals struct {
	FraudRiskLevel     *RiskLevel
	CollectionsQuality *decimal.Decimal // 0-100
}
