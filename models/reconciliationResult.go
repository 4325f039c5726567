package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationResult is the outcome of one rule against one snapshot.
// Created fresh on every run; a re-audit replaces the prior set for the
// (property, period), rows are never updated in place.
//
// Invariant: Difference = SourceValue - TargetValue, and Status is a pure
// function of (difference, tolerance, severity).
type ReconciliationResult struct {
	ID          int             `gorm:"primary_key" json:"id"`
	PropertyId  string          `gorm:"size:64;index:idx_result_prop_period;not null" json:"property_id"`
	PeriodId    string          `gorm:"size:64;index:idx_result_prop_period;not null" json:"period_id"`
	RuleId      string          `gorm:"size:32;index;not null" json:"rule_id"`
	RuleName    string          `gorm:"size:255" json:"rule_name"`
	Category    RuleCategory    `gorm:"size:32" json:"category"`
	Status      ResultStatus    `gorm:"size:16;not null" json:"status"`
	Severity    Severity        `gorm:"size:16;not null" json:"severity"`
	SourceValue decimal.Decimal `gorm:"type:decimal(20,4)" json:"source_value"`
	TargetValue decimal.Decimal `gorm:"type:decimal(20,4)" json:"target_value"`
	Difference  decimal.Decimal `gorm:"type:decimal(20,4)" json:"difference"`
	VariancePct decimal.Decimal `gorm:"type:decimal(12,4)" json:"variance_pct"`
	Explanation string          `gorm:"type:text" json:"explanation"`
	AuditRunId  string          `gorm:"size:64;index" json:"audit_run_id"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// IsMaterial reports whether a failed result crosses the materiality bar used
// by the traffic light: an absolute difference of 1,000 or more, or an
// absolute variance of one percent or more.
func (r *ReconciliationResult) IsMaterial() bool {
	if r.Status != ResultStatusFail {
		return false
	}
	one := decimal.NewFromInt(1)
	return r.VariancePct.Abs().GreaterThanOrEqual(one) || r.Difference.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000))
}
