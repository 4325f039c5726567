package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CovenantMetric is one computed ratio against its resolved covenant
// threshold.
//
// Invariant: InCompliance is true iff Value satisfies the threshold in the
// metric's direction (>= for DSCR/ICR/liquidity, <= for LTV). A value exactly
// at the threshold is compliant but lands YELLOW where a warning band exists.
type CovenantMetric struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PropertyId string          `gorm:"size:64;index:idx_metric_prop_period;not null" json:"property_id"`
	PeriodId   string          `gorm:"size:64;index:idx_metric_prop_period;not null" json:"period_id"`
	MetricName MetricName      `gorm:"size:32;not null" json:"metric_name"`
	Value      decimal.Decimal `gorm:"type:decimal(12,4)" json:"value"`
	Threshold  decimal.Decimal `gorm:"type:decimal(12,4)" json:"covenant_threshold"`

	// Cushion is Value-Threshold for >= metrics and Threshold-Value for <=
	// metrics, so positive always means headroom. CushionPct expresses it
	// relative to the threshold; lenders reason in both terms.
	Cushion    decimal.Decimal `gorm:"type:decimal(12,4)" json:"cushion"`
	CushionPct decimal.Decimal `gorm:"type:decimal(12,4)" json:"cushion_pct"`

	Status       CovenantStatus `gorm:"size:16;not null" json:"status"`
	Band         RatioBand      `gorm:"size:16;not null" json:"band"`
	Trend        Trend          `gorm:"size:16;not null" json:"trend"`
	InCompliance bool           `json:"in_compliance"`
	AuditRunId   string         `gorm:"size:64;index" json:"audit_run_id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// RatioBand is the five-tier classification lenders use alongside the
// traffic-light status.
type RatioBand string

const (
	BandStrong      RatioBand = "Strong"
	BandAdequate    RatioBand = "Adequate"
	BandWarning     RatioBand = "Warning"
	BandCritical    RatioBand = "Critical"
	BandDefaultRisk RatioBand = "DefaultRisk"
)

// CovenantThresholds is the per-metric threshold set after three-tier
// resolution (property override -> configured default -> fallback constant).
type CovenantThresholds struct {
	DSCR         decimal.Decimal `validate:"required"`
	LTV          decimal.Decimal `validate:"required"`
	ICR          decimal.Decimal `validate:"required"`
	CurrentRatio decimal.Decimal `validate:"required"`
	QuickRatio   decimal.Decimal `validate:"required"`
}

func (t CovenantThresholds) For(m MetricName) decimal.Decimal {
	switch m {
	case MetricDSCR:
		return t.DSCR
	case MetricLTV:
		return t.LTV
	case MetricICR:
		return t.ICR
	case MetricCurrentRatio:
		return t.CurrentRatio
	case MetricQuickRatio:
		return t.QuickRatio
	}
	return decimal.Zero
}

// Hard-coded fallback constants, the last tier of threshold resolution.
// Portfolio-typical CRE loan covenants.
var FallbackCovenantThresholds = CovenantThresholds{
	DSCR:         decimal.NewFromFloat(1.25),
	LTV:          decimal.NewFromFloat(0.75),
	ICR:          decimal.NewFromFloat(1.50),
	CurrentRatio: decimal.NewFromFloat(1.00),
	QuickRatio:   decimal.NewFromFloat(0.80),
}

// CovenantOverride is one per-property threshold override row. Individual
// loan covenants differ from the portfolio default without code changes.
type CovenantOverride struct {
	ID         int             `gorm:"primary_key" json:"id"`
	PropertyId string          `gorm:"size:64;index;not null" json:"property_id" validate:"required"`
	MetricName MetricName      `gorm:"size:32;not null" json:"metric_name" validate:"required,oneof=DSCR LTV ICR CurrentRatio QuickRatio"`
	Threshold  decimal.Decimal `gorm:"type:decimal(12,4)" json:"threshold"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// CovenantConfig carries the configured defaults plus any per-property
// overrides for the property under audit.
type CovenantConfig struct {
	Defaults  *CovenantThresholds
	Overrides []CovenantOverride
}

// ResolveThresholds applies the three-tier resolution for one property.
func (c CovenantConfig) ResolveThresholds(propertyId string) CovenantThresholds {
	resolved := FallbackCovenantThresholds
	if c.Defaults != nil {
		resolved = *c.Defaults
	}
	for _, o := range c.Overrides {
		if o.PropertyId != propertyId {
			continue
		}
		switch o.MetricName {
		case MetricDSCR:
			resolved.DSCR = o.Threshold
		case MetricLTV:
			resolved.LTV = o.Threshold
		case MetricICR:
			resolved.ICR = o.Threshold
		case MetricCurrentRatio:
			resolved.CurrentRatio = o.Threshold
		case MetricQuickRatio:
			resolved.QuickRatio = o.Threshold
		}
	}
	return resolved
}
