package workflow

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

// warningBandPct is the compliant-side band treated as YELLOW: within 5% of
// the threshold a metric is compliant but warned. A value exactly at the
// threshold is compliant and YELLOW.
var warningBandPct = decimal.NewFromFloat(0.05)

// ResolveCovenantStatus is a memoryless state machine per metric: the status
// depends only on the current value versus the threshold bands. Flapping
// between bands across periods is expected and surfaces via trend, it is
// never suppressed here. InCompliance false is reserved strictly for RED.
func ResolveCovenantStatus(name models.MetricName, value, threshold decimal.Decimal) (models.CovenantStatus, bool) {
	band := threshold.Abs().Mul(warningBandPct)

	if name.Direction() == models.ComparisonLTE {
		switch {
		case value.GreaterThan(threshold):
			return models.CovenantStatusRed, false
		case value.GreaterThanOrEqual(threshold.Sub(band)):
			return models.CovenantStatusYellow, true
		default:
			return models.CovenantStatusGreen, true
		}
	}

	switch {
	case value.LessThan(threshold):
		return models.CovenantStatusRed, false
	case value.LessThanOrEqual(threshold.Add(band)):
		return models.CovenantStatusYellow, true
	default:
		return models.CovenantStatusGreen, true
	}
}

// dscr band cutoffs; other >= metrics scale off the covenant threshold, LTV
// mirrors the direction.
var (
	dscrStrong   = decimal.NewFromFloat(1.50)
	dscrAdequate = decimal.NewFromFloat(1.25)
	dscrWarning  = decimal.NewFromFloat(1.10)
	dscrCritical = decimal.NewFromFloat(1.00)
)

// ClassifyBand maps a metric value to its five-tier band.
func ClassifyBand(name models.MetricName, value, threshold decimal.Decimal) models.RatioBand {
	if name == models.MetricDSCR {
		switch {
		case value.GreaterThanOrEqual(dscrStrong):
			return models.BandStrong
		case value.GreaterThanOrEqual(dscrAdequate):
			return models.BandAdequate
		case value.GreaterThanOrEqual(dscrWarning):
			return models.BandWarning
		case value.GreaterThanOrEqual(dscrCritical):
			return models.BandCritical
		default:
			return models.BandDefaultRisk
		}
	}

	// Mirrored thresholds for the rest: bands at 120%, 100%, 90%, 80% of the
	// covenant threshold, direction-aware.
	pct := func(f float64) decimal.Decimal { return threshold.Mul(decimal.NewFromFloat(f)) }
	if name.Direction() == models.ComparisonLTE {
		switch {
		case value.LessThanOrEqual(pct(0.80)):
			return models.BandStrong
		case value.LessThanOrEqual(threshold):
			return models.BandAdequate
		case value.LessThanOrEqual(pct(1.10)):
			return models.BandWarning
		case value.LessThanOrEqual(pct(1.20)):
			return models.BandCritical
		default:
			return models.BandDefaultRisk
		}
	}
	switch {
	case value.GreaterThanOrEqual(pct(1.20)):
		return models.BandStrong
	case value.GreaterThanOrEqual(threshold):
		return models.BandAdequate
	case value.GreaterThanOrEqual(pct(0.90)):
		return models.BandWarning
	case value.GreaterThanOrEqual(pct(0.80)):
		return models.BandCritical
	default:
		return models.BandDefaultRisk
	}
}
