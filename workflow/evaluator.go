package workflow

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/audit_backend/models"
	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

// warnBandFactor widens a rule's tolerance bound into a WARNING band: a
// breach inside factor x bound reports WARNING, beyond it FAIL.
var warnBandFactor = decimal.NewFromInt(2)

// thresholdWarnPct is the warning margin on threshold rules with a non-zero
// bound: a breach within 5% of the bound is a WARNING.
var thresholdWarnPct = decimal.NewFromFloat(0.05)

// Evaluate runs the full catalog against one snapshot. Rule evaluations are
// pure and independent, so they fan out across goroutines; results fan in and
// are sorted by rule_id so re-runs are byte-identical for persistence and
// diffing.
func Evaluate(rules []models.ReconciliationRule, facts *models.FactSnapshot, priorFacts *models.FactSnapshot) []models.ReconciliationResult {
	results := make([]models.ReconciliationResult, len(rules))

	workers := evalWorkers
	if workers > len(rules) {
		workers = len(rules)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = evaluateRule(rules[i], facts, priorFacts)
			}
		}()
	}
	for i := range rules {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].RuleId < results[b].RuleId
	})
	return results
}

const evalWorkers = 8

func evaluateRule(r models.ReconciliationRule, facts *models.FactSnapshot, prior *models.FactSnapshot) models.ReconciliationResult {
	res := models.ReconciliationResult{
		PropertyId: facts.PropertyId,
		PeriodId:   facts.PeriodId,
		RuleId:     r.RuleId,
		RuleName:   r.Name,
		Category:   r.Category,
		Severity:   r.Severity,
	}

	if r.MetaRule && !facts.HasAllDocuments() {
		res.Status = models.ResultStatusSkip
		res.Explanation = "document set incomplete; rule requires all five documents"
		return res
	}

	switch r.Shape {
	case models.RuleShapeEquation:
		evaluateEquation(r, facts, &res)
	case models.RuleShapeTrend:
		evaluateTrend(r, facts, prior, &res)
	case models.RuleShapeThreshold:
		evaluateThreshold(r, facts, &res)
	default:
		res.Status = models.ResultStatusSkip
		res.Explanation = fmt.Sprintf("unknown rule shape %q", r.Shape)
	}

	// Informational rules never gate the audit; any evaluated outcome
	// reports as INFO.
	if r.Severity == models.SeverityInfo && res.Status != models.ResultStatusSkip {
		res.Status = models.ResultStatusInfo
	}
	return res
}

func evaluateEquation(r models.ReconciliationRule, facts *models.FactSnapshot, res *models.ReconciliationResult) {
	source, ok, missing := r.Source.Resolve(facts)
	if !ok {
		skipMissing(res, missing)
		return
	}
	target, ok, missing := r.Target.Resolve(facts)
	if !ok {
		skipMissing(res, missing)
		return
	}

	diff := source.Sub(target)
	bound := utils.ToleranceBound(target, string(r.ToleranceMode), r.ToleranceAbs, r.TolerancePct)

	res.SourceValue = source
	res.TargetValue = target
	res.Difference = diff
	res.VariancePct = utils.VariancePct(source, target)

	switch {
	case diff.Abs().LessThanOrEqual(bound):
		res.Status = models.ResultStatusPass
		res.Explanation = fmt.Sprintf("%s agrees with %s within tolerance %s",
			source.StringFixed(2), target.StringFixed(2), bound.StringFixed(2))
	case utils.ClassifyVariance(diff, bound, warnBandFactor):
		res.Status = models.ResultStatusWarning
		res.Explanation = fmt.Sprintf("difference %s exceeds tolerance %s but stays inside the warning band",
			diff.StringFixed(2), bound.StringFixed(2))
	default:
		res.Status = models.ResultStatusFail
		res.Explanation = fmt.Sprintf("difference %s exceeds tolerance %s (source %s, target %s)",
			diff.StringFixed(2), bound.StringFixed(2), source.StringFixed(2), target.StringFixed(2))
	}
}

func evaluateThreshold(r models.ReconciliationRule, facts *models.FactSnapshot, res *models.ReconciliationResult) {
	value, ok, missing := r.Source.Resolve(facts)
	if !ok {
		skipMissing(res, missing)
		return
	}
	if len(r.Divisor.Terms) > 0 {
		divisor, dok, dmissing := r.Divisor.Resolve(facts)
		if !dok {
			skipMissing(res, dmissing)
			return
		}
		ratio, safe := utils.SafeDiv(value, divisor, 4)
		if !safe {
			res.Status = models.ResultStatusSkip
			res.Explanation = "denominator is zero; ratio undefined"
			return
		}
		value = ratio
	}

	res.SourceValue = value
	res.TargetValue = r.Bound
	res.Difference = value.Sub(r.Bound)
	res.VariancePct = utils.VariancePct(value, r.Bound)

	breach := false
	if r.BoundOp == models.ComparisonGTE {
		breach = value.LessThan(r.Bound)
	} else {
		breach = value.GreaterThan(r.Bound)
	}
	if !breach {
		res.Status = models.ResultStatusPass
		res.Explanation = fmt.Sprintf("value %s satisfies %s %s",
			value.StringFixed(4), r.BoundOp, r.Bound.StringFixed(4))
		return
	}

	margin := r.Bound.Abs().Mul(thresholdWarnPct)
	if !r.Bound.IsZero() && res.Difference.Abs().LessThanOrEqual(margin) {
		res.Status = models.ResultStatusWarning
		res.Explanation = fmt.Sprintf("value %s breaches bound %s within the 5%% warning margin",
			value.StringFixed(4), r.Bound.StringFixed(4))
		return
	}
	res.Status = models.ResultStatusFail
	res.Explanation = fmt.Sprintf("value %s breaches %s %s",
		value.StringFixed(4), r.BoundOp, r.Bound.StringFixed(4))
}

func evaluateTrend(r models.ReconciliationRule, facts *models.FactSnapshot, prior *models.FactSnapshot, res *models.ReconciliationResult) {
	if prior == nil {
		res.Status = models.ResultStatusSkip
		res.Explanation = "no prior period snapshot available"
		return
	}

	current, ok, missing := r.Source.Resolve(facts)
	if !ok {
		skipMissing(res, missing)
		return
	}
	previous, ok, missing := r.Source.Resolve(prior)
	if !ok {
		res.Status = models.ResultStatusSkip
		res.Explanation = fmt.Sprintf("prior period missing required facts: %v", missing)
		return
	}

	res.SourceValue = current
	res.TargetValue = previous
	res.Difference = current.Sub(previous)
	res.VariancePct = utils.VariancePct(current, previous)

	tol := utils.ToleranceBound(previous, string(r.ToleranceMode), r.ToleranceAbs, r.TolerancePct)

	switch r.TrendConstraint {
	case models.TrendNonDecreasing:
		if current.GreaterThanOrEqual(previous.Sub(tol)) {
			res.Status = models.ResultStatusPass
			res.Explanation = fmt.Sprintf("value %s did not decrease from %s", current.StringFixed(2), previous.StringFixed(2))
		} else {
			res.Status = models.ResultStatusFail
			res.Explanation = fmt.Sprintf("value decreased from %s to %s", previous.StringFixed(2), current.StringFixed(2))
		}
	case models.TrendNonIncreasing:
		if current.LessThanOrEqual(previous.Add(tol)) {
			res.Status = models.ResultStatusPass
			res.Explanation = fmt.Sprintf("value %s did not increase from %s", current.StringFixed(2), previous.StringFixed(2))
		} else {
			res.Status = models.ResultStatusFail
			res.Explanation = fmt.Sprintf("value increased from %s to %s", previous.StringFixed(2), current.StringFixed(2))
		}
	case models.TrendBoundedDelta:
		if previous.IsZero() {
			if current.IsZero() {
				res.Status = models.ResultStatusPass
				res.Explanation = "value unchanged at zero"
			} else {
				res.Status = models.ResultStatusSkip
				res.Explanation = "prior value is zero; percentage delta undefined"
			}
			return
		}
		deltaPct := res.VariancePct.Abs()
		warnCeiling := r.MaxDeltaPct.Mul(decimal.NewFromFloat(1.5))
		switch {
		case deltaPct.LessThanOrEqual(r.MaxDeltaPct):
			res.Status = models.ResultStatusPass
			res.Explanation = fmt.Sprintf("movement %s%% within allowed %s%%", deltaPct.StringFixed(2), r.MaxDeltaPct.StringFixed(2))
		case deltaPct.LessThanOrEqual(warnCeiling):
			res.Status = models.ResultStatusWarning
			res.Explanation = fmt.Sprintf("movement %s%% exceeds allowed %s%% within the warning band", deltaPct.StringFixed(2), r.MaxDeltaPct.StringFixed(2))
		default:
			res.Status = models.ResultStatusFail
			res.Explanation = fmt.Sprintf("movement %s%% exceeds allowed %s%%", deltaPct.StringFixed(2), r.MaxDeltaPct.StringFixed(2))
		}
	default:
		res.Status = models.ResultStatusSkip
		res.Explanation = fmt.Sprintf("unknown trend constraint %q", r.TrendConstraint)
	}
}

func skipMissing(res *models.ReconciliationResult, missing []string) {
	res.Status = models.ResultStatusSkip
	res.Explanation = fmt.Sprintf("required facts missing: %v", missing)
}
