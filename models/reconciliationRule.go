package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

// LineTerm is one account reference inside a formula: the amount at Code on
// Doc, optionally negated.
type LineTerm struct {
	Doc    DocumentType
	Code   string
	Negate bool
}

// LineExpr is a signed sum of account lines, optionally scaled. Required
// controls what a missing code means: required expressions make the rule
// SKIP, optional codes resolve to zero.
type LineExpr struct {
	Terms    []LineTerm
	Required bool

	// Scale multiplies the resolved sum when non-zero (e.g. monthly payment
	// x12 against annual debt service).
	Scale decimal.Decimal
}

// Scaled returns a copy of the expression with a multiplier applied.
func Scaled(e LineExpr, factor float64) LineExpr {
	e.Scale = decimal.NewFromFloat(factor)
	return e
}

func Line(doc DocumentType, code string) LineExpr {
	return LineExpr{Terms: []LineTerm{{Doc: doc, Code: code}}, Required: true}
}

func OptionalLine(doc DocumentType, code string) LineExpr {
	return LineExpr{Terms: []LineTerm{{Doc: doc, Code: code}}}
}

func Sum(doc DocumentType, codes ...string) LineExpr {
	e := LineExpr{}
	for _, c := range codes {
		e.Terms = append(e.Terms, LineTerm{Doc: doc, Code: c})
	}
	return e
}

// RequiredSum is Sum with missing-code-means-SKIP semantics.
func RequiredSum(doc DocumentType, codes ...string) LineExpr {
	e := Sum(doc, codes...)
	e.Required = true
	return e
}

func (e LineExpr) Minus(doc DocumentType, codes ...string) LineExpr {
	for _, c := range codes {
		e.Terms = append(e.Terms, LineTerm{Doc: doc, Code: c, Negate: true})
	}
	return e
}

func (e LineExpr) Plus(doc DocumentType, codes ...string) LineExpr {
	for _, c := range codes {
		e.Terms = append(e.Terms, LineTerm{Doc: doc, Code: c})
	}
	return e
}

// Resolve evaluates the expression against a snapshot. The second return is
// false when a required code is absent, or when no code resolved at all: an
// optional term defaults to zero only while at least one sibling carries data,
// a side with no data cannot be compared. missing contains the absent codes.
func (e LineExpr) Resolve(s *FactSnapshot) (total decimal.Decimal, ok bool, missing []string) {
	for _, t := range e.Terms {
		v, found := s.Lookup(t.Doc, t.Code)
		if !found {
			missing = append(missing, t.Code)
			continue
		}
		if t.Negate {
			total = total.Sub(v)
		} else {
			total = total.Add(v)
		}
	}
	if len(missing) > 0 && (e.Required || len(missing) == len(e.Terms)) {
		return decimal.Zero, false, missing
	}
	if !e.Scale.IsZero() {
		total = total.Mul(e.Scale)
	}
	return total, true, missing
}

// ReconciliationRule is one catalog entry. RuleId is the durable identifier
// referenced by alerts and scorecards; it never changes even when the formula
// text does.
type ReconciliationRule struct {
	RuleId   string       `validate:"required"`
	Name     string       `validate:"required"`
	Category RuleCategory `validate:"required"`
	Severity Severity     `validate:"required"`
	Shape    RuleShape    `validate:"required"`

	ToleranceMode ToleranceMode
	ToleranceAbs  decimal.Decimal
	TolerancePct  decimal.Decimal

	// Equation rules: Source must equal Target within tolerance.
	Source LineExpr
	Target LineExpr

	// Trend rules: Source now vs Source in the prior period.
	TrendConstraint TrendConstraint
	MaxDeltaPct     decimal.Decimal

	// Threshold rules: Source (or Source/Divisor when Divisor is set)
	// compared against Bound in the BoundOp direction.
	Divisor LineExpr
	Bound   decimal.Decimal
	BoundOp Comparison

	// MetaRule marks a doc_scope=all rule: it runs only when every document
	// type is present in the snapshot.
	MetaRule bool
}

// RuleCatalog is an immutable, versioned rule set. Always constructed through
// NewRuleCatalog so duplicate ids are rejected before any audit runs; never a
// package-level mutable singleton.
type RuleCatalog struct {
	version string
	rules   []ReconciliationRule
	byId    map[string]int
}

var ruleValidate = validator.New()

func NewRuleCatalog(version string, rules []ReconciliationRule) (*RuleCatalog, error) {
	c := &RuleCatalog{
		version: version,
		rules:   make([]ReconciliationRule, len(rules)),
		byId:    make(map[string]int, len(rules)),
	}
	copy(c.rules, rules)
	for i, r := range c.rules {
		if err := ruleValidate.Struct(r); err != nil {
			return nil, utils.NewAuditError(utils.AuditErrorCatalogInconsistency, r.RuleId,
				fmt.Sprintf("invalid rule definition: %v", err))
		}
		if _, dup := c.byId[r.RuleId]; dup {
			return nil, utils.NewAuditError(utils.AuditErrorCatalogInconsistency, r.RuleId,
				"duplicate rule_id in catalog")
		}
		if r.Shape == RuleShapeThreshold && r.BoundOp == "" {
			return nil, utils.NewAuditError(utils.AuditErrorCatalogInconsistency, r.RuleId,
				"threshold rule missing bound comparison")
		}
		c.byId[r.RuleId] = i
	}
	return c, nil
}

func (c *RuleCatalog) Version() string { return c.version }

func (c *RuleCatalog) Len() int { return len(c.rules) }

// Rules returns a copy; the catalog itself stays immutable.
func (c *RuleCatalog) Rules() []ReconciliationRule {
	out := make([]ReconciliationRule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c *RuleCatalog) Get(ruleId string) (ReconciliationRule, bool) {
	i, ok := c.byId[ruleId]
	if !ok {
		return ReconciliationRule{}, false
	}
	return c.rules[i], true
}
