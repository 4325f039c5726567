package models

import (
	"database/sql/driver"
	"fmt"
)

type DocumentType string

const (
	DocumentTypeBalanceSheet      DocumentType = "BalanceSheet"
	DocumentTypeIncomeStatement   DocumentType = "IncomeStatement"
	DocumentTypeCashFlow          DocumentType = "CashFlow"
	DocumentTypeRentRoll          DocumentType = "RentRoll"
	DocumentTypeMortgageStatement DocumentType = "MortgageStatement"
)

// AllDocumentTypes is the full set a meta-rule (doc_scope=all) requires.
var AllDocumentTypes = []DocumentType{
	DocumentTypeBalanceSheet,
	DocumentTypeIncomeStatement,
	DocumentTypeCashFlow,
	DocumentTypeRentRoll,
	DocumentTypeMortgageStatement,
}

type RuleCategory string

const (
	RuleCategoryBalanceSheet    RuleCategory = "BalanceSheet"
	RuleCategoryIncomeStatement RuleCategory = "IncomeStatement"
	RuleCategoryCashFlow        RuleCategory = "CashFlow"
	RuleCategoryMortgage        RuleCategory = "Mortgage"
	RuleCategoryRentRoll        RuleCategory = "RentRoll"
	RuleCategoryCrossStatement  RuleCategory = "CrossStatement"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank orders severities for sorting, critical first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

type ToleranceMode string

const (
	ToleranceModeAbsolute  ToleranceMode = "absolute"
	ToleranceModePercent   ToleranceMode = "percent"
	ToleranceModeGreaterOf ToleranceMode = "greater_of"
)

type RuleShape string

const (
	RuleShapeEquation  RuleShape = "Equation"
	RuleShapeTrend     RuleShape = "Trend"
	RuleShapeThreshold RuleShape = "Threshold"
)

// TrendConstraint is the directional requirement of a trend rule.
type TrendConstraint string

const (
	TrendNonDecreasing TrendConstraint = "NonDecreasing"
	TrendNonIncreasing TrendConstraint = "NonIncreasing"
	TrendBoundedDelta  TrendConstraint = "BoundedDelta"
)

// Comparison direction for threshold rules and covenant metrics.
type Comparison string

const (
	ComparisonGTE Comparison = "GTE"
	ComparisonLTE Comparison = "LTE"
)

type ResultStatus string

const (
	ResultStatusPass    ResultStatus = "PASS"
	ResultStatusFail    ResultStatus = "FAIL"
	ResultStatusWarning ResultStatus = "WARNING"
	ResultStatusSkip    ResultStatus = "SKIP"
	ResultStatusInfo    ResultStatus = "INFO"
)

type CovenantStatus string

const (
	CovenantStatusGreen  CovenantStatus = "GREEN"
	CovenantStatusYellow CovenantStatus = "YELLOW"
	CovenantStatusRed    CovenantStatus = "RED"
)

type TrafficLight string

const (
	TrafficLightGreen  TrafficLight = "GREEN"
	TrafficLightYellow TrafficLight = "YELLOW"
	TrafficLightRed    TrafficLight = "RED"
)

type Trend string

const (
	TrendUp     Trend = "UP"
	TrendDown   Trend = "DOWN"
	TrendStable Trend = "STABLE"
)

type AuditOpinion string

const (
	AuditOpinionUnqualified AuditOpinion = "UNQUALIFIED"
	AuditOpinionQualified   AuditOpinion = "QUALIFIED"
	AuditOpinionAdverse     AuditOpinion = "ADVERSE"
)

type MetricName string

const (
	MetricDSCR         MetricName = "DSCR"
	MetricLTV          MetricName = "LTV"
	MetricICR          MetricName = "ICR"
	MetricCurrentRatio MetricName = "CurrentRatio"
	MetricQuickRatio   MetricName = "QuickRatio"
)

// Direction tells the resolver which side of the threshold is compliant.
func (m MetricName) Direction() Comparison {
	if m == MetricLTV {
		return ComparisonLTE
	}
	return ComparisonGTE
}

type RiskLevel string

const (
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelLow      RiskLevel = "LOW"
)

type ActionPriority string

const (
	ActionPriorityUrgent ActionPriority = "URGENT"
	ActionPriorityHigh   ActionPriority = "HIGH"
	ActionPriorityMedium ActionPriority = "MEDIUM"
)

func (s ResultStatus) Value() (driver.Value, error)   { return string(s), nil }
func (s CovenantStatus) Value() (driver.Value, error) { return string(s), nil }
func (s AuditOpinion) Value() (driver.Value, error)   { return string(s), nil }

func (s *ResultStatus) Scan(v interface{}) error {
	str, err := scanString(v)
	if err != nil {
		return fmt.Errorf("result status: %w", err)
	}
	*s = ResultStatus(str)
	return nil
}

func (s *CovenantStatus) Scan(v interface{}) error {
	str, err := scanString(v)
	if err != nil {
		return fmt.Errorf("covenant status: %w", err)
	}
	*s = CovenantStatus(str)
	return nil
}

func (s *AuditOpinion) Scan(v interface{}) error {
	str, err := scanString(v)
	if err != nil {
		return fmt.Errorf("audit opinion: %w", err)
	}
	*s = AuditOpinion(str)
	return nil
}

func scanString(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", fmt.Errorf("must be string, got %T", v)
	}
}
