package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// AuditErrorKind classifies abort-class failures. Per-rule data gaps and
// undefined computations never become errors; they recover locally as SKIP
// results. Only configuration and catalog problems abort a whole audit,
// because a scorecard built on bad configuration would be misleading.
type AuditErrorKind string

const (
	AuditErrorConfiguration        AuditErrorKind = "ConfigurationError"
	AuditErrorCatalogInconsistency AuditErrorKind = "CatalogInconsistency"
)

type AuditError struct {
	Kind   AuditErrorKind
	RuleId string
	Detail string
}

func NewAuditError(kind AuditErrorKind, ruleId, detail string) *AuditError {
	return &AuditError{Kind: kind, RuleId: ruleId, Detail: detail}
}

func (e *AuditError) Error() string {
	if e.RuleId != "" {
		return fmt.Sprintf("%s: rule %s: %s", e.Kind, e.RuleId, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func IsAuditError(err error) (*AuditError, bool) {
	var ae *AuditError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
