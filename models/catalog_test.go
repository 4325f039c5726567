package models

import (
	"strings"
	"testing"

	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

func TestDefaultRuleCatalog_Loads(t *testing.T) {
	c, err := DefaultRuleCatalog()
	if err != nil {
		t.Fatalf("default catalog must load: %v", err)
	}
	if c.Len() != 140 {
		t.Fatalf("catalog drifted: %d rules", c.Len())
	}
	if c.Version() != CatalogVersion {
		t.Fatalf("version mismatch: %s", c.Version())
	}

	// Durable ids downstream systems reference.
	for _, id := range []string{"BS-1", "IS-3", "CF-1", "MG-1", "RR-1", "XS-1"} {
		if _, ok := c.Get(id); !ok {
			t.Errorf("missing durable rule id %s", id)
		}
	}
}

func TestDefaultRuleCatalog_CategoriesCovered(t *testing.T) {
	c := MustDefaultRuleCatalog()
	seen := map[RuleCategory]int{}
	for _, r := range c.Rules() {
		seen[r.Category]++
	}
	for _, cat := range []RuleCategory{
		RuleCategoryBalanceSheet, RuleCategoryIncomeStatement, RuleCategoryCashFlow,
		RuleCategoryMortgage, RuleCategoryRentRoll, RuleCategoryCrossStatement,
	} {
		if seen[cat] == 0 {
			t.Errorf("no rules in category %s", cat)
		}
	}
}

func TestNewRuleCatalog_DuplicateRuleIdRejected(t *testing.T) {
	rules := []ReconciliationRule{
		eqRule("DUP-1", "a", RuleCategoryBalanceSheet, SeverityLow, ToleranceModeAbsolute, 1, 0,
			Line(DocumentTypeBalanceSheet, AccCash), Line(DocumentTypeBalanceSheet, AccCash)),
		eqRule("DUP-1", "b", RuleCategoryBalanceSheet, SeverityLow, ToleranceModeAbsolute, 1, 0,
			Line(DocumentTypeBalanceSheet, AccCash), Line(DocumentTypeBalanceSheet, AccCash)),
	}
	_, err := NewRuleCatalog("test", rules)
	if err == nil {
		t.Fatal("duplicate rule_id must be rejected at catalog load")
	}
	ae, ok := utils.IsAuditError(err)
	if !ok || ae.Kind != utils.AuditErrorCatalogInconsistency {
		t.Fatalf("expected CatalogInconsistency, got %v", err)
	}
	if !strings.Contains(err.Error(), "DUP-1") {
		t.Fatalf("error should name the offending rule: %v", err)
	}
}

func TestNewRuleCatalog_InvalidRuleRejected(t *testing.T) {
	rules := []ReconciliationRule{{RuleId: "", Name: "no id"}}
	_, err := NewRuleCatalog("test", rules)
	if err == nil {
		t.Fatal("rule without id must be rejected")
	}
}

func TestRuleCatalog_Immutable(t *testing.T) {
	c := MustDefaultRuleCatalog()
	rules := c.Rules()
	rules[0].RuleId = "mutated"
	again, _ := c.Get("BS-1")
	if again.RuleId != "BS-1" {
		t.Fatal("mutating the returned slice must not touch the catalog")
	}
}

func TestRuleRR2_TiesScheduledRentToGrossPotential(t *testing.T) {
	c := MustDefaultRuleCatalog()
	r, ok := c.Get("RR-2")
	if !ok {
		t.Fatal("RR-2 missing")
	}
	if r.Name != "Scheduled rent ties to gross potential rent" {
		t.Fatalf("rule name drifted: %q", r.Name)
	}

	// Both sides resolve from exactly these two lines, no vacancy term.
	snap := NewFactSnapshot("p", "q", 31, []FinancialFact{
		{PropertyId: "p", PeriodId: "q", DocumentType: DocumentTypeRentRoll, AccountCode: AccScheduledRent, Amount: dec(95000)},
		{PropertyId: "p", PeriodId: "q", DocumentType: DocumentTypeRentRoll, AccountCode: AccGrossPotentialRent, Amount: dec(95000)},
	})
	src, srcOk, _ := r.Source.Resolve(snap)
	tgt, tgtOk, _ := r.Target.Resolve(snap)
	if !srcOk || !tgtOk {
		t.Fatal("both sides must resolve from scheduled and gross potential rent alone")
	}
	if !src.Equal(dec(95000)) || !tgt.Equal(dec(95000)) {
		t.Fatalf("unexpected formula values: source=%s target=%s", src, tgt)
	}
}

func TestLineExpr_Resolve(t *testing.T) {
	snap := NewFactSnapshot("p", "q", 31, []FinancialFact{
		{PropertyId: "p", PeriodId: "q", DocumentType: DocumentTypeBalanceSheet, AccountCode: AccCash, Amount: dec(100)},
		{PropertyId: "p", PeriodId: "q", DocumentType: DocumentTypeBalanceSheet, AccountCode: AccAccountsReceivable, Amount: dec(40)},
	})

	total, ok, _ := Sum(DocumentTypeBalanceSheet, AccCash, AccAccountsReceivable).Resolve(snap)
	if !ok || !total.Equal(dec(140)) {
		t.Fatalf("sum: got %s ok=%v", total, ok)
	}

	// Optional missing code resolves to zero.
	total, ok, missing := Sum(DocumentTypeBalanceSheet, AccCash, AccInventory).Resolve(snap)
	if !ok || !total.Equal(dec(100)) || len(missing) != 1 {
		t.Fatalf("optional missing: got %s ok=%v missing=%v", total, ok, missing)
	}

	// A side with no data at all fails resolution even when optional.
	_, ok, missing = Sum(DocumentTypeBalanceSheet, AccInventory, AccPrepaidExpenses).Resolve(snap)
	if ok || len(missing) != 2 {
		t.Fatalf("all missing: ok=%v missing=%v", ok, missing)
	}

	// Required missing code fails resolution.
	_, ok, missing = RequiredSum(DocumentTypeBalanceSheet, AccCash, AccInventory).Resolve(snap)
	if ok || len(missing) != 1 {
		t.Fatalf("required missing: ok=%v missing=%v", ok, missing)
	}

	// Scale applies after summation.
	scaled, ok, _ := Scaled(Line(DocumentTypeBalanceSheet, AccCash), 12).Resolve(snap)
	if !ok || !scaled.Equal(dec(1200)) {
		t.Fatalf("scaled: got %s", scaled)
	}
}
