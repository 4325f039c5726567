package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"bitbucket.org/mmdatafocus/audit_backend/models"
	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

func serviceWithFixture(t *testing.T) (*AuditService, *models.InMemoryFactStore) {
	t.Helper()
	store := models.NewInMemoryFactStore()
	return &AuditService{
		Store:        store,
		Catalog:      models.MustDefaultRuleCatalog(),
		PriorPeriods: 3,
	}, store
}

func healthySnapshot(propertyId, periodId string) *models.FactSnapshot {
	return snapshot(propertyId, periodId, 365,
		factSpec{models.DocumentTypeBalanceSheet, models.AccTotalAssets, 2000000},
		factSpec{models.DocumentTypeBalanceSheet, models.AccTotalLiabilities, 1200000},
		factSpec{models.DocumentTypeBalanceSheet, models.AccTotalEquity, 800000},
		factSpec{models.DocumentTypeIncomeStatement, models.AccNetOperatingIncome, 500000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccAnnualDebtService, 350000},
	)
}

func TestRunAudit_ValidationErrors(t *testing.T) {
	catalog := models.MustDefaultRuleCatalog()

	_, err := RunAudit(AuditInput{Catalog: catalog})
	if ae, ok := utils.IsAuditError(err); !ok || ae.Kind != utils.AuditErrorConfiguration {
		t.Fatalf("nil snapshot must be a configuration error, got %v", err)
	}

	_, err = RunAudit(AuditInput{Facts: healthySnapshot("p", "q")})
	if ae, ok := utils.IsAuditError(err); !ok || ae.Kind != utils.AuditErrorConfiguration {
		t.Fatalf("nil catalog must be a configuration error, got %v", err)
	}

	_, err = RunAudit(AuditInput{
		Facts:   healthySnapshot("p", "q"),
		Catalog: catalog,
		Covenants: models.CovenantConfig{Overrides: []models.CovenantOverride{
			{PropertyId: "p", MetricName: models.MetricDSCR, Threshold: d(-1)},
		}},
	})
	if _, ok := utils.IsAuditError(err); !ok {
		t.Fatalf("non-positive override threshold must be rejected, got %v", err)
	}
}

func TestAuditService_AuditProperty(t *testing.T) {
	svc, store := serviceWithFixture(t)
	store.Add(healthySnapshot("prop-1", "2026-FY"))

	card, err := svc.AuditProperty(context.Background(), "prop-1", "2026-FY", models.ExternalSignals{})
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if card.AuditRunId == "" {
		t.Fatal("audit run id must be stamped")
	}
	for i := range card.Results {
		if card.Results[i].AuditRunId != card.AuditRunId {
			t.Fatal("every result must carry the run id")
		}
	}
	for i := range card.Metrics {
		if card.Metrics[i].AuditRunId != card.AuditRunId {
			t.Fatal("every metric must carry the run id")
		}
	}
	if card.HealthScore != 100 || card.AuditOpinion != models.AuditOpinionUnqualified {
		t.Fatalf("healthy fixture must audit clean: score=%d opinion=%s", card.HealthScore, card.AuditOpinion)
	}
}

func TestAuditService_MissingSnapshot(t *testing.T) {
	svc, _ := serviceWithFixture(t)
	logger, hook := logrustest.NewNullLogger()
	svc.Logger = logger

	_, err := svc.AuditProperty(context.Background(), "prop-none", "2026-FY", models.ExternalSignals{})
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatal("store failure must be logged at error level")
	}
	if entry.Data["funcName"] != "AuditProperty" || entry.Data["context"] != "LoadSnapshot" {
		t.Fatalf("unexpected log fields: %v", entry.Data)
	}
}

func TestAuditService_CorrelationIdFromContext(t *testing.T) {
	svc, store := serviceWithFixture(t)
	store.Add(healthySnapshot("prop-1", "2026-FY"))

	ctx := utils.WithAuditScope(context.Background(), "prop-1", "2026-FY", "run-abc")
	card, err := svc.AuditProperty(ctx, "prop-1", "2026-FY", models.ExternalSignals{})
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if card.AuditRunId != "run-abc" {
		t.Fatalf("caller-supplied correlation id must be kept, got %s", card.AuditRunId)
	}
}

func TestRunBatch_DeterministicOrder(t *testing.T) {
	svc, store := serviceWithFixture(t)
	requests := []AuditRequest{
		{PropertyId: "prop-c", PeriodId: "2026-01"},
		{PropertyId: "prop-a", PeriodId: "2026-02"},
		{PropertyId: "prop-a", PeriodId: "2026-01"},
		{PropertyId: "prop-b", PeriodId: "2026-01"},
	}
	for _, r := range requests {
		store.Add(healthySnapshot(r.PropertyId, r.PeriodId))
	}

	results := svc.RunBatch(context.Background(), requests, 3)
	if len(results) != len(requests) {
		t.Fatalf("expected %d results, got %d", len(requests), len(results))
	}
	want := []AuditRequest{
		{PropertyId: "prop-a", PeriodId: "2026-01"},
		{PropertyId: "prop-a", PeriodId: "2026-02"},
		{PropertyId: "prop-b", PeriodId: "2026-01"},
		{PropertyId: "prop-c", PeriodId: "2026-01"},
	}
	for i := range results {
		if results[i].Request.PropertyId != want[i].PropertyId || results[i].Request.PeriodId != want[i].PeriodId {
			t.Fatalf("position %d: got %s/%s", i, results[i].Request.PropertyId, results[i].Request.PeriodId)
		}
		if results[i].Err != nil {
			t.Fatalf("unexpected error for %s: %v", results[i].Request.PropertyId, results[i].Err)
		}
		if results[i].Scorecard == nil {
			t.Fatalf("missing scorecard for %s", results[i].Request.PropertyId)
		}
	}
}

func TestRunBatch_PartialFailure(t *testing.T) {
	svc, store := serviceWithFixture(t)
	store.Add(healthySnapshot("prop-a", "2026-01"))

	results := svc.RunBatch(context.Background(), []AuditRequest{
		{PropertyId: "prop-a", PeriodId: "2026-01"},
		{PropertyId: "prop-missing", PeriodId: "2026-01"},
	}, 2)

	if results[0].Err != nil {
		t.Fatalf("prop-a should succeed: %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, utils.ErrorRecordNotFound) {
		t.Fatalf("prop-missing should fail with record-not-found: %v", results[1].Err)
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	svc, store := serviceWithFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var requests []AuditRequest
	for _, p := range []string{"prop-a", "prop-b", "prop-c", "prop-d"} {
		store.Add(healthySnapshot(p, "2026-01"))
		requests = append(requests, AuditRequest{PropertyId: p, PeriodId: "2026-01"})
	}

	results := svc.RunBatch(ctx, requests, 2)
	cancelled := 0
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Fatal("cancelled context must surface as errors for undispatched requests")
	}
}

func TestAuditService_PriorHistoryFlowsIntoTrends(t *testing.T) {
	svc, store := serviceWithFixture(t)

	current := snapshot("prop-1", "2026-07", 31,
		factSpec{models.DocumentTypeMortgageStatement, models.AccLoanBalance, 4950000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccPropertyValue, 10000000},
	)
	prior := snapshot("prop-1", "2026-06", 30,
		factSpec{models.DocumentTypeMortgageStatement, models.AccLoanBalance, 5000000},
		factSpec{models.DocumentTypeMortgageStatement, models.AccPropertyValue, 10000000},
	)
	store.Add(current, prior)

	card, err := svc.AuditProperty(context.Background(), "prop-1", "2026-07", models.ExternalSignals{})
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}

	amort := findResult(card.Results, "MG-10")
	if amort == nil || amort.Status != models.ResultStatusPass {
		t.Fatalf("amortizing balance with history must evaluate, got %+v", amort)
	}

	ltv := findMetric(card.Metrics, models.MetricLTV)
	if ltv == nil {
		t.Fatal("LTV metric missing")
	}
	if ltv.Trend == models.TrendStable {
		// 0.495 vs prior 0.50 is a 1% move: inside the stability band.
		return
	}
	t.Fatalf("1 percent drift must stay STABLE, got %s", ltv.Trend)
}

func TestRunAudit_DefaultsNowWhenZero(t *testing.T) {
	card, err := RunAudit(AuditInput{
		Facts:   healthySnapshot("p", "q"),
		Catalog: models.MustDefaultRuleCatalog(),
	})
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if card.GeneratedAt.IsZero() || time.Since(card.GeneratedAt) > time.Minute {
		t.Fatalf("zero Now must default to the current time, got %s", card.GeneratedAt)
	}
}
