package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

func TestWriteScorecardWorkbook_CovenantsSheet(t *testing.T) {
	card := &models.AuditScorecard{
		PropertyId:   "prop-1",
		PeriodId:     "2026-FY",
		CatalogVer:   "2026.08",
		HealthScore:  88,
		TrafficLight: models.TrafficLightYellow,
		AuditOpinion: models.AuditOpinionUnqualified,
		GeneratedAt:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Metrics: []models.CovenantMetric{
			{
				PropertyId:   "prop-1",
				PeriodId:     "2026-FY",
				MetricName:   models.MetricDSCR,
				Value:        decimal.NewFromFloat(1.4286),
				Threshold:    decimal.NewFromFloat(1.25),
				Cushion:      decimal.NewFromFloat(0.1786),
				CushionPct:   decimal.NewFromFloat(14.29),
				Status:       models.CovenantStatusGreen,
				Band:         models.BandAdequate,
				Trend:        models.TrendStable,
				InCompliance: true,
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteScorecardWorkbook(card, &buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	want := map[string]string{
		"A1": "Metric",
		"F1": "Status",
		"G1": "Band",
		"A2": "DSCR",
		"F2": "GREEN",
		"G2": "Adequate",
		"H2": "STABLE",
	}
	for cell, expected := range want {
		got, err := f.GetCellValue("Covenants", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != expected {
			t.Fatalf("Covenants!%s = %q, want %q", cell, got, expected)
		}
	}

	opinion, err := f.GetCellValue("Summary", "B3")
	if err != nil {
		t.Fatalf("read summary opinion: %v", err)
	}
	if opinion != string(models.AuditOpinionUnqualified) {
		t.Fatalf("Summary!B3 = %q, want %q", opinion, models.AuditOpinionUnqualified)
	}
}
