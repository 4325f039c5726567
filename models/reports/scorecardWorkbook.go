package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bitbucket.org/mmdatafocus/audit_backend/models"
)

// WriteScorecardWorkbook renders one audit scorecard as the lender-facing
// Excel deliverable: a summary sheet plus findings, covenant and action-item
// sheets.
func WriteScorecardWorkbook(card *models.AuditScorecard, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	f.SetCellValue(summary, "A1", "Property")
	f.SetCellValue(summary, "B1", card.PropertyId)
	f.SetCellValue(summary, "A2", "Period")
	f.SetCellValue(summary, "B2", card.PeriodId)
	f.SetCellValue(summary, "A3", "Audit Opinion")
	f.SetCellValue(summary, "B3", string(card.AuditOpinion))
	f.SetCellValue(summary, "A4", "Traffic Light")
	f.SetCellValue(summary, "B4", string(card.TrafficLight))
	f.SetCellValue(summary, "A5", "Health Score")
	f.SetCellValue(summary, "B5", card.HealthScore)
	f.SetCellValue(summary, "A6", "Generated At")
	f.SetCellValue(summary, "B6", card.GeneratedAt.Format("2006-01-02 15:04:05"))
	f.SetCellValue(summary, "A7", "Catalog Version")
	f.SetCellValue(summary, "B7", card.CatalogVer)

	f.SetCellValue(summary, "A9", "Score Breakdown")
	f.SetCellValue(summary, "A10", "Mathematical Integrity (20)")
	f.SetCellValue(summary, "B10", card.Breakdown.MathematicalIntegrity.InexactFloat64())
	f.SetCellValue(summary, "A11", "Cross-Document (25)")
	f.SetCellValue(summary, "B11", card.Breakdown.CrossDocument.InexactFloat64())
	f.SetCellValue(summary, "A12", "Fraud/Anomaly (20)")
	f.SetCellValue(summary, "B12", card.Breakdown.FraudAnomaly.InexactFloat64())
	f.SetCellValue(summary, "A13", "Covenant Compliance (20)")
	f.SetCellValue(summary, "B13", card.Breakdown.CovenantCompliance.InexactFloat64())
	f.SetCellValue(summary, "A14", "Collections Quality (15)")
	f.SetCellValue(summary, "B14", card.Breakdown.CollectionsQuality.InexactFloat64())

	if err := writeFindings(f, card); err != nil {
		return err
	}
	if err := writeCovenants(f, card); err != nil {
		return err
	}
	if err := writeActions(f, card); err != nil {
		return err
	}

	return f.Write(w)
}

func writeFindings(f *excelize.File, card *models.AuditScorecard) error {
	const sheet = "Findings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Rule", "Name", "Category", "Severity", "Status", "Source", "Target", "Difference", "Variance %", "Explanation"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, r := range card.Results {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), r.RuleId)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), r.RuleName)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), string(r.Category))
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), string(r.Severity))
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), string(r.Status))
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), r.SourceValue.StringFixed(2))
		f.SetCellValue(sheet, "G"+fmt.Sprint(row), r.TargetValue.StringFixed(2))
		f.SetCellValue(sheet, "H"+fmt.Sprint(row), r.Difference.StringFixed(2))
		f.SetCellValue(sheet, "I"+fmt.Sprint(row), r.VariancePct.StringFixed(2))
		f.SetCellValue(sheet, "J"+fmt.Sprint(row), r.Explanation)
	}
	return nil
}

func writeCovenants(f *excelize.File, card *models.AuditScorecard) error {
	const sheet = "Covenants"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Metric", "Value", "Threshold", "Cushion", "Cushion %", "Status", "Band", "Trend", "In Compliance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, m := range card.Metrics {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), string(m.MetricName))
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), m.Value.StringFixed(4))
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), m.Threshold.StringFixed(4))
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), m.Cushion.StringFixed(4))
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), m.CushionPct.StringFixed(2))
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), string(m.Status))
		f.SetCellValue(sheet, "G"+fmt.Sprint(row), string(m.Band))
		f.SetCellValue(sheet, "H"+fmt.Sprint(row), string(m.Trend))
		f.SetCellValue(sheet, "I"+fmt.Sprint(row), m.InCompliance)
	}
	return nil
}

func writeActions(f *excelize.File, card *models.AuditScorecard) error {
	const sheet = "Action Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Priority", "Owner", "Title", "Due Date", "Detail"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, a := range card.ActionItems {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), string(a.Priority))
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), a.OwnerRole)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), a.Title)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), a.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), a.Detail)
	}
	return nil
}
