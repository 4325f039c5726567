package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/audit_backend/appctx"
	"bitbucket.org/mmdatafocus/audit_backend/config"
	"bitbucket.org/mmdatafocus/audit_backend/models"
	"bitbucket.org/mmdatafocus/audit_backend/models/reports"
	"bitbucket.org/mmdatafocus/audit_backend/workflow"
)

// audit-harness runs one property audit end to end and prints the scorecard.
//
// Fixture mode (no DB needed):
//
//	go run ./cmd/audit-harness --fixture=testdata/property.json --xlsx=out.xlsx
//
// DB mode (env config, same as the server):
//
//	go run ./cmd/audit-harness --property_id=prop-1 --period_id=2026-07 --db
type fixtureSnapshot struct {
	PropertyId string                 `json:"property_id"`
	PeriodId   string                 `json:"period_id"`
	PeriodDays int                    `json:"period_days"`
	Facts      []models.FinancialFact `json:"facts"`
}

type fixture struct {
	Current   fixtureSnapshot           `json:"current"`
	Priors    []fixtureSnapshot         `json:"priors"`
	Overrides []models.CovenantOverride `json:"covenant_overrides"`
}

func main() {
	var (
		fixturePath = flag.String("fixture", "", "path to a JSON fact fixture (fixture mode)")
		propertyID  = flag.String("property_id", "", "property_id (DB mode)")
		periodID    = flag.String("period_id", "", "period_id (DB mode)")
		useDB       = flag.Bool("db", false, "load facts from the database instead of a fixture")
		persist     = flag.Bool("persist", false, "persist the scorecard (DB mode only)")
		migrate     = flag.Bool("migrate", false, "run schema migration before the audit (DB mode only)")
		xlsxPath    = flag.String("xlsx", "", "write the scorecard workbook to this path")
	)
	flag.Parse()

	logger := config.GetLogger()
	logger.SetLevel(logrus.InfoLevel)

	catalog, err := models.DefaultRuleCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}

	var store models.FactStore
	var scorecards *models.ScorecardStore
	switch {
	case *useDB:
		if *propertyID == "" || *periodID == "" {
			fmt.Fprintln(os.Stderr, "--property_id and --period_id are required in DB mode")
			flag.Usage()
			os.Exit(2)
		}
		config.ConnectDatabaseWithRetry()
		if *migrate {
			if err := models.Migrate(config.GetDB()); err != nil {
				fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
				os.Exit(1)
			}
		}
		store = models.NewGormFactStore(config.GetDB())
		if *persist {
			scorecards = models.NewScorecardStore(config.GetDB())
		}
	case *fixturePath != "":
		raw, err := os.ReadFile(*fixturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read fixture: %v\n", err)
			os.Exit(1)
		}
		var fx fixture
		if err := json.Unmarshal(raw, &fx); err != nil {
			fmt.Fprintf(os.Stderr, "parse fixture: %v\n", err)
			os.Exit(1)
		}
		mem := models.NewInMemoryFactStore()
		priors := make([]*models.FactSnapshot, 0, len(fx.Priors))
		for _, p := range fx.Priors {
			priors = append(priors, models.NewFactSnapshot(p.PropertyId, p.PeriodId, p.PeriodDays, p.Facts))
		}
		current := models.NewFactSnapshot(fx.Current.PropertyId, fx.Current.PeriodId, fx.Current.PeriodDays, fx.Current.Facts)
		mem.Add(current, priors...)
		mem.Config = models.CovenantConfig{Overrides: fx.Overrides}
		store = mem
		*propertyID = fx.Current.PropertyId
		*periodID = fx.Current.PeriodId
	default:
		fmt.Fprintln(os.Stderr, "either --fixture or --db is required")
		flag.Usage()
		os.Exit(2)
	}

	service := workflow.NewAuditService(store, scorecards, catalog, logger)

	ctx := appctx.Set(context.Background(), appctx.ContextKeyCorrelationId, uuid.NewString())
	card, err := service.AuditProperty(ctx, *propertyID, *periodID, models.ExternalSignals{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("property=%s period=%s\n", card.PropertyId, card.PeriodId)
	fmt.Printf("opinion=%s traffic_light=%s health_score=%d\n", card.AuditOpinion, card.TrafficLight, card.HealthScore)
	for _, r := range card.PriorityRisks {
		fmt.Printf("  risk #%d [%s] %s\n", r.Rank, r.Severity, r.Title)
	}
	var fails, warns, skips int
	for _, r := range card.Results {
		switch r.Status {
		case models.ResultStatusFail:
			fails++
		case models.ResultStatusWarning:
			warns++
		case models.ResultStatusSkip:
			skips++
		}
	}
	fmt.Printf("rules=%d fail=%d warning=%d skip=%d metrics=%d\n",
		len(card.Results), fails, warns, skips, len(card.Metrics))

	if *xlsxPath != "" {
		out, err := os.Create(*xlsxPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create workbook: %v\n", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := reports.WriteScorecardWorkbook(card, out); err != nil {
			fmt.Fprintf(os.Stderr, "write workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("workbook written to %s\n", *xlsxPath)
	}
}
