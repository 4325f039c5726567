package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/audit_backend/config"
	"bitbucket.org/mmdatafocus/audit_backend/models"
	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

// AuditInput is everything one audit invocation consumes. RunAudit is a pure
// function of this value: no I/O, no shared state, safe to call concurrently.
type AuditInput struct {
	Facts     *models.FactSnapshot
	Priors    []*models.FactSnapshot
	Catalog   *models.RuleCatalog
	Covenants models.CovenantConfig
	Signals   models.ExternalSignals
	Now       time.Time
}

var covenantValidate = validator.New()

// RunAudit evaluates the catalog, computes covenant metrics and composes the
// scorecard. It returns either a complete scorecard or an error; a partial
// scorecard is never returned, because the opinion synthesizer assumes a
// complete result set.
func RunAudit(in AuditInput) (*models.AuditScorecard, error) {
	if in.Facts == nil {
		return nil, utils.NewAuditError(utils.AuditErrorConfiguration, "", "fact snapshot is nil")
	}
	if in.Catalog == nil || in.Catalog.Len() == 0 {
		return nil, utils.NewAuditError(utils.AuditErrorConfiguration, "", "rule catalog is empty")
	}
	if err := validateCovenantConfig(in.Covenants); err != nil {
		return nil, err
	}
	if in.Now.IsZero() {
		in.Now = time.Now().UTC()
	}

	var prior *models.FactSnapshot
	if len(in.Priors) > 0 {
		prior = in.Priors[0]
	}

	results := Evaluate(in.Catalog.Rules(), in.Facts, prior)

	thresholds := in.Covenants.ResolveThresholds(in.Facts.PropertyId)
	metrics := ComputeCovenantMetrics(in.Facts, in.Priors, thresholds)

	return GenerateScorecard(in.Facts, results, metrics, in.Signals, in.Catalog, in.Now), nil
}

func validateCovenantConfig(cfg models.CovenantConfig) error {
	if cfg.Defaults != nil {
		if err := covenantValidate.Struct(cfg.Defaults); err != nil {
			return utils.NewAuditError(utils.AuditErrorConfiguration, "",
				fmt.Sprintf("malformed covenant defaults: %v", err))
		}
	}
	for _, o := range cfg.Overrides {
		if err := covenantValidate.Struct(o); err != nil {
			return utils.NewAuditError(utils.AuditErrorConfiguration, "",
				fmt.Sprintf("malformed covenant override for %s: %v", o.PropertyId, err))
		}
		if o.Threshold.LessThanOrEqual(decimal.Zero) {
			return utils.NewAuditError(utils.AuditErrorConfiguration, "",
				fmt.Sprintf("covenant override %s/%s must be positive", o.PropertyId, o.MetricName))
		}
	}
	return nil
}

// AuditService wires the engine to its collaborators: the fact store for
// snapshots, the scorecard store for persistence. The fact store is invoked
// exactly once (plus once for prior periods) per audit, outside the hot
// evaluation path.
type AuditService struct {
	Store      models.FactStore
	Scorecards *models.ScorecardStore
	Catalog    *models.RuleCatalog
	Defaults   *models.CovenantThresholds
	Logger     *logrus.Logger

	// PriorPeriods is how much history trend analysis sees. Three periods.
	PriorPeriods int
}

func NewAuditService(store models.FactStore, scorecards *models.ScorecardStore, catalog *models.RuleCatalog, logger *logrus.Logger) *AuditService {
	return &AuditService{
		Store:        store,
		Scorecards:   scorecards,
		Catalog:      catalog,
		Logger:       logger,
		PriorPeriods: 3,
	}
}

func (s *AuditService) logError(funcName, context string, data any, err error) {
	if s.Logger == nil {
		return
	}
	config.LogError(s.Logger, "auditWorkflow.go", funcName, context, data, err)
}

// AuditProperty runs one full audit for a (property, period) and persists the
// scorecard when a scorecard store is configured.
func (s *AuditService) AuditProperty(ctx context.Context, propertyId, periodId string, signals models.ExternalSignals) (*models.AuditScorecard, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cid, ok := utils.GetCorrelationIdFromContext(ctx)
	if !ok || cid == "" {
		cid = uuid.NewString()
	}
	ctx = utils.WithAuditScope(ctx, propertyId, periodId, cid)

	facts, err := s.Store.LoadSnapshot(ctx, propertyId, periodId)
	if err != nil {
		s.logError("AuditProperty", "LoadSnapshot", propertyId, err)
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	priors, err := s.Store.LoadPriorSnapshots(ctx, propertyId, periodId, s.PriorPeriods)
	if err != nil {
		s.logError("AuditProperty", "LoadPriorSnapshots", propertyId, err)
		return nil, fmt.Errorf("load prior snapshots: %w", err)
	}
	covenants, err := s.Store.LoadCovenantConfig(ctx, propertyId)
	if err != nil {
		s.logError("AuditProperty", "LoadCovenantConfig", propertyId, err)
		return nil, fmt.Errorf("load covenant config: %w", err)
	}
	if covenants.Defaults == nil {
		covenants.Defaults = s.Defaults
	}

	card, err := RunAudit(AuditInput{
		Facts:     facts,
		Priors:    priors,
		Catalog:   s.Catalog,
		Covenants: covenants,
		Signals:   signals,
	})
	if err != nil {
		s.logError("AuditProperty", "RunAudit", propertyId, err)
		return nil, err
	}
	card.AuditRunId = cid
	for i := range card.Results {
		card.Results[i].AuditRunId = cid
	}
	for i := range card.Metrics {
		card.Metrics[i].AuditRunId = cid
	}

	if s.Scorecards != nil {
		if err := s.Scorecards.Save(ctx, card); err != nil {
			s.logError("AuditProperty", "Save", propertyId, err)
			return nil, fmt.Errorf("persist scorecard: %w", err)
		}
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"field":          "AuditWorkflow",
			"property_id":    propertyId,
			"period_id":      periodId,
			"correlation_id": cid,
			"rules_run":      len(card.Results),
			"metrics":        len(card.Metrics),
			"health_score":   card.HealthScore,
			"traffic_light":  card.TrafficLight,
			"opinion":        card.AuditOpinion,
		}).Info("property audit completed")
	}
	return card, nil
}
