package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScorecardStore persists one audit run's output. The scorecard row is
// upserted atomically per (property, period); result and metric rows from the
// superseded run are replaced inside the same transaction so a reader never
// observes a half-written audit.
type ScorecardStore struct {
	DB *gorm.DB
}

func NewScorecardStore(db *gorm.DB) *ScorecardStore {
	return &ScorecardStore{DB: db}
}

func (s *ScorecardStore) Save(ctx context.Context, card *AuditScorecard) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "period_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"audit_run_id", "catalog_ver", "health_score", "traffic_light",
				"audit_opinion", "breakdown", "priority_risks", "action_items",
				"generated_at", "updated_at",
			}),
		}).Create(card).Error; err != nil {
			return err
		}

		if err := tx.
			Where("property_id = ? AND period_id = ?", card.PropertyId, card.PeriodId).
			Delete(&ReconciliationResult{}).Error; err != nil {
			return err
		}
		for i := range card.Results {
			card.Results[i].ID = 0
		}
		if len(card.Results) > 0 {
			if err := tx.CreateInBatches(card.Results, 100).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("property_id = ? AND period_id = ?", card.PropertyId, card.PeriodId).
			Delete(&CovenantMetric{}).Error; err != nil {
			return err
		}
		for i := range card.Metrics {
			card.Metrics[i].ID = 0
		}
		if len(card.Metrics) > 0 {
			if err := tx.CreateInBatches(card.Metrics, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the persisted scorecard with its result and metric rows.
func (s *ScorecardStore) Load(ctx context.Context, propertyId, periodId string) (*AuditScorecard, error) {
	var card AuditScorecard
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND period_id = ?", propertyId, periodId).
		First(&card).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND period_id = ?", propertyId, periodId).
		Order("rule_id ASC").
		Find(&card.Results).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND period_id = ?", propertyId, periodId).
		Order("metric_name ASC").
		Find(&card.Metrics).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// Migrate creates the audit tables. Used by the harness and seed tooling.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&FinancialFact{},
		&FinancialPeriod{},
		&CovenantOverride{},
		&ReconciliationResult{},
		&CovenantMetric{},
		&AuditScorecard{},
	)
}
