package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bitbucket.org/mmdatafocus/audit_backend/utils"
)

// FinancialPeriod describes one reporting period for a property. Prior-period
// resolution walks these by end date.
type FinancialPeriod struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"size:64;uniqueIndex:uniq_period_prop;not null" json:"property_id"`
	PeriodId   string    `gorm:"size:64;uniqueIndex:uniq_period_prop;not null" json:"period_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p FinancialPeriod) Days() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// FactStore is the only component that performs I/O. The evaluator runs
// against snapshots this produces; nothing inside an audit touches a
// datastore after the snapshots are built.
type FactStore interface {
	// LoadSnapshot returns all line items for one (property, period).
	LoadSnapshot(ctx context.Context, propertyId, periodId string) (*FactSnapshot, error)

	// LoadPriorSnapshots returns up to n snapshots for the periods preceding
	// periodId, newest first. An empty slice means no history.
	LoadPriorSnapshots(ctx context.Context, propertyId, periodId string, n int) ([]*FactSnapshot, error)

	// LoadCovenantConfig returns configured defaults plus the property's
	// threshold overrides.
	LoadCovenantConfig(ctx context.Context, propertyId string) (CovenantConfig, error)
}

// GormFactStore is the reference FactStore over the extraction schema.
type GormFactStore struct {
	DB *gorm.DB
}

func NewGormFactStore(db *gorm.DB) *GormFactStore {
	return &GormFactStore{DB: db}
}

func (s *GormFactStore) LoadSnapshot(ctx context.Context, propertyId, periodId string) (*FactSnapshot, error) {
	var period FinancialPeriod
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND period_id = ?", propertyId, periodId).
		First(&period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("period %s/%s: %w", propertyId, periodId, utils.ErrorRecordNotFound)
	}
	if err != nil {
		return nil, err
	}

	var facts []FinancialFact
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND period_id = ?", propertyId, periodId).
		Order("id ASC").
		Find(&facts).Error; err != nil {
		return nil, err
	}
	return NewFactSnapshot(propertyId, periodId, period.Days(), facts), nil
}

func (s *GormFactStore) LoadPriorSnapshots(ctx context.Context, propertyId, periodId string, n int) ([]*FactSnapshot, error) {
	var current FinancialPeriod
	err := s.DB.WithContext(ctx).
		Where("property_id = ? AND period_id = ?", propertyId, periodId).
		First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var priors []FinancialPeriod
	if err := s.DB.WithContext(ctx).
		Where("property_id = ? AND end_date < ?", propertyId, current.StartDate).
		Order("end_date DESC").
		Limit(n).
		Find(&priors).Error; err != nil {
		return nil, err
	}

	out := make([]*FactSnapshot, 0, len(priors))
	for _, p := range priors {
		snap, err := s.LoadSnapshot(ctx, propertyId, p.PeriodId)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func (s *GormFactStore) LoadCovenantConfig(ctx context.Context, propertyId string) (CovenantConfig, error) {
	var overrides []CovenantOverride
	if err := s.DB.WithContext(ctx).
		Where("property_id = ?", propertyId).
		Order("id ASC").
		Find(&overrides).Error; err != nil {
		return CovenantConfig{}, err
	}
	return CovenantConfig{Overrides: overrides}, nil
}

// InMemoryFactStore backs tests and the harness's fixture mode.
type InMemoryFactStore struct {
	Snapshots map[string]*FactSnapshot // keyed propertyId|periodId
	Priors    map[string][]*FactSnapshot
	Config    CovenantConfig
}

func factKey(propertyId, periodId string) string { return propertyId + "|" + periodId }

func NewInMemoryFactStore() *InMemoryFactStore {
	return &InMemoryFactStore{
		Snapshots: map[string]*FactSnapshot{},
		Priors:    map[string][]*FactSnapshot{},
	}
}

func (s *InMemoryFactStore) Add(snap *FactSnapshot, priors ...*FactSnapshot) {
	k := factKey(snap.PropertyId, snap.PeriodId)
	s.Snapshots[k] = snap
	s.Priors[k] = priors
}

func (s *InMemoryFactStore) LoadSnapshot(ctx context.Context, propertyId, periodId string) (*FactSnapshot, error) {
	snap, ok := s.Snapshots[factKey(propertyId, periodId)]
	if !ok {
		return nil, fmt.Errorf("snapshot %s/%s: %w", propertyId, periodId, utils.ErrorRecordNotFound)
	}
	return snap, nil
}

func (s *InMemoryFactStore) LoadPriorSnapshots(ctx context.Context, propertyId, periodId string, n int) ([]*FactSnapshot, error) {
	priors := s.Priors[factKey(propertyId, periodId)]
	if len(priors) > n {
		priors = priors[:n]
	}
	return priors, nil
}

func (s *InMemoryFactStore) LoadCovenantConfig(ctx context.Context, propertyId string) (CovenantConfig, error) {
	return s.Config, nil
}
