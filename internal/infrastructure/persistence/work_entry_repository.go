package persistence

import (
	"context"
	"errors"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/factuur/backend/internal/infrastructure/persistence/models"
	"github.com/factuur/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWorkEntryRepository implements billing.WorkEntryRepository using GORM
type GormWorkEntryRepository struct {
	db *tenant.TenantDB
}

// NewGormWorkEntryRepository creates a new GormWorkEntryRepository
func NewGormWorkEntryRepository(db *tenant.TenantDB) *GormWorkEntryRepository {
	return &GormWorkEntryRepository{db: db}
}

// Save inserts a work entry. The ledger is append-only, so this is always a
// create, never an update.
func (r *GormWorkEntryRepository) Save(ctx context.Context, entry *billing.WorkEntry) error {
	var model models.WorkEntryModel
	model.FromDomain(entry)
	return r.db.WithTenant(ctx, entry.TenantID).Create(&model).Error
}

// FindByID finds a work entry by ID within a tenant
func (r *GormWorkEntryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.WorkEntry, error) {
	var model models.WorkEntryModel
	if err := r.db.WithTenant(ctx, tenantID).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForContractorPeriod returns all entries logged for one contractor in
// one ISO week, oldest first.
func (r *GormWorkEntryRepository) FindForContractorPeriod(ctx context.Context, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod) ([]*billing.WorkEntry, error) {
	start, end := period.DateRange()

	var entryModels []models.WorkEntryModel
	if err := r.db.WithTenant(ctx, tenantID).
		Where("contractor_id = ? AND work_date >= ? AND work_date <= ?", contractorID, start, end).
		Order("work_date ASC, created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*billing.WorkEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// periodSumRow is the raw aggregation row scanned from storage
type periodSumRow struct {
	ContractorID uuid.UUID       `gorm:"column:contractor_id"`
	Total        decimal.Decimal `gorm:"column:total"`
	Currency     string          `gorm:"column:currency"`
	EntryCount   int             `gorm:"column:entry_count"`
}

// SumForPeriod aggregates rounded line totals per contractor for one ISO
// week. Rounding happens per line inside the database so the result matches
// what the lines themselves display.
func (r *GormWorkEntryRepository) SumForPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.WeekPeriod, contractorID *uuid.UUID) ([]billing.PeriodSum, error) {
	start, end := period.DateRange()

	query := r.db.WithTenant(ctx, tenantID).
		Model(&models.WorkEntryModel{}).
		Select("contractor_id, SUM(ROUND(quantity * unit_price, 2)) AS total, currency, COUNT(*) AS entry_count").
		Where("work_date >= ? AND work_date <= ?", start, end).
		Group("contractor_id, currency").
		Order("contractor_id")

	if contractorID != nil {
		query = query.Where("contractor_id = ?", *contractorID)
	}

	var rows []periodSumRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make([]billing.PeriodSum, len(rows))
	for i, row := range rows {
		sums[i] = billing.PeriodSum{
			ContractorID: row.ContractorID,
			Total:        row.Total.Round(2),
			Currency:     valueobject.Currency(row.Currency),
			EntryCount:   row.EntryCount,
		}
	}
	return sums, nil
}
