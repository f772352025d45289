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
	"gorm.io/gorm"
)

// GormStatementRepository implements billing.StatementRepository using GORM
type GormStatementRepository struct {
	db *tenant.TenantDB
}

// NewGormStatementRepository creates a new GormStatementRepository
func NewGormStatementRepository(db *tenant.TenantDB) *GormStatementRepository {
	return &GormStatementRepository{db: db}
}

// Save creates or updates a statement. A concurrent insert for the same
// contractor-week surfaces as shared.ErrAlreadyExists via the unique index.
func (r *GormStatementRepository) Save(ctx context.Context, statement *billing.Statement) error {
	var model models.StatementModel
	model.FromDomain(statement)
	if err := r.db.WithTenant(ctx, statement.TenantID).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a statement by ID within a tenant
func (r *GormStatementRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Statement, error) {
	var model models.StatementModel
	if err := r.db.WithTenant(ctx, tenantID).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds the statement for one contractor-week, if any
func (r *GormStatementRepository) FindByPeriod(ctx context.Context, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod) (*billing.Statement, error) {
	var model models.StatementModel
	if err := r.db.WithTenant(ctx, tenantID).
		Where("contractor_id = ? AND year = ? AND week_number = ?", contractorID, period.Year, period.Week).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists statements for a tenant, newest period first,
// optionally filtered by status
func (r *GormStatementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, status *billing.StatementStatus) ([]*billing.Statement, error) {
	query := r.db.WithTenant(ctx, tenantID).
		Model(&models.StatementModel{}).
		Order("year DESC, week_number DESC, contractor_id ASC")

	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var statementModels []models.StatementModel
	if err := query.Find(&statementModels).Error; err != nil {
		return nil, err
	}

	statements := make([]*billing.Statement, len(statementModels))
	for i := range statementModels {
		statements[i] = statementModels[i].ToDomain()
	}
	return statements, nil
}
