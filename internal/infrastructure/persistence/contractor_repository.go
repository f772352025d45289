package persistence

import (
	"context"
	"errors"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/infrastructure/persistence/models"
	"github.com/factuur/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContractorRepository implements identity.ContractorRepository using GORM
type GormContractorRepository struct {
	db *tenant.TenantDB
}

// NewGormContractorRepository creates a new GormContractorRepository
func NewGormContractorRepository(db *tenant.TenantDB) *GormContractorRepository {
	return &GormContractorRepository{db: db}
}

// FindByIDForTenant finds a contractor by ID within a tenant
func (r *GormContractorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Contractor, error) {
	var model models.ContractorModel
	if err := r.db.WithTenant(ctx, tenantID).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all contractors for a tenant
func (r *GormContractorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]identity.Contractor, error) {
	var contractorModels []models.ContractorModel
	if err := r.db.WithTenant(ctx, tenantID).
		Order("display_name ASC").
		Find(&contractorModels).Error; err != nil {
		return nil, err
	}
	contractors := make([]identity.Contractor, len(contractorModels))
	for i, model := range contractorModels {
		contractors[i] = *model.ToDomain()
	}
	return contractors, nil
}

// Save creates or updates a contractor
func (r *GormContractorRepository) Save(ctx context.Context, contractor *identity.Contractor) error {
	var model models.ContractorModel
	model.FromDomain(contractor)
	return r.db.WithTenant(ctx, contractor.TenantID).Save(&model).Error
}
