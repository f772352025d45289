package identity

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository persists Tenant aggregates
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
}

// ContractorRepository persists Contractor aggregates
type ContractorRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Contractor, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Contractor, error)
	Save(ctx context.Context, contractor *Contractor) error
}

// UserRepository persists User aggregates
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}
