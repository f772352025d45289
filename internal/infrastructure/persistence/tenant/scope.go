// Package tenant provides multi-tenant database scoping for GORM.
//
// Every query issued through TenantDB carries a WHERE tenant_id = ?
// condition, so a repository cannot accidentally read or write another
// tenant's rows even when a handler forgets to filter.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when tenant_id is required but not provided
var ErrTenantIDRequired = errors.New("tenant_id is required but not provided")

// Scope applies tenant filtering to GORM queries
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// TenantDB wraps GORM DB with mandatory tenant scoping
type TenantDB struct {
	db *gorm.DB
}

// NewTenantDB creates a new TenantDB
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db}
}

// WithTenant returns a GORM DB scoped to a specific tenant ID. A nil tenant
// ID poisons the returned DB so any operation on it errors instead of
// running unscoped.
func (t *TenantDB) WithTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	db := t.db.WithContext(ctx)
	if tenantID == uuid.Nil {
		_ = db.AddError(ErrTenantIDRequired)
		return db
	}
	return db.Scopes(Scope(tenantID))
}

// Transaction executes a function within a database transaction scoped to a tenant
func (t *TenantDB) Transaction(ctx context.Context, tenantID uuid.UUID, fn func(tx *gorm.DB) error) error {
	if tenantID == uuid.Nil {
		return ErrTenantIDRequired
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx.Scopes(Scope(tenantID)))
	})
}

// Unscoped returns the underlying DB without tenant scoping.
// Only for system-level operations such as login, where no tenant is known yet.
func (t *TenantDB) Unscoped() *gorm.DB {
	return t.db
}
