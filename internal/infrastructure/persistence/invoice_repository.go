package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/infrastructure/persistence/models"
	"github.com/factuur/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *tenant.TenantDB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *tenant.TenantDB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Issue allocates the next legal number for the issuance year and writes the
// invoice together with the statement status flip in a single transaction.
// When two requests race, the unique indexes make the loser fail with
// shared.ErrConflict; the caller decides between returning the winner's
// invoice and retrying with a fresh sequence.
func (r *GormInvoiceRepository) Issue(ctx context.Context, invoice *billing.Invoice, statement *billing.Statement) error {
	return r.db.Transaction(ctx, invoice.TenantID, func(tx *gorm.DB) error {
		year := invoice.IssuedAt.Year()
		seq, err := nextSequence(tx, invoice.TenantID, year)
		if err != nil {
			return err
		}

		invoice.Number = ""
		if err := invoice.AssignNumber(seq); err != nil {
			return err
		}

		var invoiceModel models.InvoiceModel
		invoiceModel.FromDomain(invoice)
		if err := tx.Create(&invoiceModel).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrConflict
			}
			return err
		}

		var statementModel models.StatementModel
		statementModel.FromDomain(statement)
		return tx.Save(&statementModel).Error
	})
}

// nextSequence finds the highest allocated suffix for the year inside the
// issuing transaction and returns the one after it. Ordering by length before
// value keeps the comparison numeric once sequences widen past four digits.
func nextSequence(tx *gorm.DB, tenantID uuid.UUID, year int) (int, error) {
	prefix := fmt.Sprintf("%s-%04d-", billing.InvoiceNumberPrefix, year)

	var maxNumber string
	if err := tx.
		Model(&models.InvoiceModel{}).
		Select("invoice_number").
		Where("tenant_id = ? AND invoice_number LIKE ?", tenantID, prefix+"%").
		Order("LENGTH(invoice_number) DESC, invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &maxNumber).Error; err != nil {
		return 0, err
	}

	if maxNumber == "" {
		return 1, nil
	}

	_, seq, err := billing.ParseInvoiceNumber(maxNumber)
	if err != nil {
		return 0, fmt.Errorf("corrupt invoice number %q in storage: %w", maxNumber, err)
	}
	return seq + 1, nil
}

// FindByID finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithTenant(ctx, tenantID).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatement finds the invoice issued for a statement, if any
func (r *GormInvoiceRepository) FindByStatement(ctx context.Context, tenantID, statementID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithTenant(ctx, tenantID).
		Where("statement_id = ?", statementID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its legal number within a tenant
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithTenant(ctx, tenantID).
		Where("invoice_number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
