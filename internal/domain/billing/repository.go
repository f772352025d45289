package billing

import (
	"context"

	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodSum is the aggregated weekly total for one contractor, computed in
// storage so every statement run sees the same per-line rounding.
type PeriodSum struct {
	ContractorID uuid.UUID
	Total        decimal.Decimal
	Currency     valueobject.Currency
	EntryCount   int
}

// WorkEntryRepository persists the append-only work ledger.
type WorkEntryRepository interface {
	Save(ctx context.Context, entry *WorkEntry) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*WorkEntry, error)
	FindForContractorPeriod(ctx context.Context, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod) ([]*WorkEntry, error)
	// SumForPeriod aggregates rounded line totals per contractor for one ISO
	// week. Contractors without entries in the week are absent from the
	// result.
	SumForPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.WeekPeriod, contractorID *uuid.UUID) ([]PeriodSum, error)
}

// StatementRepository persists weekly statements, keyed one-per
// (tenant, contractor, year, week).
type StatementRepository interface {
	Save(ctx context.Context, statement *Statement) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Statement, error)
	FindByPeriod(ctx context.Context, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod) (*Statement, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, status *StatementStatus) ([]*Statement, error)
}

// InvoiceRepository persists issued invoices. Issue allocates the legal
// number and writes the invoice and the statement status flip in one
// transaction; implementations must surface storage uniqueness violations so
// the caller can resolve races.
type InvoiceRepository interface {
	Issue(ctx context.Context, invoice *Invoice, statement *Statement) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	FindByStatement(ctx context.Context, tenantID, statementID uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Invoice, error)
}
