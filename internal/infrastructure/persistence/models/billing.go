package models

import (
	"time"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkEntryModel is the persistence model for the WorkEntry aggregate root.
// Rows are append-only: the application never updates or deletes them.
type WorkEntryModel struct {
	TenantAggregateModel
	ContractorID uuid.UUID       `gorm:"type:uuid;not null;index:idx_work_entries_contractor_date"`
	WorkDate     time.Time       `gorm:"type:date;not null;index:idx_work_entries_contractor_date"`
	TariffType   string          `gorm:"type:varchar(20);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'EUR'"`
}

// TableName returns the table name for GORM
func (WorkEntryModel) TableName() string {
	return "work_entries"
}

// ToDomain converts the persistence model to a domain WorkEntry entity.
func (m *WorkEntryModel) ToDomain() *billing.WorkEntry {
	return &billing.WorkEntry{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ContractorID:        m.ContractorID,
		WorkDate:            m.WorkDate.UTC(),
		TariffType:          billing.TariffType(m.TariffType),
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		Currency:            valueobject.Currency(m.Currency),
	}
}

// FromDomain populates the persistence model from a domain WorkEntry entity.
func (m *WorkEntryModel) FromDomain(w *billing.WorkEntry) {
	m.FromDomainTenantAggregateRoot(w.TenantAggregateRoot)
	m.ContractorID = w.ContractorID
	m.WorkDate = w.WorkDate
	m.TariffType = string(w.TariffType)
	m.Quantity = w.Quantity
	m.UnitPrice = w.UnitPrice
	m.Currency = string(w.Currency)
}

// StatementModel is the persistence model for the Statement aggregate root.
// The unique index keeps at most one statement per contractor-week; a
// contractor belongs to exactly one tenant, so tenant_id need not be part of
// the key.
type StatementModel struct {
	TenantAggregateModel
	ContractorID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_statements_period,priority:1"`
	Year         int             `gorm:"not null;uniqueIndex:idx_statements_period,priority:2"`
	WeekNumber   int             `gorm:"not null;uniqueIndex:idx_statements_period,priority:3"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status       string          `gorm:"type:varchar(20);not null;default:'open';index"`
}

// TableName returns the table name for GORM
func (StatementModel) TableName() string {
	return "statements"
}

// ToDomain converts the persistence model to a domain Statement entity.
func (m *StatementModel) ToDomain() *billing.Statement {
	return &billing.Statement{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ContractorID:        m.ContractorID,
		Year:                m.Year,
		WeekNumber:          m.WeekNumber,
		TotalAmount:         m.TotalAmount,
		Currency:            valueobject.Currency(m.Currency),
		Status:              billing.StatementStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Statement entity.
func (m *StatementModel) FromDomain(st *billing.Statement) {
	m.FromDomainTenantAggregateRoot(st.TenantAggregateRoot)
	m.ContractorID = st.ContractorID
	m.Year = st.Year
	m.WeekNumber = st.WeekNumber
	m.TotalAmount = st.TotalAmount
	m.Currency = string(st.Currency)
	m.Status = string(st.Status)
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Two unique indexes back the issuance invariants: one invoice per statement,
// one legal number per tenant. TenantID is declared here rather than through
// TenantAggregateModel so it can take part in the number index.
type InvoiceModel struct {
	AggregateModel
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_tenant_number,priority:1"`
	StatementID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_statement"`
	InvoiceNumber string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoices_tenant_number,priority:2"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	IssuedAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: m.ToDomainAggregateRoot(),
			TenantID:          m.TenantID,
		},
		StatementID: m.StatementID,
		Number:      m.InvoiceNumber,
		Subtotal:    m.Subtotal,
		Currency:    valueobject.Currency(m.Currency),
		IssuedAt:    m.IssuedAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.TenantID = inv.TenantID
	m.StatementID = inv.StatementID
	m.InvoiceNumber = inv.Number
	m.Subtotal = inv.Subtotal
	m.Currency = string(inv.Currency)
	m.IssuedAt = inv.IssuedAt
}
