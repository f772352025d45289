package billing

import (
	"time"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateWorkEntryRequest represents a request to record one billable fact
type CreateWorkEntryRequest struct {
	ContractorID uuid.UUID       `json:"contractor_id" binding:"required"`
	WorkDate     time.Time       `json:"work_date" binding:"required"`
	TariffType   string          `json:"tariff_type" binding:"required,tarifftype"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"required"`
	Currency     string          `json:"currency"`
}

// WorkEntryResponse represents a work entry in API responses
type WorkEntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	ContractorID uuid.UUID       `json:"contractor_id"`
	WorkDate     string          `json:"work_date"` // YYYY-MM-DD
	TariffType   string          `json:"tariff_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WorkEntryListFilter defines filtering options for work entry list queries.
// Year and Week default to the current ISO week when omitted together.
type WorkEntryListFilter struct {
	ContractorID *uuid.UUID `form:"contractor_id"`
	Year         int        `form:"year"`
	Week         int        `form:"week"`
}

// GenerateStatementsRequest selects which contractor-weeks to aggregate.
// Without a contractor ID every contractor with entries in the week gets a
// statement; with one, exactly that contractor does (zero entries included).
type GenerateStatementsRequest struct {
	ContractorID *uuid.UUID `json:"contractor_id"`
	Year         int        `json:"year"`
	Week         int        `json:"week"`
}

// StatementResponse represents a weekly statement in API responses
type StatementResponse struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	ContractorID uuid.UUID       `json:"contractor_id"`
	Year         int             `json:"year"`
	Week         int             `json:"week"`
	Period       string          `json:"period"` // e.g. 2025-W07
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// SkippedStatement records a contractor whose statement could not be
// regenerated during a tenant-wide run.
type SkippedStatement struct {
	ContractorID uuid.UUID `json:"contractor_id"`
	Reason       string    `json:"reason"`
}

// GenerateStatementsResult is the outcome of one aggregation run.
type GenerateStatementsResult struct {
	Statements []StatementResponse `json:"statements"`
	Skipped    []SkippedStatement  `json:"skipped,omitempty"`
}

// StatementListFilter defines filtering options for statement list queries
type StatementListFilter struct {
	ContractorID *uuid.UUID `form:"contractor_id"`
	Status       string     `form:"status"`
	Year         int        `form:"year"`
	Week         int        `form:"week"`
}

// UpdateStatementStatusRequest carries the lifecycle transition target
type UpdateStatementStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceResponse represents an issued invoice in API responses. IsExisting
// distinguishes a fresh issuance from an idempotent replay.
type InvoiceResponse struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	StatementID   uuid.UUID       `json:"statement_id"`
	IsExisting    bool            `json:"is_existing"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VAT           decimal.Decimal `json:"vat"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	IssuedAt      time.Time       `json:"issued_at"`
}

func toWorkEntryResponse(entry *billing.WorkEntry) WorkEntryResponse {
	return WorkEntryResponse{
		ID:           entry.ID,
		TenantID:     entry.TenantID,
		ContractorID: entry.ContractorID,
		WorkDate:     entry.WorkDate.Format("2006-01-02"),
		TariffType:   entry.TariffType.String(),
		Quantity:     entry.Quantity,
		UnitPrice:    entry.UnitPrice,
		LineTotal:    entry.LineTotal().Amount(),
		Currency:     string(entry.Currency),
		CreatedAt:    entry.CreatedAt,
	}
}

func toStatementResponse(st *billing.Statement) StatementResponse {
	return StatementResponse{
		ID:           st.ID,
		TenantID:     st.TenantID,
		ContractorID: st.ContractorID,
		Year:         st.Year,
		Week:         st.WeekNumber,
		Period:       st.Period().String(),
		TotalAmount:  st.TotalAmount,
		Currency:     string(st.Currency),
		Status:       st.Status.String(),
		UpdatedAt:    st.UpdatedAt,
		Version:      st.Version,
	}
}

func toInvoiceResponse(inv *billing.Invoice, isExisting bool) InvoiceResponse {
	totals := inv.Totals()
	return InvoiceResponse{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		StatementID:   inv.StatementID,
		IsExisting:    isExisting,
		Subtotal:      totals.Subtotal.Amount(),
		VAT:           totals.VAT.Amount(),
		Total:         totals.Total.Amount(),
		Currency:      string(inv.Currency),
		IssuedAt:      inv.IssuedAt,
	}
}
