package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceNumberPrefix is the fixed prefix of Dutch legal invoice numbers
// issued by this system.
const InvoiceNumberPrefix = "FACT"

var invoiceNumberPattern = regexp.MustCompile(`^FACT-(\d{4})-(\d{4,})$`)

// FormatInvoiceNumber renders the bit-exact legal number FACT-YYYY-NNNN.
// Sequences past 9999 widen instead of wrapping.
func FormatInvoiceNumber(year, sequence int) string {
	return fmt.Sprintf("%s-%04d-%04d", InvoiceNumberPrefix, year, sequence)
}

// ParseInvoiceNumber extracts the year and sequence from a legal invoice
// number, rejecting anything that does not match the exact format.
func ParseInvoiceNumber(number string) (year, sequence int, err error) {
	m := invoiceNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, 0, fmt.Errorf("malformed invoice number %q", number)
	}
	year, _ = strconv.Atoi(m[1])
	sequence, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed invoice number %q", number)
	}
	return year, sequence, nil
}

// Invoice is the immutable legal billing document issued at most once per
// statement. Its number is globally unique and, within a year, allocated from
// a strictly increasing sequence.
type Invoice struct {
	shared.TenantAggregateRoot
	StatementID uuid.UUID            `json:"statement_id"`
	Number      string               `json:"invoice_number"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	Currency    valueobject.Currency `json:"currency"`
	IssuedAt    time.Time            `json:"issued_at"`
}

// NewInvoice creates an invoice draft for a statement. The legal number is
// assigned by the issuing transaction, not at construction, because the next
// free sequence is only known at the serialization point.
func NewInvoice(tenantID, statementID uuid.UUID, subtotal valueobject.Money, issuedAt time.Time) (*Invoice, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if statementID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STATEMENT", "Statement ID cannot be empty")
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice subtotal cannot be negative")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now().UTC()
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		StatementID:         statementID,
		Subtotal:            subtotal.Amount(),
		Currency:            subtotal.Currency(),
		IssuedAt:            issuedAt,
	}, nil
}

// AssignNumber stamps the allocated legal number onto the draft. A number may
// be assigned exactly once.
func (inv *Invoice) AssignNumber(sequence int) error {
	if inv.Number != "" {
		return shared.NewDomainError("NUMBER_ASSIGNED", "Invoice already carries a legal number")
	}
	if sequence < 1 {
		return shared.NewDomainError("INVALID_SEQUENCE", "Invoice sequence must be positive")
	}
	inv.Number = FormatInvoiceNumber(inv.IssuedAt.Year(), sequence)
	return nil
}

// Totals returns the subtotal/VAT/total breakdown at the standard rate.
func (inv *Invoice) Totals() valueobject.InvoiceTotals {
	subtotal, _ := valueobject.NewMoney(inv.Subtotal, inv.Currency)
	return valueobject.TotalsFromSubtotal(subtotal)
}

// Sequence returns the numeric suffix of the assigned number, or 0 for an
// unnumbered draft.
func (inv *Invoice) Sequence() int {
	_, seq, err := ParseInvoiceNumber(inv.Number)
	if err != nil {
		return 0
	}
	return seq
}
