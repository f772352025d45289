package billing

import (
	"time"

	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TariffType is the closed set of billing units a company can log work in.
type TariffType string

const (
	TariffStop     TariffType = "stop"     // parcel/delivery stop
	TariffHour     TariffType = "hour"     // hourly work
	TariffLocation TariffType = "location" // per serviced location
	TariffPoint    TariffType = "point"    // per point (piecework)
	TariffProject  TariffType = "project"  // fixed project fee
)

// IsValid checks if the tariff type is one of the fixed enum
func (t TariffType) IsValid() bool {
	switch t {
	case TariffStop, TariffHour, TariffLocation, TariffPoint, TariffProject:
		return true
	}
	return false
}

// String returns the string representation of the tariff type
func (t TariffType) String() string {
	return string(t)
}

// WorkEntry is one immutable billable fact: a quantity of delivered work at a
// unit price, logged by a company for a contractor on a calendar date. The sum
// of quantity × unit price over a date range is the financial ground truth;
// entries are never updated or deleted by the core.
type WorkEntry struct {
	shared.TenantAggregateRoot
	ContractorID uuid.UUID            `json:"contractor_id"`
	WorkDate     time.Time            `json:"work_date"` // calendar date, midnight UTC
	TariffType   TariffType           `json:"tariff_type"`
	Quantity     decimal.Decimal      `json:"quantity"`
	UnitPrice    decimal.Decimal      `json:"unit_price"`
	Currency     valueobject.Currency `json:"currency"`
}

// NewWorkEntry creates a new work entry
func NewWorkEntry(
	tenantID uuid.UUID,
	contractorID uuid.UUID,
	workDate time.Time,
	tariffType TariffType,
	quantity decimal.Decimal,
	unitPrice valueobject.Money,
) (*WorkEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if contractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor ID cannot be empty")
	}
	if workDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_WORK_DATE", "Work date is required")
	}
	if !tariffType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TARIFF_TYPE", "Tariff type is not valid")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &WorkEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContractorID:        contractorID,
		WorkDate:            normalizeDate(workDate),
		TariffType:          tariffType,
		Quantity:            quantity,
		UnitPrice:           unitPrice.Amount(),
		Currency:            unitPrice.Currency(),
	}, nil
}

// LineTotal returns quantity × unit price rounded to cents.
func (w *WorkEntry) LineTotal() valueobject.Money {
	price, _ := valueobject.NewMoney(w.UnitPrice, w.Currency)
	return valueobject.LineTotal(w.Quantity, price)
}

// Week returns the ISO week the entry belongs to.
func (w *WorkEntry) Week() valueobject.WeekPeriod {
	return valueobject.WeekOf(w.WorkDate)
}

// normalizeDate strips time-of-day and zone so work dates compare as plain
// calendar dates.
func normalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
