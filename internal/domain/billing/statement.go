package billing

import (
	"fmt"
	"time"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementStatus represents the lifecycle state of a weekly statement
type StatementStatus string

const (
	StatementStatusOpen     StatementStatus = "open"
	StatementStatusApproved StatementStatus = "approved"
	StatementStatusInvoiced StatementStatus = "invoiced"
	StatementStatusPaid     StatementStatus = "paid"
)

// IsValid checks if the status is a valid StatementStatus
func (s StatementStatus) IsValid() bool {
	switch s {
	case StatementStatusOpen, StatementStatusApproved, StatementStatusInvoiced, StatementStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s StatementStatus) String() string {
	return string(s)
}

// IsLocked returns true once a statement carries legal weight: its total may
// no longer be recomputed by aggregation.
func (s StatementStatus) IsLocked() bool {
	return s == StatementStatusInvoiced || s == StatementStatusPaid
}

// allowedTransitions is the forward-only transition table. Anything absent is
// a rejected backward or sideways move.
var allowedTransitions = map[StatementStatus][]StatementStatus{
	StatementStatusOpen:     {StatementStatusApproved, StatementStatusInvoiced, StatementStatusPaid},
	StatementStatusApproved: {StatementStatusInvoiced, StatementStatusPaid},
	StatementStatusInvoiced: {StatementStatusPaid},
	StatementStatusPaid:     {},
}

// CanTransitionTo reports whether the move is in the forward transition table.
func (s StatementStatus) CanTransitionTo(target StatementStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Statement is the derived weekly aggregate for one (tenant, contractor, ISO
// week). At most one exists per key; re-aggregation updates the row in place.
// The total is always recomputed from work entries, never hand-edited.
type Statement struct {
	shared.TenantAggregateRoot
	ContractorID uuid.UUID            `json:"contractor_id"`
	Year         int                  `json:"year"`
	WeekNumber   int                  `json:"week_number"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	Currency     valueobject.Currency `json:"currency"`
	Status       StatementStatus      `json:"status"`
}

// NewStatement creates a fresh open statement for one contractor-week
func NewStatement(tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod, total valueobject.Money) (*Statement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if contractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor ID cannot be empty")
	}
	if _, err := valueobject.NewWeekPeriod(period.Year, period.Week); err != nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Statement total cannot be negative")
	}

	return &Statement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContractorID:        contractorID,
		Year:                period.Year,
		WeekNumber:          period.Week,
		TotalAmount:         total.Amount(),
		Currency:            total.Currency(),
		Status:              StatementStatusOpen,
	}, nil
}

// Period returns the statement's ISO week
func (st *Statement) Period() valueobject.WeekPeriod {
	return valueobject.WeekPeriod{Year: st.Year, Week: st.WeekNumber}
}

// Total returns the statement total as Money
func (st *Statement) Total() valueobject.Money {
	m, _ := valueobject.NewMoney(st.TotalAmount, st.Currency)
	return m
}

// Reaggregate replaces the total with a freshly computed sum and resets the
// status to open. An invoiced or paid statement is locked: its total backs a
// numbered legal document and recomputation is rejected rather than silently
// resetting the status.
func (st *Statement) Reaggregate(total valueobject.Money) error {
	if st.Status.IsLocked() {
		return shared.ErrStatementLocked
	}
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Statement total cannot be negative")
	}
	st.TotalAmount = total.Amount()
	st.Currency = total.Currency()
	st.Status = StatementStatusOpen
	st.UpdatedAt = time.Now()
	st.IncrementVersion()
	return nil
}

// TransitionTo moves the statement forward in its lifecycle on behalf of an
// actor. Only company roles may transition; backward moves are rejected.
func (st *Statement) TransitionTo(target StatementStatus, actor identity.Role) error {
	if !actor.IsCompany() {
		return shared.ErrForbidden
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown statement status %q", target))
	}
	if !st.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition statement from %s to %s", st.Status, target))
	}
	st.Status = target
	st.UpdatedAt = time.Now()
	st.IncrementVersion()
	return nil
}

// MarkInvoiced is the system transition applied on invoice issuance. Already
// invoiced or paid statements are left untouched.
func (st *Statement) MarkInvoiced() {
	if st.Status.IsLocked() {
		return
	}
	st.Status = StatementStatusInvoiced
	st.UpdatedAt = time.Now()
	st.IncrementVersion()
}
