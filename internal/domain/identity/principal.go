package identity

import (
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the closed set of actor roles. Authorization decisions dispatch on
// this enum in exactly one place (the Principal methods below); handlers and
// services never re-check role strings ad hoc.
type Role string

const (
	RoleCompanyAdmin Role = "company_admin"
	RoleCompanyStaff Role = "company_staff"
	RoleContractor   Role = "contractor"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleCompanyAdmin, RoleCompanyStaff, RoleContractor:
		return true
	}
	return false
}

// IsCompany returns true for the two company-side roles
func (r Role) IsCompany() bool {
	return r == RoleCompanyAdmin || r == RoleCompanyStaff
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Principal is an authenticated actor: a user with a role inside one tenant.
// Contractor-role principals additionally carry the contractor record they
// act as. The zero Principal is unauthenticated.
type Principal struct {
	UserID       uuid.UUID
	TenantID     uuid.UUID
	Role         Role
	ContractorID uuid.UUID // uuid.Nil for company roles
}

// IsAuthenticated reports whether the principal identifies a signed-in user.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil && p.TenantID != uuid.Nil && p.Role.IsValid()
}

// AuthorizeTenant decides whether the principal may act on resources of the
// target tenant. Authentication is checked before any scope comparison, so an
// anonymous caller always sees Unauthorized, never Forbidden.
func (p Principal) AuthorizeTenant(targetTenantID uuid.UUID) error {
	if !p.IsAuthenticated() {
		return shared.ErrUnauthorized
	}
	if targetTenantID == uuid.Nil {
		return shared.ErrInvalidInput
	}
	if p.TenantID != targetTenantID {
		return shared.ErrForbidden
	}
	return nil
}

// AuthorizeContractor decides whether the principal may act on a
// contractor-scoped resource. Company roles may reach any contractor of their
// own tenant; a contractor only themselves.
func (p Principal) AuthorizeContractor(targetTenantID, targetContractorID uuid.UUID) error {
	if err := p.AuthorizeTenant(targetTenantID); err != nil {
		return err
	}
	if targetContractorID == uuid.Nil {
		return shared.ErrInvalidInput
	}
	if p.Role == RoleContractor && p.ContractorID != targetContractorID {
		return shared.ErrForbidden
	}
	return nil
}

// AuthorizeCompany decides whether the principal may perform a company-only
// operation (recording work, generating statements, changing status) within
// the target tenant.
func (p Principal) AuthorizeCompany(targetTenantID uuid.UUID) error {
	if err := p.AuthorizeTenant(targetTenantID); err != nil {
		return err
	}
	if !p.Role.IsCompany() {
		return shared.ErrForbidden
	}
	return nil
}
