package identity

import (
	"strings"
	"time"

	"github.com/factuur/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Contractor is an independent worker (ZZP'er) billing exactly one tenant.
type Contractor struct {
	shared.TenantAggregateRoot
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	BTWNr       string `json:"btw_nr"` // Dutch VAT registration number
	Active      bool   `json:"active"`
}

// NewContractor creates a new contractor linked to a tenant
func NewContractor(tenantID uuid.UUID, displayName, email, btwNr string) (*Contractor, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR_NAME", "Contractor name cannot be empty")
	}
	if len(displayName) > 200 {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR_NAME", "Contractor name cannot exceed 200 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid contact email is required")
	}

	return &Contractor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DisplayName:         displayName,
		Email:               email,
		BTWNr:               btwNr,
		Active:              true,
	}, nil
}

// Deactivate marks the contractor as no longer active. Historical work
// entries and statements remain untouched.
func (c *Contractor) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
