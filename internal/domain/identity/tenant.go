package identity

import (
	"strings"
	"time"

	"github.com/factuur/backend/internal/domain/shared"
)

// Tenant is the isolation boundary: one hiring company. Its identity is
// effectively immutable for the lifetime of the system; every work entry,
// statement and invoice hangs off exactly one tenant.
type Tenant struct {
	shared.BaseAggregateRoot
	Name    string `json:"name"`
	KVKNr   string `json:"kvk_nr"` // Dutch chamber of commerce number
	Email   string `json:"email"`
	Country string `json:"country"`
}

// NewTenant creates a new tenant
func NewTenant(name, kvkNr, email string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid contact email is required")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		KVKNr:             kvkNr,
		Email:             email,
		Country:           "NL",
	}, nil
}

// Rename updates the display name
func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}
