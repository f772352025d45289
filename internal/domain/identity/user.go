package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/factuur/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a login account inside a tenant. Company users carry no contractor
// link; contractor users carry the contractor record they act as.
type User struct {
	shared.TenantAggregateRoot
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ContractorID uuid.UUID `json:"contractor_id,omitempty"` // uuid.Nil for company roles
	LastLoginAt  *time.Time
}

// NewUser creates a new user account with a hashed password
func NewUser(tenantID uuid.UUID, email, password string, role Role, contractorID uuid.UUID) (*User, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	if role == RoleContractor && contractorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Contractor users must be linked to a contractor")
	}
	if role.IsCompany() && contractorID != uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACTOR", "Company users cannot be linked to a contractor")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		PasswordHash:        hash,
		Role:                role,
		ContractorID:        contractorID,
	}, nil
}

// Principal converts the user into its request principal.
func (u *User) Principal() Principal {
	return Principal{
		UserID:       u.ID,
		TenantID:     u.TenantID,
		Role:         u.Role,
		ContractorID: u.ContractorID,
	}
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_FAILED", "Failed to hash password")
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// ChangePassword changes the user's password after verifying the old one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// TouchLogin records a successful login
func (u *User) TouchLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
