package identity

import (
	"time"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest contains the input for tenant self-registration
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	KVKNr       string `json:"kvk_nr"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

// RegisterResult contains the identifiers of a freshly registered tenant
type RegisterResult struct {
	TenantID uuid.UUID `json:"tenant_id"`
	UserID   uuid.UUID `json:"user_id"`
}

// LoginRequest contains the input for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	User        UserInfo  `json:"user"`
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	ContractorID *uuid.UUID `json:"contractor_id,omitempty"`
}

// CreateContractorRequest contains the input for onboarding a contractor.
// A non-empty password also creates a login account for the contractor.
type CreateContractorRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	BTWNr       string `json:"btw_nr"`
	Password    string `json:"password"`
}

// ContractorResponse represents a contractor in API responses
type ContractorResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	BTWNr       string    `json:"btw_nr,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserInfo(user *identity.User) UserInfo {
	info := UserInfo{
		ID:       user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role.String(),
	}
	if user.ContractorID != uuid.Nil {
		id := user.ContractorID
		info.ContractorID = &id
	}
	return info
}

func toContractorResponse(c *identity.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		BTWNr:       c.BTWNr,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
