package models

import (
	"time"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// TenantModel is the persistence model for the Tenant aggregate root.
type TenantModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	KVKNr   string `gorm:"type:varchar(20);index"`
	Email   string `gorm:"type:varchar(254);not null"`
	Country string `gorm:"type:varchar(2);not null;default:'NL'"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		KVKNr:             m.KVKNr,
		Email:             m.Email,
		Country:           m.Country,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.KVKNr = t.KVKNr
	m.Email = t.Email
	m.Country = t.Country
}

// ContractorModel is the persistence model for the Contractor aggregate root.
type ContractorModel struct {
	TenantAggregateModel
	DisplayName string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(254);not null"`
	BTWNr       string `gorm:"type:varchar(20)"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ContractorModel) TableName() string {
	return "contractors"
}

// ToDomain converts the persistence model to a domain Contractor entity.
func (m *ContractorModel) ToDomain() *identity.Contractor {
	return &identity.Contractor{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		DisplayName:         m.DisplayName,
		Email:               m.Email,
		BTWNr:               m.BTWNr,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Contractor entity.
func (m *ContractorModel) FromDomain(c *identity.Contractor) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.DisplayName = c.DisplayName
	m.Email = c.Email
	m.BTWNr = c.BTWNr
	m.Active = c.Active
}

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	TenantAggregateModel
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	ContractorID *uuid.UUID `gorm:"type:uuid;index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	contractorID := uuid.Nil
	if m.ContractorID != nil {
		contractorID = *m.ContractorID
	}
	return &identity.User{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                identity.Role(m.Role),
		ContractorID:        contractorID,
		LastLoginAt:         m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = string(u.Role)
	if u.ContractorID != uuid.Nil {
		id := u.ContractorID
		m.ContractorID = &id
	} else {
		m.ContractorID = nil
	}
	m.LastLoginAt = u.LastLoginAt
}
