package billing

import (
	"context"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockWorkEntryRepository is a mock implementation of billing.WorkEntryRepository
type MockWorkEntryRepository struct {
	mock.Mock
}

func (m *MockWorkEntryRepository) Save(ctx context.Context, entry *billing.WorkEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.WorkEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WorkEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) FindForContractorPeriod(ctx context.Context, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod) ([]*billing.WorkEntry, error) {
	args := m.Called(ctx, tenantID, contractorID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.WorkEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) SumForPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.WeekPeriod, contractorID *uuid.UUID) ([]billing.PeriodSum, error) {
	args := m.Called(ctx, tenantID, period, contractorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.PeriodSum), args.Error(1)
}

// MockStatementRepository is a mock implementation of billing.StatementRepository
type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) Save(ctx context.Context, statement *billing.Statement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockStatementRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Statement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Statement), args.Error(1)
}

func (m *MockStatementRepository) FindByPeriod(ctx context.Context, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod) (*billing.Statement, error) {
	args := m.Called(ctx, tenantID, contractorID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Statement), args.Error(1)
}

func (m *MockStatementRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, status *billing.StatementStatus) ([]*billing.Statement, error) {
	args := m.Called(ctx, tenantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Statement), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Issue(ctx context.Context, invoice *billing.Invoice, statement *billing.Statement) error {
	args := m.Called(ctx, invoice, statement)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatement(ctx context.Context, tenantID, statementID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

// MockContractorRepository is a mock implementation of identity.ContractorRepository
type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.Contractor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Contractor), args.Error(1)
}

func (m *MockContractorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]identity.Contractor, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Contractor), args.Error(1)
}

func (m *MockContractorRepository) Save(ctx context.Context, contractor *identity.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}

func companyPrincipal(tenantID uuid.UUID) identity.Principal {
	return identity.Principal{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Role:     identity.RoleCompanyStaff,
	}
}

func contractorPrincipal(tenantID, contractorID uuid.UUID) identity.Principal {
	return identity.Principal{
		UserID:       uuid.New(),
		TenantID:     tenantID,
		Role:         identity.RoleContractor,
		ContractorID: contractorID,
	}
}
