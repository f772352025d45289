package identity

import (
	"context"
	"testing"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func adminPrincipal(tenantID uuid.UUID) identity.Principal {
	return identity.Principal{UserID: uuid.New(), TenantID: tenantID, Role: identity.RoleCompanyAdmin}
}

func staffPrincipal(tenantID uuid.UUID) identity.Principal {
	return identity.Principal{UserID: uuid.New(), TenantID: tenantID, Role: identity.RoleCompanyStaff}
}

func TestContractorService_Create(t *testing.T) {
	tenantID := uuid.New()
	contractorRepo := new(MockContractorRepository)
	userRepo := new(MockUserRepository)
	service := NewContractorService(contractorRepo, userRepo, zap.NewNop())

	contractorRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Contractor")).Return(nil)

	resp, err := service.Create(context.Background(), adminPrincipal(tenantID), CreateContractorRequest{
		DisplayName: "Jan de Vries",
		Email:       "jan@example.nl",
		BTWNr:       "NL001234567B01",
	})
	require.NoError(t, err)
	assert.Equal(t, tenantID, resp.TenantID)
	assert.Equal(t, "Jan de Vries", resp.DisplayName)
	assert.True(t, resp.Active)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContractorService_Create_WithLogin(t *testing.T) {
	tenantID := uuid.New()
	contractorRepo := new(MockContractorRepository)
	userRepo := new(MockUserRepository)
	service := NewContractorService(contractorRepo, userRepo, zap.NewNop())

	contractorRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Contractor")).Return(nil)

	var createdUser *identity.User
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) { createdUser = args.Get(1).(*identity.User) }).
		Return(nil)

	resp, err := service.Create(context.Background(), adminPrincipal(tenantID), CreateContractorRequest{
		DisplayName: "Jan de Vries",
		Email:       "jan@example.nl",
		Password:    "sterk-wachtwoord",
	})
	require.NoError(t, err)
	require.NotNil(t, createdUser)
	assert.Equal(t, identity.RoleContractor, createdUser.Role)
	assert.Equal(t, resp.ID, createdUser.ContractorID)
	assert.Equal(t, tenantID, createdUser.TenantID)
}

func TestContractorService_Create_StaffForbidden(t *testing.T) {
	tenantID := uuid.New()
	service := NewContractorService(new(MockContractorRepository), new(MockUserRepository), zap.NewNop())

	_, err := service.Create(context.Background(), staffPrincipal(tenantID), CreateContractorRequest{
		DisplayName: "Jan de Vries",
		Email:       "jan@example.nl",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestContractorService_List(t *testing.T) {
	tenantID := uuid.New()
	contractorRepo := new(MockContractorRepository)
	service := NewContractorService(contractorRepo, new(MockUserRepository), zap.NewNop())

	jan, err := identity.NewContractor(tenantID, "Jan de Vries", "jan@example.nl", "")
	require.NoError(t, err)
	piet, err := identity.NewContractor(tenantID, "Piet Bakker", "piet@example.nl", "")
	require.NoError(t, err)

	contractorRepo.On("FindAllForTenant", mock.Anything, tenantID).Return([]identity.Contractor{*jan, *piet}, nil)

	responses, err := service.List(context.Background(), staffPrincipal(tenantID))
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, "Jan de Vries", responses[0].DisplayName)
}

func TestContractorService_List_ContractorForbidden(t *testing.T) {
	tenantID := uuid.New()
	service := NewContractorService(new(MockContractorRepository), new(MockUserRepository), zap.NewNop())

	principal := identity.Principal{UserID: uuid.New(), TenantID: tenantID, Role: identity.RoleContractor, ContractorID: uuid.New()}
	_, err := service.List(context.Background(), principal)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
