package identity

import (
	"context"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContractorService handles contractor onboarding and listing
type ContractorService struct {
	contractorRepo identity.ContractorRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewContractorService creates a new ContractorService
func NewContractorService(
	contractorRepo identity.ContractorRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ContractorService {
	return &ContractorService{
		contractorRepo: contractorRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Create onboards a contractor for the caller's tenant, with an optional
// login account. Company admins only.
func (s *ContractorService) Create(ctx context.Context, principal identity.Principal, req CreateContractorRequest) (*ContractorResponse, error) {
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return nil, err
	}
	if principal.Role != identity.RoleCompanyAdmin {
		return nil, shared.ErrForbidden
	}

	contractor, err := identity.NewContractor(principal.TenantID, req.DisplayName, req.Email, req.BTWNr)
	if err != nil {
		return nil, err
	}

	if err := s.contractorRepo.Save(ctx, contractor); err != nil {
		return nil, err
	}

	if req.Password != "" {
		user, err := identity.NewUser(principal.TenantID, req.Email, req.Password, identity.RoleContractor, contractor.ID)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Contractor created",
		zap.String("tenant_id", contractor.TenantID.String()),
		zap.String("contractor_id", contractor.ID.String()),
		zap.Bool("with_login", req.Password != ""))

	resp := toContractorResponse(contractor)
	return &resp, nil
}

// List returns the tenant's contractors ordered by display name. Company
// roles only.
func (s *ContractorService) List(ctx context.Context, principal identity.Principal) ([]ContractorResponse, error) {
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return nil, err
	}

	contractors, err := s.contractorRepo.FindAllForTenant(ctx, principal.TenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContractorResponse, 0, len(contractors))
	for i := range contractors {
		responses = append(responses, toContractorResponse(&contractors[i]))
	}
	return responses, nil
}
