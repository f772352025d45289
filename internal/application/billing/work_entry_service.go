package billing

import (
	"context"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// WorkEntryService provides application-level operations on the append-only
// work ledger. Entries are created and read, never updated or deleted.
type WorkEntryService struct {
	entryRepo      billing.WorkEntryRepository
	contractorRepo identity.ContractorRepository
	logger         *zap.Logger
}

// NewWorkEntryService creates a new WorkEntryService
func NewWorkEntryService(
	entryRepo billing.WorkEntryRepository,
	contractorRepo identity.ContractorRepository,
	logger *zap.Logger,
) *WorkEntryService {
	return &WorkEntryService{
		entryRepo:      entryRepo,
		contractorRepo: contractorRepo,
		logger:         logger,
	}
}

// Create records one billable fact for a contractor of the caller's tenant.
// Company roles only.
func (s *WorkEntryService) Create(ctx context.Context, principal identity.Principal, req CreateWorkEntryRequest) (*WorkEntryResponse, error) {
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return nil, err
	}

	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, principal.TenantID, req.ContractorID)
	if err != nil {
		return nil, err
	}
	if !contractor.Active {
		return nil, shared.NewDomainError("CONTRACTOR_INACTIVE", "Cannot record work for a deactivated contractor")
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.EUR
	}
	unitPrice, err := valueobject.NewMoney(req.UnitPrice, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	entry, err := billing.NewWorkEntry(
		principal.TenantID,
		req.ContractorID,
		req.WorkDate,
		billing.TariffType(req.TariffType),
		req.Quantity,
		unitPrice,
	)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Work entry recorded",
		zap.String("tenant_id", entry.TenantID.String()),
		zap.String("contractor_id", entry.ContractorID.String()),
		zap.String("work_date", entry.WorkDate.Format("2006-01-02")),
		zap.String("tariff_type", entry.TariffType.String()))

	resp := toWorkEntryResponse(entry)
	return &resp, nil
}

// List returns the entries of one contractor for one ISO week. Contractors
// are pinned to their own ledger; company roles pick any contractor of their
// tenant.
func (s *WorkEntryService) List(ctx context.Context, principal identity.Principal, filter WorkEntryListFilter) ([]WorkEntryResponse, error) {
	contractorID, err := resolveContractorScope(principal, filter.ContractorID)
	if err != nil {
		return nil, err
	}

	period, err := resolvePeriod(filter.Year, filter.Week)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindForContractorPeriod(ctx, principal.TenantID, contractorID, period)
	if err != nil {
		return nil, err
	}

	responses := make([]WorkEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toWorkEntryResponse(entry))
	}
	return responses, nil
}
