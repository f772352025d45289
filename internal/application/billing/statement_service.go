package billing

import (
	"context"
	"errors"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatementService aggregates the work ledger into weekly statements and
// drives their status lifecycle.
type StatementService struct {
	statementRepo billing.StatementRepository
	entryRepo     billing.WorkEntryRepository
	logger        *zap.Logger
}

// NewStatementService creates a new StatementService
func NewStatementService(
	statementRepo billing.StatementRepository,
	entryRepo billing.WorkEntryRepository,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		statementRepo: statementRepo,
		entryRepo:     entryRepo,
		logger:        logger,
	}
}

// GenerateOne aggregates a single contractor-week. A week with no entries
// still yields a statement, at zero. Recomputing an invoiced or paid week
// fails with the locked-statement error, a week whose entries span
// currencies with the mixed-currency error. Company roles only.
func (s *StatementService) GenerateOne(ctx context.Context, principal identity.Principal, contractorID uuid.UUID, year, week int) (*StatementResponse, error) {
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return nil, err
	}

	period, err := resolvePeriod(year, week)
	if err != nil {
		return nil, err
	}

	sums, err := s.entryRepo.SumForPeriod(ctx, principal.TenantID, period, &contractorID)
	if err != nil {
		return nil, err
	}
	// One row per currency comes back from the ledger; a statement can only
	// carry one currency, so a mixed week has no single correct total.
	if len(sums) > 1 {
		return nil, shared.ErrMixedCurrency
	}

	sum := billing.PeriodSum{
		ContractorID: contractorID,
		Total:        valueobject.ZeroEUR().Amount(),
		Currency:     valueobject.DefaultCurrency,
	}
	if len(sums) > 0 {
		sum = sums[0]
	}

	st, err := s.upsertStatement(ctx, principal.TenantID, sum, period)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Statement generated",
		zap.String("tenant_id", principal.TenantID.String()),
		zap.String("contractor_id", contractorID.String()),
		zap.String("period", period.String()))

	resp := toStatementResponse(st)
	return &resp, nil
}

// GenerateForTenant aggregates one ISO week for every contractor that
// logged work in it; empty weeks fabricate nothing. Invoiced or paid weeks
// and mixed-currency weeks are reported as skipped instead of failing the
// run. Company roles only.
func (s *StatementService) GenerateForTenant(ctx context.Context, principal identity.Principal, year, week int) (*GenerateStatementsResult, error) {
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return nil, err
	}

	period, err := resolvePeriod(year, week)
	if err != nil {
		return nil, err
	}

	sums, err := s.entryRepo.SumForPeriod(ctx, principal.TenantID, period, nil)
	if err != nil {
		return nil, err
	}

	// The ledger groups by contractor and currency, so a contractor whose
	// week spans currencies shows up more than once. None of those rows may
	// be written: the statement carries one currency and picking either sum
	// would drop the other.
	currencies := make(map[uuid.UUID]int, len(sums))
	for _, sum := range sums {
		currencies[sum.ContractorID]++
	}

	result := &GenerateStatementsResult{Statements: make([]StatementResponse, 0, len(sums))}
	mixedReported := make(map[uuid.UUID]bool)
	for _, sum := range sums {
		if err := ctx.Err(); err != nil {
			// Each contractor commits independently; rows finished before
			// cancellation stay valid.
			return nil, err
		}

		if currencies[sum.ContractorID] > 1 {
			if !mixedReported[sum.ContractorID] {
				mixedReported[sum.ContractorID] = true
				s.logger.Warn("Skipping mixed-currency week during tenant-wide aggregation",
					zap.String("tenant_id", principal.TenantID.String()),
					zap.String("contractor_id", sum.ContractorID.String()),
					zap.String("period", period.String()))
				result.Skipped = append(result.Skipped, SkippedStatement{
					ContractorID: sum.ContractorID,
					Reason:       "work entries span more than one currency",
				})
			}
			continue
		}

		st, err := s.upsertStatement(ctx, principal.TenantID, sum, period)
		if err != nil {
			if errors.Is(err, shared.ErrStatementLocked) {
				s.logger.Warn("Skipping locked statement during tenant-wide aggregation",
					zap.String("tenant_id", principal.TenantID.String()),
					zap.String("contractor_id", sum.ContractorID.String()),
					zap.String("period", period.String()))
				result.Skipped = append(result.Skipped, SkippedStatement{
					ContractorID: sum.ContractorID,
					Reason:       "statement is invoiced and can no longer be recomputed",
				})
				continue
			}
			return nil, err
		}
		result.Statements = append(result.Statements, toStatementResponse(st))
	}

	s.logger.Info("Statements generated",
		zap.String("tenant_id", principal.TenantID.String()),
		zap.String("period", period.String()),
		zap.Int("generated", len(result.Statements)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// upsertStatement writes a freshly computed total into the one statement row
// of a contractor-week, creating it when absent. A concurrent creator winning
// the unique index is re-read and updated instead.
func (s *StatementService) upsertStatement(ctx context.Context, tenantID uuid.UUID, sum billing.PeriodSum, period valueobject.WeekPeriod) (*billing.Statement, error) {
	total, err := valueobject.NewMoney(sum.Total, sum.Currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	existing, err := s.statementRepo.FindByPeriod(ctx, tenantID, sum.ContractorID, period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := existing.Reaggregate(total); err != nil {
			return nil, err
		}
		if err := s.statementRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	st, err := billing.NewStatement(tenantID, sum.ContractorID, period, total)
	if err != nil {
		return nil, err
	}
	if err := s.statementRepo.Save(ctx, st); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the creation race; the winner's row absorbs the total.
			winner, ferr := s.statementRepo.FindByPeriod(ctx, tenantID, sum.ContractorID, period)
			if ferr != nil {
				return nil, ferr
			}
			if rerr := winner.Reaggregate(total); rerr != nil {
				return nil, rerr
			}
			if serr := s.statementRepo.Save(ctx, winner); serr != nil {
				return nil, serr
			}
			return winner, nil
		}
		return nil, err
	}
	return st, nil
}

// UpdateStatus moves a statement forward in its lifecycle. Company roles
// only; backward moves are rejected by the aggregate.
func (s *StatementService) UpdateStatus(ctx context.Context, principal identity.Principal, statementID uuid.UUID, req UpdateStatementStatusRequest) (*StatementResponse, error) {
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return nil, err
	}

	st, err := s.statementRepo.FindByID(ctx, principal.TenantID, statementID)
	if err != nil {
		return nil, err
	}

	if err := st.TransitionTo(billing.StatementStatus(req.Status), principal.Role); err != nil {
		return nil, err
	}
	if err := s.statementRepo.Save(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("Statement status updated",
		zap.String("tenant_id", st.TenantID.String()),
		zap.String("statement_id", st.ID.String()),
		zap.String("status", st.Status.String()))

	resp := toStatementResponse(st)
	return &resp, nil
}

// Get returns one statement, tenant- and contractor-guarded.
func (s *StatementService) Get(ctx context.Context, principal identity.Principal, statementID uuid.UUID) (*StatementResponse, error) {
	if err := principal.AuthorizeTenant(principal.TenantID); err != nil {
		return nil, err
	}

	st, err := s.statementRepo.FindByID(ctx, principal.TenantID, statementID)
	if err != nil {
		return nil, err
	}
	if err := principal.AuthorizeContractor(st.TenantID, st.ContractorID); err != nil {
		return nil, err
	}

	resp := toStatementResponse(st)
	return &resp, nil
}

// List returns the tenant's statements, newest week first. Contractors see
// only their own rows regardless of the requested filter.
func (s *StatementService) List(ctx context.Context, principal identity.Principal, filter StatementListFilter) ([]StatementResponse, error) {
	if err := principal.AuthorizeTenant(principal.TenantID); err != nil {
		return nil, err
	}

	var status *billing.StatementStatus
	if filter.Status != "" {
		st := billing.StatementStatus(filter.Status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown statement status")
		}
		status = &st
	}

	contractorID := filter.ContractorID
	if principal.Role == identity.RoleContractor {
		contractorID = &principal.ContractorID
	}

	statements, err := s.statementRepo.FindAllForTenant(ctx, principal.TenantID, status)
	if err != nil {
		return nil, err
	}

	responses := make([]StatementResponse, 0, len(statements))
	for _, st := range statements {
		if contractorID != nil && st.ContractorID != *contractorID {
			continue
		}
		if filter.Year != 0 && st.Year != filter.Year {
			continue
		}
		if filter.Week != 0 && st.WeekNumber != filter.Week {
			continue
		}
		responses = append(responses, toStatementResponse(st))
	}
	return responses, nil
}

// resolveContractorScope pins contractor principals to their own contractor
// and requires company callers to name one.
func resolveContractorScope(principal identity.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if principal.Role == identity.RoleContractor {
		target := principal.ContractorID
		if requested != nil {
			target = *requested
		}
		if err := principal.AuthorizeContractor(principal.TenantID, target); err != nil {
			return uuid.Nil, err
		}
		return target, nil
	}
	if err := principal.AuthorizeCompany(principal.TenantID); err != nil {
		return uuid.Nil, err
	}
	if requested == nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "contractor_id is required")
	}
	return *requested, nil
}

// resolvePeriod validates an explicit ISO week or defaults to the current one
// when both fields are zero.
func resolvePeriod(year, week int) (valueobject.WeekPeriod, error) {
	if year == 0 && week == 0 {
		return valueobject.CurrentWeek(), nil
	}
	period, err := valueobject.NewWeekPeriod(year, week)
	if err != nil {
		return valueobject.WeekPeriod{}, shared.NewDomainError("INVALID_PERIOD", err.Error())
	}
	return period, nil
}
