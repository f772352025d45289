package billing

import (
	"context"
	"errors"
	"time"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService issues legal invoices for statements. Issuance is
// idempotent: a statement gets at most one invoice, and repeated calls return
// the one that exists.
type InvoiceService struct {
	invoiceRepo   billing.InvoiceRepository
	statementRepo billing.StatementRepository
	issueRetries  int
	logger        *zap.Logger
}

// NewInvoiceService creates a new InvoiceService. issueRetries bounds how
// often a lost race on the number sequence is retried.
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	statementRepo billing.StatementRepository,
	issueRetries int,
	logger *zap.Logger,
) *InvoiceService {
	if issueRetries < 1 {
		issueRetries = 1
	}
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		statementRepo: statementRepo,
		issueRetries:  issueRetries,
		logger:        logger,
	}
}

// Issue creates the invoice for a statement, or returns the existing one.
// The legal number is allocated inside the repository transaction; a unique
// violation there means another request won a race, which is resolved by
// re-reading. Company roles may issue for any statement of their tenant, a
// contractor only for their own.
func (s *InvoiceService) Issue(ctx context.Context, principal identity.Principal, statementID uuid.UUID) (*InvoiceResponse, error) {
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

	if existing, err := s.findExisting(ctx, principal.TenantID, statementID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	for attempt := 1; attempt <= s.issueRetries; attempt++ {
		invoice, err := billing.NewInvoice(st.TenantID, st.ID, st.Total(), time.Now().UTC())
		if err != nil {
			return nil, err
		}
		st.MarkInvoiced()

		err = s.invoiceRepo.Issue(ctx, invoice, st)
		if err == nil {
			s.logger.Info("Invoice issued",
				zap.String("tenant_id", invoice.TenantID.String()),
				zap.String("statement_id", st.ID.String()),
				zap.String("invoice_number", invoice.Number))
			resp := toInvoiceResponse(invoice, false)
			return &resp, nil
		}
		if !errors.Is(err, shared.ErrConflict) {
			return nil, err
		}

		// Either this statement got its invoice from a concurrent request,
		// or two requests drew the same number for different statements.
		// The first case ends here; the second retries the allocation.
		existing, ferr := s.findExisting(ctx, principal.TenantID, statementID)
		if ferr != nil {
			return nil, ferr
		}
		if existing != nil {
			return existing, nil
		}

		s.logger.Warn("Invoice number race lost, retrying",
			zap.String("tenant_id", principal.TenantID.String()),
			zap.String("statement_id", statementID.String()),
			zap.Int("attempt", attempt))
	}

	// Retries exhausted with no invoice on the statement: a uniqueness
	// constraint keeps firing outside the two paths that can explain it.
	s.logger.Error("Invoice issuance constraint fired repeatedly without a competing invoice",
		zap.String("tenant_id", principal.TenantID.String()),
		zap.String("statement_id", statementID.String()),
		zap.Int("attempts", s.issueRetries))
	return nil, shared.ErrInvariantViolation
}

// Get returns the invoice issued for a statement, 404 when none exists.
// Contractors may only read invoices backing their own statements.
func (s *InvoiceService) Get(ctx context.Context, principal identity.Principal, statementID uuid.UUID) (*InvoiceResponse, error) {
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

	invoice, err := s.invoiceRepo.FindByStatement(ctx, principal.TenantID, statementID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice, true)
	return &resp, nil
}

// findExisting looks up a statement's invoice, mapping absence to nil.
func (s *InvoiceService) findExisting(ctx context.Context, tenantID, statementID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByStatement(ctx, tenantID, statementID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := toInvoiceResponse(invoice, true)
	return &resp, nil
}
