package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueStatement(t *testing.T, repo *GormInvoiceRepository, statements *GormStatementRepository, tenantID uuid.UUID, week valueobject.WeekPeriod, total float64, issuedAt time.Time) (*billing.Invoice, *billing.Statement) {
	t.Helper()
	ctx := context.Background()

	st := mustStatement(t, tenantID, uuid.New(), week, total)
	require.NoError(t, statements.Save(ctx, st))

	inv, err := billing.NewInvoice(tenantID, st.ID, st.Total(), issuedAt)
	require.NoError(t, err)
	st.MarkInvoiced()
	require.NoError(t, repo.Issue(ctx, inv, st))
	return inv, st
}

func TestGormInvoiceRepository_Issue(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormInvoiceRepository(db)
	statements := NewGormStatementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	issuedAt := time.Date(2024, 11, 29, 10, 0, 0, 0, time.UTC)

	t.Run("first invoice of the year gets sequence 0001", func(t *testing.T) {
		inv, st := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 40}, 600.00, issuedAt)
		assert.Equal(t, "FACT-2024-0001", inv.Number)

		stored, err := statements.FindByID(ctx, tenantID, st.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.StatementStatusInvoiced, stored.Status)
	})

	t.Run("sequence increments per issuance", func(t *testing.T) {
		inv2, _ := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 41}, 100.00, issuedAt)
		inv3, _ := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 42}, 100.00, issuedAt)
		assert.Equal(t, "FACT-2024-0002", inv2.Number)
		assert.Equal(t, "FACT-2024-0003", inv3.Number)
	})

	t.Run("sequence restarts per year", func(t *testing.T) {
		inv, _ := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2025, Week: 3},
			100.00, time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC))
		assert.Equal(t, "FACT-2025-0001", inv.Number)
	})

	t.Run("tenants have independent sequences", func(t *testing.T) {
		otherTenant := uuid.New()
		inv, _ := issueStatement(t, repo, statements, otherTenant, valueobject.WeekPeriod{Year: 2024, Week: 40}, 50.00, issuedAt)
		assert.Equal(t, "FACT-2024-0001", inv.Number)
	})

	t.Run("second invoice for same statement conflicts", func(t *testing.T) {
		st := mustStatement(t, tenantID, uuid.New(), valueobject.WeekPeriod{Year: 2024, Week: 43}, 100.00)
		require.NoError(t, statements.Save(ctx, st))

		first, err := billing.NewInvoice(tenantID, st.ID, st.Total(), issuedAt)
		require.NoError(t, err)
		st.MarkInvoiced()
		require.NoError(t, repo.Issue(ctx, first, st))

		second, err := billing.NewInvoice(tenantID, st.ID, st.Total(), issuedAt)
		require.NoError(t, err)
		err = repo.Issue(ctx, second, st)
		assert.ErrorIs(t, err, shared.ErrConflict)

		// The winner's invoice is still the only one.
		stored, err := repo.FindByStatement(ctx, tenantID, st.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Number, stored.Number)
	})
}

func TestGormInvoiceRepository_SequenceWidensPast9999(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormInvoiceRepository(db)
	statements := NewGormStatementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	issuedAt := time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC)

	// Seed a statement/invoice pair already at the four digit ceiling.
	seeded := mustStatement(t, tenantID, uuid.New(), valueobject.WeekPeriod{Year: 2024, Week: 20}, 10.00)
	require.NoError(t, statements.Save(ctx, seeded))
	inv, err := billing.NewInvoice(tenantID, seeded.ID, seeded.Total(), issuedAt)
	require.NoError(t, err)
	require.NoError(t, inv.AssignNumber(9999))
	seeded.MarkInvoiced()
	require.NoError(t, db.WithTenant(ctx, tenantID).Exec(
		`INSERT INTO invoices (id, created_at, updated_at, version, tenant_id, statement_id, invoice_number, subtotal, currency, issued_at)
		 VALUES (?, ?, ?, 1, ?, ?, ?, ?, 'EUR', ?)`,
		inv.ID, inv.CreatedAt, inv.UpdatedAt, tenantID, seeded.ID, inv.Number, inv.Subtotal, inv.IssuedAt,
	).Error)

	next, _ := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 21}, 10.00, issuedAt)
	assert.Equal(t, "FACT-2024-10000", next.Number)

	after, _ := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 22}, 10.00, issuedAt)
	assert.Equal(t, "FACT-2024-10001", after.Number)
}

func TestGormInvoiceRepository_Find(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormInvoiceRepository(db)
	statements := NewGormStatementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	issuedAt := time.Date(2024, 11, 29, 10, 0, 0, 0, time.UTC)
	inv, st := issueStatement(t, repo, statements, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 48}, 600.00, issuedAt)

	t.Run("finds by statement", func(t *testing.T) {
		found, err := repo.FindByStatement(ctx, tenantID, st.ID)
		require.NoError(t, err)
		assert.Equal(t, inv.Number, found.Number)
		assert.Equal(t, "600", found.Subtotal.String())
	})

	t.Run("finds by number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, tenantID, inv.Number)
		require.NoError(t, err)
		assert.Equal(t, inv.ID, found.ID)
	})

	t.Run("other tenant cannot see invoice", func(t *testing.T) {
		_, err := repo.FindByStatement(ctx, uuid.New(), st.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
