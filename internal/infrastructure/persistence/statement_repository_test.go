package persistence

import (
	"context"
	"testing"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStatement(t *testing.T, tenantID, contractorID uuid.UUID, period valueobject.WeekPeriod, total float64) *billing.Statement {
	t.Helper()
	st, err := billing.NewStatement(tenantID, contractorID, period, valueobject.NewMoneyEURFromFloat(total))
	require.NoError(t, err)
	return st
}

func TestGormStatementRepository_SaveAndFind(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormStatementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	contractorID := uuid.New()
	week48 := valueobject.WeekPeriod{Year: 2024, Week: 48}

	st := mustStatement(t, tenantID, contractorID, week48, 600.00)
	require.NoError(t, repo.Save(ctx, st))

	t.Run("finds by period", func(t *testing.T) {
		found, err := repo.FindByPeriod(ctx, tenantID, contractorID, week48)
		require.NoError(t, err)
		assert.Equal(t, st.ID, found.ID)
		assert.Equal(t, "600", found.TotalAmount.String())
		assert.Equal(t, billing.StatementStatusOpen, found.Status)
	})

	t.Run("missing period is not found", func(t *testing.T) {
		_, err := repo.FindByPeriod(ctx, tenantID, contractorID, valueobject.WeekPeriod{Year: 2024, Week: 2})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("other tenant cannot see statement", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), st.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update in place keeps one row per period", func(t *testing.T) {
		require.NoError(t, st.Reaggregate(valueobject.NewMoneyEURFromFloat(675.00)))
		require.NoError(t, repo.Save(ctx, st))

		all, err := repo.FindAllForTenant(ctx, tenantID, nil)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "675", all[0].TotalAmount.String())
		assert.Equal(t, 2, all[0].Version)
	})

	t.Run("second row for same period is rejected", func(t *testing.T) {
		dup := mustStatement(t, tenantID, contractorID, week48, 1.00)
		err := repo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormStatementRepository_FindAllForTenant(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormStatementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	stOld := mustStatement(t, tenantID, alice, valueobject.WeekPeriod{Year: 2024, Week: 40}, 100.00)
	stNew := mustStatement(t, tenantID, alice, valueobject.WeekPeriod{Year: 2024, Week: 48}, 200.00)
	stBob := mustStatement(t, tenantID, bob, valueobject.WeekPeriod{Year: 2024, Week: 48}, 300.00)
	require.NoError(t, stBob.TransitionTo(billing.StatementStatusApproved, identity.RoleCompanyAdmin))

	for _, st := range []*billing.Statement{stOld, stNew, stBob} {
		require.NoError(t, repo.Save(ctx, st))
	}
	// Different tenant, must never appear.
	require.NoError(t, repo.Save(ctx, mustStatement(t, uuid.New(), alice, valueobject.WeekPeriod{Year: 2024, Week: 41}, 999.00)))

	t.Run("lists newest period first", func(t *testing.T) {
		all, err := repo.FindAllForTenant(ctx, tenantID, nil)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, 48, all[0].WeekNumber)
		assert.Equal(t, 48, all[1].WeekNumber)
		assert.Equal(t, 40, all[2].WeekNumber)
	})

	t.Run("filters by status", func(t *testing.T) {
		approved := billing.StatementStatusApproved
		all, err := repo.FindAllForTenant(ctx, tenantID, &approved)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, bob, all[0].ContractorID)
	})
}
