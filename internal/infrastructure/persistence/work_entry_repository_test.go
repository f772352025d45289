package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/factuur/backend/internal/domain/billing"
	"github.com/factuur/backend/internal/domain/shared"
	"github.com/factuur/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWorkEntry(t *testing.T, tenantID, contractorID uuid.UUID, date time.Time, qty string, price float64) *billing.WorkEntry {
	t.Helper()
	quantity, err := decimal.NewFromString(qty)
	require.NoError(t, err)
	entry, err := billing.NewWorkEntry(tenantID, contractorID, date, billing.TariffStop,
		quantity, valueobject.NewMoneyEURFromFloat(price))
	require.NoError(t, err)
	return entry
}

func TestGormWorkEntryRepository_SaveAndFind(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormWorkEntryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	contractorID := uuid.New()
	monday := time.Date(2024, 11, 25, 0, 0, 0, 0, time.UTC)

	entry := mustWorkEntry(t, tenantID, contractorID, monday, "120", 0.85)
	require.NoError(t, repo.Save(ctx, entry))

	t.Run("finds saved entry", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tenantID, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, contractorID, found.ContractorID)
		assert.Equal(t, billing.TariffStop, found.TariffType)
		assert.True(t, found.Quantity.Equal(decimal.NewFromInt(120)))
	})

	t.Run("other tenant cannot see entry", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), entry.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists entries for contractor week", func(t *testing.T) {
		entries, err := repo.FindForContractorPeriod(ctx, tenantID, contractorID,
			valueobject.WeekPeriod{Year: 2024, Week: 48})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("week without entries is empty", func(t *testing.T) {
		entries, err := repo.FindForContractorPeriod(ctx, tenantID, contractorID,
			valueobject.WeekPeriod{Year: 2024, Week: 10})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestGormWorkEntryRepository_SumForPeriod(t *testing.T) {
	db := setupTenantDB(t)
	repo := NewGormWorkEntryRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	otherTenantID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	week48 := valueobject.WeekPeriod{Year: 2024, Week: 48}
	monday := time.Date(2024, 11, 25, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC)

	// Alice: 120 stops at 0.85 on Monday, 80 stops at 0.85 on Sunday.
	require.NoError(t, repo.Save(ctx, mustWorkEntry(t, tenantID, alice, monday, "120", 0.85)))
	require.NoError(t, repo.Save(ctx, mustWorkEntry(t, tenantID, alice, sunday, "80", 0.85)))
	// Bob: one entry in week 48.
	require.NoError(t, repo.Save(ctx, mustWorkEntry(t, tenantID, bob, monday, "8", 75.00)))
	// Outside the week and outside the tenant: must not count.
	require.NoError(t, repo.Save(ctx, mustWorkEntry(t, tenantID, alice, nextMonday, "999", 1.00)))
	require.NoError(t, repo.Save(ctx, mustWorkEntry(t, otherTenantID, alice, monday, "999", 1.00)))

	t.Run("sums per contractor over the full week", func(t *testing.T) {
		sums, err := repo.SumForPeriod(ctx, tenantID, week48, nil)
		require.NoError(t, err)
		require.Len(t, sums, 2)

		byContractor := map[uuid.UUID]billing.PeriodSum{}
		for _, s := range sums {
			byContractor[s.ContractorID] = s
		}

		// 120*0.85 + 80*0.85 = 102.00 + 68.00
		assert.Equal(t, "170.00", byContractor[alice].Total.StringFixed(2))
		assert.Equal(t, 2, byContractor[alice].EntryCount)
		// 8*75.00
		assert.Equal(t, "600.00", byContractor[bob].Total.StringFixed(2))
		assert.Equal(t, 1, byContractor[bob].EntryCount)
		assert.Equal(t, valueobject.EUR, byContractor[bob].Currency)
	})

	t.Run("filters on one contractor", func(t *testing.T) {
		sums, err := repo.SumForPeriod(ctx, tenantID, week48, &bob)
		require.NoError(t, err)
		require.Len(t, sums, 1)
		assert.Equal(t, bob, sums[0].ContractorID)
		assert.Equal(t, "600.00", sums[0].Total.StringFixed(2))
	})

	t.Run("empty week yields no sums", func(t *testing.T) {
		sums, err := repo.SumForPeriod(ctx, tenantID, valueobject.WeekPeriod{Year: 2024, Week: 2}, nil)
		require.NoError(t, err)
		assert.Empty(t, sums)
	})
}
