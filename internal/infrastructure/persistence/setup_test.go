package persistence

import (
	"testing"

	"github.com/factuur/backend/internal/infrastructure/persistence/models"
	"github.com/factuur/backend/internal/infrastructure/persistence/tenant"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// TranslateError is on so unique index violations surface as
// gorm.ErrDuplicatedKey, the same way the postgres driver reports them.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TenantModel{},
		&models.ContractorModel{},
		&models.UserModel{},
		&models.WorkEntryModel{},
		&models.StatementModel{},
		&models.InvoiceModel{},
	)
	require.NoError(t, err)

	return db
}

func setupTenantDB(t *testing.T) *tenant.TenantDB {
	t.Helper()
	return tenant.NewTenantDB(setupTestDB(t))
}
