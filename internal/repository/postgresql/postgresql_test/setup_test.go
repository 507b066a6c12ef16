package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL and applies migrations.
// Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx, filepath.Join("..", "..", "..", "..", "migrations")))
	return db
}

// seedTenant inserts a fresh tenant; CASCADE removes everything it owns on cleanup.
func seedTenant(t *testing.T, db *database.DB) string {
	t.Helper()
	ctx := context.Background()

	id := uuid.NewString()
	_, err := db.Exec(ctx, `INSERT INTO tenants (id, name, slug) VALUES ($1, $2, $3)`, id, "Test Tenant", "test-"+id[:8])
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM tenants WHERE id = $1`, id)
	})
	return id
}
