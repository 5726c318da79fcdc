package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/kintai-dev/kintai-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// requireTestDB connects to TEST_DATABASE_URL or skips the test when it is
// not set, so the repository suite only runs against a real database.
func requireTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	testDBOnce.Do(func() {
		if err := database.RunMigrations(dsn); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}

		db, err := database.NewPostgreSQLDB(context.Background(), dsn)
		if err != nil {
			t.Fatalf("failed to connect to test database: %v", err)
		}
		testDB = db
	})

	return testDB
}

// cleanupTestData truncates all tables between tests.
func cleanupTestData(t *testing.T, db *database.DB) {
	t.Helper()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "TRUNCATE TABLE attendance_events CASCADE")
	require.NoError(t, err)

	_, err = tx.Exec(ctx, "TRUNCATE TABLE users CASCADE")
	require.NoError(t, err)

	err = tx.Commit(ctx)
	require.NoError(t, err)
}
