package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"petpulse/internal/adapters/storage/storagetest"
	"petpulse/internal/domain/pets"

	"github.com/stretchr/testify/require"
)

// Necesita una base descartable: la tabla pets se vacía en cada subtest.
const testDSNEnv = "PETPULSE_TEST_POSTGRES_DSN"

func TestPetsRepo_Contract(t *testing.T) {
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = Migrate(ctx, db)
	require.NoError(t, err)

	// segunda corrida no aplica nada
	n, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.Zero(t, n)

	storagetest.Run(t, func(t *testing.T) pets.Repository {
		_, err := db.ExecContext(ctx, `TRUNCATE pets RESTART IDENTITY`)
		require.NoError(t, err)
		return NewPetsRepo(db)
	})
}
