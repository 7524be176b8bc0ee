package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"petpulse/internal/adapters/storage/storagetest"
	"petpulse/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, path string) *PetsRepo {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, path, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = Migrate(ctx, db)
	require.NoError(t, err)
	return NewPetsRepo(db)
}

func TestPetsRepo_Contract(t *testing.T) {
	var i int
	storagetest.Run(t, func(t *testing.T) pets.Repository {
		i++
		return newTestRepo(t, filepath.Join(t.TempDir(), fmt.Sprintf("pets-%d.db", i)))
	})
}

func TestPetsRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "pets.db")

	repo := newTestRepo(t, path)
	created, err := repo.Create(ctx, storagetest.NewPet("Rex"))
	require.NoError(t, err)
	require.NoError(t, repo.db.Close())

	reopened := newTestRepo(t, path)
	got, err := reopened.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "pets.db"), time.Second)
	require.NoError(t, err)
	defer db.Close()

	n, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = Migrate(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)
}
