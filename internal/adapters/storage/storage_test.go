package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"petpulse/internal/adapters/storage/storagetest"
	"petpulse/internal/config"
	"petpulse/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpen_Memory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverMemory}, nil)
	require.NoError(t, err)
	defer closeFn()

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_SQLiteMigrates(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := context.Background()

	repo, closeFn, err := Open(ctx, config.StoreConfig{
		Driver:  config.DriverSQLite,
		DSN:     filepath.Join(t.TempDir(), "pets.db"),
		Migrate: true,
		Timeout: time.Second,
	}, logger.NewWithCore(core))
	require.NoError(t, err)
	defer func() { require.NoError(t, closeFn()) }()

	created, err := repo.Create(ctx, storagetest.NewPet("Rex"))
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	applied := logs.FilterMessage("migrations applied").All()
	require.Len(t, applied, 1)
	assert.EqualValues(t, 1, applied[0].ContextMap()["count"])
	assert.Equal(t, "sqlite", applied[0].ContextMap()["driver"])
}

func TestOpen_SQLiteWithoutMigrations(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := Open(ctx, config.StoreConfig{
		Driver:  config.DriverSQLite,
		DSN:     filepath.Join(t.TempDir(), "pets.db"),
		Timeout: time.Second,
	}, nil)
	require.NoError(t, err)
	defer closeFn()

	// sin tabla, la consulta falla
	_, err = repo.List(ctx)
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StoreConfig{Driver: "redis"}, nil)
	assert.ErrorContains(t, err, `unknown driver "redis"`)
}
