// Package storagetest tiene la suite de contrato de pets.Repository.
// Cada backend la corre desde su propio _test.go con un repo vacío.
package storagetest

import (
	"context"
	"strings"
	"testing"
	"time"

	"petpulse/internal/domain/pets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory devuelve un repo vacío. Se llama una vez por subtest.
type Factory func(t *testing.T) pets.Repository

func Run(t *testing.T, newRepo Factory) {
	t.Run("ListEmpty", func(t *testing.T) { testListEmpty(t, newRepo(t)) })
	t.Run("CreateAssignsIDs", func(t *testing.T) { testCreateAssignsIDs(t, newRepo(t)) })
	t.Run("GetRoundTrip", func(t *testing.T) { testGetRoundTrip(t, newRepo(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newRepo(t)) })
	t.Run("UpdatePersists", func(t *testing.T) { testUpdatePersists(t, newRepo(t)) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newRepo(t)) })
	t.Run("DeleteRemoves", func(t *testing.T) { testDeleteRemoves(t, newRepo(t)) })
	t.Run("ListOrderedByID", func(t *testing.T) { testListOrderedByID(t, newRepo(t)) })
	t.Run("LongUnicodeText", func(t *testing.T) { testLongUnicodeText(t, newRepo(t)) })
}

// NewPet arma una mascota con timestamps en milisegundos (la precisión más baja entre backends).
func NewPet(name string) pets.Pet {
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	return pets.Pet{
		Name:      name,
		Species:   "Dog",
		Age:       3,
		OwnerName: "Ana",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testListEmpty(t *testing.T, repo pets.Repository) {
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func testCreateAssignsIDs(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	a, err := repo.Create(ctx, NewPet("Rex"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, NewPet("Milo"))
	require.NoError(t, err)

	assert.Positive(t, a.ID)
	assert.Greater(t, b.ID, a.ID, "ids should be increasing")
	assert.Equal(t, "Rex", a.Name)
	assert.Equal(t, "Milo", b.Name)
}

func testGetRoundTrip(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	in := NewPet("Rex")
	in.Age = 11
	in.OwnerName = "María José"
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, "Dog", got.Species)
	assert.Equal(t, 11, got.Age)
	assert.Equal(t, "María José", got.OwnerName)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt), "created_at: want %v got %v", in.CreatedAt, got.CreatedAt)
	assert.True(t, in.UpdatedAt.Equal(got.UpdatedAt), "updated_at: want %v got %v", in.UpdatedAt, got.UpdatedAt)
}

func testGetMissing(t *testing.T, repo pets.Repository) {
	_, err := repo.GetByID(context.Background(), 987654)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func testUpdatePersists(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, NewPet("Rex"))
	require.NoError(t, err)

	changed := created
	changed.Age = 4
	changed.Species = "Wolf"
	changed.UpdatedAt = created.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, changed))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Age)
	assert.Equal(t, "Wolf", got.Species)
	assert.Equal(t, "Rex", got.Name)
	assert.True(t, changed.UpdatedAt.Equal(got.UpdatedAt))
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "created_at must not change on update")
}

func testUpdateMissing(t *testing.T, repo pets.Repository) {
	p := NewPet("Ghost")
	p.ID = 987654
	assert.ErrorIs(t, repo.Update(context.Background(), p), pets.ErrNotFound)
}

func testDeleteRemoves(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	created, err := repo.Create(ctx, NewPet("Rex"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), pets.ErrNotFound)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func testListOrderedByID(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"A", "B", "C", "D"} {
		p, err := repo.Create(ctx, NewPet(name))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, repo.Delete(ctx, ids[1]))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"A", "C", "D"}, []string{items[0].Name, items[1].Name, items[2].Name})
	assert.Equal(t, ids[0], items[0].ID)
	assert.Equal(t, ids[3], items[2].ID)
}

func testLongUnicodeText(t *testing.T, repo pets.Repository) {
	ctx := context.Background()

	name := strings.Repeat("ñ", pets.MaxTextLength)
	created, err := repo.Create(ctx, NewPet(name))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
}
