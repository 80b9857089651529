package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func TestResidenceRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewResidenceRepository(db)
	ctx := context.Background()

	t.Run("create residence successfully", func(t *testing.T) {
		res := &model.Residence{
			Name:          "Résidence Yasmine",
			Address:       "5 Avenue Hassan II, Rabat",
			NumApartments: 18,
			Contact:       "0537-111111",
		}

		created, err := repo.Create(ctx, res)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, res.Name, created.Name)
		assert.Equal(t, res.NumApartments, created.NumApartments)
		assert.NotZero(t, created.CreatedAt)
	})
}

func TestResidenceRepository_CreateBatch(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewResidenceRepository(db)
	ctx := context.Background()

	t.Run("inserts all rows", func(t *testing.T) {
		batch := []*model.Residence{
			{Name: "A", Address: "Rue 1", NumApartments: 10, Contact: "c1"},
			{Name: "B", Address: "Rue 2", NumApartments: 20, Contact: "c2"},
			{Name: "C", Address: "Rue 3", NumApartments: 30, Contact: "c3"},
		}

		created, err := repo.CreateBatch(ctx, batch)
		require.NoError(t, err)
		require.Len(t, created, 3)
		for _, res := range created {
			assert.NotZero(t, res.ID)
		}

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}

func TestResidenceRepository_GetByID(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewResidenceRepository(db)
	ctx := context.Background()

	id := seedResidence(t, db)

	t.Run("found", func(t *testing.T) {
		res, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Résidence Al Amane", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestResidenceRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewResidenceRepository(db)
	ctx := context.Background()

	id := seedResidence(t, db)

	t.Run("updates fields", func(t *testing.T) {
		updated, err := repo.Update(ctx, &model.Residence{
			ID:            id,
			Name:          "Résidence Al Amane II",
			Address:       "Nouvelle adresse",
			NumApartments: 30,
			Contact:       "0522-999999",
		})
		require.NoError(t, err)
		assert.Equal(t, "Résidence Al Amane II", updated.Name)
		assert.Equal(t, 30, updated.NumApartments)
	})

	t.Run("missing row", func(t *testing.T) {
		_, err := repo.Update(ctx, &model.Residence{ID: 9999, Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestResidenceRepository_Delete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewResidenceRepository(db)
	ctx := context.Background()

	id := seedResidence(t, db)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrNotFound)

	_, err := repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResidenceRepository_ListIDs(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewResidenceRepository(db)
	ctx := context.Background()

	a := seedResidence(t, db)
	b := seedResidence(t, db)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	_, ok := ids[a]
	assert.True(t, ok)
	_, ok = ids[b]
	assert.True(t, ok)
}
