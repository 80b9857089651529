package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func TestChargeRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewChargeRepository(db)
	ctx := context.Background()

	resID := seedResidence(t, db)

	c := &model.Charge{
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Entretien ascenseur",
		Amount:      1200,
		ResidenceID: &resID,
	}

	created, err := repo.Create(ctx, c)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Entretien ascenseur", created.Description)
}

func TestChargeRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewChargeRepository(db)
	ctx := context.Background()

	resA := seedResidence(t, db)
	resB := seedResidence(t, db)

	seed := []*model.Charge{
		{Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Description: "Eau", Amount: 300, ResidenceID: &resA},
		{Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Description: "Electricité", Amount: 450, ResidenceID: &resA},
		{Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Description: "Gardiennage", Amount: 900, ResidenceID: &resB},
	}
	for _, c := range seed {
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}

	t.Run("list all", func(t *testing.T) {
		charges, err := repo.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, charges, 3)
	})

	t.Run("filter by residence", func(t *testing.T) {
		charges, err := repo.List(ctx, resA)
		require.NoError(t, err)
		assert.Len(t, charges, 2)
	})
}

func TestChargeRepository_Sums(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewChargeRepository(db)
	ctx := context.Background()

	resID := seedResidence(t, db)
	seed := []*model.Charge{
		{Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Description: "a", Amount: 100, ResidenceID: &resID},
		{Date: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), Description: "b", Amount: 150, ResidenceID: &resID},
		{Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Description: "c", Amount: 999, ResidenceID: &resID},
	}
	for _, c := range seed {
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}

	t.Run("sum all", func(t *testing.T) {
		sum, err := repo.SumAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, float64(1249), sum)
	})

	t.Run("sum between", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		sum, err := repo.SumBetween(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, float64(250), sum)
	})

	t.Run("period amounts carry raw rows", func(t *testing.T) {
		rows, err := repo.PeriodAmounts(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

func TestChargeRepository_UpdateDelete(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewChargeRepository(db)
	ctx := context.Background()

	resID := seedResidence(t, db)
	c, err := repo.Create(ctx, &model.Charge{
		Date:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "Peinture",
		Amount:      500,
		ResidenceID: &resID,
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, &model.Charge{
		ID:          c.ID,
		Date:        c.Date,
		Description: "Peinture façade",
		Amount:      650,
		ResidenceID: &resID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Peinture façade", updated.Description)
	assert.Equal(t, float64(650), updated.Amount)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}
