package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func TestResidenceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid payload", func(t *testing.T) {
		repo := new(MockResidenceRepository)
		svc := NewResidenceService(repo)

		req := model.ResidenceCreateRequest{Name: "Yasmine", Address: "Rabat", NumApartments: 18, Contact: "0537"}
		repo.On("Create", ctx, &model.Residence{Name: "Yasmine", Address: "Rabat", NumApartments: 18, Contact: "0537"}).
			Return(&model.Residence{ID: 1, Name: "Yasmine"}, nil)

		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("invalid payload never reaches the repo", func(t *testing.T) {
		repo := new(MockResidenceRepository)
		svc := NewResidenceService(repo)

		_, err := svc.Create(ctx, model.ResidenceCreateRequest{Name: " ", NumApartments: 0})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestResidenceService_BulkImport(t *testing.T) {
	ctx := context.Background()

	t.Run("one bad row rejects the whole batch", func(t *testing.T) {
		repo := new(MockResidenceRepository)
		svc := NewResidenceService(repo)

		rows := []model.ResidenceCreateRequest{
			{Name: "A", Address: "Rue 1", NumApartments: 10, Contact: "c1"},
			{Name: "", Address: "Rue 2", NumApartments: 20, Contact: "c2"},
			{Name: "C", Address: "Rue 3", NumApartments: 0, Contact: "c3"},
		}

		_, err := svc.BulkImport(ctx, rows)
		var berr *BulkValidationError
		require.ErrorAs(t, err, &berr)
		require.Len(t, berr.Rows, 2)

		// row numbers match the spreadsheet: header is row 1
		assert.Equal(t, 3, berr.Rows[0].Row)
		assert.Contains(t, berr.Rows[0].Errors, "Nom manquant")
		assert.Equal(t, 4, berr.Rows[1].Row)
		assert.Contains(t, berr.Rows[1].Errors, "Nombre d'appartements invalide")

		repo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("clean batch is persisted", func(t *testing.T) {
		repo := new(MockResidenceRepository)
		svc := NewResidenceService(repo)

		rows := []model.ResidenceCreateRequest{
			{Name: "A", Address: "Rue 1", NumApartments: 10, Contact: "c1"},
			{Name: "B", Address: "Rue 2", NumApartments: 20, Contact: "c2"},
		}
		repo.On("CreateBatch", ctx, mock2Residences()).Return([]*model.Residence{{ID: 1}, {ID: 2}}, nil)

		created, err := svc.BulkImport(ctx, rows)
		require.NoError(t, err)
		assert.Len(t, created, 2)
		repo.AssertExpectations(t)
	})

	t.Run("empty batch", func(t *testing.T) {
		repo := new(MockResidenceRepository)
		svc := NewResidenceService(repo)

		_, err := svc.BulkImport(ctx, nil)
		assert.ErrorIs(t, err, model.ErrEmptyBatch)
	})
}

func mock2Residences() []*model.Residence {
	return []*model.Residence{
		{Name: "A", Address: "Rue 1", NumApartments: 10, Contact: "c1"},
		{Name: "B", Address: "Rue 2", NumApartments: 20, Contact: "c2"},
	}
}
