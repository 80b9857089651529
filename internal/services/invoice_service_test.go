package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func TestInvoiceService_Upsert(t *testing.T) {
	ctx := context.Background()

	validReq := model.InvoiceUpsertRequest{
		ClientID: 1,
		Month:    6,
		Year:     2026,
		Amount:   500,
		Status:   model.StatusUnpaid,
	}

	t.Run("create reports created=true", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		svc := NewInvoiceService(repo, clientRepo)

		clientRepo.On("GetByID", ctx, int64(1)).Return(&model.Client{ID: 1}, nil)
		repo.On("Upsert", ctx, mock.MatchedBy(func(inv *model.Invoice) bool {
			return inv.ClientID == 1 && inv.Month == 6 && inv.Year == 2026
		})).Return(&model.Invoice{ID: 9, ClientID: 1}, true, nil)

		result, err := svc.Upsert(ctx, validReq)
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, int64(9), result.Invoice.ID)
	})

	t.Run("refresh reports created=false", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		svc := NewInvoiceService(repo, clientRepo)

		clientRepo.On("GetByID", ctx, int64(1)).Return(&model.Client{ID: 1}, nil)
		repo.On("Upsert", ctx, mock.AnythingOfType("*model.Invoice")).
			Return(&model.Invoice{ID: 9}, false, nil)

		result, err := svc.Upsert(ctx, validReq)
		require.NoError(t, err)
		assert.False(t, result.Created)
	})

	t.Run("unknown client", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		svc := NewInvoiceService(repo, clientRepo)

		clientRepo.On("GetByID", ctx, int64(1)).Return(nil, errRepoNotFound)

		_, err := svc.Upsert(ctx, validReq)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "Client introuvable")
		repo.AssertNotCalled(t, "Upsert")
	})

	t.Run("month out of range", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		clientRepo := new(MockClientRepository)
		svc := NewInvoiceService(repo, clientRepo)

		bad := validReq
		bad.Month = 13

		_, err := svc.Upsert(ctx, bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "Mois invalide")
		clientRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestInvoiceService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInvoiceRepository)
	clientRepo := new(MockClientRepository)
	svc := NewInvoiceService(repo, clientRepo)

	repo.On("GetByID", ctx, int64(404)).Return(nil, errRepoNotFound)

	_, err := svc.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
