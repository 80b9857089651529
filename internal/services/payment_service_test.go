package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func TestPaymentService_Record(t *testing.T) {
	ctx := context.Background()

	validReq := model.PaymentUpsertRequest{
		ClientID: 1,
		Month:    "2026-06",
		Amount:   500,
		Status:   model.StatusPaid,
	}

	t.Run("records a settlement", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		clientRepo := new(MockClientRepository)
		svc := NewPaymentService(repo, clientRepo)

		clientRepo.On("GetByID", ctx, int64(1)).Return(&model.Client{ID: 1}, nil)
		repo.On("Upsert", ctx, mock.MatchedBy(func(p *model.Payment) bool {
			return p.ClientID == 1 && p.Month == "2026-06" && p.Status == model.StatusPaid
		})).Return(&model.Payment{ID: 5}, true, nil)

		p, created, err := svc.Record(ctx, validReq)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(5), p.ID)
	})

	t.Run("bad month format", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		clientRepo := new(MockClientRepository)
		svc := NewPaymentService(repo, clientRepo)

		bad := validReq
		bad.Month = "06-2026"

		_, _, err := svc.Record(ctx, bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Errors, "Mois invalide (format attendu AAAA-MM)")
		repo.AssertNotCalled(t, "Upsert")
	})

	t.Run("unknown client", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		clientRepo := new(MockClientRepository)
		svc := NewPaymentService(repo, clientRepo)

		clientRepo.On("GetByID", ctx, int64(1)).Return(nil, errRepoNotFound)

		_, _, err := svc.Record(ctx, validReq)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
