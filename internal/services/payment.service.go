package services

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type PaymentRepository interface {
	Upsert(ctx context.Context, p *model.Payment) (*model.Payment, bool, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	List(ctx context.Context, f model.PaymentFilter) ([]*model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentService struct {
	repo       PaymentRepository
	clientRepo ClientRepository
}

func NewPaymentService(repo PaymentRepository, clientRepo ClientRepository) *PaymentService {
	return &PaymentService{repo: repo, clientRepo: clientRepo}
}

// Record books a settlement state for (client, month); re-recording the
// same period overwrites amount and status in place.
func (s *PaymentService) Record(ctx context.Context, req model.PaymentUpsertRequest) (*model.Payment, bool, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, false, &ValidationError{Errors: errs}
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, &ValidationError{Errors: []string{"Client introuvable"}}
		}
		return nil, false, err
	}

	return s.repo.Upsert(ctx, &model.Payment{
		ClientID: req.ClientID,
		Month:    req.Month,
		Amount:   req.Amount,
		Status:   req.Status,
	})
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*model.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *PaymentService) List(ctx context.Context, f model.PaymentFilter) ([]*model.Payment, error) {
	return s.repo.List(ctx, f)
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
