package services

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type InvoiceRepository interface {
	Upsert(ctx context.Context, inv *model.Invoice) (*model.Invoice, bool, error)
	GetByID(ctx context.Context, id int64) (*model.Invoice, error)
	GetByPeriod(ctx context.Context, clientID int64, month, year int) (*model.Invoice, error)
	List(ctx context.Context, f model.InvoiceFilter) ([]*model.Invoice, error)
	Delete(ctx context.Context, id int64) error
	UpdatePdfURL(ctx context.Context, id int64, url string) error
}

type InvoiceService struct {
	repo       InvoiceRepository
	clientRepo ClientRepository
}

func NewInvoiceService(repo InvoiceRepository, clientRepo ClientRepository) *InvoiceService {
	return &InvoiceService{repo: repo, clientRepo: clientRepo}
}

// Upsert creates or refreshes the invoice for (client, month, year).
// The boolean reports creation so the handler can answer 201 vs 200.
func (s *InvoiceService) Upsert(ctx context.Context, req model.InvoiceUpsertRequest) (*model.UpsertResult, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Errors: []string{"Client introuvable"}}
		}
		return nil, err
	}

	inv, created, err := s.repo.Upsert(ctx, &model.Invoice{
		ClientID: req.ClientID,
		Month:    req.Month,
		Year:     req.Year,
		Amount:   req.Amount,
		Status:   req.Status,
	})
	if err != nil {
		return nil, err
	}

	return &model.UpsertResult{Invoice: inv, Created: created}, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return inv, err
}

func (s *InvoiceService) List(ctx context.Context, f model.InvoiceFilter) ([]*model.Invoice, error) {
	return s.repo.List(ctx, f)
}

func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
