package services

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
	CreateBatch(ctx context.Context, clients []*model.Client) ([]*model.Client, error)
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context, residenceID int64) ([]*model.Client, error)
	Update(ctx context.Context, c *model.Client) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
	ListIDs(ctx context.Context) (map[int64]struct{}, error)
}

type ClientService struct {
	repo          ClientRepository
	residenceRepo ResidenceRepository
}

func NewClientService(repo ClientRepository, residenceRepo ResidenceRepository) *ClientService {
	return &ClientService{repo: repo, residenceRepo: residenceRepo}
}

func (s *ClientService) Create(ctx context.Context, req model.ClientCreateRequest) (*model.Client, error) {
	residenceIDs, err := s.residenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(residenceIDs); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return s.repo.Create(ctx, &model.Client{
		Name:          req.Name,
		Balance:       *req.Balance,
		PaymentStatus: req.PaymentStatus,
		ResidenceID:   req.ResidenceID,
	})
}

func (s *ClientService) BulkImport(ctx context.Context, rows []model.ClientCreateRequest) ([]*model.Client, error) {
	if len(rows) == 0 {
		return nil, model.ErrEmptyBatch
	}

	residenceIDs, err := s.residenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	var rowErrs []model.RowError
	clients := make([]*model.Client, 0, len(rows))
	for idx, row := range rows {
		if errs := row.Validate(residenceIDs); len(errs) > 0 {
			rowErrs = append(rowErrs, model.RowError{Row: idx + 2, Errors: errs})
			continue
		}
		clients = append(clients, &model.Client{
			Name:          row.Name,
			Balance:       *row.Balance,
			PaymentStatus: row.PaymentStatus,
			ResidenceID:   row.ResidenceID,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &BulkValidationError{Rows: rowErrs}
	}

	return s.repo.CreateBatch(ctx, clients)
}

func (s *ClientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *ClientService) List(ctx context.Context, residenceID int64) ([]*model.Client, error) {
	return s.repo.List(ctx, residenceID)
}

func (s *ClientService) Update(ctx context.Context, id int64, req model.ClientCreateRequest) (*model.Client, error) {
	residenceIDs, err := s.residenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(residenceIDs); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	c, err := s.repo.Update(ctx, &model.Client{
		ID:            id,
		Name:          req.Name,
		Balance:       *req.Balance,
		PaymentStatus: req.PaymentStatus,
		ResidenceID:   req.ResidenceID,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
