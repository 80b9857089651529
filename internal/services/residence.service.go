package services

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type ResidenceRepository interface {
	Create(ctx context.Context, res *model.Residence) (*model.Residence, error)
	CreateBatch(ctx context.Context, residences []*model.Residence) ([]*model.Residence, error)
	GetByID(ctx context.Context, id int64) (*model.Residence, error)
	List(ctx context.Context) ([]*model.Residence, error)
	Update(ctx context.Context, res *model.Residence) (*model.Residence, error)
	Delete(ctx context.Context, id int64) error
	ListIDs(ctx context.Context) (map[int64]struct{}, error)
}

type ResidenceService struct {
	repo ResidenceRepository
}

func NewResidenceService(repo ResidenceRepository) *ResidenceService {
	return &ResidenceService{repo: repo}
}

func (s *ResidenceService) Create(ctx context.Context, req model.ResidenceCreateRequest) (*model.Residence, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return s.repo.Create(ctx, &model.Residence{
		Name:          req.Name,
		Address:       req.Address,
		NumApartments: req.NumApartments,
		Contact:       req.Contact,
	})
}

// BulkImport validates every row before touching the database; one bad
// row rejects the whole batch. Row numbers in errors start at 2, the
// first data row of the source spreadsheet.
func (s *ResidenceService) BulkImport(ctx context.Context, rows []model.ResidenceCreateRequest) ([]*model.Residence, error) {
	if len(rows) == 0 {
		return nil, model.ErrEmptyBatch
	}

	var rowErrs []model.RowError
	residences := make([]*model.Residence, 0, len(rows))
	for idx, row := range rows {
		if errs := row.Validate(); len(errs) > 0 {
			rowErrs = append(rowErrs, model.RowError{Row: idx + 2, Errors: errs})
			continue
		}
		residences = append(residences, &model.Residence{
			Name:          row.Name,
			Address:       row.Address,
			NumApartments: row.NumApartments,
			Contact:       row.Contact,
		})
	}
	if len(rowErrs) > 0 {
		return nil, &BulkValidationError{Rows: rowErrs}
	}

	return s.repo.CreateBatch(ctx, residences)
}

func (s *ResidenceService) Get(ctx context.Context, id int64) (*model.Residence, error) {
	res, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return res, err
}

func (s *ResidenceService) List(ctx context.Context) ([]*model.Residence, error) {
	return s.repo.List(ctx)
}

func (s *ResidenceService) Update(ctx context.Context, id int64, req model.ResidenceCreateRequest) (*model.Residence, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	res, err := s.repo.Update(ctx, &model.Residence{
		ID:            id,
		Name:          req.Name,
		Address:       req.Address,
		NumApartments: req.NumApartments,
		Contact:       req.Contact,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return res, err
}

func (s *ResidenceService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
