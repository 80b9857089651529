package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type ChargeRepository interface {
	Create(ctx context.Context, c *model.Charge) (*model.Charge, error)
	CreateBatch(ctx context.Context, charges []*model.Charge) ([]*model.Charge, error)
	GetByID(ctx context.Context, id int64) (*model.Charge, error)
	List(ctx context.Context, residenceID int64) ([]*model.Charge, error)
	Update(ctx context.Context, c *model.Charge) (*model.Charge, error)
	Delete(ctx context.Context, id int64) error
}

type ChargeService struct {
	repo          ChargeRepository
	residenceRepo ResidenceRepository
}

func NewChargeService(repo ChargeRepository, residenceRepo ResidenceRepository) *ChargeService {
	return &ChargeService{repo: repo, residenceRepo: residenceRepo}
}

func (s *ChargeService) toCharge(req model.ChargeCreateRequest) *model.Charge {
	date, _ := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	residenceID := req.ResidenceID
	return &model.Charge{
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		ResidenceID: &residenceID,
	}
}

func (s *ChargeService) Create(ctx context.Context, req model.ChargeCreateRequest) (*model.Charge, error) {
	residenceIDs, err := s.residenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(residenceIDs); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return s.repo.Create(ctx, s.toCharge(req))
}

func (s *ChargeService) BulkImport(ctx context.Context, rows []model.ChargeCreateRequest) ([]*model.Charge, error) {
	if len(rows) == 0 {
		return nil, model.ErrEmptyBatch
	}

	residenceIDs, err := s.residenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	var rowErrs []model.RowError
	charges := make([]*model.Charge, 0, len(rows))
	for idx, row := range rows {
		if errs := row.Validate(residenceIDs); len(errs) > 0 {
			rowErrs = append(rowErrs, model.RowError{Row: idx + 2, Errors: errs})
			continue
		}
		charges = append(charges, s.toCharge(row))
	}
	if len(rowErrs) > 0 {
		return nil, &BulkValidationError{Rows: rowErrs}
	}

	return s.repo.CreateBatch(ctx, charges)
}

func (s *ChargeService) Get(ctx context.Context, id int64) (*model.Charge, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *ChargeService) List(ctx context.Context, residenceID int64) ([]*model.Charge, error) {
	return s.repo.List(ctx, residenceID)
}

func (s *ChargeService) Update(ctx context.Context, id int64, req model.ChargeCreateRequest) (*model.Charge, error) {
	residenceIDs, err := s.residenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(residenceIDs); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	charge := s.toCharge(req)
	charge.ID = id
	c, err := s.repo.Update(ctx, charge)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *ChargeService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
