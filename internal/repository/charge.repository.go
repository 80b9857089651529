package repository

import (
	"context"
	"errors"
	"time"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
)

type ChargeRepository struct {
	*pg.DB
}

func NewChargeRepository(db *pg.DB) *ChargeRepository {
	return &ChargeRepository{
		db,
	}
}

func (r *ChargeRepository) Create(ctx context.Context, c *model.Charge) (*model.Charge, error) {
	entity := toChargeEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toChargeModel(entity), nil
}

func (r *ChargeRepository) CreateBatch(ctx context.Context, charges []*model.Charge) ([]*model.Charge, error) {
	entities := make([]*ChargeEntity, len(charges))
	for i, c := range charges {
		entities[i] = toChargeEntity(c)
	}

	err := r.WithinTransaction(ctx, func(txCtx context.Context) error {
		return r.Write(txCtx).WithContext(txCtx).Create(&entities).Error
	})
	if err != nil {
		return nil, err
	}

	return toChargeModels(entities), nil
}

func (r *ChargeRepository) GetByID(ctx context.Context, id int64) (*model.Charge, error) {
	var entity ChargeEntity
	err := r.Read(ctx).WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toChargeModel(&entity), nil
}

func (r *ChargeRepository) List(ctx context.Context, residenceID int64) ([]*model.Charge, error) {
	q := r.Read(ctx).WithContext(ctx)
	if residenceID > 0 {
		q = q.Where("residence_id = ?", residenceID)
	}

	var entities []*ChargeEntity
	if err := q.Order("date DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toChargeModels(entities), nil
}

func (r *ChargeRepository) Update(ctx context.Context, c *model.Charge) (*model.Charge, error) {
	entity := toChargeEntity(c)

	result := r.Write(ctx).WithContext(ctx).Model(&ChargeEntity{}).
		Where("id = ?", entity.ID).
		Updates(map[string]interface{}{
			"date":         entity.Date,
			"description":  entity.Description,
			"amount":       entity.Amount,
			"residence_id": entity.ResidenceID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, entity.ID)
}

func (r *ChargeRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&ChargeEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChargeRepository) SumAll(ctx context.Context) (float64, error) {
	var sum float64
	err := r.Read(ctx).WithContext(ctx).Model(&ChargeEntity{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *ChargeRepository) SumBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.Read(ctx).WithContext(ctx).Model(&ChargeEntity{}).
		Where("date >= ? AND date < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// PeriodAmounts returns (date, amount) pairs for the whole table. The
// monthly grouping happens in the dashboard service so the query stays
// free of dialect-specific date functions.
func (r *ChargeRepository) PeriodAmounts(ctx context.Context) ([]model.Charge, error) {
	var entities []*ChargeEntity
	err := r.Read(ctx).WithContext(ctx).Model(&ChargeEntity{}).
		Select("date", "amount").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.Charge, len(entities))
	for i, e := range entities {
		out[i] = model.Charge{Date: e.Date, Amount: e.Amount}
	}
	return out, nil
}
