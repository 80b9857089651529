package repository

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
)

type ClientRepository struct {
	*pg.DB
}

func NewClientRepository(db *pg.DB) *ClientRepository {
	return &ClientRepository{
		db,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	entity := toClientEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toClientModel(entity), nil
}

func (r *ClientRepository) CreateBatch(ctx context.Context, clients []*model.Client) ([]*model.Client, error) {
	entities := make([]*ClientEntity, len(clients))
	for i, c := range clients {
		entities[i] = toClientEntity(c)
	}

	err := r.WithinTransaction(ctx, func(txCtx context.Context) error {
		return r.Write(txCtx).WithContext(txCtx).Create(&entities).Error
	})
	if err != nil {
		return nil, err
	}

	return toClientModels(entities), nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	var entity ClientEntity
	err := r.Read(ctx).WithContext(ctx).Preload("Residence").First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toClientModel(&entity), nil
}

func (r *ClientRepository) List(ctx context.Context, residenceID int64) ([]*model.Client, error) {
	q := r.Read(ctx).WithContext(ctx).Preload("Residence")
	if residenceID > 0 {
		q = q.Where("residence_id = ?", residenceID)
	}

	var entities []*ClientEntity
	if err := q.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toClientModels(entities), nil
}

func (r *ClientRepository) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	entity := toClientEntity(c)

	result := r.Write(ctx).WithContext(ctx).Model(&ClientEntity{}).
		Where("id = ?", entity.ID).
		Updates(map[string]interface{}{
			"name":           entity.Name,
			"balance":        entity.Balance,
			"payment_status": entity.PaymentStatus,
			"residence_id":   entity.ResidenceID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, entity.ID)
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&ClientEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).Model(&ClientEntity{}).Count(&total).Error
	return total, err
}

// SumBalanceByStatus totals client balances for one payment status.
func (r *ClientRepository) SumBalanceByStatus(ctx context.Context, status model.PaymentStatus) (float64, error) {
	var sum float64
	err := r.Read(ctx).WithContext(ctx).Model(&ClientEntity{}).
		Where("payment_status = ?", string(status)).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *ClientRepository) ListIDs(ctx context.Context) (map[int64]struct{}, error) {
	var ids []int64
	if err := r.Read(ctx).WithContext(ctx).Model(&ClientEntity{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
