package repository

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	*pg.DB
}

func NewPaymentRepository(db *pg.DB) *PaymentRepository {
	return &PaymentRepository{
		db,
	}
}

// Upsert records a settlement state for (client, month), refreshing the
// existing row when the period was already recorded.
func (r *PaymentRepository) Upsert(ctx context.Context, p *model.Payment) (*model.Payment, bool, error) {
	entity := toPaymentEntity(p)

	result := r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(entity)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return toPaymentModel(entity), true, nil
	}

	err := r.Write(ctx).WithContext(ctx).Model(&PaymentEntity{}).
		Where("client_id = ? AND month = ?", entity.ClientID, entity.Month).
		Updates(map[string]interface{}{
			"amount": entity.Amount,
			"status": entity.Status,
		}).Error
	if err != nil {
		return nil, false, err
	}

	updated, err := r.GetByPeriod(ctx, entity.ClientID, entity.Month)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var entity PaymentEntity
	err := r.Read(ctx).WithContext(ctx).Preload("Client").First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toPaymentModel(&entity), nil
}

func (r *PaymentRepository) GetByPeriod(ctx context.Context, clientID int64, month string) (*model.Payment, error) {
	var entity PaymentEntity
	err := r.Read(ctx).WithContext(ctx).Preload("Client").
		Where("client_id = ? AND month = ?", clientID, month).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toPaymentModel(&entity), nil
}

func (r *PaymentRepository) List(ctx context.Context, f model.PaymentFilter) ([]*model.Payment, error) {
	q := r.Read(ctx).WithContext(ctx).Preload("Client")

	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Month != "" {
		q = q.Where("month = ?", f.Month)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var entities []*PaymentEntity
	if err := q.Order("month DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toPaymentModels(entities), nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&PaymentEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
