package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

type PaymentEntity struct {
	ID        int64         `db:"id"        gorm:"primaryKey;autoIncrement;column:id"`
	ClientID  int64         `db:"client_id" gorm:"column:client_id;not null;uniqueIndex:ux_payments_period"`
	Month     string        `db:"month"     gorm:"column:month;not null;uniqueIndex:ux_payments_period"`
	Amount    float64       `db:"amount"    gorm:"column:amount;not null"`
	Status    string        `db:"status"    gorm:"column:status;not null"`
	Client    *ClientEntity `gorm:"foreignKey:ClientID"`
	CreatedAt time.Time     `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (PaymentEntity) TableName() string {
	return "payments"
}

func toPaymentEntity(m *model.Payment) *PaymentEntity {
	if m == nil {
		return nil
	}
	return &PaymentEntity{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Month:     m.Month,
		Amount:    m.Amount,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPaymentModel(e *PaymentEntity) *model.Payment {
	if e == nil {
		return nil
	}
	return &model.Payment{
		ID:        e.ID,
		ClientID:  e.ClientID,
		Month:     e.Month,
		Amount:    e.Amount,
		Status:    model.PaymentStatus(e.Status),
		Client:    toClientModel(e.Client),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toPaymentModels(entities []*PaymentEntity) []*model.Payment {
	if entities == nil {
		return nil
	}
	models := make([]*model.Payment, len(entities))
	for i, e := range entities {
		models[i] = toPaymentModel(e)
	}
	return models
}
