package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

type ClientEntity struct {
	ID            int64            `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Name          string           `db:"name"           gorm:"column:name;not null"`
	Balance       float64          `db:"balance"        gorm:"column:balance;not null;default:0"`
	PaymentStatus string           `db:"payment_status" gorm:"column:payment_status;not null"`
	ResidenceID   int64            `db:"residence_id"   gorm:"column:residence_id;not null;index"`
	Residence     *ResidenceEntity `gorm:"foreignKey:ResidenceID"`
	CreatedAt     time.Time        `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `db:"updated_at"     gorm:"column:updated_at;autoUpdateTime"`
}

func (ClientEntity) TableName() string {
	return "clients"
}

func toClientEntity(m *model.Client) *ClientEntity {
	if m == nil {
		return nil
	}
	return &ClientEntity{
		ID:            m.ID,
		Name:          m.Name,
		Balance:       m.Balance,
		PaymentStatus: string(m.PaymentStatus),
		ResidenceID:   m.ResidenceID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toClientModel(e *ClientEntity) *model.Client {
	if e == nil {
		return nil
	}
	return &model.Client{
		ID:            e.ID,
		Name:          e.Name,
		Balance:       e.Balance,
		PaymentStatus: model.PaymentStatus(e.PaymentStatus),
		ResidenceID:   e.ResidenceID,
		Residence:     toResidenceModel(e.Residence),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toClientModels(entities []*ClientEntity) []*model.Client {
	if entities == nil {
		return nil
	}
	models := make([]*model.Client, len(entities))
	for i, e := range entities {
		models[i] = toClientModel(e)
	}
	return models
}
