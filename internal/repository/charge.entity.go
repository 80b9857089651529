package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

type ChargeEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Date        time.Time `db:"date"         gorm:"column:date;not null;index"`
	Description string    `db:"description"  gorm:"column:description;not null"`
	Amount      float64   `db:"amount"       gorm:"column:amount;not null"`
	ResidenceID *int64    `db:"residence_id" gorm:"column:residence_id;index"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}

func (ChargeEntity) TableName() string {
	return "charges"
}

func toChargeEntity(m *model.Charge) *ChargeEntity {
	if m == nil {
		return nil
	}
	return &ChargeEntity{
		ID:          m.ID,
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		ResidenceID: m.ResidenceID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toChargeModel(e *ChargeEntity) *model.Charge {
	if e == nil {
		return nil
	}
	return &model.Charge{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Amount:      e.Amount,
		ResidenceID: e.ResidenceID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toChargeModels(entities []*ChargeEntity) []*model.Charge {
	if entities == nil {
		return nil
	}
	models := make([]*model.Charge, len(entities))
	for i, e := range entities {
		models[i] = toChargeModel(e)
	}
	return models
}
