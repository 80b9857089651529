package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

type ResidenceEntity struct {
	ID            int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Name          string    `db:"name"           gorm:"column:name;not null"`
	Address       string    `db:"address"        gorm:"column:address;not null"`
	NumApartments int       `db:"num_apartments" gorm:"column:num_apartments;not null"`
	Contact       string    `db:"contact"        gorm:"column:contact;not null"`
	CreatedAt     time.Time `db:"created_at"     gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `db:"updated_at"     gorm:"column:updated_at;autoUpdateTime"`
}

func (ResidenceEntity) TableName() string {
	return "residences"
}

func toResidenceEntity(m *model.Residence) *ResidenceEntity {
	if m == nil {
		return nil
	}
	return &ResidenceEntity{
		ID:            m.ID,
		Name:          m.Name,
		Address:       m.Address,
		NumApartments: m.NumApartments,
		Contact:       m.Contact,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toResidenceModel(e *ResidenceEntity) *model.Residence {
	if e == nil {
		return nil
	}
	return &model.Residence{
		ID:            e.ID,
		Name:          e.Name,
		Address:       e.Address,
		NumApartments: e.NumApartments,
		Contact:       e.Contact,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toResidenceModels(entities []*ResidenceEntity) []*model.Residence {
	if entities == nil {
		return nil
	}
	models := make([]*model.Residence, len(entities))
	for i, e := range entities {
		models[i] = toResidenceModel(e)
	}
	return models
}
