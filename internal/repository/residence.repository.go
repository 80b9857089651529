package repository

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
)

type ResidenceRepository struct {
	*pg.DB
}

func NewResidenceRepository(db *pg.DB) *ResidenceRepository {
	return &ResidenceRepository{
		db,
	}
}

func (r *ResidenceRepository) Create(ctx context.Context, res *model.Residence) (*model.Residence, error) {
	entity := toResidenceEntity(res)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toResidenceModel(entity), nil
}

// CreateBatch inserts all rows in one transaction. Either every row
// lands or none does.
func (r *ResidenceRepository) CreateBatch(ctx context.Context, residences []*model.Residence) ([]*model.Residence, error) {
	entities := make([]*ResidenceEntity, len(residences))
	for i, res := range residences {
		entities[i] = toResidenceEntity(res)
	}

	err := r.WithinTransaction(ctx, func(txCtx context.Context) error {
		return r.Write(txCtx).WithContext(txCtx).Create(&entities).Error
	})
	if err != nil {
		return nil, err
	}

	return toResidenceModels(entities), nil
}

func (r *ResidenceRepository) GetByID(ctx context.Context, id int64) (*model.Residence, error) {
	var entity ResidenceEntity
	err := r.Read(ctx).WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toResidenceModel(&entity), nil
}

func (r *ResidenceRepository) List(ctx context.Context) ([]*model.Residence, error) {
	var entities []*ResidenceEntity
	if err := r.Read(ctx).WithContext(ctx).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toResidenceModels(entities), nil
}

func (r *ResidenceRepository) Update(ctx context.Context, res *model.Residence) (*model.Residence, error) {
	entity := toResidenceEntity(res)

	result := r.Write(ctx).WithContext(ctx).Model(&ResidenceEntity{}).
		Where("id = ?", entity.ID).
		Updates(map[string]interface{}{
			"name":           entity.Name,
			"address":        entity.Address,
			"num_apartments": entity.NumApartments,
			"contact":        entity.Contact,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, entity.ID)
}

func (r *ResidenceRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&ResidenceEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResidenceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).Model(&ResidenceEntity{}).Count(&total).Error
	return total, err
}

// ListIDs returns the set of existing residence ids, used by bulk
// imports to validate foreign keys before inserting anything.
func (r *ResidenceRepository) ListIDs(ctx context.Context) (map[int64]struct{}, error) {
	var ids []int64
	if err := r.Read(ctx).WithContext(ctx).Model(&ResidenceEntity{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
