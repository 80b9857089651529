package repository

import (
	"context"
	"errors"
	"time"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toUserModel(entity), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUserModel(&entity), nil
}

// GetByLogin resolves a user by username or email, whichever matches.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toUserModel(&entity), nil
}

// ExistsByUsernameOrEmail reports whether another user already claims
// the username or the email. The excluded id lets updates skip the row
// being edited.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error) {
	var count int64
	q := r.Read(ctx).WithContext(ctx).Model(&UserEntity{}).
		Where("username = ? OR email = ?", username, email)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	var entities []*UserEntity
	if err := r.Read(ctx).WithContext(ctx).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toUserModels(entities), nil
}

// Update writes the given columns. The caller decides what changes;
// password hashing happens in the service before this is called.
func (r *UserRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) (*model.User, error) {
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}

	result := r.Write(ctx).WithContext(ctx).Model(&UserEntity{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.Write(ctx).WithContext(ctx).Model(&UserEntity{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&UserEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).Model(&UserEntity{}).
		Where("role = ?", string(model.RoleAdmin)).
		Count(&count).Error
	return count, err
}
