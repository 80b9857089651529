package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

type UserEntity struct {
	ID          int64             `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Username    string            `db:"username"    gorm:"column:username;not null;uniqueIndex:ux_users_username"`
	Email       string            `db:"email"       gorm:"column:email;not null;uniqueIndex:ux_users_email"`
	Password    string            `db:"password"    gorm:"column:password;not null"`
	Role        string            `db:"role"        gorm:"column:role;not null;default:user"`
	Permissions model.Permissions `db:"permissions" gorm:"column:permissions;type:text"`
	IsActive    bool              `db:"is_active"   gorm:"column:is_active;not null;default:true"`
	LastLogin   *time.Time        `db:"last_login"  gorm:"column:last_login"`
	CreatedAt   time.Time         `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		Password:    m.Password,
		Role:        string(m.Role),
		Permissions: m.Permissions,
		IsActive:    m.IsActive,
		LastLogin:   m.LastLogin,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:          e.ID,
		Username:    e.Username,
		Email:       e.Email,
		Password:    e.Password,
		Role:        model.Role(e.Role),
		Permissions: e.Permissions,
		IsActive:    e.IsActive,
		LastLogin:   e.LastLogin,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toUserModels(entities []*UserEntity) []*model.User {
	if entities == nil {
		return nil
	}
	models := make([]*model.User, len(entities))
	for i, e := range entities {
		models[i] = toUserModel(e)
	}
	return models
}
