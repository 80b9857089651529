package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

type NotificationEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Title       string    `db:"title"        gorm:"column:title;not null"`
	Description string    `db:"description"  gorm:"column:description"`
	TriggerDate time.Time `db:"trigger_date" gorm:"column:trigger_date;not null;index:ix_notifications_due"`
	Status      string    `db:"status"       gorm:"column:status;not null;default:pending;index:ix_notifications_due"`
	IsRead      bool      `db:"is_read"      gorm:"column:is_read;not null;default:false"`
	UserID      *int64    `db:"user_id"      gorm:"column:user_id;index"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}

func (NotificationEntity) TableName() string {
	return "notifications"
}

func toNotificationEntity(m *model.Notification) *NotificationEntity {
	if m == nil {
		return nil
	}
	return &NotificationEntity{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		TriggerDate: m.TriggerDate,
		Status:      string(m.Status),
		IsRead:      m.IsRead,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toNotificationModel(e *NotificationEntity) *model.Notification {
	if e == nil {
		return nil
	}
	return &model.Notification{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		TriggerDate: e.TriggerDate,
		Status:      model.NotificationStatus(e.Status),
		IsRead:      e.IsRead,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toNotificationModels(entities []*NotificationEntity) []*model.Notification {
	if entities == nil {
		return nil
	}
	models := make([]*model.Notification, len(entities))
	for i, e := range entities {
		models[i] = toNotificationModel(e)
	}
	return models
}
