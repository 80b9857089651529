package repository

import (
	"context"
	"errors"
	"time"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	*pg.DB
}

func NewNotificationRepository(db *pg.DB) *NotificationRepository {
	return &NotificationRepository{
		db,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	entity := toNotificationEntity(n)
	if entity.Status == "" {
		entity.Status = string(model.NotificationPending)
	}

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toNotificationModel(entity), nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	var entity NotificationEntity
	err := r.Read(ctx).WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toNotificationModel(&entity), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	var entities []*NotificationEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toNotificationModels(entities), nil
}

// ListDue returns pending notifications whose trigger date has passed,
// oldest first. The client polls this to surface reminders in real
// time.
func (r *NotificationRepository) ListDue(ctx context.Context, userID int64, now time.Time) ([]*model.Notification, error) {
	var entities []*NotificationEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("user_id = ? AND status = ? AND trigger_date <= ?", userID, string(model.NotificationPending), now).
		Order("trigger_date ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toNotificationModels(entities), nil
}

// UnreadCount counts unread notifications whose trigger date falls in
// the next minute. The badge shows reminders about to fire, not ones
// already fired.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64, now time.Time) (int64, error) {
	var count int64
	err := r.Read(ctx).WithContext(ctx).Model(&NotificationEntity{}).
		Where("user_id = ? AND is_read = ? AND trigger_date > ? AND trigger_date <= ?",
			userID, false, now, now.Add(time.Minute)).
		Count(&count).Error
	return count, err
}

// MarkAsRead moves a notification to read from any state.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id int64) (*model.Notification, error) {
	result := r.Write(ctx).WithContext(ctx).Model(&NotificationEntity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read": true,
			"status":  string(model.NotificationRead),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.Write(ctx).WithContext(ctx).Model(&NotificationEntity{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"status":  string(model.NotificationRead),
		}).Error
}

// MarkAsTriggered flips one pending notification to triggered. Returns
// ErrNotFound when the row is missing or already past pending.
func (r *NotificationRepository) MarkAsTriggered(ctx context.Context, id int64) (*model.Notification, error) {
	result := r.Write(ctx).WithContext(ctx).Model(&NotificationEntity{}).
		Where("id = ? AND status = ?", id, string(model.NotificationPending)).
		Update("status", string(model.NotificationTriggered))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// TriggerDue flips every pending notification whose trigger date is at
// or before now and returns the affected ids. Running it twice with the
// same clock is a no-op the second time.
func (r *NotificationRepository) TriggerDue(ctx context.Context, now time.Time) ([]int64, error) {
	var ids []int64

	err := r.WithinTransaction(ctx, func(txCtx context.Context) error {
		err := r.Write(txCtx).WithContext(txCtx).Model(&NotificationEntity{}).
			Where("status = ? AND trigger_date <= ?", string(model.NotificationPending), now).
			Order("trigger_date ASC").
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return r.Write(txCtx).WithContext(txCtx).Model(&NotificationEntity{}).
			Where("id IN ? AND status = ?", ids, string(model.NotificationPending)).
			Update("status", string(model.NotificationTriggered)).Error
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&NotificationEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats breaks a user's notifications down by lifecycle state.
func (r *NotificationRepository) Stats(ctx context.Context, userID int64) (*model.NotificationStats, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.Read(ctx).WithContext(ctx).Model(&NotificationEntity{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &model.NotificationStats{}
	for _, r := range rows {
		switch model.NotificationStatus(r.Status) {
		case model.NotificationPending:
			stats.Pending = r.Count
		case model.NotificationTriggered:
			stats.Triggered = r.Count
		case model.NotificationRead:
			stats.Read = r.Count
		}
		stats.Total += r.Count
	}
	return stats, nil
}
