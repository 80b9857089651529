package services

import (
	"context"
	"errors"
	"time"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error)
	ListDue(ctx context.Context, userID int64, now time.Time) ([]*model.Notification, error)
	UnreadCount(ctx context.Context, userID int64, now time.Time) (int64, error)
	MarkAsRead(ctx context.Context, id int64) (*model.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) error
	MarkAsTriggered(ctx context.Context, id int64) (*model.Notification, error)
	TriggerDue(ctx context.Context, now time.Time) ([]int64, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, userID int64) (*model.NotificationStats, error)
}

type NotificationService struct {
	repo NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *NotificationService) Create(ctx context.Context, req model.NotificationCreateRequest) (*model.Notification, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return s.repo.Create(ctx, &model.Notification{
		Title:       req.Title,
		Description: req.Description,
		TriggerDate: req.TriggerDate,
		Status:      model.NotificationPending,
		UserID:      req.UserID,
	})
}

func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *NotificationService) ListDue(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.repo.ListDue(ctx, userID, s.now())
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID, s.now())
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id int64) (*model.Notification, error) {
	n, err := s.repo.MarkAsRead(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return n, err
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) MarkAsTriggered(ctx context.Context, id int64) (*model.Notification, error) {
	n, err := s.repo.MarkAsTriggered(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return n, err
}

// TriggerDue fires every pending notification whose trigger date has
// passed and returns the ids it flipped. The scanner loop calls this on
// a fixed cadence; a given row fires exactly once.
func (s *NotificationService) TriggerDue(ctx context.Context, now time.Time) ([]int64, error) {
	return s.repo.TriggerDue(ctx, now)
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *NotificationService) Stats(ctx context.Context, userID int64) (*model.NotificationStats, error) {
	return s.repo.Stats(ctx, userID)
}
