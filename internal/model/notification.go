package model

import (
	"strings"
	"time"
)

// NotificationStatus is the delivery lifecycle: a notification is
// created pending, becomes triggered once its trigger date passes, and
// ends read when the user acknowledges it. Reading is allowed from any
// state.
type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "pending"
	NotificationTriggered NotificationStatus = "triggered"
	NotificationRead      NotificationStatus = "read"
)

func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationPending, NotificationTriggered, NotificationRead:
		return true
	}
	return false
}

type Notification struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	TriggerDate time.Time          `json:"trigger_date"`
	Status      NotificationStatus `json:"status"`
	IsRead      bool               `json:"is_read"`
	UserID      *int64             `json:"user_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type NotificationCreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TriggerDate time.Time `json:"trigger_date"`
	UserID      *int64    `json:"user_id"`
}

func (p NotificationCreateRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "Titre manquant")
	}
	if p.TriggerDate.IsZero() {
		errs = append(errs, "Date de déclenchement manquante")
	}
	return errs
}

// NotificationStats is the per-status breakdown returned by the stats
// endpoint.
type NotificationStats struct {
	Pending   int64 `json:"pending"`
	Triggered int64 `json:"triggered"`
	Read      int64 `json:"read"`
	Total     int64 `json:"total"`
}
