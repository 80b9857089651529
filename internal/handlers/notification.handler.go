package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type NotificationService interface {
	Create(ctx context.Context, req model.NotificationCreateRequest) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Notification, error)
	ListDue(ctx context.Context, userID int64) ([]*model.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id int64) (*model.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) error
	MarkAsTriggered(ctx context.Context, id int64) (*model.Notification, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, userID int64) (*model.NotificationStats, error)
}

type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func RegisterNotificationRoutes(e *router.Group, h *NotificationHandler, m *AuthMiddleware) {
	e.POST("/notifications", m.Can("canCreateNotifications", h.Create))
	e.GET("/notifications/user/{user_id}", m.Can("canViewNotifications", h.ListByUser))
	e.GET("/notifications/unread/{user_id}", m.Can("canViewNotifications", h.UnreadCount))
	e.GET("/notifications/triggered/{user_id}", m.Can("canViewNotifications", h.ListDue))
	e.GET("/notifications/stats/{user_id}", m.Can("canViewNotifications", h.Stats))
	e.PUT("/notifications/{id}/read", m.Can("canViewNotifications", h.MarkAsRead))
	e.PUT("/notifications/{id}/trigger", m.Can("canViewNotifications", h.MarkAsTriggered))
	e.PUT("/notifications/user/{user_id}/read-all", m.Can("canViewNotifications", h.MarkAllAsRead))
	e.DELETE("/notifications/{id}", m.Can("canCreateNotifications", h.Delete))
}

/* --------------------------------- Routes ----------------------------------- */

func (h *NotificationHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.NotificationCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	n, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, n)
}

func (h *NotificationHandler) ListByUser(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	items, err := h.svc.ListByUser(ctx, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *NotificationHandler) UnreadCount(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	count, err := h.svc.UnreadCount(ctx, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]int64{"count": count})
}

func (h *NotificationHandler) ListDue(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	items, err := h.svc.ListDue(ctx, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *NotificationHandler) Stats(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	stats, err := h.svc.Stats(ctx, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stats)
}

func (h *NotificationHandler) MarkAsRead(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	n, err := h.svc.MarkAsRead(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, n)
}

func (h *NotificationHandler) MarkAsTriggered(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	n, err := h.svc.MarkAsTriggered(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, n)
}

func (h *NotificationHandler) MarkAllAsRead(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "user_id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.MarkAllAsRead(ctx, userID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Notifications marquées comme lues"})
}

func (h *NotificationHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Notification supprimée"})
}
