package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type DashboardService interface {
	ComputeStats(ctx context.Context) (*model.DashboardStats, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func RegisterDashboardRoutes(e *router.Group, h *DashboardHandler, m *AuthMiddleware) {
	e.GET("/dashboard/stats", m.Can("canViewDashboard", h.Stats))
}

func (h *DashboardHandler) Stats(ctx *xhttp.RequestCtx) {
	stats, err := h.svc.ComputeStats(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stats)
}
