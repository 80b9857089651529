package handlers

import (
	"github.com/fasthttp/router"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type HealthService interface {
	Get() error
}

type HealthHandler struct {
	svc HealthService
}

func RegisterHealthRoutes(r *router.Router, h *HealthHandler) {
	r.GET("/health", h.GetHealth)
}

func NewHealthHandler(svc HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if h.svc != nil {
		if err := h.svc.Get(); err != nil {
			logInternalError(ctx, err)
			writeError(ctx, xhttp.StatusInternalServerError, "unhealthy")
			return
		}
	}
	ctx.Response.SetBodyString("success")
}
