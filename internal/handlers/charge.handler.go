package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type ChargeService interface {
	Create(ctx context.Context, req model.ChargeCreateRequest) (*model.Charge, error)
	BulkImport(ctx context.Context, rows []model.ChargeCreateRequest) ([]*model.Charge, error)
	Get(ctx context.Context, id int64) (*model.Charge, error)
	List(ctx context.Context, residenceID int64) ([]*model.Charge, error)
	Update(ctx context.Context, id int64, req model.ChargeCreateRequest) (*model.Charge, error)
	Delete(ctx context.Context, id int64) error
}

type ChargeHandler struct {
	svc ChargeService
}

func NewChargeHandler(svc ChargeService) *ChargeHandler {
	return &ChargeHandler{svc: svc}
}

func RegisterChargeRoutes(e *router.Group, h *ChargeHandler, m *AuthMiddleware) {
	e.GET("/charges", m.Can("canViewCharges", h.List))
	e.POST("/charges", m.Can("canCreateCharges", h.Create))
	e.POST("/charges/bulk", m.Can("canCreateCharges", h.BulkImport))
	e.GET("/charges/{id}", m.Can("canViewCharges", h.Get))
	e.PUT("/charges/{id}", m.Can("canEditCharges", h.Update))
	e.DELETE("/charges/{id}", m.Can("canDeleteCharges", h.Delete))
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ChargeHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.ChargeCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	c, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, c)
}

func (h *ChargeHandler) BulkImport(ctx *xhttp.RequestCtx) {
	var rows []model.ChargeCreateRequest
	if err := readJSON(ctx, &rows); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	created, err := h.svc.BulkImport(ctx, rows)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, map[string]any{
		"created": len(created),
		"items":   created,
	})
}

func (h *ChargeHandler) List(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx, queryInt64(ctx, "residence_id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *ChargeHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	c, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *ChargeHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	var req model.ChargeCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	c, err := h.svc.Update(ctx, id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, c)
}

func (h *ChargeHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Charge supprimée"})
}
