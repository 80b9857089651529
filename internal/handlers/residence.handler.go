package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type ResidenceService interface {
	Create(ctx context.Context, req model.ResidenceCreateRequest) (*model.Residence, error)
	BulkImport(ctx context.Context, rows []model.ResidenceCreateRequest) ([]*model.Residence, error)
	Get(ctx context.Context, id int64) (*model.Residence, error)
	List(ctx context.Context) ([]*model.Residence, error)
	Update(ctx context.Context, id int64, req model.ResidenceCreateRequest) (*model.Residence, error)
	Delete(ctx context.Context, id int64) error
}

type ResidenceHandler struct {
	svc ResidenceService
}

func NewResidenceHandler(svc ResidenceService) *ResidenceHandler {
	return &ResidenceHandler{svc: svc}
}

func RegisterResidenceRoutes(e *router.Group, h *ResidenceHandler, m *AuthMiddleware) {
	e.GET("/residences", m.Can("canViewResidences", h.List))
	e.POST("/residences", m.Can("canCreateResidences", h.Create))
	e.POST("/residences/bulk", m.Can("canCreateResidences", h.BulkImport))
	e.GET("/residences/{id}", m.Can("canViewResidences", h.Get))
	e.PUT("/residences/{id}", m.Can("canEditResidences", h.Update))
	e.DELETE("/residences/{id}", m.Can("canDeleteResidences", h.Delete))
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ResidenceHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.ResidenceCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	res, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, res)
}

func (h *ResidenceHandler) BulkImport(ctx *xhttp.RequestCtx) {
	var rows []model.ResidenceCreateRequest
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

func (h *ResidenceHandler) List(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *ResidenceHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	res, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, res)
}

func (h *ResidenceHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	var req model.ResidenceCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	res, err := h.svc.Update(ctx, id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, res)
}

func (h *ResidenceHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Résidence supprimée"})
}
