package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type ClientService interface {
	Create(ctx context.Context, req model.ClientCreateRequest) (*model.Client, error)
	BulkImport(ctx context.Context, rows []model.ClientCreateRequest) ([]*model.Client, error)
	Get(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context, residenceID int64) ([]*model.Client, error)
	Update(ctx context.Context, id int64, req model.ClientCreateRequest) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
}

type ClientHandler struct {
	svc ClientService
}

func NewClientHandler(svc ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func RegisterClientRoutes(e *router.Group, h *ClientHandler, m *AuthMiddleware) {
	e.GET("/clients", m.Can("canViewClients", h.List))
	e.POST("/clients", m.Can("canCreateClients", h.Create))
	e.POST("/clients/bulk", m.Can("canCreateClients", h.BulkImport))
	e.GET("/clients/{id}", m.Can("canViewClients", h.Get))
	e.PUT("/clients/{id}", m.Can("canEditClients", h.Update))
	e.DELETE("/clients/{id}", m.Can("canDeleteClients", h.Delete))
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ClientHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.ClientCreateRequest
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

func (h *ClientHandler) BulkImport(ctx *xhttp.RequestCtx) {
	var rows []model.ClientCreateRequest
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

func (h *ClientHandler) List(ctx *xhttp.RequestCtx) {
	items, err := h.svc.List(ctx, queryInt64(ctx, "residence_id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *ClientHandler) Get(ctx *xhttp.RequestCtx) {
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

func (h *ClientHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	var req model.ClientCreateRequest
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

func (h *ClientHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Client supprimé"})
}
