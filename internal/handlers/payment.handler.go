package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type PaymentService interface {
	Record(ctx context.Context, req model.PaymentUpsertRequest) (*model.Payment, bool, error)
	Get(ctx context.Context, id int64) (*model.Payment, error)
	List(ctx context.Context, f model.PaymentFilter) ([]*model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func RegisterPaymentRoutes(e *router.Group, h *PaymentHandler, m *AuthMiddleware) {
	e.GET("/payments", m.Can("canViewFinancialData", h.List))
	e.POST("/payments", m.Can("canViewFinancialData", h.Record))
	e.GET("/payments/{id}", m.Can("canViewFinancialData", h.Get))
	e.DELETE("/payments/{id}", m.Can("canViewFinancialData", h.Delete))
}

/* --------------------------------- Routes ----------------------------------- */

func (h *PaymentHandler) Record(ctx *xhttp.RequestCtx) {
	var req model.PaymentUpsertRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	p, created, err := h.svc.Record(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	status := xhttp.StatusOK
	if created {
		status = xhttp.StatusCreated
	}
	writeJSON(ctx, status, p)
}

func (h *PaymentHandler) List(ctx *xhttp.RequestCtx) {
	f := model.PaymentFilter{
		ClientID: queryInt64(ctx, "client_id"),
		Month:    query(ctx, "month"),
		Status:   model.PaymentStatus(query(ctx, "status")),
	}

	items, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *PaymentHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	p, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, p)
}

func (h *PaymentHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Paiement supprimé"})
}
