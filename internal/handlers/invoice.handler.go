package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/pdf"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
	"github.com/valyala/fasthttp"
)

type InvoiceService interface {
	Upsert(ctx context.Context, req model.InvoiceUpsertRequest) (*model.UpsertResult, error)
	Get(ctx context.Context, id int64) (*model.Invoice, error)
	List(ctx context.Context, f model.InvoiceFilter) ([]*model.Invoice, error)
	Delete(ctx context.Context, id int64) error
}

type DocumentStore interface {
	Ensure(ctx context.Context, inv *model.Invoice) (string, string, error)
	Merge(ctx context.Context, clientIDs []int64, month, year int) ([]byte, error)
	Prerender(ctx context.Context, invoices []*model.Invoice, workers int) pdf.PrerenderResult
	Dir() string
}

type InvoiceHandler struct {
	svc       InvoiceService
	documents DocumentStore
	workers   int
}

func NewInvoiceHandler(svc InvoiceService, documents DocumentStore, prerenderWorkers int) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, documents: documents, workers: prerenderWorkers}
}

func RegisterInvoiceRoutes(e *router.Group, h *InvoiceHandler, m *AuthMiddleware) {
	e.GET("/invoices", m.Can("canViewFinancialData", h.List))
	e.POST("/invoices", m.Can("canViewFinancialData", h.Upsert))
	e.GET("/invoices/merged-pdf", m.Can("canExportData", h.MergedPdf))
	e.POST("/invoices/generate-pdf", m.Can("canExportData", h.GeneratePdfs))
	e.GET("/invoices/{id}", m.Can("canViewFinancialData", h.Get))
	e.GET("/invoices/{id}/pdf", m.Can("canViewFinancialData", h.GetPdf))
	e.DELETE("/invoices/{id}", m.Can("canViewFinancialData", h.Delete))
}

// RegisterDocumentRoutes serves the rendered files under the public
// /invoices/ prefix that pdf_url points at.
func RegisterDocumentRoutes(r *router.Router, h *InvoiceHandler) {
	r.GET("/invoices/{filename}", h.ServeDocument)
}

type generatePdfsRequest struct {
	Month    int      `json:"month"`
	Year     int      `json:"year"`
	ClientID int64    `json:"client_id"`
	Amount   *float64 `json:"amount"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *InvoiceHandler) Upsert(ctx *xhttp.RequestCtx) {
	var req model.InvoiceUpsertRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	result, err := h.svc.Upsert(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	status := xhttp.StatusOK
	if result.Created {
		status = xhttp.StatusCreated
	}
	writeJSON(ctx, status, result)
}

func (h *InvoiceHandler) List(ctx *xhttp.RequestCtx) {
	f := model.InvoiceFilter{
		ClientID: queryInt64(ctx, "client_id"),
		Month:    queryInt(ctx, "month"),
		Year:     queryInt(ctx, "year"),
		Status:   model.PaymentStatus(query(ctx, "status")),
	}

	items, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, items)
}

func (h *InvoiceHandler) Get(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	inv, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Facture supprimée"})
}

// GetPdf renders the document on first access and streams it inline.
func (h *InvoiceHandler) GetPdf(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	inv, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	path, _, err := h.documents.Ensure(ctx, inv)
	if err != nil {
		logInternalError(ctx, err)
		writeError(ctx, xhttp.StatusInternalServerError, "Échec de la génération du PDF")
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/pdf")
	ctx.Response.Header.Set("Content-Disposition", `inline; filename="`+filepath.Base(path)+`"`)
	fasthttp.ServeFileUncompressed(ctx, path)
}

// GeneratePdfs warms the document cache for every invoice of a period.
// With a client_id it narrows to one client: the invoice is created on
// the fly when the period has none, and the response carries its
// pdf_url.
func (h *InvoiceHandler) GeneratePdfs(ctx *xhttp.RequestCtx) {
	var req generatePdfsRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 || req.Year > 2100 {
		writeError(ctx, xhttp.StatusBadRequest, "Période invalide")
		return
	}

	if req.ClientID > 0 {
		h.generateClientPdf(ctx, req)
		return
	}

	invoices, err := h.svc.List(ctx, model.InvoiceFilter{Month: req.Month, Year: req.Year})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	result := h.documents.Prerender(ctx, invoices, h.workers)
	writeJSON(ctx, xhttp.StatusOK, result)
}

// generateClientPdf finds or creates the client's invoice for the
// period and answers its document URL. A missing invoice starts at
// amount 0, unpaid.
func (h *InvoiceHandler) generateClientPdf(ctx *xhttp.RequestCtx, req generatePdfsRequest) {
	existing, err := h.svc.List(ctx, model.InvoiceFilter{ClientID: req.ClientID, Month: req.Month, Year: req.Year})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	var id int64
	if len(existing) > 0 {
		id = existing[0].ID
	} else {
		var amount float64
		if req.Amount != nil {
			amount = *req.Amount
		}
		result, err := h.svc.Upsert(ctx, model.InvoiceUpsertRequest{
			ClientID: req.ClientID,
			Month:    req.Month,
			Year:     req.Year,
			Amount:   amount,
			Status:   model.StatusUnpaid,
		})
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		id = result.Invoice.ID
	}

	// Reload to get the client attached for rendering.
	inv, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	_, publicURL, err := h.documents.Ensure(ctx, inv)
	if err != nil {
		logInternalError(ctx, err)
		writeError(ctx, xhttp.StatusInternalServerError, "Échec de la génération du PDF")
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"pdf_url": publicURL})
}

// MergedPdf concatenates the paid invoices of a period into one
// download. An explicit client_ids list narrows the selection.
func (h *InvoiceHandler) MergedPdf(ctx *xhttp.RequestCtx) {
	month := queryInt(ctx, "month")
	year := queryInt(ctx, "year")
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		writeError(ctx, xhttp.StatusBadRequest, "Période invalide")
		return
	}

	clientIDs := parseClientIDs(query(ctx, "client_ids"))
	if len(clientIDs) == 0 {
		invoices, err := h.svc.List(ctx, model.InvoiceFilter{Month: month, Year: year, Status: model.StatusPaid})
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		for _, inv := range invoices {
			clientIDs = append(clientIDs, inv.ClientID)
		}
	}

	data, err := h.documents.Merge(ctx, clientIDs, month, year)
	if err != nil {
		if errors.Is(err, pdf.ErrNoDocuments) {
			writeError(ctx, xhttp.StatusNotFound, "Aucune facture à fusionner pour cette période")
			return
		}
		logInternalError(ctx, err)
		writeError(ctx, xhttp.StatusInternalServerError, "Échec de la fusion des factures")
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/pdf")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="factures_payees.pdf"`)
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(data)
}

// ServeDocument exposes a stored file by name. The name is validated
// against traversal before touching the filesystem.
func (h *InvoiceHandler) ServeDocument(ctx *xhttp.RequestCtx) {
	name, _ := ctx.UserValue("filename").(string)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".pdf") {
		writeError(ctx, xhttp.StatusBadRequest, "Nom de fichier invalide")
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/pdf")
	fasthttp.ServeFileUncompressed(ctx, filepath.Join(h.documents.Dir(), name))
}

func parseClientIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
