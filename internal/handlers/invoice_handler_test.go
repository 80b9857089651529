package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/pdf"
	"github.com/syndicma/syndic-api/internal/services"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Upsert(ctx context.Context, req model.InvoiceUpsertRequest) (*model.UpsertResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UpsertResult), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, f model.InvoiceFilter) ([]*model.Invoice, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Ensure(ctx context.Context, inv *model.Invoice) (string, string, error) {
	args := m.Called(ctx, inv)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockDocumentStore) Merge(ctx context.Context, clientIDs []int64, month, year int) ([]byte, error) {
	args := m.Called(ctx, clientIDs, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentStore) Prerender(ctx context.Context, invoices []*model.Invoice, workers int) pdf.PrerenderResult {
	args := m.Called(ctx, invoices, workers)
	return args.Get(0).(pdf.PrerenderResult)
}

func (m *MockDocumentStore) Dir() string {
	return m.Called().String(0)
}

func TestInvoiceHandler_Upsert(t *testing.T) {
	t.Run("new invoice answers 201", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc, nil, 4)

		req := model.InvoiceUpsertRequest{ClientID: 12, Month: 3, Year: 2026, Amount: 950, Status: model.StatusUnpaid}
		body, _ := json.Marshal(req)

		svc.On("Upsert", mock.Anything, req).Return(&model.UpsertResult{
			Invoice: &model.Invoice{ID: 1, ClientID: 12, Month: 3, Year: 2026},
			Created: true,
		}, nil)

		ctx := setupTestContext("POST", "/api/invoices", body)
		handler.Upsert(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("refreshed invoice answers 200", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc, nil, 4)

		req := model.InvoiceUpsertRequest{ClientID: 12, Month: 3, Year: 2026, Amount: 1000, Status: model.StatusPaid}
		body, _ := json.Marshal(req)

		svc.On("Upsert", mock.Anything, req).Return(&model.UpsertResult{
			Invoice: &model.Invoice{ID: 1, ClientID: 12, Month: 3, Year: 2026, Amount: 1000},
			Created: false,
		}, nil)

		ctx := setupTestContext("POST", "/api/invoices", body)
		handler.Upsert(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
	})

	t.Run("unknown client is a validation error", func(t *testing.T) {
		svc := new(MockInvoiceService)
		handler := NewInvoiceHandler(svc, nil, 4)

		body, _ := json.Marshal(model.InvoiceUpsertRequest{ClientID: 99, Month: 3, Year: 2026, Status: model.StatusUnpaid})
		svc.On("Upsert", mock.Anything, mock.Anything).
			Return(nil, &services.ValidationError{Errors: []string{"Client introuvable"}})

		ctx := setupTestContext("POST", "/api/invoices", body)
		handler.Upsert(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Body()), "Client introuvable")
	})
}

func TestInvoiceHandler_List(t *testing.T) {
	svc := new(MockInvoiceService)
	handler := NewInvoiceHandler(svc, nil, 4)

	svc.On("List", mock.Anything, mock.MatchedBy(func(f model.InvoiceFilter) bool {
		return f.ClientID == 12 && f.Month == 3 && f.Year == 2026 && f.Status == model.StatusPaid
	})).Return([]*model.Invoice{{ID: 1}}, nil)

	ctx := setupTestContext("GET", "/api/invoices?client_id=12&month=3&year=2026&status=Payé", nil)
	handler.List(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_GeneratePdfs(t *testing.T) {
	t.Run("prerenders every invoice of the period", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		invoices := []*model.Invoice{{ID: 1, ClientID: 12, Month: 3, Year: 2026}}
		svc.On("List", mock.Anything, model.InvoiceFilter{Month: 3, Year: 2026}).Return(invoices, nil)
		store.On("Prerender", mock.Anything, invoices, 4).Return(pdf.PrerenderResult{Rendered: 1})

		body, _ := json.Marshal(generatePdfsRequest{Month: 3, Year: 2026})
		ctx := setupTestContext("POST", "/api/invoices/generate-pdf", body)
		handler.GeneratePdfs(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var result pdf.PrerenderResult
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
		assert.Equal(t, 1, result.Rendered)

		svc.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("rejects a bogus period", func(t *testing.T) {
		handler := NewInvoiceHandler(new(MockInvoiceService), new(MockDocumentStore), 4)

		body, _ := json.Marshal(generatePdfsRequest{Month: 13, Year: 2026})
		ctx := setupTestContext("POST", "/api/invoices/generate-pdf", body)
		handler.GeneratePdfs(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("client_id answers that client's pdf_url", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		inv := &model.Invoice{ID: 5, ClientID: 12, Month: 3, Year: 2026, Client: &model.Client{ID: 12, Name: "Ahmed Benali"}}
		svc.On("List", mock.Anything, model.InvoiceFilter{ClientID: 12, Month: 3, Year: 2026}).
			Return([]*model.Invoice{inv}, nil)
		svc.On("Get", mock.Anything, int64(5)).Return(inv, nil)
		store.On("Ensure", mock.Anything, inv).Return("/tmp/12_Ahmed_Benali_03-2026.pdf", "/invoices/12_Ahmed_Benali_03-2026.pdf", nil)

		body, _ := json.Marshal(generatePdfsRequest{Month: 3, Year: 2026, ClientID: 12})
		ctx := setupTestContext("POST", "/api/invoices/generate-pdf", body)
		handler.GeneratePdfs(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "/invoices/12_Ahmed_Benali_03-2026.pdf", resp["pdf_url"])

		svc.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		svc.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("client_id creates the missing invoice at amount 0", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		created := &model.Invoice{ID: 9, ClientID: 12, Month: 3, Year: 2026, Client: &model.Client{ID: 12, Name: "Ahmed Benali"}}
		svc.On("List", mock.Anything, model.InvoiceFilter{ClientID: 12, Month: 3, Year: 2026}).
			Return([]*model.Invoice{}, nil)
		svc.On("Upsert", mock.Anything, model.InvoiceUpsertRequest{
			ClientID: 12, Month: 3, Year: 2026, Amount: 0, Status: model.StatusUnpaid,
		}).Return(&model.UpsertResult{Invoice: created, Created: true}, nil)
		svc.On("Get", mock.Anything, int64(9)).Return(created, nil)
		store.On("Ensure", mock.Anything, created).Return("/tmp/f.pdf", "/invoices/f.pdf", nil)

		body, _ := json.Marshal(generatePdfsRequest{Month: 3, Year: 2026, ClientID: 12})
		ctx := setupTestContext("POST", "/api/invoices/generate-pdf", body)
		handler.GeneratePdfs(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "/invoices/f.pdf", resp["pdf_url"])

		svc.AssertExpectations(t)
		store.AssertExpectations(t)
	})
}

func TestInvoiceHandler_MergedPdf(t *testing.T) {
	t.Run("explicit client list", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		store.On("Merge", mock.Anything, []int64{12, 7}, 3, 2026).Return([]byte("%PDF-merged"), nil)

		ctx := setupTestContext("GET", "/api/invoices/merged-pdf?month=3&year=2026&client_ids=12,7", nil)
		handler.MergedPdf(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Equal(t, "application/pdf", string(ctx.Response.Header.Peek("Content-Type")))
		assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), "factures_payees.pdf")
		assert.Equal(t, []byte("%PDF-merged"), ctx.Response.Body())
	})

	t.Run("defaults to the paid invoices of the period", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		svc.On("List", mock.Anything, model.InvoiceFilter{Month: 3, Year: 2026, Status: model.StatusPaid}).
			Return([]*model.Invoice{{ID: 1, ClientID: 12}, {ID: 2, ClientID: 7}}, nil)
		store.On("Merge", mock.Anything, []int64{12, 7}, 3, 2026).Return([]byte("%PDF-merged"), nil)

		ctx := setupTestContext("GET", "/api/invoices/merged-pdf?month=3&year=2026", nil)
		handler.MergedPdf(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("nothing to merge is a 404", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		store.On("Merge", mock.Anything, []int64{12}, 3, 2026).Return(nil, pdf.ErrNoDocuments)

		ctx := setupTestContext("GET", "/api/invoices/merged-pdf?month=3&year=2026&client_ids=12", nil)
		handler.MergedPdf(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("wrapped sentinel is still a 404", func(t *testing.T) {
		svc := new(MockInvoiceService)
		store := new(MockDocumentStore)
		handler := NewInvoiceHandler(svc, store, 4)

		store.On("Merge", mock.Anything, []int64{12}, 3, 2026).
			Return(nil, fmt.Errorf("merge period 3-2026: %w", pdf.ErrNoDocuments))

		ctx := setupTestContext("GET", "/api/invoices/merged-pdf?month=3&year=2026&client_ids=12", nil)
		handler.MergedPdf(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})

	t.Run("missing period", func(t *testing.T) {
		handler := NewInvoiceHandler(new(MockInvoiceService), new(MockDocumentStore), 4)

		ctx := setupTestContext("GET", "/api/invoices/merged-pdf", nil)
		handler.MergedPdf(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestInvoiceHandler_ServeDocument(t *testing.T) {
	store := new(MockDocumentStore)
	handler := NewInvoiceHandler(new(MockInvoiceService), store, 4)

	for _, name := range []string{"", "../secret.pdf", "..", "notes.txt", ".hidden.pdf"} {
		ctx := setupTestContext("GET", "/invoices/x", nil)
		ctx.SetUserValue("filename", name)
		handler.ServeDocument(ctx)
		assert.Equal(t, 400, ctx.Response.StatusCode(), "name %q must be rejected", name)
	}
}
