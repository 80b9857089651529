package pdf

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/syndicma/syndic-api/pkg/worker"
)

// PrerenderResult summarizes a batch render.
type PrerenderResult struct {
	Rendered int `json:"rendered"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// Prerender warms the document cache for a batch of invoices using a
// bounded worker pool, so a later merged download does not pay one
// render per client. Invoices without a loaded client are counted as
// skipped; render failures do not abort the rest of the batch.
func (s *Store) Prerender(ctx context.Context, invoices []*model.Invoice, workers int) PrerenderResult {
	if workers <= 0 {
		workers = 4
	}
	if len(invoices) == 0 {
		return PrerenderResult{}
	}

	var rendered, failed, skipped int64
	var wg sync.WaitGroup

	mgr := worker.NewWorkerManager(len(invoices), workers, nil)
	mgr.SetWorker(func(_ int, job interface{}) {
		defer wg.Done()
		inv := job.(*model.Invoice)
		if inv.Client == nil {
			atomic.AddInt64(&skipped, 1)
			return
		}
		if _, _, err := s.Ensure(ctx, inv); err != nil {
			atomic.AddInt64(&failed, 1)
			logger.Warn("prerender failed", "invoice_id", inv.ID, "error", err)
			return
		}
		atomic.AddInt64(&rendered, 1)
	})

	go mgr.Start() //nolint:errcheck
	for _, inv := range invoices {
		wg.Add(1)
		mgr.Enqueue(inv)
	}
	wg.Wait()
	mgr.Exit()

	return PrerenderResult{
		Rendered: int(rendered),
		Failed:   int(failed),
		Skipped:  int(skipped),
	}
}
