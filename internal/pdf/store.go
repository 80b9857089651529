package pdf

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/syndicma/syndic-api/pkg/prom"
	"github.com/syndicma/syndic-api/pkg/redis"
)

const lockKeyPrefix = "pdflock:"
const lockPollInterval = 100 * time.Millisecond

type InvoiceWriter interface {
	UpdatePdfURL(ctx context.Context, id int64, url string) error
}

// Store owns the on-disk invoice documents. A document is rendered at
// most once per (client, period, amount-relevant name): subsequent
// requests are served from disk. Concurrent first requests for the
// same document are collapsed through a short-lived redis lock so only
// one renders while the others wait for the file to appear.
type Store struct {
	invoices InvoiceWriter
	renderer Renderer
	redis    redis.RedisAdapter
	dir      string
	lockTTL  time.Duration
}

func NewStore(invoices InvoiceWriter, renderer Renderer, redisAdapter redis.RedisAdapter, dir string, lockTTL time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create invoice directory")
	}
	return &Store{
		invoices: invoices,
		renderer: renderer,
		redis:    redisAdapter,
		dir:      dir,
		lockTTL:  lockTTL,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Ensure returns the document path and public URL for an invoice,
// rendering it first when it is not on disk yet. The invoice must come
// with its client preloaded. The pdf_url column is refreshed whenever
// it does not match the file actually served.
func (s *Store) Ensure(ctx context.Context, inv *model.Invoice) (string, string, error) {
	if inv.Client == nil {
		return "", "", errors.New("invoice is missing its client")
	}

	fileName := FileName(inv.ClientID, inv.Client.Name, inv.Month, inv.Year)
	path := filepath.Join(s.dir, fileName)
	publicURL := PublicURL(fileName)

	if fileExists(path) {
		prom.AddPdfCacheHit()
		if err := s.syncPdfURL(ctx, inv, publicURL); err != nil {
			return "", "", err
		}
		return path, publicURL, nil
	}
	prom.AddPdfCacheMiss()

	acquired, err := s.redis.SetNX(lockKeyPrefix+fileName, []byte("1"), s.lockTTL)
	if err != nil {
		// The lock is only a dedup optimization. Renders are
		// idempotent, so render anyway when redis is unreachable.
		logger.Warn("pdf render lock unavailable", "file", fileName, "error", err)
		acquired = true
	} else if acquired {
		defer func() {
			if err := s.redis.Del(lockKeyPrefix + fileName); err != nil {
				logger.Warn("pdf render lock release failed", "file", fileName, "error", err)
			}
		}()
	}

	if !acquired {
		// Someone else is rendering this exact document. Wait for the
		// file instead of rendering it twice.
		if ok := s.waitForFile(ctx, path); ok {
			if err := s.syncPdfURL(ctx, inv, publicURL); err != nil {
				return "", "", err
			}
			return path, publicURL, nil
		}
		// Lock holder died or timed out; fall through and render.
	}

	start := time.Now()
	data, err := s.renderer.Render(inv)
	if err != nil {
		return "", "", errors.Wrap(err, "render invoice")
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", "", errors.Wrap(err, "store invoice document")
	}
	prom.AddPdfRenderDuration(time.Since(start).Seconds())

	if err := s.syncPdfURL(ctx, inv, publicURL); err != nil {
		return "", "", err
	}
	return path, publicURL, nil
}

func (s *Store) syncPdfURL(ctx context.Context, inv *model.Invoice, publicURL string) error {
	if inv.PdfURL != nil && *inv.PdfURL == publicURL {
		return nil
	}
	if err := s.invoices.UpdatePdfURL(ctx, inv.ID, publicURL); err != nil {
		return errors.Wrap(err, "update pdf url")
	}
	inv.PdfURL = &publicURL
	return nil
}

// waitForFile polls until the document shows up, the lock TTL elapses
// or the context is cancelled.
func (s *Store) waitForFile(ctx context.Context, path string) bool {
	deadline := time.Now().Add(s.lockTTL)
	for time.Now().Before(deadline) {
		if fileExists(path) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(lockPollInterval):
		}
	}
	return fileExists(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// writeFileAtomic writes to a temp file and renames it into place so a
// concurrent reader never sees a half-written document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".render-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
