package pdf

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
	"github.com/syndicma/syndic-api/pkg/logger"
)

// ErrNoDocuments is returned when none of the requested clients has a
// rendered document for the period.
var ErrNoDocuments = errors.New("no documents found for the requested clients and period")

// Merge concatenates the stored documents of the given clients for one
// period into a single download. Clients without a rendered document
// are skipped silently, matching how the bookkeeper uses it: select
// everyone, get whoever has a document.
func (s *Store) Merge(ctx context.Context, clientIDs []int64, month, year int) ([]byte, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "read invoice directory")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	inFiles := matchClientFiles(names, clientIDs, month, year)
	if len(inFiles) == 0 {
		return nil, ErrNoDocuments
	}
	for i, name := range inFiles {
		inFiles[i] = filepath.Join(s.dir, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := os.CreateTemp("", "merged-*.pdf")
	if err != nil {
		return nil, err
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	if err := api.MergeCreateFile(inFiles, outPath, false, nil); err != nil {
		return nil, errors.Wrap(err, "merge documents")
	}

	logger.Info("merged invoice documents", "count", len(inFiles), "month", month, "year", year)
	return os.ReadFile(outPath)
}

// matchClientFiles picks, per client, the first stored file for the
// period. Order follows the requested client list so the merged output
// is predictable.
func matchClientFiles(names []string, clientIDs []int64, month, year int) []string {
	var matched []string
	for _, clientID := range clientIDs {
		re := clientFilePattern(clientID, month, year)
		for _, name := range names {
			if re.MatchString(name) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}
