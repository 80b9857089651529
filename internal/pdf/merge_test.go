package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchClientFiles(t *testing.T) {
	names := []string{
		"12_Ahmed_Benali_03-2026.pdf",
		"7_Fatima_03-2026.pdf",
		"7_Fatima_02-2026.pdf",
		"9_Karim_04-2026.pdf",
		"notes.txt",
	}

	t.Run("keeps requested order and skips missing clients", func(t *testing.T) {
		matched := matchClientFiles(names, []int64{7, 12, 99}, 3, 2026)
		assert.Equal(t, []string{"7_Fatima_03-2026.pdf", "12_Ahmed_Benali_03-2026.pdf"}, matched)
	})

	t.Run("other periods do not match", func(t *testing.T) {
		matched := matchClientFiles(names, []int64{9}, 3, 2026)
		assert.Empty(t, matched)
	})

	t.Run("one file per client", func(t *testing.T) {
		withDuplicate := append([]string{"7_Fatima_Z_03-2026.pdf"}, names...)
		matched := matchClientFiles(withDuplicate, []int64{7}, 3, 2026)
		assert.Len(t, matched, 1)
	})
}

func TestMergeNoDocuments(t *testing.T) {
	renderer := &stubRenderer{payload: []byte("%PDF-fake")}
	store, _, _ := setupTestStore(t, renderer)

	_, err := store.Merge(context.Background(), []int64{1, 2, 3}, 3, 2026)
	require.ErrorIs(t, err, ErrNoDocuments)
}

func TestMergeSingleDocument(t *testing.T) {
	renderer := NewRenderer()
	store, _, _ := setupTestStore(t, renderer)

	inv := testInvoice()
	_, _, err := store.Ensure(context.Background(), inv)
	require.NoError(t, err)

	data, err := store.Merge(context.Background(), []int64{inv.ClientID}, inv.Month, inv.Year)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
