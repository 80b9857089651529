package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0,00 DH"},
		{950, "950,00 DH"},
		{1234.56, "1 234,56 DH"},
		{1000000, "1 000 000,00 DH"},
		{-1500.5, "-1 500,50 DH"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatAmount(tt.amount))
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer()
	r.now = func() time.Time { return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC) }

	inv := &model.Invoice{
		ID:       1,
		ClientID: 12,
		Month:    3,
		Year:     2026,
		Amount:   950,
		Status:   model.StatusUnpaid,
		Client: &model.Client{
			ID:   12,
			Name: "Ahmed Benali",
			Residence: &model.Residence{
				ID:   1,
				Name: "Résidence Al Amane",
			},
		},
	}

	data, err := r.Render(inv)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderWithoutResidence(t *testing.T) {
	r := NewRenderer()

	inv := &model.Invoice{
		ID:       2,
		ClientID: 7,
		Month:    11,
		Year:     2025,
		Amount:   1200,
		Status:   model.StatusPaid,
		Client:   &model.Client{ID: 7, Name: "Fatima"},
	}

	data, err := r.Render(inv)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderRequiresClient(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render(&model.Invoice{ID: 3, ClientID: 9, Month: 1, Year: 2026})
	require.Error(t, err)
}
