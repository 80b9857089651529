package model

import "time"

// Invoice is one charge call for a client and a billing period. The
// natural key is (client_id, month, year); posting the same period
// twice updates the existing row instead of inserting a duplicate.
type Invoice struct {
	ID        int64         `json:"id"`
	ClientID  int64         `json:"client_id"`
	Client    *Client       `json:"client,omitempty"`
	Month     int           `json:"month"`
	Year      int           `json:"year"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	PdfURL    *string       `json:"pdf_url"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type InvoiceUpsertRequest struct {
	ClientID int64         `json:"client_id"`
	Month    int           `json:"month"`
	Year     int           `json:"year"`
	Amount   float64       `json:"amount"`
	Status   PaymentStatus `json:"status"`
}

func (p InvoiceUpsertRequest) Validate() []string {
	var errs []string
	if p.ClientID <= 0 {
		errs = append(errs, "Client ID invalide")
	}
	if p.Month < 1 || p.Month > 12 {
		errs = append(errs, "Mois invalide")
	}
	if p.Year < 2000 || p.Year > 2100 {
		errs = append(errs, "Année invalide")
	}
	if p.Amount < 0 {
		errs = append(errs, "Montant invalide")
	}
	if !p.Status.Valid() {
		errs = append(errs, "Statut invalide")
	}
	return errs
}

// InvoiceFilter narrows listing; zero values match everything.
type InvoiceFilter struct {
	ClientID int64
	Month    int
	Year     int
	Status   PaymentStatus
}

// UpsertResult reports whether the operation inserted a new row or
// refreshed an existing one, so handlers can pick 201 vs 200.
type UpsertResult struct {
	Invoice *Invoice `json:"invoice"`
	Created bool     `json:"created"`
}
