package model

import (
	"regexp"
	"time"
)

// Payment tracks the settlement state of one client for one "YYYY-MM"
// period. It is keyed by (client_id, month) and flips between paid and
// unpaid as the bookkeeper reconciles bank statements.
type Payment struct {
	ID        int64         `json:"id"`
	ClientID  int64         `json:"client_id"`
	Client    *Client       `json:"client,omitempty"`
	Month     string        `json:"month"` // YYYY-MM
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

var paymentMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type PaymentUpsertRequest struct {
	ClientID int64         `json:"client_id"`
	Month    string        `json:"month"`
	Amount   float64       `json:"amount"`
	Status   PaymentStatus `json:"status"`
}

func (p PaymentUpsertRequest) Validate() []string {
	var errs []string
	if p.ClientID <= 0 {
		errs = append(errs, "Client ID invalide")
	}
	if !paymentMonthRe.MatchString(p.Month) {
		errs = append(errs, "Mois invalide (format attendu AAAA-MM)")
	}
	if p.Amount < 0 {
		errs = append(errs, "Montant invalide")
	}
	if !p.Status.Valid() {
		errs = append(errs, "Statut invalide")
	}
	return errs
}

type PaymentFilter struct {
	ClientID int64
	Month    string
	Status   PaymentStatus
}
