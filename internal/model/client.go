package model

import (
	"strings"
	"time"
)

type Client struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Balance       float64       `json:"balance"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	ResidenceID   int64         `json:"residence_id"`
	Residence     *Residence    `json:"residence,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type ClientCreateRequest struct {
	Name          string        `json:"name"`
	Balance       *float64      `json:"balance"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	ResidenceID   int64         `json:"residence_id"`
}

// Validate checks one row; residence existence is checked by the
// service against the residence table.
func (p ClientCreateRequest) Validate(validResidenceIDs map[int64]struct{}) []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "Nom manquant")
	}
	if _, ok := validResidenceIDs[p.ResidenceID]; !ok {
		errs = append(errs, "Résidence ID invalide")
	}
	if p.Balance == nil {
		errs = append(errs, "Balance invalide")
	}
	if !p.PaymentStatus.Valid() {
		errs = append(errs, "Statut de paiement invalide")
	}
	return errs
}
