package model

import (
	"strings"
	"time"
)

type Charge struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ResidenceID *int64    `json:"residence_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChargeCreateRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	ResidenceID int64   `json:"residence_id"`
}

func (p ChargeCreateRequest) Validate(validResidenceIDs map[int64]struct{}) []string {
	var errs []string
	if strings.TrimSpace(p.Description) == "" {
		errs = append(errs, "Description manquante")
	}
	if _, ok := validResidenceIDs[p.ResidenceID]; !ok {
		errs = append(errs, "Résidence ID invalide")
	}
	if p.Amount <= 0 {
		errs = append(errs, "Montant invalide")
	}
	if strings.TrimSpace(p.Date) == "" {
		errs = append(errs, "Date manquante")
	} else if _, err := time.Parse("2006-01-02", strings.TrimSpace(p.Date)); err != nil {
		errs = append(errs, "Date invalide")
	}
	return errs
}
