package model

import (
	"errors"
	"strings"
	"time"
)

type Residence struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	NumApartments int       `json:"num_apartments"`
	Contact       string    `json:"contact"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ResidenceCreateRequest is the input for creating a residence, either
// one at a time or as a bulk-import row.
type ResidenceCreateRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	NumApartments int    `json:"num_apartments"`
	Contact       string `json:"contact"`
}

func (p ResidenceCreateRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "Nom manquant")
	}
	if strings.TrimSpace(p.Address) == "" {
		errs = append(errs, "Adresse manquante")
	}
	if p.NumApartments <= 0 {
		errs = append(errs, "Nombre d'appartements invalide")
	}
	if strings.TrimSpace(p.Contact) == "" {
		errs = append(errs, "Contact manquant")
	}
	return errs
}

var ErrEmptyBatch = errors.New("aucune donnée à importer")

// RowError reports the validation failures of one bulk-import row. Row
// is the 1-based spreadsheet position: data starts on row 2, below the
// header.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}
