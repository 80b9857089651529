package repository

import (
	"time"

	"github.com/syndicma/syndic-api/internal/model"
)

// InvoiceEntity carries a composite unique index on the natural key so
// concurrent posts for the same period cannot produce duplicates.
type InvoiceEntity struct {
	ID        int64         `db:"id"        gorm:"primaryKey;autoIncrement;column:id"`
	ClientID  int64         `db:"client_id" gorm:"column:client_id;not null;uniqueIndex:ux_invoices_period"`
	Month     int           `db:"month"     gorm:"column:month;not null;uniqueIndex:ux_invoices_period"`
	Year      int           `db:"year"      gorm:"column:year;not null;uniqueIndex:ux_invoices_period"`
	Amount    float64       `db:"amount"    gorm:"column:amount;not null"`
	Status    string        `db:"status"    gorm:"column:status;not null"`
	PdfURL    *string       `db:"pdf_url"   gorm:"column:pdf_url"`
	Client    *ClientEntity `gorm:"foreignKey:ClientID"`
	CreatedAt time.Time     `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (InvoiceEntity) TableName() string {
	return "invoices"
}

func toInvoiceEntity(m *model.Invoice) *InvoiceEntity {
	if m == nil {
		return nil
	}
	return &InvoiceEntity{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Month:     m.Month,
		Year:      m.Year,
		Amount:    m.Amount,
		Status:    string(m.Status),
		PdfURL:    m.PdfURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toInvoiceModel(e *InvoiceEntity) *model.Invoice {
	if e == nil {
		return nil
	}
	return &model.Invoice{
		ID:        e.ID,
		ClientID:  e.ClientID,
		Month:     e.Month,
		Year:      e.Year,
		Amount:    e.Amount,
		Status:    model.PaymentStatus(e.Status),
		PdfURL:    e.PdfURL,
		Client:    toClientModel(e.Client),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toInvoiceModels(entities []*InvoiceEntity) []*model.Invoice {
	if entities == nil {
		return nil
	}
	models := make([]*model.Invoice, len(entities))
	for i, e := range entities {
		models[i] = toInvoiceModel(e)
	}
	return models
}
