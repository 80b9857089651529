package repository

import (
	"context"
	"errors"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository struct {
	*pg.DB
}

func NewInvoiceRepository(db *pg.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db,
	}
}

// Upsert inserts an invoice for (client, month, year) or refreshes the
// existing row. The unique index arbitrates concurrent posts; the
// boolean reports whether a new row was created.
func (r *InvoiceRepository) Upsert(ctx context.Context, inv *model.Invoice) (*model.Invoice, bool, error) {
	entity := toInvoiceEntity(inv)

	result := r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "month"}, {Name: "year"}},
			DoNothing: true,
		}).
		Create(entity)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return toInvoiceModel(entity), true, nil
	}

	// Lost the insert to an existing row; refresh amount and status on
	// it. The pdf_url is kept so a cached document survives re-posting
	// until the amount changes it anyway.
	err := r.Write(ctx).WithContext(ctx).Model(&InvoiceEntity{}).
		Where("client_id = ? AND month = ? AND year = ?", entity.ClientID, entity.Month, entity.Year).
		Updates(map[string]interface{}{
			"amount": entity.Amount,
			"status": entity.Status,
		}).Error
	if err != nil {
		return nil, false, err
	}

	updated, err := r.GetByPeriod(ctx, entity.ClientID, entity.Month, entity.Year)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	var entity InvoiceEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Client").Preload("Client.Residence").
		First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toInvoiceModel(&entity), nil
}

func (r *InvoiceRepository) GetByPeriod(ctx context.Context, clientID int64, month, year int) (*model.Invoice, error) {
	var entity InvoiceEntity
	err := r.Read(ctx).WithContext(ctx).
		Preload("Client").Preload("Client.Residence").
		Where("client_id = ? AND month = ? AND year = ?", clientID, month, year).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toInvoiceModel(&entity), nil
}

func (r *InvoiceRepository) List(ctx context.Context, f model.InvoiceFilter) ([]*model.Invoice, error) {
	q := r.Read(ctx).WithContext(ctx).Preload("Client").Preload("Client.Residence")

	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Month > 0 {
		q = q.Where("month = ?", f.Month)
	}
	if f.Year > 0 {
		q = q.Where("year = ?", f.Year)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var entities []*InvoiceEntity
	if err := q.Order("year DESC, month DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toInvoiceModels(entities), nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).Delete(&InvoiceEntity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) UpdatePdfURL(ctx context.Context, id int64, url string) error {
	result := r.Write(ctx).WithContext(ctx).Model(&InvoiceEntity{}).
		Where("id = ?", id).
		Update("pdf_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) SumForPeriod(ctx context.Context, month, year int, status model.PaymentStatus) (float64, error) {
	var sum float64
	err := r.Read(ctx).WithContext(ctx).Model(&InvoiceEntity{}).
		Where("month = ? AND year = ? AND status = ?", month, year, string(status)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// PeriodSum is one (year, month) bucket of invoice amounts.
type PeriodSum struct {
	Year   int
	Month  int
	Amount float64
}

// PeriodSums groups invoice amounts by period for one status.
func (r *InvoiceRepository) PeriodSums(ctx context.Context, status model.PaymentStatus) ([]PeriodSum, error) {
	var sums []PeriodSum
	err := r.Read(ctx).WithContext(ctx).Model(&InvoiceEntity{}).
		Select("year, month, COALESCE(SUM(amount), 0) AS amount").
		Where("status = ?", string(status)).
		Group("year").Group("month").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	return sums, nil
}

// Periods lists the distinct (year, month) pairs present in the table,
// regardless of status.
func (r *InvoiceRepository) Periods(ctx context.Context) ([]PeriodSum, error) {
	var periods []PeriodSum
	err := r.Read(ctx).WithContext(ctx).Model(&InvoiceEntity{}).
		Select("year, month").
		Group("year").Group("month").
		Scan(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}
