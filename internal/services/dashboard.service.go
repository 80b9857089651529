package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
)

type ResidenceCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ClientAggregator interface {
	Count(ctx context.Context) (int64, error)
	SumBalanceByStatus(ctx context.Context, status model.PaymentStatus) (float64, error)
}

type ChargeAggregator interface {
	SumAll(ctx context.Context) (float64, error)
	SumBetween(ctx context.Context, from, to time.Time) (float64, error)
	PeriodAmounts(ctx context.Context) ([]model.Charge, error)
}

type InvoiceAggregator interface {
	SumForPeriod(ctx context.Context, month, year int, status model.PaymentStatus) (float64, error)
	PeriodSums(ctx context.Context, status model.PaymentStatus) ([]repository.PeriodSum, error)
	Periods(ctx context.Context) ([]repository.PeriodSum, error)
}

type DashboardService struct {
	residences ResidenceCounter
	clients    ClientAggregator
	charges    ChargeAggregator
	invoices   InvoiceAggregator
	now        func() time.Time
}

func NewDashboardService(residences ResidenceCounter, clients ClientAggregator, charges ChargeAggregator, invoices InvoiceAggregator) *DashboardService {
	return &DashboardService{
		residences: residences,
		clients:    clients,
		charges:    charges,
		invoices:   invoices,
		now:        time.Now,
	}
}

// ComputeStats builds the home-screen aggregate for the current month.
// Revenues only count invoices marked paid; the balance total likewise
// only counts clients currently marked paid.
func (s *DashboardService) ComputeStats(ctx context.Context) (*model.DashboardStats, error) {
	now := s.now()
	month := int(now.Month())
	year := now.Year()

	stats := &model.DashboardStats{}
	var err error

	if stats.TotalResidences, err = s.residences.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalClients, err = s.clients.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCharges, err = s.charges.SumAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBalance, err = s.clients.SumBalanceByStatus(ctx, model.StatusPaid); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenues, err = s.invoices.SumForPeriod(ctx, month, year, model.StatusPaid); err != nil {
		return nil, err
	}

	monthStart := time.Date(year, now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if stats.MonthlyCharges, err = s.charges.SumBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	stats.NetRevenue = stats.MonthlyRevenues - stats.MonthlyCharges

	if stats.ChartData, err = s.chartData(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// chartData covers the last twelve periods that appear in either the
// charges or the invoices table, oldest first. Charge rows are grouped
// here instead of in SQL to keep the queries free of dialect-specific
// date functions.
func (s *DashboardService) chartData(ctx context.Context) ([]model.MonthlyPoint, error) {
	chargeRows, err := s.charges.PeriodAmounts(ctx)
	if err != nil {
		return nil, err
	}
	chargesByPeriod := make(map[string]float64)
	for _, c := range chargeRows {
		chargesByPeriod[periodKey(c.Date.Year(), int(c.Date.Month()))] += c.Amount
	}

	revenueSums, err := s.invoices.PeriodSums(ctx, model.StatusPaid)
	if err != nil {
		return nil, err
	}
	revenuesByPeriod := make(map[string]float64, len(revenueSums))
	for _, r := range revenueSums {
		revenuesByPeriod[periodKey(r.Year, r.Month)] = r.Amount
	}

	invoicePeriods, err := s.invoices.Periods(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for key := range chargesByPeriod {
		seen[key] = struct{}{}
	}
	for _, p := range invoicePeriods {
		seen[periodKey(p.Year, p.Month)] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > 12 {
		keys = keys[len(keys)-12:]
	}

	points := make([]model.MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		revenues := revenuesByPeriod[key]
		charges := chargesByPeriod[key]
		points = append(points, model.MonthlyPoint{
			Month:    key,
			Revenues: revenues,
			Charges:  charges,
			Net:      revenues - charges,
		})
	}
	return points, nil
}

func periodKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
