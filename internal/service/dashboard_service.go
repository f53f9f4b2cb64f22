package service

import (
	"time"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardOverview aggregates the operational alerts and today's sales
// figures shown on the landing panel.
type DashboardOverview struct {
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodayTickets int64           `json:"today_tickets"`

	LowStock   []model.ProductWithStock `json:"low_stock"`
	OutOfStock []model.ProductWithStock `json:"out_of_stock"`

	ExpiringSoon []model.Batch `json:"expiring_soon"`
	Expired      []model.Batch `json:"expired"`
}

type DashboardService interface {
	Overview() (*DashboardOverview, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	saleRepo    repository.SaleRepository
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	saleRepo repository.SaleRepository,
) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		batchRepo:   batchRepo,
		saleRepo:    saleRepo,
	}
}

func (s *dashboardService) Overview() (*DashboardOverview, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today := startOfDay
	nextWeek := today.AddDate(0, 0, 7)

	revenue, tickets, err := s.saleRepo.TotalsBetween(startOfDay, now)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	totals, err := s.batchRepo.StockTotals()
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		TodayRevenue: revenue,
		TodayTickets: tickets,
	}
	for _, product := range products {
		total, ok := totals[product.ID]
		if !ok {
			total = decimal.Zero
		}
		annotated := model.ProductWithStock{Product: product, StockTotal: total}
		switch {
		case total.IsZero():
			overview.OutOfStock = append(overview.OutOfStock, annotated)
		case total.LessThanOrEqual(product.MinimumStock):
			overview.LowStock = append(overview.LowStock, annotated)
		}
	}

	overview.ExpiringSoon, err = s.batchRepo.ExpiringBetween(today, nextWeek)
	if err != nil {
		return nil, err
	}
	overview.Expired, err = s.batchRepo.ExpiredBefore(today)
	if err != nil {
		return nil, err
	}

	return overview, nil
}
