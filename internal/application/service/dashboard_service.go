package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	salesChartDays      = 7
	stockWatchListLimit = 8
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	productRepo       repository.ProductRepository
	invoiceRepo       repository.InvoiceRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	lowStockThreshold int,
) *DashboardService {
	return &DashboardService{
		productRepo:       productRepo,
		invoiceRepo:       invoiceRepo,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalSales    decimal.Decimal   `json:"total_sales"`
	TodaySales    decimal.Decimal   `json:"today_sales"`
	TotalInvoices int               `json:"total_invoices"`
	LowStockCount int               `json:"low_stock_count"`
	StockWatch    []entity.Product  `json:"stock_watch"`
	DailySales    []DailySalesPoint `json:"daily_sales"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date  string          `json:"date"` // MM-DD
	Sales decimal.Decimal `json:"sales"`
}

// GetStats computes sales totals, stock alerts and the last seven days of
// sales. Days are UTC calendar days.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for i := range invoices {
		day := invoices[i].DateString()
		byDay[day] = byDay[day].Add(invoices[i].TotalAmount)
		total = total.Add(invoices[i].TotalAmount)
	}

	today := s.now().UTC()
	stats := &DashboardStats{
		TotalSales:    total,
		TodaySales:    byDay[today.Format("2006-01-02")],
		TotalInvoices: len(invoices),
		DailySales:    make([]DailySalesPoint, 0, salesChartDays),
	}

	for i := salesChartDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:  day[5:],
			Sales: byDay[day],
		})
	}

	for i := range products {
		if products[i].IsLowStock(s.lowStockThreshold) {
			stats.LowStockCount++
		}
	}

	watch := make([]entity.Product, len(products))
	copy(watch, products)
	sort.SliceStable(watch, func(i, j int) bool { return watch[i].Stock < watch[j].Stock })
	if len(watch) > stockWatchListLimit {
		watch = watch[:stockWatchListLimit]
	}
	stats.StockWatch = watch

	return stats, nil
}
