package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/internal/infrastructure/cache"
	"github.com/sangkips/salespoint-api/pkg/apperror"
)

const (
	reportCacheTTL     = 5 * time.Minute
	topProductsDefault = 10
)

// ReportSummary aggregates completed sales over a report period
type ReportSummary struct {
	TotalSales        int64 `json:"total_sales"`
	TotalTransactions int64 `json:"total_transactions"`
	TotalDiscount     int64 `json:"total_discount"`
	TotalTax          int64 `json:"total_tax"`
}

// PaymentBreakdownEntry is one payment method's share of a report period
type PaymentBreakdownEntry struct {
	PaymentMethod string `json:"payment_method"`
	Total         int64  `json:"total"`
	Count         int64  `json:"count"`
}

// TopProductEntry is one product's sales performance over a report period
type TopProductEntry struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	QuantitySold int64  `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

// DailyReport is the end-of-day sales report
type DailyReport struct {
	Date             string                  `json:"date"`
	Summary          ReportSummary           `json:"summary"`
	PaymentBreakdown []PaymentBreakdownEntry `json:"payment_breakdown"`
	TopProducts      []TopProductEntry       `json:"top_products"`
}

// MonthlySalesDay is one day's totals inside a monthly report
type MonthlySalesDay struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
	Count int64  `json:"count"`
}

// MonthlyReport is the month-to-date sales report
type MonthlyReport struct {
	Month            string                  `json:"month"`
	Summary          ReportSummary           `json:"summary"`
	PaymentBreakdown []PaymentBreakdownEntry `json:"payment_breakdown"`
	TopProducts      []TopProductEntry       `json:"top_products"`
	DailySales       []MonthlySalesDay       `json:"daily_sales"`
}

// ReportService builds sales reports. Results are cached in Redis for a few
// minutes since report queries scan the transaction history.
type ReportService struct {
	transactionRepo repository.TransactionRepository
	cache           *cache.Cache
}

// NewReportService creates a new report service
func NewReportService(transactionRepo repository.TransactionRepository, reportCache *cache.Cache) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		cache:           reportCache,
	}
}

// GetDailyReport builds the sales report for a single calendar day.
func (s *ReportService) GetDailyReport(ctx context.Context, date string) (*DailyReport, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}

	cacheKey := dailyReportCacheKey(day)
	var cached DailyReport
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.Printf("Warning: report cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	from := day
	to := day.AddDate(0, 0, 1)

	report := &DailyReport{Date: date}
	if err := s.fill(ctx, from, to, &report.Summary, &report.PaymentBreakdown, &report.TopProducts); err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, cacheKey, report, reportCacheTTL); err != nil {
		log.Printf("Warning: report cache write failed: %v", err)
	}

	return report, nil
}

// GetMonthlyReport builds the sales report for a calendar month.
func (s *ReportService) GetMonthlyReport(ctx context.Context, month string) (*MonthlyReport, error) {
	start, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid month, expected YYYY-MM")
	}

	cacheKey := monthlyReportCacheKey(start)
	var cached MonthlyReport
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.Printf("Warning: report cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	from := start
	to := start.AddDate(0, 1, 0)

	report := &MonthlyReport{Month: month}
	if err := s.fill(ctx, from, to, &report.Summary, &report.PaymentBreakdown, &report.TopProducts); err != nil {
		return nil, err
	}

	daily, err := s.transactionRepo.GetDailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, d := range daily {
		report.DailySales = append(report.DailySales, MonthlySalesDay{
			Date:  d.Date.Format("2006-01-02"),
			Total: d.Total,
			Count: d.Count,
		})
	}

	if err := s.cache.SetJSON(ctx, cacheKey, report, reportCacheTTL); err != nil {
		log.Printf("Warning: report cache write failed: %v", err)
	}

	return report, nil
}

func (s *ReportService) fill(ctx context.Context, from, to time.Time, summary *ReportSummary, breakdown *[]PaymentBreakdownEntry, top *[]TopProductEntry) error {
	sum, err := s.transactionRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return err
	}
	*summary = ReportSummary{
		TotalSales:        sum.TotalSales,
		TotalTransactions: sum.TotalTransactions,
		TotalDiscount:     sum.TotalDiscount,
		TotalTax:          sum.TotalTax,
	}

	methods, err := s.transactionRepo.GetPaymentBreakdown(ctx, from, to)
	if err != nil {
		return err
	}
	for _, m := range methods {
		*breakdown = append(*breakdown, PaymentBreakdownEntry{
			PaymentMethod: m.PaymentMethod,
			Total:         m.Total,
			Count:         m.Count,
		})
	}

	products, err := s.transactionRepo.GetTopProducts(ctx, from, to, topProductsDefault)
	if err != nil {
		return err
	}
	for _, p := range products {
		*top = append(*top, TopProductEntry{
			ProductID:    p.ProductID.String(),
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue,
		})
	}

	return nil
}

func dailyReportCacheKey(day time.Time) string {
	return fmt.Sprintf("report:daily:%s", day.Format("2006-01-02"))
}

func monthlyReportCacheKey(month time.Time) string {
	return fmt.Sprintf("report:monthly:%s", month.Format("2006-01"))
}

// reportCacheKeys returns the cache keys a transaction on the given date can
// affect, used for invalidation after voids.
func reportCacheKeys(at time.Time) []string {
	return []string{
		dailyReportCacheKey(at),
		monthlyReportCacheKey(at),
	}
}
