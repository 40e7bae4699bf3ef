package database

import (
	"time"

	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
)

// SalesReportResult holds the totals of settled sales over a period
type SalesReportResult struct {
	Start        time.Time            `json:"start"`
	End          time.Time            `json:"end"`
	TotalRevenue decimal.Decimal      `json:"totalRevenue"`
	TotalCount   int                  `json:"totalCount"`
	Sales        []models.Transaction `json:"sales"`
}

// GetSalesReport collects the settled sales created within [start, end].
func (s *Store) GetSalesReport(start, end time.Time) (*SalesReportResult, error) {
	sales, err := GetTable[models.Transaction](s, Sales)
	if err != nil {
		return nil, err
	}
	return SalesBetween(sales, start, end), nil
}

// SalesBetween filters sales by creation time, both bounds inclusive.
func SalesBetween(sales []models.Transaction, start, end time.Time) *SalesReportResult {
	result := &SalesReportResult{
		Start:        start,
		End:          end,
		TotalRevenue: decimal.Zero,
		Sales:        []models.Transaction{},
	}
	for _, sale := range sales {
		if sale.CreatedAt.Before(start) || sale.CreatedAt.After(end) {
			continue
		}
		result.Sales = append(result.Sales, sale)
		result.TotalRevenue = result.TotalRevenue.Add(sale.TotalPrice)
		result.TotalCount++
	}
	return result
}
