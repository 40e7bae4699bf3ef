package database

import (
	"testing"
	"time"

	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesBetweenIncludesBothBounds(t *testing.T) {
	start := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 3, 31, 23, 59, 59, 0, time.UTC)
	sales := []models.Transaction{
		{ID: 1000, TotalPrice: decimal.NewFromInt(10), CreatedAt: start},
		{ID: 1001, TotalPrice: decimal.NewFromInt(20), CreatedAt: end},
		{ID: 1002, TotalPrice: decimal.NewFromInt(40), CreatedAt: start.Add(-time.Second)},
		{ID: 1003, TotalPrice: decimal.NewFromInt(80), CreatedAt: end.Add(time.Second)},
	}

	report := SalesBetween(sales, start, end)
	assert.Equal(t, 2, report.TotalCount)
	assert.True(t, decimal.NewFromInt(30).Equal(report.TotalRevenue))
	require.Len(t, report.Sales, 2)
	assert.Equal(t, 1000, report.Sales[0].ID)
	assert.Equal(t, 1001, report.Sales[1].ID)
}

func TestGetSalesReportEmpty(t *testing.T) {
	s := newTestStore(t)
	report, err := s.GetSalesReport(time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Zero(t, report.TotalCount)
	assert.NotNil(t, report.Sales)
	assert.True(t, report.TotalRevenue.IsZero())
}
