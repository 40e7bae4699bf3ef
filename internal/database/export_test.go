//go:build cgo

package database

import (
	"path/filepath"
	"testing"
	"time"

	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestExportSQLite(t *testing.T) {
	due := "2030-01-10"
	created := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	doc := models.NewDocument()
	doc.Products = []models.Product{{
		ID: "1", Code: "AAAA0001", Description: "Caderno", Category: "Papelaria",
		Quantity: 4, BuyPrice: decimal.NewFromInt(10), Margin: decimal.NewFromInt(50),
		SellPrice: decimal.RequireFromString("15.00"),
	}}
	item := models.Item{ID: "1", Description: "Caderno", Quantity: 2,
		Price: decimal.RequireFromString("15.00"), Total: decimal.RequireFromString("30.00")}
	doc.Sales = []models.Transaction{{ID: 1000, Customer: "Consumidor Final", Items: []models.Item{item},
		TotalPrice: item.Total, PaymentMethod: "Pix", CreatedAt: created}}
	doc.Receivables = []models.Transaction{{ID: 1001, Customer: "Ana", Items: []models.Item{item},
		TotalPrice: item.Total, PaymentMethod: "Crediário Próprio", DueDate: &due, CreatedAt: created}}
	doc.Quotes = []models.Quote{{ID: "100", Customer: "Bia", Items: []models.Item{item},
		TotalPrice: item.Total, Validity: "7", CreatedAt: created}}

	path := filepath.Join(t.TempDir(), "snapshot.db")
	counts, err := ExportSQLite(doc, path, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, ExportCounts{Products: 1, Transactions: 2, Quotes: 1, Customers: 0}, counts)

	// Exporting again replaces the snapshot instead of appending to it.
	_, err = ExportSQLite(doc, path, quietLogger())
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	var pending []transactionRow
	require.NoError(t, db.Where("status = ?", "pending").Find(&pending).Error)
	require.Len(t, pending, 1)
	assert.Equal(t, 1001, pending[0].ID)
	require.NotNil(t, pending[0].DueDate)
	assert.Equal(t, due, *pending[0].DueDate)

	var items int64
	require.NoError(t, db.Model(&transactionItemRow{}).Count(&items).Error)
	assert.EqualValues(t, 2, items)

	var product productRow
	require.NoError(t, db.First(&product, "id = ?", "1").Error)
	assert.True(t, decimal.RequireFromString("15").Equal(product.SellPrice))
}
