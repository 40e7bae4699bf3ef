package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Relational rows for the SQLite snapshot. Users are left out on purpose.

type productRow struct {
	ID          string          `gorm:"primaryKey"`
	Code        string          `gorm:"index"`
	Description string
	Category    string `gorm:"index"`
	Quantity    int
	BuyPrice    decimal.Decimal `gorm:"type:numeric"`
	Margin      decimal.Decimal `gorm:"type:numeric"`
	SellPrice   decimal.Decimal `gorm:"type:numeric"`
}

func (productRow) TableName() string { return "products" }

type transactionRow struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false"`
	Status        string `gorm:"index"` // settled, pending
	Customer      string
	TotalPrice    decimal.Decimal `gorm:"type:numeric"`
	PaymentMethod string
	DueDate       *string
	CreatedAt     time.Time
	ReceivedAt    *time.Time
}

func (transactionRow) TableName() string { return "transactions" }

type transactionItemRow struct {
	ID            uint `gorm:"primaryKey"`
	TransactionID int  `gorm:"index"`
	ProductID     string
	Description   string
	Quantity      int
	Price         decimal.Decimal `gorm:"type:numeric"`
	Total         decimal.Decimal `gorm:"type:numeric"`
}

func (transactionItemRow) TableName() string { return "transaction_items" }

type quoteRow struct {
	ID            string `gorm:"primaryKey"`
	Customer      string
	CustomerEmail string
	CustomerPhone string
	TotalPrice    decimal.Decimal `gorm:"type:numeric"`
	Validity      string
	CreatedAt     time.Time
}

func (quoteRow) TableName() string { return "quotes" }

type quoteItemRow struct {
	ID          uint   `gorm:"primaryKey"`
	QuoteID     string `gorm:"index"`
	ProductID   string
	Description string
	Quantity    int
	Price       decimal.Decimal `gorm:"type:numeric"`
	Total       decimal.Decimal `gorm:"type:numeric"`
}

func (quoteItemRow) TableName() string { return "quote_items" }

type customerRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
}

func (customerRow) TableName() string { return "customers" }

// ExportCounts reports how many rows went into each exported table.
type ExportCounts struct {
	Products     int
	Transactions int
	Quotes       int
	Customers    int
}

// ExportSQLite writes a relational snapshot of doc to a new SQLite database
// at path, replacing any previous snapshot there. The JSON document stays
// the source of truth; the snapshot is for spreadsheets and BI tools.
func ExportSQLite(doc *models.Document, path string, logger *slog.Logger) (ExportCounts, error) {
	var counts ExportCounts
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return counts, &StorageError{Op: "remove old snapshot", Path: path, Err: err}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return counts, &StorageError{Op: "open snapshot", Path: path, Err: err}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return counts, fmt.Errorf("database: snapshot handle: %w", err)
	}
	defer sqlDB.Close()

	err = db.AutoMigrate(
		&productRow{},
		&transactionRow{},
		&transactionItemRow{},
		&quoteRow{},
		&quoteItemRow{},
		&customerRow{},
	)
	if err != nil {
		return counts, fmt.Errorf("database: snapshot schema: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		products := make([]productRow, 0, len(doc.Products))
		for _, p := range doc.Products {
			products = append(products, productRow{
				ID: p.ID, Code: p.Code, Description: p.Description, Category: p.Category,
				Quantity: p.Quantity, BuyPrice: p.BuyPrice, Margin: p.Margin, SellPrice: p.SellPrice,
			})
		}

		var txRows []transactionRow
		var txItems []transactionItemRow
		addLedger := func(rows []models.Transaction, status string) {
			for _, t := range rows {
				txRows = append(txRows, transactionRow{
					ID: t.ID, Status: status, Customer: t.Customer, TotalPrice: t.TotalPrice,
					PaymentMethod: t.PaymentMethod, DueDate: t.DueDate,
					CreatedAt: t.CreatedAt, ReceivedAt: t.ReceivedAt,
				})
				for _, it := range t.Items {
					txItems = append(txItems, transactionItemRow{
						TransactionID: t.ID, ProductID: it.ID, Description: it.Description,
						Quantity: it.Quantity, Price: it.Price, Total: it.Total,
					})
				}
			}
		}
		addLedger(doc.Sales, "settled")
		addLedger(doc.Receivables, "pending")

		quotes := make([]quoteRow, 0, len(doc.Quotes))
		var quoteItems []quoteItemRow
		for _, q := range doc.Quotes {
			quotes = append(quotes, quoteRow{
				ID: q.ID, Customer: q.Customer, CustomerEmail: q.CustomerEmail,
				CustomerPhone: q.CustomerPhone, TotalPrice: q.TotalPrice,
				Validity: q.Validity, CreatedAt: q.CreatedAt,
			})
			for _, it := range q.Items {
				quoteItems = append(quoteItems, quoteItemRow{
					QuoteID: q.ID, ProductID: it.ID, Description: it.Description,
					Quantity: it.Quantity, Price: it.Price, Total: it.Total,
				})
			}
		}

		customers := make([]customerRow, 0, len(doc.Customers))
		for _, c := range doc.Customers {
			customers = append(customers, customerRow{
				ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone,
				Email: c.Email, CreatedAt: c.CreatedAt,
			})
		}

		if err := insert(tx, products); err != nil {
			return err
		}
		if err := insert(tx, txRows); err != nil {
			return err
		}
		if err := insert(tx, txItems); err != nil {
			return err
		}
		if err := insert(tx, quotes); err != nil {
			return err
		}
		if err := insert(tx, quoteItems); err != nil {
			return err
		}
		if err := insert(tx, customers); err != nil {
			return err
		}

		counts = ExportCounts{
			Products:     len(products),
			Transactions: len(txRows),
			Quotes:       len(quotes),
			Customers:    len(customers),
		}
		return nil
	})
	if err != nil {
		return ExportCounts{}, fmt.Errorf("database: writing snapshot: %w", err)
	}

	logger.Info("exported snapshot", "path", path,
		"products", counts.Products, "transactions", counts.Transactions,
		"quotes", counts.Quotes, "customers", counts.Customers)
	return counts, nil
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}
