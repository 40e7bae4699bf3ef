// Package catalog manages the product table: creation and edits with derived
// sell prices, removal, stock views and the item snapshots sales and quotes
// are built from.
package catalog

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/database"
	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultLowStock is the quantity at or below which a product is critical.
const DefaultLowStock = 5

var hundred = decimal.NewFromInt(100)

// SellPrice derives the sell price from the buy price and a percentage
// margin, rounded to cents.
func SellPrice(buy, margin decimal.Decimal) decimal.Decimal {
	return buy.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred))).Round(2)
}

// Input carries the editable fields of a product. An empty ID creates.
type Input struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	Margin      decimal.Decimal `json:"margin"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return apperr.Invalid("description", "is required")
	}
	if in.Quantity < 0 {
		return apperr.Invalid("quantity", "must not be negative")
	}
	if in.BuyPrice.IsNegative() {
		return apperr.Invalid("buyPrice", "must not be negative")
	}
	return nil
}

// Manager is the Catalog Manager.
type Manager struct {
	store *database.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewManager returns a manager over store.
func NewManager(store *database.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, log: logger, now: time.Now}
}

// WithClock replaces the clock used for new ids.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// List returns every product.
func (m *Manager) List() ([]models.Product, error) {
	return database.GetTable[models.Product](m.store, database.Products)
}

// Get returns one product by id.
func (m *Manager) Get(id string) (models.Product, error) {
	products, err := m.List()
	if err != nil {
		return models.Product{}, err
	}
	i := slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, apperr.NotFound("product", id)
	}
	return products[i], nil
}

// CreateOrUpdate stores a new product or overwrites the editable fields of
// an existing one. Identity (id, code) never changes on edit, and the sell
// price is always recomputed.
func (m *Manager) CreateOrUpdate(in Input) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	var saved models.Product
	err := m.store.Update(func(doc *models.Document) error {
		if in.ID == "" {
			ids := make(map[string]bool, len(doc.Products))
			for _, p := range doc.Products {
				ids[p.ID] = true
			}
			codes := models.CodeSet(doc.Products)
			saved = models.Product{
				ID:   models.NewTimestampID(m.now(), func(id string) bool { return ids[id] }),
				Code: models.NewCode(func(c string) bool { return codes[c] }),
			}
			apply(&saved, in)
			doc.Products = append(doc.Products, saved)
			return nil
		}

		i := slices.IndexFunc(doc.Products, func(p models.Product) bool { return p.ID == in.ID })
		if i < 0 {
			return apperr.NotFound("product", in.ID)
		}
		apply(&doc.Products[i], in)
		saved = doc.Products[i]
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	m.log.Info("product saved", "id", saved.ID, "code", saved.Code, "sellPrice", saved.SellPrice.StringFixed(2))
	return saved, nil
}

func apply(p *models.Product, in Input) {
	p.Description = strings.TrimSpace(in.Description)
	p.Category = strings.TrimSpace(in.Category)
	p.Quantity = in.Quantity
	p.BuyPrice = in.BuyPrice
	p.Margin = in.Margin
	p.SellPrice = SellPrice(in.BuyPrice, in.Margin)
}

// Delete removes a product. Past sales and quotes keep their snapshots.
func (m *Manager) Delete(id string) error {
	err := m.store.Update(func(doc *models.Document) error {
		n := len(doc.Products)
		doc.Products = slices.DeleteFunc(doc.Products, func(p models.Product) bool { return p.ID == id })
		if len(doc.Products) == n {
			return apperr.NotFound("product", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.log.Info("product deleted", "id", id)
	return nil
}

// LowStock returns the products whose quantity is at or below threshold.
func (m *Manager) LowStock(threshold int) ([]models.Product, error) {
	products, err := m.List()
	if err != nil {
		return nil, err
	}
	return Critical(products, threshold), nil
}

// Critical filters products at or below threshold, keeping their order.
func Critical(products []models.Product, threshold int) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if p.Quantity <= threshold {
			out = append(out, p)
		}
	}
	return out
}
