package catalog

import (
	"strings"

	"gestorpro/internal/apperr"
	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
)

// Line asks for a quantity of one product. Price and Description, when set,
// are kept as the snapshot instead of the live catalog values; sales ignore
// them.
type Line struct {
	ProductID   string           `json:"productId"`
	Quantity    int              `json:"quantity"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// SnapshotOptions controls how Snapshot treats the live catalog.
type SnapshotOptions struct {
	// CheckStock rejects lines whose summed quantity per product exceeds
	// the stock.
	CheckStock bool
	// KeepPrices honours Line.Price and Line.Description and allows lines
	// whose product no longer exists when both are given.
	KeepPrices bool
}

// Snapshot turns cart lines into item snapshots priced from products.
func Snapshot(products []models.Product, lines []Line, opts SnapshotOptions) ([]models.Item, error) {
	if len(lines) == 0 {
		return nil, apperr.Invalid("items", "at least one item is required")
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	wanted := make(map[string]int)
	items := make([]models.Item, 0, len(lines))
	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, apperr.Invalid("items", "line %d: quantity must be at least 1", i+1)
		}
		p, ok := byID[line.ProductID]

		item := models.Item{ID: line.ProductID, Quantity: line.Quantity}
		switch {
		case opts.KeepPrices && line.Price != nil && (ok || strings.TrimSpace(line.Description) != ""):
			item.Price = *line.Price
			item.Description = strings.TrimSpace(line.Description)
			if item.Description == "" {
				item.Description = p.Description
			}
		case ok:
			item.Price = p.SellPrice
			item.Description = p.Description
		default:
			return nil, apperr.Invalid("items", "line %d: product %q does not exist", i+1, line.ProductID)
		}
		if item.Price.IsNegative() {
			return nil, apperr.Invalid("items", "line %d: price must not be negative", i+1)
		}
		// wanted never exceeds the stock: each line is checked against what
		// earlier lines left.
		if opts.CheckStock {
			if left := p.Quantity - wanted[p.ID]; line.Quantity > left {
				return nil, apperr.Invalid("items", "insufficient stock for %s: %d requested, %d available", p.Description, line.Quantity, max(left, 0))
			}
			wanted[p.ID] += line.Quantity
		}
		item.Total = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}
	return items, nil
}

// Decrement removes the quantities of items from products in place.
func Decrement(products []models.Product, items []models.Item) {
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	for _, it := range items {
		if i, ok := index[it.ID]; ok {
			products[i].Quantity -= it.Quantity
		}
	}
}
