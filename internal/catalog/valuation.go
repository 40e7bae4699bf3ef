package catalog

import (
	"sort"

	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
)

// Uncategorized groups products with an empty category.
const Uncategorized = "Sem categoria"

// ValuationItem is a single row of the stock valuation
type ValuationItem struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// CategoryGroup is one category table of the valuation
type CategoryGroup struct {
	CategoryName string          `json:"categoryName"`
	Items        []ValuationItem `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Valuation is the stock value at buy price, grouped by category
type Valuation struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// Valuation computes the monetary value of the inventory at buy price.
func (m *Manager) Valuation() (Valuation, error) {
	products, err := m.List()
	if err != nil {
		return Valuation{}, err
	}
	return Value(products), nil
}

// Value groups products by category and totals quantity * buy price.
func Value(products []models.Product) Valuation {
	grandTotal := decimal.Zero
	groupedMap := make(map[string]*CategoryGroup)

	for _, p := range products {
		catName := p.Category
		if catName == "" {
			catName = Uncategorized
		}
		group, ok := groupedMap[catName]
		if !ok {
			group = &CategoryGroup{CategoryName: catName, Items: []ValuationItem{}, Subtotal: decimal.Zero}
			groupedMap[catName] = group
		}

		itemTotal := p.BuyPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		group.Items = append(group.Items, ValuationItem{
			Code:      p.Code,
			Name:      p.Description,
			Quantity:  p.Quantity,
			CostPrice: p.BuyPrice,
			TotalCost: itemTotal,
		})
		group.Subtotal = group.Subtotal.Add(itemTotal)
		grandTotal = grandTotal.Add(itemTotal)
	}

	// Map order is random; print in a stable order.
	response := Valuation{Categories: []CategoryGroup{}, GrandTotal: grandTotal}
	for _, group := range groupedMap {
		response.Categories = append(response.Categories, *group)
	}
	sort.Slice(response.Categories, func(i, j int) bool {
		return response.Categories[i].CategoryName < response.Categories[j].CategoryName
	})
	return response
}
