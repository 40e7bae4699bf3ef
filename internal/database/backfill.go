package database

import "gestorpro/internal/models"

// Backfill brings a document written by an older version to the current
// shape and reports whether anything changed. Running it again on its own
// output changes nothing.
func Backfill(doc *models.Document) bool {
	changed := false
	if doc.Products == nil {
		doc.Products = []models.Product{}
		changed = true
	}
	if doc.Sales == nil {
		doc.Sales = []models.Transaction{}
		changed = true
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
		changed = true
	}
	if doc.Quotes == nil {
		doc.Quotes = []models.Quote{}
		changed = true
	}
	if doc.Receivables == nil {
		doc.Receivables = []models.Transaction{}
		changed = true
	}
	if doc.Customers == nil {
		doc.Customers = []models.Customer{}
		changed = true
	}
	if doc.Settings == nil {
		doc.Settings = &models.Settings{}
		changed = true
	}

	codes := models.CodeSet(doc.Products)
	for i := range doc.Products {
		if doc.Products[i].Code != "" {
			continue
		}
		code := models.NewCode(func(c string) bool { return codes[c] })
		codes[code] = true
		doc.Products[i].Code = code
		changed = true
	}
	return changed
}
