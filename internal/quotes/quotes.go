// Package quotes keeps price proposals. Quotes snapshot items like sales do
// but never touch stock, and number themselves independently of the ledger.
package quotes

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/catalog"
	"gestorpro/internal/database"
	"gestorpro/internal/models"
)

// FirstQuoteID is the id of the first quote.
const FirstQuoteID = 100

// DefaultValidity is the validity, in days, of a quote that names none.
const DefaultValidity = "7"

// Input is a quote as entered. An empty ID creates.
type Input struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customerId"`
	Customer      string         `json:"customer"`
	CustomerEmail string         `json:"customerEmail"`
	CustomerPhone string         `json:"customerPhone"`
	Items         []catalog.Line `json:"items"`
	Validity      string         `json:"validity"`
}

// NextQuoteID is one past the highest numeric id at or above FirstQuoteID.
// Non-numeric ids are ignored.
func NextQuoteID(quotes []models.Quote) string {
	next := FirstQuoteID
	for _, q := range quotes {
		n, err := strconv.Atoi(q.ID)
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return strconv.Itoa(next)
}

// Workflow is the Quote Workflow.
type Workflow struct {
	store *database.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewWorkflow returns a workflow over store.
func NewWorkflow(store *database.Store, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{store: store, log: logger, now: time.Now}
}

// WithClock replaces the clock used for createdAt.
func (w *Workflow) WithClock(now func() time.Time) *Workflow {
	w.now = now
	return w
}

// List returns every quote.
func (w *Workflow) List() ([]models.Quote, error) {
	return database.GetTable[models.Quote](w.store, database.Quotes)
}

// Get returns one quote.
func (w *Workflow) Get(id string) (models.Quote, error) {
	quotes, err := w.List()
	if err != nil {
		return models.Quote{}, err
	}
	i := slices.IndexFunc(quotes, func(q models.Quote) bool { return q.ID == id })
	if i < 0 {
		return models.Quote{}, apperr.NotFound("quote", id)
	}
	return quotes[i], nil
}

// Save creates or replaces a quote. Contact fields left blank are filled
// from the registry when CustomerID is given. Editing keeps createdAt.
func (w *Workflow) Save(in Input) (models.Quote, error) {
	var saved models.Quote
	err := w.store.Update(func(doc *models.Document) error {
		if in.CustomerID != "" {
			i := slices.IndexFunc(doc.Customers, func(c models.Customer) bool { return c.ID == in.CustomerID })
			if i < 0 {
				return apperr.Invalid("customerId", "customer %q does not exist", in.CustomerID)
			}
			c := doc.Customers[i]
			in.Customer = firstNonBlank(in.Customer, c.Name)
			in.CustomerEmail = firstNonBlank(in.CustomerEmail, c.Email)
			in.CustomerPhone = firstNonBlank(in.CustomerPhone, c.Phone)
		}
		if strings.TrimSpace(in.Customer) == "" {
			return apperr.Invalid("customer", "is required")
		}

		items, err := catalog.Snapshot(doc.Products, in.Items, catalog.SnapshotOptions{KeepPrices: true})
		if err != nil {
			return err
		}

		saved = models.Quote{
			ID:            in.ID,
			Customer:      strings.TrimSpace(in.Customer),
			CustomerEmail: strings.TrimSpace(in.CustomerEmail),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			Items:         items,
			TotalPrice:    models.Sum(items),
			Validity:      firstNonBlank(in.Validity, DefaultValidity),
		}

		if in.ID == "" {
			saved.ID = NextQuoteID(doc.Quotes)
			saved.CreatedAt = w.now().UTC()
			doc.Quotes = append(doc.Quotes, saved)
			return nil
		}
		i := slices.IndexFunc(doc.Quotes, func(q models.Quote) bool { return q.ID == in.ID })
		if i < 0 {
			return apperr.NotFound("quote", in.ID)
		}
		saved.CreatedAt = doc.Quotes[i].CreatedAt
		doc.Quotes[i] = saved
		return nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	w.log.Info("quote saved", "id", saved.ID, "customer", saved.Customer, "total", saved.TotalPrice.StringFixed(2))
	return saved, nil
}

// Delete removes a quote.
func (w *Workflow) Delete(id string) error {
	err := w.store.Update(func(doc *models.Document) error {
		n := len(doc.Quotes)
		doc.Quotes = slices.DeleteFunc(doc.Quotes, func(q models.Quote) bool { return q.ID == id })
		if len(doc.Quotes) == n {
			return apperr.NotFound("quote", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.log.Info("quote deleted", "id", id)
	return nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
