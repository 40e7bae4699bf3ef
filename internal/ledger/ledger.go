// Package ledger moves money through the sales and receivables tables.
//
// A cart is committed either straight into Sales (immediate payment) or into
// Receivables (in-house credit with a due date). A receivable is later
// settled by moving it into Sales. Both tables draw ids from one counter, so
// an id names exactly one transaction in exactly one table.
package ledger

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/catalog"
	"gestorpro/internal/database"
	"gestorpro/internal/models"
)

// Payment methods offered at the register.
const (
	PaymentCash   = "Dinheiro"
	PaymentCard   = "Cartão"
	PaymentPix    = "Pix"
	PaymentCredit = "Crediário Próprio" // in-house credit
)

// PaymentMethods lists every accepted payment method, matched exactly.
var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentPix, PaymentCredit}

// DefaultCustomer names walk-in buyers.
const DefaultCustomer = "Consumidor Final"

// FirstTransactionID is the id of the first sale or receivable.
const FirstTransactionID = 1000

const dueDateLayout = "2006-01-02"

// SaleRequest is a cart ready to be committed.
type SaleRequest struct {
	Cart          []catalog.Line `json:"cart"`
	PaymentMethod string         `json:"paymentMethod"`
	CustomerID    string         `json:"customerId"`
	DueDate       string         `json:"dueDate"` // YYYY-MM-DD, in-house credit only
}

func (r SaleRequest) validate() error {
	if len(r.Cart) == 0 {
		return apperr.Invalid("cart", "is empty")
	}
	if strings.TrimSpace(r.PaymentMethod) == "" {
		return apperr.Invalid("paymentMethod", "is required")
	}
	if !slices.Contains(PaymentMethods, r.PaymentMethod) {
		return apperr.Invalid("paymentMethod", "unknown payment method %q", r.PaymentMethod)
	}
	if r.PaymentMethod == PaymentCredit {
		if r.DueDate == "" {
			return apperr.Invalid("dueDate", "is required for %s", PaymentCredit)
		}
		if _, err := time.Parse(dueDateLayout, r.DueDate); err != nil {
			return apperr.Invalid("dueDate", "must be a YYYY-MM-DD date")
		}
	}
	return nil
}

// Workflow is the Ledger Workflow.
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

// WithClock replaces the clock used for timestamps.
func (w *Workflow) WithClock(now func() time.Time) *Workflow {
	w.now = now
	return w
}

// NextTransactionID is one past the highest id at or above
// FirstTransactionID across both tables, or FirstTransactionID.
func NextTransactionID(sales, receivables []models.Transaction) int {
	next := FirstTransactionID
	for _, rows := range [][]models.Transaction{sales, receivables} {
		for _, t := range rows {
			if t.ID >= next {
				next = t.ID + 1
			}
		}
	}
	return next
}

// CommitSale decrements stock, snapshots the cart and files the transaction
// in Sales or Receivables, all in one write. Stock is re-checked here even
// though the register checks it when an item is added to the cart.
func (w *Workflow) CommitSale(req SaleRequest) (models.Transaction, error) {
	if err := req.validate(); err != nil {
		return models.Transaction{}, err
	}

	var trans models.Transaction
	err := w.store.Update(func(doc *models.Document) error {
		customer := DefaultCustomer
		if req.CustomerID != "" {
			i := slices.IndexFunc(doc.Customers, func(c models.Customer) bool { return c.ID == req.CustomerID })
			if i < 0 {
				return apperr.Invalid("customerId", "customer %q does not exist", req.CustomerID)
			}
			customer = doc.Customers[i].Name
		}

		items, err := catalog.Snapshot(doc.Products, req.Cart, catalog.SnapshotOptions{CheckStock: true})
		if err != nil {
			return err
		}
		catalog.Decrement(doc.Products, items)

		trans = models.Transaction{
			ID:            NextTransactionID(doc.Sales, doc.Receivables),
			Customer:      customer,
			Items:         items,
			TotalPrice:    models.Sum(items),
			PaymentMethod: req.PaymentMethod,
			CreatedAt:     w.now().UTC(),
		}
		if req.PaymentMethod == PaymentCredit {
			due := req.DueDate
			trans.DueDate = &due
			doc.Receivables = append(doc.Receivables, trans)
		} else {
			doc.Sales = append(doc.Sales, trans)
		}
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	w.log.Info("sale committed", "id", trans.ID, "customer", trans.Customer,
		"paymentMethod", trans.PaymentMethod, "total", trans.TotalPrice.StringFixed(2),
		"pending", trans.DueDate != nil)
	return trans, nil
}

// SettleReceivable moves a receivable into Sales with its final payment
// method and a receipt timestamp. A missing id returns apperr.ErrNotFound
// and writes nothing.
func (w *Workflow) SettleReceivable(id int, paymentMethod string) (models.Transaction, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		return models.Transaction{}, apperr.Invalid("paymentMethod", "is required")
	}
	if paymentMethod == PaymentCredit {
		return models.Transaction{}, apperr.Invalid("paymentMethod", "a receivable cannot be settled with %s", PaymentCredit)
	}
	if !slices.Contains(PaymentMethods, paymentMethod) {
		return models.Transaction{}, apperr.Invalid("paymentMethod", "unknown payment method %q", paymentMethod)
	}

	var settled models.Transaction
	err := w.store.Update(func(doc *models.Document) error {
		i := slices.IndexFunc(doc.Receivables, func(t models.Transaction) bool { return t.ID == id })
		if i < 0 {
			return apperr.NotFound("receivable", id)
		}
		settled = doc.Receivables[i]
		settled.PaymentMethod = paymentMethod
		received := w.now().UTC()
		settled.ReceivedAt = &received

		doc.Sales = append(doc.Sales, settled)
		doc.Receivables = slices.Delete(doc.Receivables, i, i+1)
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	w.log.Info("receivable settled", "id", settled.ID, "paymentMethod", paymentMethod,
		"total", settled.TotalPrice.StringFixed(2))
	return settled, nil
}

// Sales returns the settled transactions.
func (w *Workflow) Sales() ([]models.Transaction, error) {
	return database.GetTable[models.Transaction](w.store, database.Sales)
}

// Receivables returns the pending transactions.
func (w *Workflow) Receivables() ([]models.Transaction, error) {
	return database.GetTable[models.Transaction](w.store, database.Receivables)
}

// Sale returns one settled transaction.
func (w *Workflow) Sale(id int) (models.Transaction, error) {
	sales, err := w.Sales()
	if err != nil {
		return models.Transaction{}, err
	}
	i := slices.IndexFunc(sales, func(t models.Transaction) bool { return t.ID == id })
	if i < 0 {
		return models.Transaction{}, apperr.NotFound("sale", id)
	}
	return sales[i], nil
}
