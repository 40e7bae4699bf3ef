package ledger

import (
	"time"

	"gestorpro/internal/catalog"
	"gestorpro/internal/database"
	"gestorpro/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency of every amount the register handles.
const Currency = money.BRL

// Summary is the dashboard: money settled, money owed and stock on hand.
type Summary struct {
	Revenue            decimal.Decimal `json:"revenue"`
	PendingReceivables decimal.Decimal `json:"pendingReceivables"`
	StockValue         decimal.Decimal `json:"stockValue"`
	LowStockCount      int             `json:"lowStockCount"`
	SalesCount         int             `json:"salesCount"`
	ReceivablesCount   int             `json:"receivablesCount"`
	OverdueCount       int             `json:"overdueCount"`
	Display            SummaryDisplay  `json:"display"`
}

// SummaryDisplay carries the amounts formatted for the screen.
type SummaryDisplay struct {
	Revenue            string `json:"revenue"`
	PendingReceivables string `json:"pendingReceivables"`
	StockValue         string `json:"stockValue"`
}

// Format renders an amount in Currency, e.g. "R$120,00".
func Format(amount decimal.Decimal) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, Currency).Display()
}

// Summary reads the whole document once and totals the dashboard figures.
func (w *Workflow) Summary(lowStockThreshold int) (Summary, error) {
	doc, err := w.store.Read()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(doc, lowStockThreshold, w.now()), nil
}

// Summarize computes the dashboard for doc. A receivable is overdue once its
// due date has passed.
func Summarize(doc *models.Document, lowStockThreshold int, now time.Time) Summary {
	s := Summary{
		Revenue:            decimal.Zero,
		PendingReceivables: decimal.Zero,
		SalesCount:         len(doc.Sales),
		ReceivablesCount:   len(doc.Receivables),
	}
	for _, t := range doc.Sales {
		s.Revenue = s.Revenue.Add(t.TotalPrice)
	}
	today := now.Format(dueDateLayout)
	for _, t := range doc.Receivables {
		s.PendingReceivables = s.PendingReceivables.Add(t.TotalPrice)
		if t.DueDate != nil && *t.DueDate < today {
			s.OverdueCount++
		}
	}
	s.StockValue = catalog.Value(doc.Products).GrandTotal
	s.LowStockCount = len(catalog.Critical(doc.Products, lowStockThreshold))

	s.Display = SummaryDisplay{
		Revenue:            Format(s.Revenue),
		PendingReceivables: Format(s.PendingReceivables),
		StockValue:         Format(s.StockValue),
	}
	return s
}

// Report returns the settled sales created between the start of the first
// day and the end of the last day, in loc.
func (w *Workflow) Report(first, last time.Time, loc *time.Location) (*database.SalesReportResult, error) {
	start, end := DayRange(first, last, loc)
	return w.store.GetSalesReport(start, end)
}

// DayRange widens two dates to 00:00:00 of first and 23:59:59.999999999 of last.
func DayRange(first, last time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc)
	end := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, int(time.Second-1), loc)
	return start, end
}
