package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The document stores money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product - The Inventory
type Product struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	BuyPrice    decimal.Decimal `json:"buyPrice"`
	Margin      decimal.Decimal `json:"margin"`     // percentage
	SellPrice   decimal.Decimal `json:"sellPrice"` // derived, see catalog.SellPrice
}

// Item - a line snapshot copied into a transaction or quote.
// Later catalog edits never touch it.
type Item struct {
	ID          string          `json:"id"` // product id at snapshot time
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Transaction - a Sale or a Receivable. Both collections share this shape
// and one id counter.
type Transaction struct {
	ID            int             `json:"id"`
	Customer      string          `json:"customer"` // name snapshot
	Items         []Item          `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentMethod string          `json:"paymentMethod"`
	DueDate       *string         `json:"dueDate"` // YYYY-MM-DD, in-house credit only
	CreatedAt     time.Time       `json:"createdAt"`
	ReceivedAt    *time.Time      `json:"receivedAt,omitempty"` // set on settlement
}

// Quote - a price proposal. Never affects stock.
type Quote struct {
	ID            string          `json:"id"`
	Customer      string          `json:"customer"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Items         []Item          `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Validity      string          `json:"validity"` // days
	CreatedAt     time.Time       `json:"createdAt"`
}

// Customer - registry entry, copied by value into sales and quotes.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// User - The person operating the register.
// Pass holds a bcrypt hash; documents from older versions may still hold
// plaintext until the next successful login.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

// Settings is the singleton configuration record of the document.
type Settings struct {
	ExpirationDate *time.Time `json:"expirationDate"`
}

// Document is the whole persisted state.
type Document struct {
	Products    []Product     `json:"products"`
	Sales       []Transaction `json:"sales"`
	Users       []User        `json:"users"`
	Quotes      []Quote       `json:"quotes"`
	Receivables []Transaction `json:"receivables"`
	Customers   []Customer    `json:"customers"`
	Settings    *Settings     `json:"settings"`
}

// NewDocument returns the shape of a fresh install.
func NewDocument() *Document {
	return &Document{
		Products:    []Product{},
		Sales:       []Transaction{},
		Users:       []User{},
		Quotes:      []Quote{},
		Receivables: []Transaction{},
		Customers:   []Customer{},
		Settings:    &Settings{},
	}
}

// Sum adds the totals of items.
func Sum(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	return total
}
