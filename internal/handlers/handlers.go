// Package handlers exposes the GestorPro workflows over HTTP for the
// browser UI.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/auth"
	"gestorpro/internal/catalog"
	"gestorpro/internal/customers"
	"gestorpro/internal/database"
	"gestorpro/internal/ledger"
	"gestorpro/internal/quotes"

	"github.com/gin-gonic/gin"
)

// API bundles the workflows the handlers call into.
type API struct {
	Store     *database.Store
	Catalog   *catalog.Manager
	Ledger    *ledger.Workflow
	Quotes    *quotes.Workflow
	Customers *customers.Registry
	Accounts  *auth.Accounts
	Tokens    *auth.Tokens
	Log       *slog.Logger
	Now       func() time.Time

	LowStockThreshold int
	AllowRegistration bool

	// Host services.
	DeviceID   func() string
	OpenFolder func(dir string) error
	Quit       func()
}

// Options configures New.
type Options struct {
	AdminUser         string
	AdminPass         string
	JWTSecret         []byte
	LowStockThreshold int
	AllowRegistration bool
	DeviceID          func() string
	OpenFolder        func(dir string) error
	Quit              func()
}

// New wires every workflow over store.
func New(store *database.Store, opts Options, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		Store:             store,
		Catalog:           catalog.NewManager(store, logger),
		Ledger:            ledger.NewWorkflow(store, logger),
		Quotes:            quotes.NewWorkflow(store, logger),
		Customers:         customers.NewRegistry(store, logger),
		Accounts:          auth.NewAccounts(store, opts.AdminUser, opts.AdminPass, logger),
		Tokens:            auth.NewTokens(opts.JWTSecret),
		Log:               logger,
		Now:               time.Now,
		LowStockThreshold: opts.LowStockThreshold,
		AllowRegistration: opts.AllowRegistration,
		DeviceID:          opts.DeviceID,
		OpenFolder:        opts.OpenFolder,
		Quit:              opts.Quit,
	}
}

// fail replies with the status that matches err.
func (a *API) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	msg := err.Error()
	var storageErr *database.StorageError
	switch {
	case errors.Is(err, database.ErrCorrupt):
		status = http.StatusServiceUnavailable
		msg = "The data file is corrupt. Restore a backup of " + a.Store.Path()
	case errors.As(err, &storageErr):
		status = http.StatusServiceUnavailable
		msg = "The data file cannot be accessed: " + a.Store.Path()
	case status == http.StatusInternalServerError:
		msg = "Internal error"
	}
	if status >= http.StatusInternalServerError {
		a.Log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

// badInput replies 400 for a body that does not decode.
func badInput(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
}
