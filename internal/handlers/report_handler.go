package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/reports/summary ---
// Dashboard figures: settled revenue, receivables, stock value, low stock.
func (a *API) GetSummary(c *gin.Context) {
	summary, err := a.Ledger.Summary(a.LowStockThreshold)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET: /api/reports/sales?start=YYYY-MM-DD&end=YYYY-MM-DD ---
// Both days are included whole.
func (a *API) GetSalesReport(c *gin.Context) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a YYYY-MM-DD date"})
		return
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be a YYYY-MM-DD date"})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return
	}

	report, err := a.Ledger.Report(start, end, time.Local)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// --- GET: /api/reports/valuation ---
// Stock value at buy price grouped by category
func (a *API) GetStockValuation(c *gin.Context) {
	valuation, err := a.Catalog.Valuation()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, valuation)
}

// --- GET: /api/products/low-stock[?threshold=n] ---
func (a *API) GetLowStock(c *gin.Context) {
	threshold := a.LowStockThreshold
	if q := c.Query("threshold"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a non-negative integer"})
			return
		}
		threshold = n
	}
	products, err := a.Catalog.LowStock(threshold)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
