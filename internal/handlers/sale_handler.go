package handlers

import (
	"net/http"
	"strconv"

	"gestorpro/internal/ledger"

	"github.com/gin-gonic/gin"
)

// SettleRequest finalizes a receivable.
type SettleRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// --- GET: Settled sales ---
func (a *API) GetSales(c *gin.Context) {
	sales, err := a.Ledger.Sales()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- GET: One settled sale (receipt reprint) ---
func (a *API) GetSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}
	sale, err := a.Ledger.Sale(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// --- POST: Commit the cart ---
// Immediate payments land in sales, in-house credit in receivables.
func (a *API) ProcessSale(c *gin.Context) {
	var req ledger.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}

	trans, err := a.Ledger.CommitSale(req)
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Sale successful!",
		"sale_id":     trans.ID,
		"total":       trans.TotalPrice,
		"pending":     trans.DueDate != nil,
		"transaction": trans,
	})
}

// --- GET: Pending receivables ---
func (a *API) GetReceivables(c *gin.Context) {
	receivables, err := a.Ledger.Receivables()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, receivables)
}

// --- POST: Settle a receivable ---
func (a *API) SettleReceivable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receivable ID"})
		return
	}
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethod is required"})
		return
	}

	sale, err := a.Ledger.SettleReceivable(id, req.PaymentMethod)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}
