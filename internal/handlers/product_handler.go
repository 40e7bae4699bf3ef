package handlers

import (
	"net/http"

	"gestorpro/internal/catalog"

	"github.com/gin-gonic/gin"
)

// --- GET: List all products ---
func (a *API) GetProducts(c *gin.Context) {
	products, err := a.Catalog.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- GET: One product ---
func (a *API) GetProduct(c *gin.Context) {
	product, err := a.Catalog.Get(c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- POST: Add a new product ---
// The sell price is derived; any sellPrice in the body is ignored.
func (a *API) AddProduct(c *gin.Context) {
	var in catalog.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c)
		return
	}
	in.ID = ""

	product, err := a.Catalog.CreateOrUpdate(in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// --- PUT: Edit a product ---
// Id and code are kept; the sell price is recomputed.
func (a *API) UpdateProduct(c *gin.Context) {
	var in catalog.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c)
		return
	}
	in.ID = c.Param("id")

	product, err := a.Catalog.CreateOrUpdate(in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- DELETE: Remove a product ---
// Past sales keep their item snapshots.
func (a *API) DeleteProduct(c *gin.Context) {
	if err := a.Catalog.Delete(c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
