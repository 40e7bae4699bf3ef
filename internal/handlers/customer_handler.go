package handlers

import (
	"net/http"

	"gestorpro/internal/customers"

	"github.com/gin-gonic/gin"
)

func (a *API) GetCustomers(c *gin.Context) {
	list, err := a.Customers.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) GetCustomer(c *gin.Context) {
	customer, err := a.Customers.Get(c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) AddCustomer(c *gin.Context) {
	var in customers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c)
		return
	}
	in.ID = ""
	customer, err := a.Customers.Save(in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (a *API) UpdateCustomer(c *gin.Context) {
	var in customers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c)
		return
	}
	in.ID = c.Param("id")
	customer, err := a.Customers.Save(in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (a *API) DeleteCustomer(c *gin.Context) {
	if err := a.Customers.Delete(c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
