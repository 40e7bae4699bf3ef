package handlers

import (
	"net/http"

	"gestorpro/internal/quotes"

	"github.com/gin-gonic/gin"
)

func (a *API) GetQuotes(c *gin.Context) {
	list, err := a.Quotes.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) GetQuote(c *gin.Context) {
	quote, err := a.Quotes.Get(c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (a *API) AddQuote(c *gin.Context) {
	var in quotes.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c)
		return
	}
	in.ID = ""
	quote, err := a.Quotes.Save(in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

func (a *API) UpdateQuote(c *gin.Context) {
	var in quotes.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badInput(c)
		return
	}
	in.ID = c.Param("id")
	quote, err := a.Quotes.Save(in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (a *API) DeleteQuote(c *gin.Context) {
	if err := a.Quotes.Delete(c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}
