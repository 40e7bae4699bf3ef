package handlers

import (
	"io"
	"net/http"

	"gestorpro/internal/database"
	"gestorpro/internal/license"
	"gestorpro/internal/models"

	"github.com/gin-gonic/gin"
)

type ExpirationRequest struct {
	Period string `json:"period" binding:"required"` // none, 7d, 1m, 6m, 1y, custom
	Date   string `json:"date"`                      // YYYY-MM-DD for custom
}

// GetSystemStatus feeds the lock screen: whether the license ran out and the
// device id to quote to support. Reachable without a session.
func (a *API) GetSystemStatus(c *gin.Context) {
	settings, err := a.Store.Settings()
	if err != nil {
		a.fail(c, err)
		return
	}
	deviceID := ""
	if a.DeviceID != nil {
		deviceID = a.DeviceID()
	}
	c.JSON(http.StatusOK, gin.H{
		"device_id":      deviceID,
		"expired":        license.Expired(settings, a.Now()),
		"expirationDate": settings.ExpirationDate,
	})
}

// --- GET: /api/admin/settings ---
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.Store.Settings()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// --- PATCH: /api/admin/settings ---
// Keys present in the body replace stored ones; the rest are kept.
func (a *API) MergeSettings(c *gin.Context) {
	patch, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badInput(c)
		return
	}
	settings, err := a.Store.MergeSettings(patch)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// --- POST: /api/admin/settings/expiration ---
func (a *API) SetExpiration(c *gin.Context) {
	var req ExpirationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	exp, err := license.ExpirationFor(req.Period, req.Date, a.Now())
	if err != nil {
		a.fail(c, err)
		return
	}
	settings, err := a.Store.UpdateSettings(func(s *models.Settings) {
		s.ExpirationDate = exp
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	a.Log.Info("license updated", "period", req.Period, "expirationDate", exp)
	c.JSON(http.StatusOK, gin.H{"message": "License updated", "settings": settings})
}

// --- GET: /api/tables/:name ---
// Raw read access to one collection for the rendering layer.
func (a *API) GetTable(c *gin.Context) {
	raw, err := a.Store.RawTable(database.Table(c.Param("name")))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// --- POST: /api/system/open-folder ---
func (a *API) OpenDataFolder(c *gin.Context) {
	if a.OpenFolder == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Not available on this host"})
		return
	}
	if err := a.OpenFolder(a.Store.Dir()); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": a.Store.Dir()})
}

// --- POST: /api/system/quit ---
func (a *API) QuitApp(c *gin.Context) {
	if a.Quit == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Not available on this host"})
		return
	}
	a.Log.Info("quit requested")
	c.JSON(http.StatusAccepted, gin.H{"message": "Shutting down"})
	a.Quit()
}
