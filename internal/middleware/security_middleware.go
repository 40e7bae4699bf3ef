package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gestorpro/internal/auth"
	"gestorpro/internal/database"
	"gestorpro/internal/license"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	KeyUserID = "userID"
	KeyAdmin  = "admin"
)

// AuthMiddleware checks if the request carries a valid session token
func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get the token from the "Authorization" header
		// Format: "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		// 2. Remove the "Bearer " prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			return
		}

		// 3. Validate the token
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// 4. Store the session for the handlers
		c.Set(KeyUserID, claims.UserID())
		c.Set(KeyAdmin, claims.Admin)
		c.Next()
	}
}

// RequireUser rejects admin-only sessions that have no signed-in user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64(KeyUserID) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in to continue"})
			return
		}
		c.Next()
	}
}

// RequireAdmin lets through only sessions opened with the admin credentials
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(KeyAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrative access required"})
			return
		}
		c.Next()
	}
}

// CheckLicense blocks the normal screens once the usage period is over.
// It only reads the settings.
func CheckLicense(store *database.Store, now func() time.Time, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := store.Settings()
		if err != nil {
			logger.Error("reading settings for license check", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Data file is unreadable"})
			return
		}
		if license.Expired(settings, now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":          "License expired",
				"expired":        true,
				"expirationDate": settings.ExpirationDate,
			})
			return
		}
		c.Next()
	}
}
