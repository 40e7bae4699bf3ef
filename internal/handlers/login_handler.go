package handlers

import (
	"errors"
	"net/http"

	"gestorpro/internal/auth"
	"gestorpro/internal/middleware"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *API) Login(c *gin.Context) {
	var input LoginRequest
	// 1. Validate Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	// 2. Check the credentials against the users table
	user, err := a.Accounts.Login(input.Email, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		a.fail(c, err)
		return
	}

	// 3. Issue the session token
	a.respondSession(c, http.StatusOK, user, false)
}

func (a *API) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}

	user, err := a.Accounts.Register(input.Name, input.Email, input.Password)
	if err != nil {
		a.fail(c, err)
		return
	}

	// Registering signs the new user in.
	a.respondSession(c, http.StatusCreated, user, false)
}

// AdminLogin opens the admin session used for the settings screen. A signed-in
// user keeps their identity; from the lock screen the session is admin-only.
func (a *API) AdminLogin(c *gin.Context) {
	var input AdminLoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badInput(c)
		return
	}
	if err := a.Accounts.AdminLogin(input.Username, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid administrative credentials"})
		return
	}

	var user auth.PublicUser
	if claims, ok := a.optionalClaims(c); ok && claims.UserID() != 0 {
		if u, err := a.Accounts.User(claims.UserID()); err == nil {
			user = u
		}
	}
	a.Log.Info("admin session opened", "user", user.ID)
	a.respondSession(c, http.StatusOK, user, true)
}

// Me returns the signed-in user.
func (a *API) Me(c *gin.Context) {
	user, err := a.Accounts.User(c.GetInt64(middleware.KeyUserID))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "admin": c.GetBool(middleware.KeyAdmin)})
}

func (a *API) respondSession(c *gin.Context, status int, user auth.PublicUser, admin bool) {
	token, err := a.Tokens.GenerateToken(user.ID, admin)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(status, gin.H{
		"token": token,
		"user":  user,
		"admin": admin,
	})
}

// optionalClaims reads a bearer token when one is present and valid.
func (a *API) optionalClaims(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if len(header) <= len("Bearer ") || header[:len("Bearer ")] != "Bearer " {
		return nil, false
	}
	claims, err := a.Tokens.ValidateToken(header[len("Bearer "):])
	if err != nil {
		return nil, false
	}
	return claims, true
}
