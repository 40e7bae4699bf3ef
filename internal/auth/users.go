package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/database"
	"gestorpro/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PublicUser is a user without the password field.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func public(u models.User) PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Accounts handles the users table and the fixed admin credential pair.
type Accounts struct {
	store     *database.Store
	log       *slog.Logger
	now       func() time.Time
	adminUser string
	adminPass string
}

// NewAccounts returns accounts over store. An empty adminPass disables
// admin access.
func NewAccounts(store *database.Store, adminUser, adminPass string, logger *slog.Logger) *Accounts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accounts{store: store, log: logger, now: time.Now, adminUser: adminUser, adminPass: adminPass}
}

// Register creates a user and returns it. The password is stored hashed.
func (a *Accounts) Register(name, email, pass string) (PublicUser, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return PublicUser{}, apperr.Invalid("email", "is required")
	}
	if pass == "" {
		return PublicUser{}, apperr.Invalid("password", "is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return PublicUser{}, err
	}

	var user models.User
	err = a.store.Update(func(doc *models.Document) error {
		if slices.ContainsFunc(doc.Users, func(u models.User) bool { return strings.EqualFold(u.Email, email) }) {
			return apperr.Invalid("email", "is already registered")
		}
		id := a.now().UnixMilli()
		for slices.ContainsFunc(doc.Users, func(u models.User) bool { return u.ID == id }) {
			id++
		}
		user = models.User{ID: id, Name: name, Email: email, Pass: string(hashed)}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return PublicUser{}, err
	}
	a.log.Info("user registered", "id", user.ID)
	return public(user), nil
}

// Login checks email and password. A password stored in plaintext by an
// older version is accepted once and replaced by its hash.
func (a *Accounts) Login(email, pass string) (PublicUser, error) {
	email = strings.TrimSpace(email)
	users, err := database.GetTable[models.User](a.store, database.Users)
	if err != nil {
		return PublicUser{}, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
	if i < 0 {
		return PublicUser{}, ErrInvalidCredentials
	}
	user := users[i]

	if isHash(user.Pass) {
		if bcrypt.CompareHashAndPassword([]byte(user.Pass), []byte(pass)) != nil {
			return PublicUser{}, ErrInvalidCredentials
		}
		return public(user), nil
	}

	if subtle.ConstantTimeCompare([]byte(user.Pass), []byte(pass)) != 1 {
		return PublicUser{}, ErrInvalidCredentials
	}
	if err := a.upgrade(user.ID, pass); err != nil {
		a.log.Warn("could not hash legacy password", "id", user.ID, "error", err)
	}
	return public(user), nil
}

// User returns a signed-in user by id.
func (a *Accounts) User(id int64) (PublicUser, error) {
	users, err := database.GetTable[models.User](a.store, database.Users)
	if err != nil {
		return PublicUser{}, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
	if i < 0 {
		return PublicUser{}, apperr.NotFound("user", id)
	}
	return public(users[i]), nil
}

// AdminLogin checks the fixed admin credential pair.
func (a *Accounts) AdminLogin(user, pass string) error {
	if a.adminPass == "" {
		return ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.adminUser))
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.adminPass))
	if userOK&passOK != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func (a *Accounts) upgrade(id int64, pass string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = a.store.Update(func(doc *models.Document) error {
		i := slices.IndexFunc(doc.Users, func(u models.User) bool { return u.ID == id })
		if i < 0 {
			return apperr.NotFound("user", id)
		}
		doc.Users[i].Pass = string(hashed)
		return nil
	})
	if err == nil {
		a.log.Info("legacy password hashed", "id", id)
	}
	return err
}

// isHash reports whether stored looks like a bcrypt hash.
func isHash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
