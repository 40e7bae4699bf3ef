// Package customers is the customer registry. Sales and quotes copy a
// customer's details when they are created; editing a customer later does
// not change them.
package customers

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/database"
	"gestorpro/internal/models"
)

// Input carries the editable fields of a customer. An empty ID creates.
type Input struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Registry struct {
	store *database.Store
	log   *slog.Logger
	now   func() time.Time
}

func NewRegistry(store *database.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: store, log: logger, now: time.Now}
}

// WithClock replaces the clock used for ids and createdAt.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) List() ([]models.Customer, error) {
	return database.GetTable[models.Customer](r.store, database.Customers)
}

func (r *Registry) Get(id string) (models.Customer, error) {
	list, err := r.List()
	if err != nil {
		return models.Customer{}, err
	}
	i := slices.IndexFunc(list, func(c models.Customer) bool { return c.ID == id })
	if i < 0 {
		return models.Customer{}, apperr.NotFound("customer", id)
	}
	return list[i], nil
}

// Save creates a customer or replaces an existing one, keeping createdAt.
func (r *Registry) Save(in Input) (models.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Customer{}, apperr.Invalid("name", "is required")
	}

	var saved models.Customer
	err := r.store.Update(func(doc *models.Document) error {
		saved = models.Customer{
			ID:      in.ID,
			Name:    strings.TrimSpace(in.Name),
			Address: strings.TrimSpace(in.Address),
			Phone:   strings.TrimSpace(in.Phone),
			Email:   strings.TrimSpace(in.Email),
		}
		if in.ID == "" {
			now := r.now()
			ids := make(map[string]bool, len(doc.Customers))
			for _, c := range doc.Customers {
				ids[c.ID] = true
			}
			saved.ID = models.NewTimestampID(now, func(id string) bool { return ids[id] })
			saved.CreatedAt = now.UTC()
			doc.Customers = append(doc.Customers, saved)
			return nil
		}
		i := slices.IndexFunc(doc.Customers, func(c models.Customer) bool { return c.ID == in.ID })
		if i < 0 {
			return apperr.NotFound("customer", in.ID)
		}
		saved.CreatedAt = doc.Customers[i].CreatedAt
		doc.Customers[i] = saved
		return nil
	})
	if err != nil {
		return models.Customer{}, err
	}
	r.log.Info("customer saved", "id", saved.ID)
	return saved, nil
}

func (r *Registry) Delete(id string) error {
	err := r.store.Update(func(doc *models.Document) error {
		n := len(doc.Customers)
		doc.Customers = slices.DeleteFunc(doc.Customers, func(c models.Customer) bool { return c.ID == id })
		if len(doc.Customers) == n {
			return apperr.NotFound("customer", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Info("customer deleted", "id", id)
	return nil
}
