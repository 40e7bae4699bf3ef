package database

import (
	"encoding/json"
	"fmt"

	"gestorpro/internal/apperr"
	"gestorpro/internal/models"
)

// Table names a collection of the document.
type Table string

const (
	Products    Table = "products"
	Sales       Table = "sales"
	Users       Table = "users"
	Quotes      Table = "quotes"
	Receivables Table = "receivables"
	Customers   Table = "customers"
)

// Tables lists every collection in document order.
var Tables = []Table{Products, Sales, Users, Quotes, Receivables, Customers}

// ErrUnknownTable is returned for a name outside Tables.
var ErrUnknownTable = fmt.Errorf("database: unknown table: %w", apperr.ErrNotFound)

// field returns a pointer to the named collection inside doc.
func field(doc *models.Document, name Table) (any, error) {
	switch name {
	case Products:
		return &doc.Products, nil
	case Sales:
		return &doc.Sales, nil
	case Users:
		return &doc.Users, nil
	case Quotes:
		return &doc.Quotes, nil
	case Receivables:
		return &doc.Receivables, nil
	case Customers:
		return &doc.Customers, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownTable, name)
}

// GetTable returns the named collection; never nil.
func GetTable[T any](s *Store, name Table) ([]T, error) {
	doc, err := s.Read()
	if err != nil {
		return []T{}, err
	}
	ptr, err := field(doc, name)
	if err != nil {
		return []T{}, err
	}
	rows, ok := ptr.(*[]T)
	if !ok {
		return []T{}, fmt.Errorf("database: table %q does not hold %T", name, *new(T))
	}
	return *rows, nil
}

// UpdateTable replaces the named collection and rewrites the document.
// Other collections are written back as they were read.
func UpdateTable[T any](s *Store, name Table, rows []T) error {
	return s.Update(func(doc *models.Document) error {
		ptr, err := field(doc, name)
		if err != nil {
			return err
		}
		target, ok := ptr.(*[]T)
		if !ok {
			return fmt.Errorf("database: table %q does not hold %T", name, *new(T))
		}
		if rows == nil {
			rows = []T{}
		}
		*target = rows
		return nil
	})
}

// RawTable returns the JSON encoding of one collection.
func (s *Store) RawTable(name Table) (json.RawMessage, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	ptr, err := field(doc, name)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ptr)
}

// Settings returns the settings record.
func (s *Store) Settings() (models.Settings, error) {
	doc, err := s.Read()
	if err != nil {
		return models.Settings{}, err
	}
	return *doc.Settings, nil
}

// UpdateSettings applies fn to the stored settings and saves.
func (s *Store) UpdateSettings(fn func(*models.Settings)) (models.Settings, error) {
	var out models.Settings
	err := s.Update(func(doc *models.Document) error {
		fn(doc.Settings)
		out = *doc.Settings
		return nil
	})
	return out, err
}

// MergeSettings shallow-merges a partial JSON settings object into the stored
// record: keys present in patch overwrite, absent keys are kept.
func (s *Store) MergeSettings(patch []byte) (models.Settings, error) {
	var out models.Settings
	err := s.Update(func(doc *models.Document) error {
		merged := *doc.Settings
		if err := json.Unmarshal(patch, &merged); err != nil {
			return apperr.Invalid("settings", "malformed patch: %v", err)
		}
		*doc.Settings = merged
		out = merged
		return nil
	})
	return out, err
}
