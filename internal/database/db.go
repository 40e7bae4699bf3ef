// Package database owns the single JSON document GestorPro persists to and
// the table accessors layered on top of it.
package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gestorpro/internal/models"
)

// FileName is the document name inside the data directory.
const FileName = "database.json"

// ErrCorrupt reports a document that exists but cannot be parsed.
// Read still returns the empty document alongside it.
var ErrCorrupt = errors.New("database: document is corrupt")

// StorageError reports a directory or file that could not be created,
// read or written.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("database: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the Document Store. It holds no table state between calls: every
// read goes to disk.
type Store struct {
	mu   sync.Mutex
	dir  string
	path string
	log  *slog.Logger
	now  func() time.Time
}

// NewStore returns a store rooted at dir. Call Initialize before use.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:  dir,
		path: filepath.Join(dir, FileName),
		log:  logger,
		now:  time.Now,
	}
}

// Dir is the data directory.
func (s *Store) Dir() string { return s.dir }

// Path is the document file.
func (s *Store) Path() string { return s.path }

// Initialize creates the data directory and document, or backfills an
// existing one. A document that does not parse is moved aside and replaced
// by a fresh one; the moved file's path is logged. A document that cannot be
// read is left in place and reported as a *StorageError.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Op: "create directory", Path: s.dir, Err: err}
	}

	doc, err := s.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Info("creating new document", "path", s.path)
		return s.save(models.NewDocument())
	case errors.Is(err, ErrCorrupt):
		quarantine := filepath.Join(s.dir, fmt.Sprintf("database.corrupt-%d.json", s.now().Unix()))
		if rerr := os.Rename(s.path, quarantine); rerr != nil {
			return &StorageError{Op: "quarantine", Path: s.path, Err: rerr}
		}
		s.log.Warn("document was corrupt, moved aside and replaced with an empty one",
			"path", s.path, "quarantine", quarantine, "error", err)
		return s.save(models.NewDocument())
	case err != nil:
		return err
	}

	if Backfill(doc) {
		s.log.Info("backfilled document", "path", s.path)
		return s.save(doc)
	}
	return nil
}

// Read returns the full document. A missing file reads as a fresh document.
// A corrupt file reads as a fresh document together with ErrCorrupt, an
// unreadable one together with a *StorageError.
func (s *Store) Read() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewDocument(), nil
	}
	if err == nil {
		normalize(doc)
	}
	return doc, err
}

// Save atomically replaces the document on disk.
func (s *Store) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update reads the document once, applies fn and writes it once. Nothing is
// written when fn fails or the stored document is corrupt.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		doc = models.NewDocument()
	case err != nil:
		return err
	default:
		normalize(doc)
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// read loads the document as stored, without filling missing collections.
// It returns an fs.ErrNotExist error when the file is absent, the empty
// document with a *StorageError when the file cannot be read and the empty
// document with ErrCorrupt when it cannot be parsed.
func (s *Store) read() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		s.log.Error("reading document", "path", s.path, "error", err)
		return models.NewDocument(), &StorageError{Op: "read", Path: s.path, Err: err}
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Error("parsing document", "path", s.path, "error", err)
		return models.NewDocument(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &doc, nil
}

// save writes to a temporary file next to the document, syncs it, then
// renames it over the document so readers never see a partial write.
func (s *Store) save(doc *models.Document) error {
	normalize(doc)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("database: encoding document: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, FileName+".*.tmp")
	if err != nil {
		s.log.Error("saving document", "path", s.path, "error", err)
		return &StorageError{Op: "create temp file", Path: s.dir, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &StorageError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		s.log.Error("saving document", "path", s.path, "error", err)
		return &StorageError{Op: "replace", Path: s.path, Err: err}
	}
	return nil
}

// normalize fills missing collections and settings in memory so callers and
// the encoder never see nil. Backfill decides whether that warrants a write.
func normalize(doc *models.Document) {
	if doc.Settings == nil {
		doc.Settings = &models.Settings{}
	}
	if doc.Products == nil {
		doc.Products = []models.Product{}
	}
	if doc.Sales == nil {
		doc.Sales = []models.Transaction{}
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Quotes == nil {
		doc.Quotes = []models.Quote{}
	}
	if doc.Receivables == nil {
		doc.Receivables = []models.Transaction{}
	}
	if doc.Customers == nil {
		doc.Customers = []models.Customer{}
	}
}
