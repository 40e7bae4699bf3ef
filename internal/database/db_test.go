package database

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gestorpro/internal/apperr"
	"gestorpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir(), quietLogger())
	require.NoError(t, s.Initialize())
	return s
}

func TestInitializeCreatesEmptyDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "GestorPro")
	s := NewStore(dir, quietLogger())
	require.NoError(t, s.Initialize())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, table := range Tables {
		assert.JSONEq(t, `[]`, string(raw[string(table)]), "table %s", table)
	}
	assert.JSONEq(t, `{"expirationDate": null}`, string(raw["settings"]))
}

func TestInitializeFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewStore(filepath.Join(blocker, "data"), quietLogger())
	err := s.Initialize()

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "create directory", storageErr.Op)
}

func TestInitializeBackfillsLegacyDocument(t *testing.T) {
	dir := t.TempDir()
	legacy := `{
  "products": [
    {"id": "1", "description": "Caneta", "quantity": 3, "buyPrice": 1.5, "margin": 100, "sellPrice": 3},
    {"id": "2", "code": "KEEPME01", "description": "Lápis", "quantity": 1, "buyPrice": 1, "margin": 50, "sellPrice": 1.5}
  ],
  "sales": [],
  "users": []
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(legacy), 0o644))

	s := NewStore(dir, quietLogger())
	require.NoError(t, s.Initialize())

	doc, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, doc.Quotes)
	assert.Empty(t, doc.Receivables)
	assert.Empty(t, doc.Customers)
	require.NotNil(t, doc.Settings)
	assert.Nil(t, doc.Settings.ExpirationDate)

	require.Len(t, doc.Products, 2)
	assert.Len(t, doc.Products[0].Code, models.CodeLength)
	assert.Regexp(t, `^[0-9A-Z]{8}$`, doc.Products[0].Code)
	assert.Equal(t, "KEEPME01", doc.Products[1].Code)
	assert.True(t, decimal.RequireFromString("1.5").Equal(doc.Products[0].BuyPrice))

	// A second run changes nothing on disk.
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestBackfillIsIdempotent(t *testing.T) {
	doc := &models.Document{
		Products: []models.Product{{ID: "1"}, {ID: "2"}, {ID: "3", Code: "AAAAAAAA"}},
	}
	assert.True(t, Backfill(doc))

	codes := map[string]bool{}
	for _, p := range doc.Products {
		assert.False(t, codes[p.Code], "duplicate code %s", p.Code)
		codes[p.Code] = true
	}

	before, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.False(t, Backfill(doc))
	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestCorruptDocumentIsQuarantinedOnInitialize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"products": [`), 0o644))

	s := NewStore(dir, quietLogger())
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	require.NoError(t, s.Initialize())

	kept, err := os.ReadFile(filepath.Join(dir, "database.corrupt-1700000000.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"products": [`, string(kept))

	doc, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, doc.Products)
}

func TestUnreadableDocumentIsNotQuarantined(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the file reads with an I/O error, not a parse error.
	require.NoError(t, os.Mkdir(filepath.Join(dir, FileName), 0o755))

	s := NewStore(dir, quietLogger())
	err := s.Initialize()

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "read", storageErr.Op)
	assert.NotErrorIs(t, err, ErrCorrupt)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "nothing is moved aside or written")
	assert.True(t, entries[0].IsDir())

	doc, err := s.Read()
	require.ErrorAs(t, err, &storageErr)
	assert.NotNil(t, doc)

	err = UpdateTable(s, Products, []models.Product{{ID: "1"}})
	assert.ErrorAs(t, err, &storageErr)
}

func TestReadReportsCorruptionAndWritesRefuse(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("not json"), 0o644))

	doc, err := s.Read()
	require.ErrorIs(t, err, ErrCorrupt)
	require.NotNil(t, doc)
	assert.Empty(t, doc.Products)

	products, err := GetTable[models.Product](s, Products)
	require.ErrorIs(t, err, ErrCorrupt)
	assert.NotNil(t, products)

	err = UpdateTable(s, Products, []models.Product{{ID: "1"}})
	require.ErrorIs(t, err, ErrCorrupt)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "not json", string(data))
}

func TestReadMissingFileIsFreshDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.Remove(s.Path()))

	doc, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, doc.Sales)
	assert.NotNil(t, doc.Settings)
}

func TestUpdateTableReplacesOnlyNamedTable(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, UpdateTable(s, Customers, []models.Customer{{ID: "c1", Name: "Ana"}}))
	require.NoError(t, UpdateTable(s, Products, []models.Product{{ID: "p1", Code: "AAAA0000"}}))

	customers, err := GetTable[models.Customer](s, Customers)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ana", customers[0].Name)

	products, err := GetTable[models.Product](s, Products)
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NoError(t, UpdateTable[models.Product](s, Products, nil))
	products, err = GetTable[models.Product](s, Products)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGetTableRejectsUnknownOrMistypedTable(t *testing.T) {
	s := newTestStore(t)

	_, err := GetTable[models.Product](s, Table("invoices"))
	require.ErrorIs(t, err, ErrUnknownTable)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = GetTable[models.Product](s, Sales)
	assert.Error(t, err)

	_, err = s.RawTable(Table("invoices"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRawTable(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, UpdateTable(s, Quotes, []models.Quote{{ID: "100", Customer: "Bia"}}))

	raw, err := s.RawTable(Quotes)
	require.NoError(t, err)

	var quotes []map[string]any
	require.NoError(t, json.Unmarshal(raw, &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, "100", quotes[0]["id"])
}

func TestMergeSettingsIsShallowMerge(t *testing.T) {
	s := newTestStore(t)
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := s.UpdateSettings(func(st *models.Settings) { st.ExpirationDate = &exp })
	require.NoError(t, err)

	merged, err := s.MergeSettings([]byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, merged.ExpirationDate)
	assert.True(t, exp.Equal(*merged.ExpirationDate))

	merged, err = s.MergeSettings([]byte(`{"expirationDate": null}`))
	require.NoError(t, err)
	assert.Nil(t, merged.ExpirationDate)

	stored, err := s.Settings()
	require.NoError(t, err)
	assert.Nil(t, stored.ExpirationDate)

	_, err = s.MergeSettings([]byte(`{"expirationDate": 12`))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, UpdateTable(s, Users, []models.User{{ID: int64(i), Email: "a@b.c"}}))
	}

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestUpdateWritesNothingWhenCallbackFails(t *testing.T) {
	s := newTestStore(t)
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	err = s.Update(func(doc *models.Document) error {
		doc.Products = append(doc.Products, models.Product{ID: "x"})
		return apperr.Invalid("x", "rejected")
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestMoneyIsStoredAsNumbers(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, UpdateTable(s, Products, []models.Product{{
		ID: "1", Code: "ABCDEFGH", BuyPrice: decimal.NewFromInt(100),
		Margin: decimal.NewFromInt(20), SellPrice: decimal.RequireFromString("120.00"),
	}}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"buyPrice": 100`)
	assert.NotContains(t, string(data), `"buyPrice": "100"`)
}
