package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// fileStore implements ProductStore on top of a single pretty-printed JSON file.
type fileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a ProductStore persisting to the JSON file at path.
func NewFileStore(path string, logger *slog.Logger) ProductStore {
	return &fileStore{
		path:   path,
		logger: logger.With("component", "file_store", "file_path", path),
	}
}

// savedRecord is the on-disk shape written by Save.
type savedRecord struct {
	Name     string      `json:"nome"`
	Price    json.Number `json:"preco"`
	Quantity int         `json:"quantidade"`
}

// loadedRecord accepts both the Portuguese keys written by Save and their English aliases.
type loadedRecord struct {
	Nome       *string      `json:"nome"`
	Name       *string      `json:"name"`
	Preco      *json.Number `json:"preco"`
	Price      *json.Number `json:"price"`
	Quantidade *json.Number `json:"quantidade"`
	Quantity   *json.Number `json:"quantity"`
}

// Load reads the whole collection from disk.
// Missing, unreadable or malformed files yield an empty collection.
func (s *fileStore) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(ctx, "Data file does not exist, starting empty")
		} else {
			s.logger.WarnContext(ctx, "Failed to read data file, starting empty", "error", err)
		}
		return []Product{}, nil
	}

	products, err := decodeProducts(content)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to parse data file, starting empty", "error", err)
		return []Product{}, nil
	}

	s.logger.DebugContext(ctx, "Products loaded", "count", len(products))
	return products, nil
}

// Save writes the whole collection, replacing the file atomically.
func (s *fileStore) Save(ctx context.Context, products []Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeProducts(products)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode products", "error", err)
		return fmt.Errorf("failed to encode products: %w", err)
	}

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write data file", "error", err)
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	s.logger.DebugContext(ctx, "Products saved", "count", len(products))
	return nil
}

func encodeProducts(products []Product) ([]byte, error) {
	records := make([]savedRecord, 0, len(products))
	for _, p := range products {
		records = append(records, savedRecord{
			Name:     p.Name,
			Price:    json.Number(p.Price.String()),
			Quantity: p.Quantity,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeProducts(content []byte) ([]Product, error) {
	var records []loadedRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errors.New("expected a JSON array of products")
	}

	products := make([]Product, 0, len(records))
	for i, r := range records {
		p, err := r.toProduct()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (r loadedRecord) toProduct() (Product, error) {
	name := firstNonNil(r.Nome, r.Name)
	price := firstNonNil(r.Preco, r.Price)
	quantity := firstNonNil(r.Quantidade, r.Quantity)
	if name == nil || price == nil || quantity == nil {
		return Product{}, errors.New("missing name, price or quantity")
	}

	d, err := decimal.NewFromString(price.String())
	if err != nil {
		return Product{}, fmt.Errorf("price %q: %w", price.String(), err)
	}
	q, err := quantity.Int64()
	if err != nil {
		return Product{}, fmt.Errorf("quantity %q: %w", quantity.String(), err)
	}

	return Product{Name: *name, Price: d, Quantity: int(q)}, nil
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it over path,
// so readers never observe a half-written collection.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
