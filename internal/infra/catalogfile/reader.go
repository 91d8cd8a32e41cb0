package catalogfile

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	domproduct "example.com/storefront-cart/internal/domain/product"
)

// Reader serves product lookups from the append-only feed file, one JSON
// object per line. The feed is maintained by a separate process; the reader
// re-reads it on every call and never writes to it. Malformed lines are
// skipped, matching the cart store's per-record corruption rule.
type Reader struct {
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Reader {
	return &Reader{path: path, log: log}
}

type record struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	SizeSelection bool   `json:"size_selection"`
	ImageURL      string `json:"image_url"`
}

func (r *Reader) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	products, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}

func (r *Reader) GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error) {
	products, err := r.readAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domproduct.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	result := make([]*domproduct.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *Reader) ListRange(ctx context.Context, first, last int64) ([]*domproduct.Product, error) {
	products, err := r.readAll()
	if err != nil {
		return nil, err
	}
	result := make([]*domproduct.Product, 0, len(products))
	for _, p := range products {
		if p.ID >= first && p.ID <= last {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *Reader) readAll() ([]*domproduct.Product, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domproduct.Product{}, nil
		}
		return nil, fmt.Errorf("open product feed: %w", err)
	}
	defer f.Close()

	products := []*domproduct.Product{}
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.log.Warn("skipping malformed product record", "path", r.path, "line", line, "error", err)
			continue
		}
		products = append(products, &domproduct.Product{
			ID:            rec.ProductID,
			Name:          rec.Name,
			Price:         rec.Price,
			SizeSelection: rec.SizeSelection,
			ImageURL:      rec.ImageURL,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read product feed: %w", err)
	}
	return products, nil
}
