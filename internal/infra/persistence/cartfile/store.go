package cartfile

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	domcart "example.com/storefront-cart/internal/domain/cart"
)

// Store persists cart entries as one JSON object per line. Writes go to a
// temp file in the same directory followed by a rename, so a crash never
// leaves the cart half-written. A read/write lock spans every load and the
// whole read-modify-write of Update, which is what makes Replace appear
// atomic to concurrent readers.
type Store struct {
	path string
	log  *slog.Logger

	mu sync.RWMutex
}

func New(path string, log *slog.Logger) *Store {
	return &Store{path: path, log: log}
}

type record struct {
	OwnerKey     string    `json:"owner_key"`
	ProductID    int64     `json:"product_id"`
	Size         string    `json:"size,omitempty"`
	Quantity     int64     `json:"quantity"`
	LastModified time.Time `json:"last_modified"`
}

func (s *Store) Load(ctx context.Context) ([]domcart.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLocked()
}

func (s *Store) Replace(ctx context.Context, entries []domcart.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(entries)
}

func (s *Store) Update(ctx context.Context, fn func(entries []domcart.Entry) ([]domcart.Entry, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		return err
	}
	next, err := fn(entries)
	if err != nil {
		return err
	}
	return s.writeLocked(next)
}

func (s *Store) readLocked() ([]domcart.Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First use, nothing persisted yet.
			return []domcart.Entry{}, nil
		}
		return nil, fmt.Errorf("open cart file: %w", err)
	}
	defer f.Close()

	entries := []domcart.Entry{}
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
			// One corrupt record must not invalidate the whole cart.
			s.log.Warn("skipping corrupt cart record", "path", s.path, "line", line, "error", err)
			continue
		}
		entries = append(entries, domcart.Entry{
			OwnerKey:     rec.OwnerKey,
			ProductID:    rec.ProductID,
			Size:         rec.Size,
			Quantity:     rec.Quantity,
			LastModified: rec.LastModified,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}
	return entries, nil
}

func (s *Store) writeLocked(entries []domcart.Entry) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create cart temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, e := range entries {
		rec := record{
			OwnerKey:     e.OwnerKey,
			ProductID:    e.ProductID,
			Size:         e.Size,
			Quantity:     e.Quantity,
			LastModified: e.LastModified,
		}
		if err := enc.Encode(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("encode cart record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush cart temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync cart temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cart temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}
