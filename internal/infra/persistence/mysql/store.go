package mysql

import (
	"context"
	"database/sql"
	"fmt"

	domcart "example.com/storefront-cart/internal/domain/cart"
)

// Store is the transactional alternative to the file-backed cart store.
// It keeps the same whole-set Load/Replace/Update contract; exclusivity
// during a read-modify-write comes from running the whole cycle in one
// transaction with the read locked FOR UPDATE.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectEntries = `
        SELECT owner_key, product_id, size, quantity, last_modified
        FROM cart_entries
        ORDER BY id`

func (s *Store) Load(ctx context.Context) ([]domcart.Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntries)
	if err != nil {
		return nil, fmt.Errorf("load cart entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) Replace(ctx context.Context, entries []domcart.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if err := replaceInTx(ctx, tx, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Update(ctx context.Context, fn func(entries []domcart.Entry) ([]domcart.Entry, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, selectEntries+` FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("load cart entries: %w", err)
	}
	entries, err := scanEntries(rows)
	rows.Close()
	if err != nil {
		return err
	}

	next, err := fn(entries)
	if err != nil {
		return err
	}
	if err := replaceInTx(ctx, tx, next); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceInTx(ctx context.Context, tx *sql.Tx, entries []domcart.Entry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_entries`); err != nil {
		return fmt.Errorf("clear cart entries: %w", err)
	}
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
        INSERT INTO cart_entries (owner_key, product_id, size, quantity, last_modified)
        VALUES (?, ?, ?, ?, ?)
    `, e.OwnerKey, e.ProductID, e.Size, e.Quantity, e.LastModified)
		if err != nil {
			return fmt.Errorf("insert cart entry: %w", err)
		}
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]domcart.Entry, error) {
	entries := []domcart.Entry{}
	for rows.Next() {
		var e domcart.Entry
		if err := rows.Scan(&e.OwnerKey, &e.ProductID, &e.Size, &e.Quantity, &e.LastModified); err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart entries: %w", err)
	}
	return entries, nil
}
