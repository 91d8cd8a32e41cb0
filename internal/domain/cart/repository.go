package cart

import "context"

// Repository persists the whole set of cart entries for every owner.
// There is no partial-update API: mutations load the full set, transform
// it, and write the full set back, so the merge invariants stay in one
// place (the cart usecase).
type Repository interface {
	// Load returns the persisted entries in storage order. An absent
	// backing medium is an empty cart, not an error.
	Load(ctx context.Context) ([]Entry, error)

	// Replace atomically overwrites the persisted set. Concurrent readers
	// observe either the old set or the new one, never a partial write.
	Replace(ctx context.Context, entries []Entry) error

	// Update runs fn over the loaded set and replaces it with fn's result,
	// holding the store's exclusive lock across the whole round trip. If fn
	// returns an error nothing is written.
	Update(ctx context.Context, fn func(entries []Entry) ([]Entry, error)) error
}
