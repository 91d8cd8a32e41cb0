package cart

import (
	"strings"
	"time"
)

// Entry is one persisted cart line. At most one entry exists per
// (OwnerKey, ProductID, Size) triple; an empty Size is itself a distinct
// key value, used for products without size selection.
type Entry struct {
	OwnerKey     string
	ProductID    int64
	Size         string
	Quantity     int64
	LastModified time.Time
}

// SameKey reports whether two entries address the same cart line.
func (e Entry) SameKey(ownerKey string, productID int64, size string) bool {
	return e.OwnerKey == ownerKey && e.ProductID == productID && e.Size == size
}

// Item is one catalog-enriched line of a cart view.
type Item struct {
	ProductID int64
	Name      string
	Size      string
	Quantity  int64
	UnitPrice float64
	Subtotal  float64
	ImageURL  string
}

// View is the per-request projection of one owner's cart. It is recomputed
// on every read and never persisted.
type View struct {
	OwnerKey string
	Items    []Item
	Total    float64
}

var sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// NormalizeSize validates a size against the fixed enumeration,
// case-insensitively, and returns its canonical uppercase form.
func NormalizeSize(size string) (string, error) {
	if strings.TrimSpace(size) == "" {
		return "", ErrSizeRequired
	}
	upper := strings.ToUpper(strings.TrimSpace(size))
	for _, s := range sizes {
		if upper == s {
			return upper, nil
		}
	}
	return "", ErrInvalidSize
}
