package catalogfile

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domproduct "example.com/storefront-cart/internal/domain/product"
)

const feedFixture = `{"product_id": 1, "name": "Plain Tee", "price": "Rs.450", "size_selection": true, "image_url": "http://img/1.jpg"}
{"product_id": 2, "name": "Mug", "price": "Rs.1,200.50", "size_selection": false, "image_url": "http://img/2.jpg"}
not a json line
{"product_id": 7, "name": "Hoodie", "price": "Rs.1,200-450", "size_selection": false, "image_url": "http://img/7.jpg"}
`

func newTestReader(t *testing.T) *Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.txt")
	require.NoError(t, os.WriteFile(path, []byte(feedFixture), 0o644))
	return New(path, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestGetByID(t *testing.T) {
	r := newTestReader(t)

	p, err := r.GetByID(context.Background(), 2)

	require.NoError(t, err)
	require.Equal(t, "Mug", p.Name)
	require.Equal(t, "Rs.1,200.50", p.Price)
	require.False(t, p.SizeSelection)
}

func TestGetByID_Unknown(t *testing.T) {
	r := newTestReader(t)

	_, err := r.GetByID(context.Background(), 999)

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestGetByIDs_SkipsUnknown(t *testing.T) {
	r := newTestReader(t)

	products, err := r.GetByIDs(context.Background(), []int64{1, 999, 7})

	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, int64(1), products[0].ID)
	require.Equal(t, int64(7), products[1].ID)
}

func TestListRange_InclusiveBounds(t *testing.T) {
	r := newTestReader(t)

	products, err := r.ListRange(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestListRange_NoMatchesIsEmptySlice(t *testing.T) {
	r := newTestReader(t)

	products, err := r.ListRange(context.Background(), 100, 200)

	require.NoError(t, err)
	require.NotNil(t, products)
	require.Empty(t, products)
}

func TestReadAll_MalformedLineSkipped(t *testing.T) {
	r := newTestReader(t)

	products, err := r.ListRange(context.Background(), 0, 1000)

	require.NoError(t, err)
	require.Len(t, products, 3)
}

func TestAbsentFeedIsEmpty(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing.txt"), slog.New(slog.NewTextHandler(os.Stderr, nil)))

	products, err := r.ListRange(context.Background(), 0, 10)

	require.NoError(t, err)
	require.Empty(t, products)
}
