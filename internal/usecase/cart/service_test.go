package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	domcart "example.com/storefront-cart/internal/domain/cart"
	domproduct "example.com/storefront-cart/internal/domain/product"
)

type mockCartRepository struct {
	entries  []domcart.Entry
	loadErr  error
	writeErr error
}

func (m *mockCartRepository) Load(ctx context.Context) ([]domcart.Entry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domcart.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *mockCartRepository) Replace(ctx context.Context, entries []domcart.Entry) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.entries = entries
	return nil
}

func (m *mockCartRepository) Update(ctx context.Context, fn func(entries []domcart.Entry) ([]domcart.Entry, error)) error {
	entries, err := m.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(entries)
	if err != nil {
		return err
	}
	return m.Replace(ctx, next)
}

type mockProductRepository struct {
	products map[int64]*domproduct.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: map[int64]*domproduct.Product{
			7: {ID: 7, Name: "Hoodie", Price: "Rs.1,200-450", SizeSelection: false, ImageURL: "http://img/7.jpg"},
			8: {ID: 8, Name: "Plain Tee", Price: "Rs.450", SizeSelection: true},
			9: {ID: 9, Name: "Mystery Box", Price: "call us", SizeSelection: false},
		},
	}
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	if p, ok := m.products[id]; ok {
		cloned := *p
		return &cloned, nil
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error) {
	var result []*domproduct.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			cloned := *p
			result = append(result, &cloned)
		}
	}
	return result, nil
}

func newTestService() (*Service, *mockCartRepository, *mockProductRepository) {
	cartRepo := &mockCartRepository{}
	productRepo := newMockProductRepository()
	svc := NewService(cartRepo, productRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, cartRepo, productRepo
}

func TestAdd_MergesSameKey(t *testing.T) {
	svc, cartRepo, _ := newTestService()

	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 2, ""))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 3, ""))

	require.Len(t, cartRepo.entries, 1)
	require.Equal(t, int64(5), cartRepo.entries[0].Quantity)
	require.False(t, cartRepo.entries[0].LastModified.IsZero())
}

func TestAdd_DifferentSizesAreDistinctEntries(t *testing.T) {
	svc, cartRepo, _ := newTestService()

	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 1, "m"))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 2, "XL"))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 1, "M"))

	require.Len(t, cartRepo.entries, 2)
	require.Equal(t, "M", cartRepo.entries[0].Size)
	require.Equal(t, int64(2), cartRepo.entries[0].Quantity)
	require.Equal(t, "XL", cartRepo.entries[1].Size)
	require.Equal(t, int64(2), cartRepo.entries[1].Quantity)
}

func TestAdd_SizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    string
		wantErr error
	}{
		{
			name:    "Missing size for sized product",
			size:    "",
			wantErr: domcart.ErrSizeRequired,
		},
		{
			name:    "Unknown size",
			size:    "XXXL",
			wantErr: domcart.ErrInvalidSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cartRepo, _ := newTestService()

			err := svc.Add(context.Background(), "10.0.0.1", 8, 1, tt.size)

			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, cartRepo.entries)
		})
	}
}

func TestAdd_SizeIgnoredWithoutSizeSelection(t *testing.T) {
	svc, cartRepo, _ := newTestService()

	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 1, "XL"))

	require.Len(t, cartRepo.entries, 1)
	require.Empty(t, cartRepo.entries[0].Size)
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, cartRepo, _ := newTestService()

	err := svc.Add(context.Background(), "10.0.0.1", 999, 1, "")

	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
	require.Empty(t, cartRepo.entries)
}

func TestAdd_InvalidQuantity(t *testing.T) {
	svc, _, _ := newTestService()

	for _, q := range []int64{0, -1} {
		err := svc.Add(context.Background(), "10.0.0.1", 7, q, "")
		require.ErrorIs(t, err, domcart.ErrInvalidQuantity)
	}
}

func TestRemove_PartialDecrement(t *testing.T) {
	svc, cartRepo, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 5, ""))

	msg, err := svc.Remove(context.Background(), "10.0.0.1", 7, 2, false)

	require.NoError(t, err)
	require.Equal(t, "Removed 2 items, 3 remaining", msg)
	require.Len(t, cartRepo.entries, 1)
	require.Equal(t, int64(3), cartRepo.entries[0].Quantity)
}

func TestRemove_QuantityAtOrAboveCurrentDeletes(t *testing.T) {
	for _, q := range []int64{5, 9} {
		svc, cartRepo, _ := newTestService()
		require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 5, ""))

		msg, err := svc.Remove(context.Background(), "10.0.0.1", 7, q, false)

		require.NoError(t, err)
		require.Equal(t, "Item completely removed from cart", msg)
		require.Empty(t, cartRepo.entries)
	}
}

func TestRemove_AllSentinel(t *testing.T) {
	svc, cartRepo, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 50, ""))

	msg, err := svc.Remove(context.Background(), "10.0.0.1", 7, 0, true)

	require.NoError(t, err)
	require.Equal(t, "Item completely removed from cart", msg)
	require.Empty(t, cartRepo.entries)
}

func TestRemove_SizeAgnosticFirstMatch(t *testing.T) {
	svc, cartRepo, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 1, "S"))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 2, "L"))

	_, err := svc.Remove(context.Background(), "10.0.0.1", 8, 0, true)

	require.NoError(t, err)
	require.Len(t, cartRepo.entries, 1)
	require.Equal(t, "L", cartRepo.entries[0].Size)
}

func TestRemove_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.2", 7, 1, ""))

	_, err := svc.Remove(context.Background(), "10.0.0.1", 7, 1, false)

	require.ErrorIs(t, err, domcart.ErrItemNotFound)
}

func TestView_TotalsUseResolverConvention(t *testing.T) {
	svc, _, _ := newTestService()
	// Product 7 is priced "Rs.1,200-450"; the resolver takes the final bound.
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 3, ""))

	view, err := svc.View(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 450.0, view.Items[0].UnitPrice)
	require.Equal(t, 1350.0, view.Items[0].Subtotal)
	require.Equal(t, 1350.0, view.Total)
}

func TestView_TotalIsSumOfSubtotals(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 2, ""))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 3, "M"))

	view, err := svc.View(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	var sum float64
	for _, item := range view.Items {
		require.Equal(t, item.UnitPrice*float64(item.Quantity), item.Subtotal)
		sum += item.Subtotal
	}
	require.Equal(t, sum, view.Total)
}

func TestView_StaleProductDropped(t *testing.T) {
	svc, _, productRepo := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 1, ""))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 8, 1, "M"))

	delete(productRepo.products, 7)

	view, err := svc.View(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, int64(8), view.Items[0].ProductID)
}

func TestView_AllEntriesStaleIsEmptyCart(t *testing.T) {
	svc, _, productRepo := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 1, ""))

	delete(productRepo.products, 7)

	_, err := svc.View(context.Background(), "10.0.0.1")

	require.ErrorIs(t, err, domcart.ErrEmptyCart)
}

func TestView_MalformedPriceDegradesToZero(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 9, 2, ""))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 1, ""))

	view, err := svc.View(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	require.Equal(t, 0.0, view.Items[0].UnitPrice)
	require.Equal(t, 0.0, view.Items[0].Subtotal)
	require.Equal(t, 450.0, view.Total)
}

func TestView_EmptyCart(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.View(context.Background(), "10.0.0.1")

	require.ErrorIs(t, err, domcart.ErrEmptyCart)
}

func TestView_OwnersAreIsolated(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 3, ""))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.2", 7, 9, ""))

	view, err := svc.View(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, int64(3), view.Items[0].Quantity)
}

func TestClear_RemovesOnlyOwnersEntries(t *testing.T) {
	svc, cartRepo, _ := newTestService()
	require.NoError(t, svc.Add(context.Background(), "10.0.0.1", 7, 3, ""))
	require.NoError(t, svc.Add(context.Background(), "10.0.0.2", 7, 9, ""))

	require.NoError(t, svc.Clear(context.Background(), "10.0.0.1"))

	require.Len(t, cartRepo.entries, 1)
	require.Equal(t, "10.0.0.2", cartRepo.entries[0].OwnerKey)
}
