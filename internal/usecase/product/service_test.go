package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	dom "example.com/storefront-cart/internal/domain/product"
)

type mockProductRepository struct {
	products map[int64]*dom.Product
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, dom.ErrProductNotFound
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*dom.Product, error) {
	var result []*dom.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) ListRange(ctx context.Context, first, last int64) ([]*dom.Product, error) {
	result := []*dom.Product{}
	for id, p := range m.products {
		if id >= first && id <= last {
			result = append(result, p)
		}
	}
	return result, nil
}

func TestGetByID(t *testing.T) {
	repo := &mockProductRepository{products: map[int64]*dom.Product{
		1: {ID: 1, Name: "Mug", Price: "Rs.450"},
	}}
	svc := NewService(repo)

	p, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, "Mug", p.Name)

	_, err = svc.GetByID(context.Background(), 2)
	require.ErrorIs(t, err, dom.ErrProductNotFound)
}

func TestListRange(t *testing.T) {
	repo := &mockProductRepository{products: map[int64]*dom.Product{
		1: {ID: 1}, 5: {ID: 5}, 9: {ID: 9},
	}}
	svc := NewService(repo)

	products, err := svc.ListRange(context.Background(), 1, 5)

	require.NoError(t, err)
	require.Len(t, products, 2)
}
