package product

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Product, error)
	ListRange(ctx context.Context, first, last int64) ([]*Product, error)
}
