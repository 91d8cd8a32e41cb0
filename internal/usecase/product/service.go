package product

import (
	"context"

	dom "example.com/storefront-cart/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListRange(ctx context.Context, first, last int64) ([]*dom.Product, error) {
	return s.repo.ListRange(ctx, first, last)
}
