package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domcart "example.com/storefront-cart/internal/domain/cart"
	domproduct "example.com/storefront-cart/internal/domain/product"
)

type CartRepository interface {
	domcart.Repository
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domproduct.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domproduct.Product, error)
}

// Service owns the cart merge/split invariants: one entry per
// (owner, product, size) triple, quantities folded together on repeat adds.
type Service struct {
	store    CartRepository
	products ProductRepository
	log      *slog.Logger
	now      func() time.Time
}

func NewService(store CartRepository, products ProductRepository, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		log:      log,
		now:      time.Now,
	}
}

// Add merges quantity into the entry keyed by (ownerKey, productID, size),
// creating it on first add. For products with size selection the size must be
// one of the fixed enumeration; for the rest any supplied size is ignored.
func (s *Service) Add(ctx context.Context, ownerKey string, productID, quantity int64, size string) error {
	if quantity <= 0 {
		return domcart.ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if p.SizeSelection {
		size, err = domcart.NormalizeSize(size)
		if err != nil {
			return err
		}
	} else {
		size = ""
	}

	return s.store.Update(ctx, func(entries []domcart.Entry) ([]domcart.Entry, error) {
		for i := range entries {
			if entries[i].SameKey(ownerKey, productID, size) {
				entries[i].Quantity += quantity
				entries[i].LastModified = s.now()
				return entries, nil
			}
		}
		return append(entries, domcart.Entry{
			OwnerKey:     ownerKey,
			ProductID:    productID,
			Size:         size,
			Quantity:     quantity,
			LastModified: s.now(),
		}), nil
	})
}

// Remove decrements the first entry matching owner and product, in storage
// order and regardless of size. Removing all of it, or more than is there,
// deletes the entry; removeAll treats the request as unbounded.
func (s *Service) Remove(ctx context.Context, ownerKey string, productID, quantity int64, removeAll bool) (string, error) {
	if !removeAll && quantity <= 0 {
		return "", domcart.ErrInvalidQuantity
	}

	var message string
	err := s.store.Update(ctx, func(entries []domcart.Entry) ([]domcart.Entry, error) {
		for i := range entries {
			if entries[i].OwnerKey != ownerKey || entries[i].ProductID != productID {
				continue
			}
			if removeAll || quantity >= entries[i].Quantity {
				message = "Item completely removed from cart"
				return append(entries[:i], entries[i+1:]...), nil
			}
			entries[i].Quantity -= quantity
			entries[i].LastModified = s.now()
			message = fmt.Sprintf("Removed %d items, %d remaining", quantity, entries[i].Quantity)
			return entries, nil
		}
		return nil, domcart.ErrItemNotFound
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// View joins the owner's entries against the catalog. Entries whose product
// has left the catalog are dropped silently; a malformed catalog price
// degrades that line to a zero unit price instead of failing the view.
// An empty result is reported as ErrEmptyCart, not as a fault.
func (s *Service) View(ctx context.Context, ownerKey string) (*domcart.View, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]domcart.Entry, 0, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if e.OwnerKey == ownerKey {
			owned = append(owned, e)
			ids = append(ids, e.ProductID)
		}
	}
	if len(owned) == 0 {
		return nil, domcart.ErrEmptyCart
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domproduct.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := &domcart.View{
		OwnerKey: ownerKey,
		Items:    make([]domcart.Item, 0, len(owned)),
	}
	for _, e := range owned {
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		unit, err := domproduct.ResolvePrice(p.Price)
		if err != nil {
			if !errors.Is(err, domproduct.ErrBadPrice) {
				return nil, err
			}
			s.log.Warn("malformed catalog price, pricing line at zero",
				"product_id", p.ID, "price", p.Price)
			unit = 0
		}
		subtotal := unit * float64(e.Quantity)
		view.Items = append(view.Items, domcart.Item{
			ProductID: e.ProductID,
			Name:      p.Name,
			Size:      e.Size,
			Quantity:  e.Quantity,
			UnitPrice: unit,
			Subtotal:  subtotal,
			ImageURL:  p.ImageURL,
		})
		view.Total += subtotal
	}
	if len(view.Items) == 0 {
		return nil, domcart.ErrEmptyCart
	}
	return view, nil
}

// Clear drops every entry belonging to ownerKey, leaving other owners'
// entries untouched.
func (s *Service) Clear(ctx context.Context, ownerKey string) error {
	return s.store.Update(ctx, func(entries []domcart.Entry) ([]domcart.Entry, error) {
		kept := entries[:0]
		for _, e := range entries {
			if e.OwnerKey != ownerKey {
				kept = append(kept, e)
			}
		}
		return kept, nil
	})
}
