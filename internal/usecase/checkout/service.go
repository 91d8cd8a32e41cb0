package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domcart "example.com/storefront-cart/internal/domain/cart"
	domorder "example.com/storefront-cart/internal/domain/order"
)

type CartService interface {
	View(ctx context.Context, ownerKey string) (*domcart.View, error)
	Clear(ctx context.Context, ownerKey string) error
}

type Notifier interface {
	Notify(ctx context.Context, o *domorder.Order) error
}

// Service finalizes orders. The ordering is correctness-critical: the cart
// is cleared only after the notification channel confirms delivery, so a
// failed or timed-out notification leaves the cart intact for retry. The
// notify call runs outside any store lock.
type Service struct {
	carts         CartService
	notifier      Notifier
	notifyTimeout time.Duration
	log           *slog.Logger
	now           func() time.Time
}

func NewService(carts CartService, notifier Notifier, notifyTimeout time.Duration, log *slog.Logger) *Service {
	return &Service{
		carts:         carts,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		log:           log,
		now:           time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, ownerKey string, metadata map[string]any) (*domorder.Order, error) {
	view, err := s.carts.View(ctx, ownerKey)
	if err != nil {
		// Includes ErrEmptyCart: checking out an empty cart is a reported
		// outcome, not a fault.
		return nil, err
	}

	o := &domorder.Order{
		Reference: uuid.NewString(),
		OwnerKey:  ownerKey,
		Items:     view.Items,
		Total:     view.Total,
		Metadata:  metadata,
		PlacedAt:  s.now(),
	}

	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(nctx, o); err != nil {
		s.log.Warn("order notification not confirmed, cart preserved",
			"owner_key", ownerKey, "order_reference", o.Reference, "error", err)
		return nil, fmt.Errorf("%w: %v", domorder.ErrNotificationFailed, err)
	}

	if err := s.carts.Clear(ctx, ownerKey); err != nil {
		return nil, fmt.Errorf("clear cart after order %s: %w", o.Reference, err)
	}

	s.log.Info("order placed", "owner_key", ownerKey, "order_reference", o.Reference, "total", o.Total)
	return o, nil
}
