package order

import (
	"fmt"
	"strings"
	"time"

	domcart "example.com/storefront-cart/internal/domain/cart"
	domproduct "example.com/storefront-cart/internal/domain/product"
)

// Order is the transient aggregate built at checkout: one owner's cart view
// plus caller-supplied metadata. It only lives for the duration of a single
// submit call; the notification channel receives it and the cart is cleared.
type Order struct {
	Reference string
	OwnerKey  string
	Items     []domcart.Item
	Total     float64
	Metadata  map[string]any
	PlacedAt  time.Time
}

// Summary renders the human-readable order text sent to the notification
// channel.
func (o *Order) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s from %s\n", o.Reference, o.OwnerKey)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s", item.Name)
		if item.Size != "" {
			fmt.Fprintf(&b, " (%s)", item.Size)
		}
		fmt.Fprintf(&b, " x%d = %s\n", item.Quantity, domproduct.FormatPrice(item.Subtotal))
	}
	fmt.Fprintf(&b, "Total: %s", domproduct.FormatPrice(o.Total))
	return b.String()
}
