package notify

import (
	"encoding/json"
	"time"

	domorder "example.com/storefront-cart/internal/domain/order"
	domproduct "example.com/storefront-cart/internal/domain/product"
)

type orderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Quantity  int64  `json:"quantity"`
	Subtotal  string `json:"item_total"`
}

type orderPayload struct {
	Reference string         `json:"order_reference"`
	OwnerKey  string         `json:"owner_key"`
	Items     []orderItem    `json:"items"`
	Total     string         `json:"total"`
	Summary   string         `json:"summary"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	PlacedAt  time.Time      `json:"placed_at"`
}

func marshalOrder(o *domorder.Order) ([]byte, error) {
	items := make([]orderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Subtotal:  domproduct.FormatPrice(item.Subtotal),
		})
	}
	return json.Marshal(orderPayload{
		Reference: o.Reference,
		OwnerKey:  o.OwnerKey,
		Items:     items,
		Total:     domproduct.FormatPrice(o.Total),
		Summary:   o.Summary(),
		Metadata:  o.Metadata,
		PlacedAt:  o.PlacedAt,
	})
}
