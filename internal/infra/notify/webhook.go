package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	domorder "example.com/storefront-cart/internal/domain/order"
)

// Webhook delivers order summaries as a JSON POST to a configured URL.
// Delivery is confirmed only by a 2xx response; the deadline comes from the
// caller's context.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{url: url, client: &http.Client{}}
}

func (w *Webhook) Notify(ctx context.Context, o *domorder.Order) error {
	body, err := marshalOrder(o)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
