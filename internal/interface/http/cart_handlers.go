package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	domcart "example.com/storefront-cart/internal/domain/cart"
)

type addToCartRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size"`
}

type removeItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	// Quantity may be a number, the string "all", or absent (same as "all").
	Quantity any `json:"quantity"`
}

func (a *API) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	owner := ownerKey(r)

	var req addToCartRequest
	// The legacy storefront sends these as query parameters; newer clients
	// post a JSON body.
	if r.URL.Query().Get("product_id") != "" {
		var err error
		q := r.URL.Query()
		if req.ProductID, err = strconv.ParseInt(q.Get("product_id"), 10, 64); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if req.Quantity, err = strconv.ParseInt(q.Get("quantity"), 10, 64); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		req.Size = q.Get("size")
		if err := a.validator.Struct(&req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	} else if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.cartSvc.Add(r.Context(), owner, req.ProductID, req.Quantity, req.Size); err != nil {
		handleDomainError(w, err)
		return
	}

	view, err := a.cartSvc.View(r.Context(), owner)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Added to cart successfully",
		"cart_items": mapCartView(view),
	})
}

func (a *API) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	owner := ownerKey(r)

	var req removeItemRequest
	if r.URL.Query().Get("product_id") != "" {
		var err error
		q := r.URL.Query()
		if req.ProductID, err = strconv.ParseInt(q.Get("product_id"), 10, 64); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		if raw := q.Get("quantity"); raw != "" {
			req.Quantity = raw
		}
		if err := a.validator.Struct(&req); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	} else if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	quantity, removeAll, err := parseRemoveQuantity(req.Quantity)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	message, err := a.cartSvc.Remove(r.Context(), owner, req.ProductID, quantity, removeAll)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	// The view may legitimately be empty after removing the last item.
	view, err := a.cartSvc.View(r.Context(), owner)
	if err != nil && !errors.Is(err, domcart.ErrEmptyCart) {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    message,
		"cart_items": mapCartView(view),
	})
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	view, err := a.cartSvc.View(r.Context(), ownerKey(r))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart_items": mapCartView(view)})
}

// parseRemoveQuantity interprets the removal amount: absent or "all" means
// the whole entry, a number means a decrement.
func parseRemoveQuantity(v any) (int64, bool, error) {
	switch q := v.(type) {
	case nil:
		return 0, true, nil
	case string:
		if q == "" || strings.EqualFold(q, "all") {
			return 0, true, nil
		}
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n <= 0 {
			return 0, false, domcart.ErrInvalidQuantity
		}
		return n, false, nil
	case float64:
		n := int64(q)
		if n <= 0 || float64(n) != q {
			return 0, false, domcart.ErrInvalidQuantity
		}
		return n, false, nil
	default:
		return 0, false, domcart.ErrInvalidQuantity
	}
}
