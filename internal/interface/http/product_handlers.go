package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domproduct "example.com/storefront-cart/internal/domain/product"
)

var errMissingProductID = errors.New("Missing product_id parameter")

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("product_id")
	if idStr == "" {
		respondError(w, http.StatusBadRequest, errMissingProductID)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, errMissingProductID)
		return
	}

	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domproduct.ErrProductNotFound) {
			// Storefront clients expect a 200 with an error field here,
			// not a 404.
			writeJSON(w, http.StatusOK, errorResponse{Error: "Product not found"})
			return
		}
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleProductRange(w http.ResponseWriter, r *http.Request) {
	first, err := strconv.ParseInt(chi.URLParam(r, "first"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	last, err := strconv.ParseInt(chi.URLParam(r, "last"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	products, err := a.productSvc.ListRange(r.Context(), first, last)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	payload := make([]map[string]any, 0, len(products))
	for _, p := range products {
		payload = append(payload, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, payload)
}
