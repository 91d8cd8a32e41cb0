package http

import (
	"encoding/json"
	"io"
	"net/http"
)

func (a *API) handleOrderSuccess(w http.ResponseWriter, r *http.Request) {
	owner := ownerKey(r)

	// Caller-supplied metadata travels with the order summary untouched.
	metadata := map[string]any{}
	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &metadata); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	o, err := a.checkoutSvc.Submit(r.Context(), owner, metadata)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Order placed successfully",
		"order_reference": o.Reference,
	})
}
