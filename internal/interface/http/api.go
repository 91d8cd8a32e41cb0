package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	domcart "example.com/storefront-cart/internal/domain/cart"
	domorder "example.com/storefront-cart/internal/domain/order"
	domproduct "example.com/storefront-cart/internal/domain/product"
	cartuc "example.com/storefront-cart/internal/usecase/cart"
	checkoutuc "example.com/storefront-cart/internal/usecase/checkout"
	productuc "example.com/storefront-cart/internal/usecase/product"
)

type API struct {
	productSvc  *productuc.Service
	cartSvc     *cartuc.Service
	checkoutSvc *checkoutuc.Service
	validator   *validator.Validate
}

type Dependencies struct {
	ProductService  *productuc.Service
	CartService     *cartuc.Service
	CheckoutService *checkoutuc.Service
}

func NewAPI(deps Dependencies) *API {
	return &API{
		productSvc:  deps.ProductService,
		cartSvc:     deps.CartService,
		checkoutSvc: deps.CheckoutService,
		validator:   validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", a.handleGetProduct)
	r.Get("/fetch_product_range/{first}_{last}", a.handleProductRange)
	r.Post("/add_to_cart/", a.handleAddToCart)
	r.Post("/remove_item/", a.handleRemoveItem)
	r.Get("/cart/", a.handleGetCart)
	r.Post("/order_success/", a.handleOrderSuccess)

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"product_id":     p.ID,
		"name":           p.Name,
		"price":          p.Price,
		"size_selection": p.SizeSelection,
		"image_url":      p.ImageURL,
	}
}

// mapCartView keeps the original response shape: money rendered in the
// feed's currency notation, size present only when the entry has one.
func mapCartView(view *domcart.View) map[string]any {
	if view == nil {
		return map[string]any{
			"items":            []map[string]any{},
			"total_cart_value": domproduct.FormatPrice(0),
		}
	}
	items := make([]map[string]any, 0, len(view.Items))
	for _, item := range view.Items {
		m := map[string]any{
			"product_id":     item.ProductID,
			"name":           item.Name,
			"quantity":       item.Quantity,
			"price_per_item": domproduct.FormatPrice(item.UnitPrice),
			"item_total":     domproduct.FormatPrice(item.Subtotal),
			"image_url":      item.ImageURL,
		}
		if item.Size != "" {
			m["size"] = item.Size
		}
		items = append(items, m)
	}
	return map[string]any{
		"items":            items,
		"total_cart_value": domproduct.FormatPrice(view.Total),
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domcart.ErrSizeRequired),
		errors.Is(err, domcart.ErrInvalidSize):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domcart.ErrItemNotFound),
		errors.Is(err, domcart.ErrEmptyCart):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domorder.ErrNotificationFailed):
		respondError(w, http.StatusBadGateway, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
