// Package rest provides HTTP handlers for the storefront API.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/shopflow/storefront/internal/cart"
	"github.com/shopflow/storefront/internal/catalog"
	caterrors "github.com/shopflow/storefront/internal/catalog/errors"
	"github.com/shopflow/storefront/internal/catalog/query"
	"github.com/shopflow/storefront/internal/catalog/service"
	"github.com/shopflow/storefront/pkg/web"
)

type Handler struct {
	catalog  service.CatalogService
	cart     *cart.Store
	validate *validator.Validate
	logger   *slog.Logger
	cartOps  metric.Int64Counter

	// Global price bounds for the range selector, in cents.
	priceMin int64
	priceMax int64
}

// NewHandler creates the storefront API handler.
func NewHandler(catalogSvc service.CatalogService, cartStore *cart.Store, priceMin, priceMax int64, logger *slog.Logger) *Handler {
	meter := otel.Meter("storefront")
	cartOps, err := meter.Int64Counter("cart_operations", metric.WithDescription("Total number of cart mutation commands"))
	if err != nil {
		panic(fmt.Sprintf("failed to create cart_operations counter: %v", err))
	}
	return &Handler{
		catalog:  catalogSvc,
		cart:     cartStore,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
		cartOps:  cartOps,
		priceMin: priceMin,
		priceMax: priceMax,
	}
}

// RegisterRoutes registers the HTTP routes for the storefront.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/featured", h.FeaturedProducts)
			r.Get("/sale", h.OnSaleProducts)
			r.Get("/search", h.SearchProducts)
			r.Get("/{id}", h.FindProductByID)
		})
		r.Get("/categories/{category}", h.ProductsByCategory)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Route("/items/{productID}/{variantID}", func(r chi.Router) {
				r.Put("/", h.UpdateCartItem)
				r.Delete("/", h.RemoveCartItem)
			})
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// AddItemRequest is the body of POST /api/v1/cart/items. An empty
// variant_id targets the product's default variant.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

// UpdateItemRequest is the body of PUT /api/v1/cart/items/{...}. A quantity
// of zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// CartResponse is the cart view returned by every cart endpoint.
type CartResponse struct {
	Items     []cart.Line `json:"items"`
	Total     int64       `json:"total"`
	ItemCount int         `json:"item_count"`
}

// ListProducts returns the catalog filtered and sorted by the query
// parameters: sort, price_min, price_max, category (repeatable), in_stock,
// on_sale.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	filters, ok := h.parseFilters(w, r, mLogger)
	if !ok {
		return
	}

	products, err := h.catalog.GetAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving catalog", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	result := query.FilterAndSort(products, filters)
	mLogger.DebugContext(r.Context(), "Catalog query served", "matched", len(result), "sort", string(filters.Sort))
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id := chi.URLParam(r, "id")

	found, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FeaturedProducts returns the featured products.
func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "featured products", h.catalog.GetFeatured)
}

// OnSaleProducts returns the products currently on sale.
func (h *Handler) OnSaleProducts(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, "on-sale products", h.catalog.GetOnSale)
}

// SearchProducts returns products matching the q parameter.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	q := r.URL.Query().Get("q")
	if q == "" {
		web.RespondError(w, mLogger, http.StatusBadRequest, "q url parameter is required")
		return
	}

	list, err := h.catalog.Search(r.Context(), q)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error searching products", "q", q, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to search products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// ProductsByCategory returns products in the given category.
func (h *Handler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := chi.URLParam(r, "category")

	list, err := h.catalog.GetByCategory(r.Context(), category)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving category", "category", category, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// GetCart returns the current cart view.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartResponse())
}

// AddCartItem resolves the product (and variant) from the catalog and
// merges it into the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateStruct(w, r, mLogger, req) {
		return
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, caterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", req.ProductID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", req.ProductID))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", req.ProductID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	var variant *catalog.Variant
	if req.VariantID != "" && req.VariantID != cart.DefaultVariantID {
		v, err := product.Variant(req.VariantID)
		if errors.Is(err, caterrors.ErrVariantNotFound) {
			mLogger.WarnContext(r.Context(), "Variant not found", "ID", req.ProductID, "variant", req.VariantID)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Variant %s of product %s not found", req.VariantID, req.ProductID))
			return
		}
		variant = v
	}

	if err := h.cart.AddItem(*product, variant, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error adding item to cart", "ID", req.ProductID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	h.cartOps.Add(r.Context(), 1, metric.WithAttributes(attribute.String("operation", "add")))
	mLogger.DebugContext(r.Context(), "Item added to cart", "ID", req.ProductID, "quantity", req.Quantity)
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartResponse())
}

// UpdateCartItem replaces the quantity of a cart line; zero removes it.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateStruct(w, r, mLogger, req) {
		return
	}

	h.cart.UpdateQuantity(chi.URLParam(r, "productID"), chi.URLParam(r, "variantID"), req.Quantity)
	h.cartOps.Add(r.Context(), 1, metric.WithAttributes(attribute.String("operation", "update")))
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartResponse())
}

// RemoveCartItem deletes a cart line.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	h.cart.RemoveItem(chi.URLParam(r, "productID"), chi.URLParam(r, "variantID"))
	h.cartOps.Add(r.Context(), 1, metric.WithAttributes(attribute.String("operation", "remove")))
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartResponse())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	h.cart.Clear()
	h.cartOps.Add(r.Context(), 1, metric.WithAttributes(attribute.String("operation", "clear")))
	web.RespondJSON(w, mLogger, http.StatusOK, h.cartResponse())
}

// HealthCheck responds with 200 OK.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// parseFilters maps query parameters onto a FilterState. Price bounds run
// through the range selector so a malformed pair is clamped back into the
// global bounds instead of rejected.
func (h *Handler) parseFilters(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (query.FilterState, bool) {
	params := r.URL.Query()

	sort := query.SortFeatured
	if s := params.Get("sort"); s != "" {
		sort = query.SortMode(s)
		if !sort.Valid() {
			web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid sort mode: %s", s))
			return query.FilterState{}, false
		}
	}

	priceRange := query.NewPriceRange(h.priceMin, h.priceMax)
	if v, ok, valid := parsePrice(params.Get("price_min")); valid {
		if ok {
			priceRange.SetLow(v)
		}
	} else {
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid price_min: %s", params.Get("price_min")))
		return query.FilterState{}, false
	}
	if v, ok, valid := parsePrice(params.Get("price_max")); valid {
		if ok {
			priceRange.SetHigh(v)
		}
	} else {
		web.RespondError(w, mLogger, http.StatusBadRequest, fmt.Sprintf("Invalid price_max: %s", params.Get("price_max")))
		return query.FilterState{}, false
	}
	lo, hi := priceRange.Bounds()

	categories := make(map[string]struct{})
	for _, raw := range params["category"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories[c] = struct{}{}
			}
		}
	}

	return query.FilterState{
		Sort:       sort,
		PriceMin:   lo,
		PriceMax:   hi,
		Categories: categories,
		InStock:    params.Get("in_stock") == "true",
		OnSale:     params.Get("on_sale") == "true",
	}, true
}

// parsePrice parses an optional price parameter. ok reports presence,
// valid reports parseability.
func parsePrice(raw string) (v int64, ok bool, valid bool) {
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, false, false
	}
	return v, true, true
}

// validateStruct runs the request body through the validator and writes a
// field-level error response on failure.
func (h *Handler) validateStruct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, body any) bool {
	if err := h.validate.Struct(body); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, what string, fetch func(ctx context.Context) ([]catalog.Product, error)) {
	mLogger := h.loggerWithReqID(r)
	list, err := fetch(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving "+what, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch "+what)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *Handler) cartResponse() CartResponse {
	return CartResponse{
		Items:     h.cart.Items(),
		Total:     h.cart.Total(),
		ItemCount: h.cart.ItemCount(),
	}
}

func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	if reqID, ok := web.GetRequestID(r.Context()); ok {
		return h.logger.With("request_id", reqID)
	}
	return h.logger
}
