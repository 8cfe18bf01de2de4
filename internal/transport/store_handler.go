package transport

import (
	"errors"
	"net/http"
	"time"

	"bestbuy/internal/domain"
	"bestbuy/internal/middleware"
	"bestbuy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderItemRequest is one line of a shopping list
type OrderItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// OrderRequest represents the order request payload
type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderResponse represents a completed order
type OrderResponse struct {
	ID        string             `json:"id"`
	Items     []OrderItemRequest `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt string             `json:"created_at"`
}

type ProductResponse struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Active    bool    `json:"active"`
	Promotion string  `json:"promotion,omitempty"`
	Display   string  `json:"display"`
}

type TotalQuantityResponse struct {
	TotalQuantity int `json:"total_quantity"`
}

// StoreHandler exposes the inventory service over HTTP
type StoreHandler struct {
	inventory service.InventoryService
	logger    *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(inventory service.InventoryService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		inventory: inventory,
		logger:    logger,
	}
}

// RegisterRoutes registers all store routes
func (h *StoreHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/total", h.TotalQuantity)
		r.Post("/orders", h.PlaceOrder)
	})
}

// ListProducts returns the active products in store order
func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	views := h.inventory.ListProducts(r.Context())

	products := make([]ProductResponse, 0, len(views))
	for _, v := range views {
		products = append(products, ProductResponse{
			Name:      v.Name,
			Price:     v.Price,
			Quantity:  v.Quantity,
			Active:    v.Active,
			Promotion: v.Promotion,
			Display:   v.Display,
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *StoreHandler) TotalQuantity(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, TotalQuantityResponse{
		TotalQuantity: h.inventory.TotalQuantity(r.Context()),
	})
}

// PlaceOrder buys every requested item and returns the order total
func (h *StoreHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItem{Product: item.Product, Quantity: item.Quantity})
	}

	receipt, err := h.inventory.PlaceOrder(r.Context(), items)
	if err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Order failed", zap.Error(err))
			middleware.RespondWithError(w, status, "failed to place order")
			return
		}
		middleware.RespondWithError(w, status, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, OrderResponse{
		ID:        receipt.ID.String(),
		Items:     req.Items,
		Total:     receipt.Total,
		CreatedAt: receipt.CreatedAt.Format(time.RFC3339),
	})
}

func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, service.ErrEmptyOrder):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInactiveProduct),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOrderLimitExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
