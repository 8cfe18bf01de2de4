package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bestbuy/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyOrder      = errors.New("order has no items")
)

// OrderItem is a requested purchase of one product, referenced by name.
type OrderItem struct {
	Product  string
	Quantity int
}

// Receipt describes a completed order.
type Receipt struct {
	ID        uuid.UUID
	Items     []OrderItem
	Total     float64
	CreatedAt time.Time
}

// ProductView is a read-only snapshot of a product for listing.
type ProductView struct {
	Name      string
	Price     float64
	Quantity  int
	Active    bool
	Promotion string
	Display   string
}

// InventoryService defines the interface for store operations
type InventoryService interface {
	ListProducts(ctx context.Context) []ProductView
	TotalQuantity(ctx context.Context) int
	PlaceOrder(ctx context.Context, items []OrderItem) (*Receipt, error)
}

type inventoryService struct {
	mu     sync.Mutex
	store  *store.Store
	logger *zap.Logger
}

// NewInventoryService creates a new instance of InventoryService.
// The store is not safe for concurrent use, so every call is serialized.
func NewInventoryService(st *store.Store, logger *zap.Logger) InventoryService {
	return &inventoryService{
		store:  st,
		logger: logger,
	}
}

// ListProducts returns the active products in store order
func (s *inventoryService) ListProducts(ctx context.Context) []ProductView {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.store.AllProducts()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		view := ProductView{
			Name:     p.Name(),
			Price:    p.Price(),
			Quantity: p.Quantity(),
			Active:   p.IsActive(),
			Display:  p.Show(),
		}
		if promo := p.Promotion(); promo != nil {
			view.Promotion = promo.Name()
		}
		views = append(views, view)
	}

	return views
}

// TotalQuantity returns the stock held across all products
func (s *inventoryService) TotalQuantity(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.TotalQuantity()
}

// PlaceOrder resolves the items against the store and buys them in order.
// Items bought before a failing item are not rolled back.
func (s *inventoryService) PlaceOrder(ctx context.Context, items []OrderItem) (*Receipt, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]store.OrderLine, 0, len(items))
	for _, item := range items {
		product, ok := s.store.Product(item.Product)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrProductNotFound, item.Product)
		}
		lines = append(lines, store.OrderLine{Product: product, Quantity: item.Quantity})
	}

	total, err := s.store.Order(lines)
	if err != nil {
		s.logger.Warn("Order failed", zap.Int("items", len(items)), zap.Error(err))
		return nil, err
	}

	receipt := &Receipt{
		ID:        uuid.New(),
		Items:     items,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Info("Order placed",
		zap.String("order_id", receipt.ID.String()),
		zap.Int("items", len(items)),
		zap.Float64("total", total),
	)

	return receipt, nil
}
