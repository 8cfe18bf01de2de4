package service

import (
	"context"
	"sync"
	"testing"

	"bestbuy/internal/domain"
	"bestbuy/internal/store"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestStore(t *testing.T) (*store.Store, *domain.StandardProduct, *domain.LimitedProduct) {
	t.Helper()
	mac, err := domain.NewProduct("MacBook Air M2", 1450, 100)
	require.NoError(t, err)
	mac.SetPromotion(domain.NewSecondHalfPrice("Second Half price!"))

	shipping, err := domain.NewLimitedProduct("Shipping", 10, 250, 1)
	require.NoError(t, err)

	sold, err := domain.NewProduct("Sold Out", 5, 0)
	require.NoError(t, err)
	sold.Deactivate()

	return store.New(mac, shipping, sold), mac, shipping
}

func TestListProducts(t *testing.T) {
	st, _, _ := newTestStore(t)
	svc := NewInventoryService(st, zap.NewNop())

	views := svc.ListProducts(context.Background())
	require.Len(t, views, 2)

	assert.Equal(t, ProductView{
		Name:      "MacBook Air M2",
		Price:     1450,
		Quantity:  100,
		Active:    true,
		Promotion: "Second Half price!",
		Display:   "MacBook Air M2, Price: 1450, Quantity: 100 [Promotion: Second Half price!]",
	}, views[0])
	assert.Empty(t, views[1].Promotion)
	assert.Equal(t, 350, svc.TotalQuantity(context.Background()))
}

func TestPlaceOrder_Success(t *testing.T) {
	st, mac, shipping := newTestStore(t)
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewInventoryService(st, zap.New(core))

	receipt, err := svc.PlaceOrder(context.Background(), []OrderItem{
		{Product: "MacBook Air M2", Quantity: 2},
		{Product: "Shipping", Quantity: 1},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, receipt.ID)
	assert.Equal(t, 2185.0, receipt.Total)
	assert.Len(t, receipt.Items, 2)
	assert.Equal(t, 98, mac.Quantity())
	assert.Equal(t, 249, shipping.Quantity())

	placed := logs.FilterMessage("Order placed").All()
	require.Len(t, placed, 1)
	assert.Equal(t, receipt.ID.String(), placed[0].ContextMap()["order_id"])
}

func TestPlaceOrder_UnknownProductBuysNothing(t *testing.T) {
	st, mac, _ := newTestStore(t)
	svc := NewInventoryService(st, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), []OrderItem{
		{Product: "MacBook Air M2", Quantity: 2},
		{Product: "Nintendo Switch", Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 100, mac.Quantity())
}

func TestPlaceOrder_PartialFailureIsNotRolledBack(t *testing.T) {
	st, mac, shipping := newTestStore(t)
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewInventoryService(st, zap.New(core))

	_, err := svc.PlaceOrder(context.Background(), []OrderItem{
		{Product: "MacBook Air M2", Quantity: 3},
		{Product: "Shipping", Quantity: 2},
	})

	assert.ErrorIs(t, err, domain.ErrOrderLimitExceeded)
	assert.Equal(t, 97, mac.Quantity())
	assert.Equal(t, 250, shipping.Quantity())
	assert.Equal(t, 1, logs.FilterMessage("Order failed").Len())
}

func TestPlaceOrder_EmptyAndCancelled(t *testing.T) {
	st, _, _ := newTestStore(t)
	svc := NewInventoryService(st, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.PlaceOrder(ctx, []OrderItem{{Product: "Shipping", Quantity: 1}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 350, svc.TotalQuantity(context.Background()))
}

func TestPlaceOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	pixel, err := domain.NewProduct("Google Pixel 7", 500, 50)
	require.NoError(t, err)
	svc := NewInventoryService(store.New(pixel), zap.NewNop())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.PlaceOrder(context.Background(), []OrderItem{{Product: "Google Pixel 7", Quantity: 1}}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	assert.Equal(t, 0, pixel.Quantity())
	assert.False(t, pixel.IsActive())
}

func TestProperty_ReceiptTotalMatchesPricing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("receipt total equals price*quantity without promotion", prop.ForAll(
		func(price float64, quantity int) bool {
			p, err := domain.NewProduct("Bose QuietComfort Earbuds", price, 1000)
			if err != nil {
				return false
			}
			svc := NewInventoryService(store.New(p), zap.NewNop())

			receipt, err := svc.PlaceOrder(context.Background(), []OrderItem{{Product: p.Name(), Quantity: quantity}})
			if err != nil {
				return false
			}
			return receipt.Total == price*float64(quantity) && p.Quantity() == 1000-quantity
		},
		gen.Float64Range(0, 5000),
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
