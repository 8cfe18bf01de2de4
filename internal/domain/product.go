package domain

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Product is a single catalog entry that can be listed and bought.
type Product interface {
	Name() string
	Price() float64
	Quantity() int
	SetQuantity(quantity int) error
	IsActive() bool
	Activate()
	Deactivate()
	Promotion() Promotion
	SetPromotion(promotion Promotion)
	Show() string
	// Buy purchases quantity items and returns their total cost.
	Buy(quantity int) (float64, error)
}

type productDetails struct {
	Name     string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Quantity int     `validate:"gte=0"`
}

type limitDetails struct {
	Maximum int `validate:"gte=1"`
}

func validateDetails(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// StandardProduct tracks stock and deactivates itself when it sells out.
type StandardProduct struct {
	name      string
	price     float64
	quantity  int
	active    bool
	promotion Promotion
}

// NewProduct creates an active stocked product.
func NewProduct(name string, price float64, quantity int) (*StandardProduct, error) {
	if err := validateDetails(productDetails{Name: name, Price: price, Quantity: quantity}); err != nil {
		return nil, err
	}

	return &StandardProduct{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   true,
	}, nil
}

func (p *StandardProduct) Name() string { return p.name }
func (p *StandardProduct) Price() float64 { return p.price }
func (p *StandardProduct) Quantity() int { return p.quantity }

// SetQuantity replaces the stock level; zero stock deactivates the product.
func (p *StandardProduct) SetQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidArgument)
	}
	p.quantity = quantity
	if p.quantity == 0 {
		p.Deactivate()
	}
	return nil
}

func (p *StandardProduct) IsActive() bool { return p.active }
func (p *StandardProduct) Activate() { p.active = true }
func (p *StandardProduct) Deactivate() { p.active = false }

func (p *StandardProduct) Promotion() Promotion { return p.promotion }

// SetPromotion replaces the current promotion. A nil promotion removes it.
func (p *StandardProduct) SetPromotion(promotion Promotion) { p.promotion = promotion }

// Show renders "<name>, Price: <price>, Quantity: <quantity>" plus any promotion.
func (p *StandardProduct) Show() string {
	return fmt.Sprintf("%s, Price: %s, Quantity: %d", p.name, formatPrice(p.price), p.quantity) + p.promotionSuffix()
}

// Buy checks activation and stock, charges the promotion price if one is set,
// and removes quantity items from stock.
func (p *StandardProduct) Buy(quantity int) (float64, error) {
	if err := p.checkPurchase(quantity); err != nil {
		return 0, err
	}
	if quantity > p.quantity {
		return 0, fmt.Errorf("%w: only %d items available for %q", ErrInsufficientStock, p.quantity, p.name)
	}

	total := p.cost(quantity)

	p.quantity -= quantity
	if p.quantity == 0 {
		p.Deactivate()
	}

	return total, nil
}

func (p *StandardProduct) checkPurchase(quantity int) error {
	if !p.active {
		return fmt.Errorf("%w: %q", ErrInactiveProduct, p.name)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: purchase quantity must be greater than zero", ErrInvalidArgument)
	}
	return nil
}

func (p *StandardProduct) cost(quantity int) float64 {
	if p.promotion != nil {
		return p.promotion.Apply(p.price, quantity)
	}
	return p.price * float64(quantity)
}

func (p *StandardProduct) promotionSuffix() string {
	if p.promotion == nil {
		return ""
	}
	return fmt.Sprintf(" [Promotion: %s]", p.promotion.Name())
}

// NonStockedProduct is sold without stock tracking, e.g. software licenses.
// Its quantity is always zero and purchases never deplete it.
type NonStockedProduct struct {
	StandardProduct
}

// NewNonStockedProduct creates an active product without stock tracking.
func NewNonStockedProduct(name string, price float64) (*NonStockedProduct, error) {
	base, err := NewProduct(name, price, 0)
	if err != nil {
		return nil, err
	}
	return &NonStockedProduct{StandardProduct: *base}, nil
}

// Quantity is always zero.
func (p *NonStockedProduct) Quantity() int { return 0 }

// SetQuantity is a no-op.
func (p *NonStockedProduct) SetQuantity(int) error { return nil }

// Show renders "<name> (Non-Stocked), Price: <price>" plus any promotion.
func (p *NonStockedProduct) Show() string {
	return fmt.Sprintf("%s (Non-Stocked), Price: %s", p.name, formatPrice(p.price)) + p.promotionSuffix()
}

// Buy charges for quantity items without checking or touching stock.
func (p *NonStockedProduct) Buy(quantity int) (float64, error) {
	if err := p.checkPurchase(quantity); err != nil {
		return 0, err
	}
	return p.cost(quantity), nil
}

// LimitedProduct caps how many items a single purchase may take,
// e.g. a shipping fee charged once per order.
type LimitedProduct struct {
	StandardProduct
	maximum int
}

// NewLimitedProduct creates a stocked product with a per-order maximum.
func NewLimitedProduct(name string, price float64, quantity, maximum int) (*LimitedProduct, error) {
	if err := validateDetails(limitDetails{Maximum: maximum}); err != nil {
		return nil, err
	}
	base, err := NewProduct(name, price, quantity)
	if err != nil {
		return nil, err
	}
	return &LimitedProduct{StandardProduct: *base, maximum: maximum}, nil
}

// Maximum is the largest quantity a single Buy accepts.
func (p *LimitedProduct) Maximum() int { return p.maximum }

// Show renders the per-order limit ahead of price and quantity.
func (p *LimitedProduct) Show() string {
	return fmt.Sprintf("%s (Limited to %d per order), Price: %s, Quantity: %d",
		p.name, p.maximum, formatPrice(p.price), p.quantity) + p.promotionSuffix()
}

// Buy rejects quantities above the maximum before the stocked checks run.
func (p *LimitedProduct) Buy(quantity int) (float64, error) {
	if quantity > p.maximum {
		return 0, fmt.Errorf("%w: cannot buy more than %d of %q in one order", ErrOrderLimitExceeded, p.maximum, p.name)
	}
	return p.StandardProduct.Buy(quantity)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

var (
	_ Product = (*StandardProduct)(nil)
	_ Product = (*NonStockedProduct)(nil)
	_ Product = (*LimitedProduct)(nil)
)
