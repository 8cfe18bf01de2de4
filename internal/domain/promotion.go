package domain

// Promotion is a pricing rule that replaces the flat price*quantity cost
// of a purchase.
type Promotion interface {
	Name() string
	// Apply returns the discounted total for quantity items at price each.
	Apply(price float64, quantity int) float64
}

type promotionName string

func (n promotionName) Name() string { return string(n) }
func (n promotionName) String() string { return string(n) }

// PercentDiscount takes a fixed percentage off every item.
type PercentDiscount struct {
	promotionName
	Percent float64
}

// NewPercentDiscount creates a percentage-off promotion.
func NewPercentDiscount(name string, percent float64) *PercentDiscount {
	return &PercentDiscount{promotionName: promotionName(name), Percent: percent}
}

func (d *PercentDiscount) Apply(price float64, quantity int) float64 {
	return price * (1 - d.Percent/100) * float64(quantity)
}

// SecondHalfPrice sells every second item at half price.
type SecondHalfPrice struct {
	promotionName
}

// NewSecondHalfPrice creates a second-item-half-price promotion.
func NewSecondHalfPrice(name string) *SecondHalfPrice {
	return &SecondHalfPrice{promotionName: promotionName(name)}
}

func (s *SecondHalfPrice) Apply(price float64, quantity int) float64 {
	half := quantity / 2
	normal := quantity - half
	return float64(normal)*price + float64(half)*price*0.5
}

// ThirdOneFree gives away one item out of every three.
type ThirdOneFree struct {
	promotionName
}

// NewThirdOneFree creates a buy-two-get-one-free promotion.
func NewThirdOneFree(name string) *ThirdOneFree {
	return &ThirdOneFree{promotionName: promotionName(name)}
}

func (t *ThirdOneFree) Apply(price float64, quantity int) float64 {
	free := quantity / 3
	return float64(quantity-free) * price
}
