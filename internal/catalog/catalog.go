package catalog

import (
	"fmt"

	"bestbuy/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Product kinds accepted in a catalog file.
const (
	KindStandard   = "standard"
	KindNonStocked = "non_stocked"
	KindLimited    = "limited"
)

// Promotion kinds accepted in a catalog file.
const (
	PromotionPercent         = "percent"
	PromotionSecondHalfPrice = "second_half_price"
	PromotionThirdOneFree    = "third_one_free"
)

// File is the on-disk layout of a catalog. Product names must be unique.
type File struct {
	Products []Entry `mapstructure:"products" validate:"required,min=1,unique=Name,dive"`
}

// Entry describes one product in a catalog file. Quantity is rejected on
// non_stocked entries and Maximum on anything but limited entries.
type Entry struct {
	Name      string          `mapstructure:"name" validate:"required"`
	Kind      string          `mapstructure:"kind" validate:"omitempty,oneof=standard non_stocked limited"`
	Price     float64         `mapstructure:"price" validate:"gte=0"`
	Quantity  int             `mapstructure:"quantity" validate:"excluded_if=Kind non_stocked,gte=0"`
	Maximum   int             `mapstructure:"maximum" validate:"required_if=Kind limited,excluded_unless=Kind limited,gte=0"`
	Promotion *PromotionEntry `mapstructure:"promotion"`
}

// PromotionEntry describes the promotion attached to a catalog entry.
type PromotionEntry struct {
	Kind    string  `mapstructure:"kind" validate:"required,oneof=percent second_half_price third_one_free"`
	Name    string  `mapstructure:"name" validate:"required"`
	Percent float64 `mapstructure:"percent" validate:"gte=0,lte=100"`
}

var validate = validator.New()

// Load reads a catalog file (any format viper understands) and builds its products.
func Load(path string) ([]domain.Product, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}

	return Build(file)
}

// Build validates a catalog and creates its products in file order.
func Build(file File) ([]domain.Product, error) {
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("%w: invalid catalog: %v", domain.ErrInvalidArgument, err)
	}

	products := make([]domain.Product, 0, len(file.Products))
	for _, entry := range file.Products {
		product, err := buildProduct(entry)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", entry.Name, err)
		}
		if entry.Promotion != nil {
			product.SetPromotion(buildPromotion(*entry.Promotion))
		}
		products = append(products, product)
	}

	return products, nil
}

func buildProduct(entry Entry) (domain.Product, error) {
	switch entry.Kind {
	case KindNonStocked:
		return domain.NewNonStockedProduct(entry.Name, entry.Price)
	case KindLimited:
		return domain.NewLimitedProduct(entry.Name, entry.Price, entry.Quantity, entry.Maximum)
	default:
		return domain.NewProduct(entry.Name, entry.Price, entry.Quantity)
	}
}

func buildPromotion(entry PromotionEntry) domain.Promotion {
	switch entry.Kind {
	case PromotionPercent:
		return domain.NewPercentDiscount(entry.Name, entry.Percent)
	case PromotionSecondHalfPrice:
		return domain.NewSecondHalfPrice(entry.Name)
	default:
		return domain.NewThirdOneFree(entry.Name)
	}
}

// Default returns the built-in starting inventory.
func Default() []domain.Product {
	products, err := Build(File{Products: []Entry{
		{
			Name: "MacBook Air M2", Price: 1450, Quantity: 100,
			Promotion: &PromotionEntry{Kind: PromotionSecondHalfPrice, Name: "Second Half price!"},
		},
		{
			Name: "Bose QuietComfort Earbuds", Price: 250, Quantity: 500,
			Promotion: &PromotionEntry{Kind: PromotionThirdOneFree, Name: "Third One Free!"},
		},
		{Name: "Google Pixel 7", Price: 500, Quantity: 250},
		{
			Name: "Windows License", Kind: KindNonStocked, Price: 125,
			Promotion: &PromotionEntry{Kind: PromotionPercent, Name: "30% off!", Percent: 30},
		},
		{Name: "Shipping", Kind: KindLimited, Price: 10, Quantity: 250, Maximum: 1},
	}})
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return products
}
