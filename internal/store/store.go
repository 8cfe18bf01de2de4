package store

import (
	"fmt"

	"bestbuy/internal/domain"
)

// OrderLine is one entry of a shopping list.
type OrderLine struct {
	Product  domain.Product
	Quantity int
}

// Store holds an ordered collection of products. It keeps references, so
// purchases made through the store are visible to every holder of a product.
type Store struct {
	products []domain.Product
}

// New creates a store holding products in the given order.
func New(products ...domain.Product) *Store {
	s := &Store{}
	s.products = append(s.products, products...)
	return s
}

func (s *Store) AddProduct(product domain.Product) {
	s.products = append(s.products, product)
}

// RemoveProduct removes the first occurrence of product. Removing a product
// the store does not hold is a no-op.
func (s *Store) RemoveProduct(product domain.Product) {
	for i, p := range s.products {
		if p == product {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// TotalQuantity sums stock over every product, active or not.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, p := range s.products {
		total += p.Quantity()
	}
	return total
}

// AllProducts returns the active products in store order.
func (s *Store) AllProducts() []domain.Product {
	active := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// Product looks up a held product by name, active or not.
func (s *Store) Product(name string) (domain.Product, bool) {
	for _, p := range s.products {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Order buys every line in sequence and returns the accumulated cost.
// It stops at the first failing line; lines bought before it stay bought.
func (s *Store) Order(lines []OrderLine) (float64, error) {
	total := 0.0
	for _, line := range lines {
		cost, err := line.Product.Buy(line.Quantity)
		if err != nil {
			return 0, fmt.Errorf("failed to buy %q: %w", line.Product.Name(), err)
		}
		total += cost
	}
	return total, nil
}
