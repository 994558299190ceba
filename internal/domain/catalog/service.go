// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// Service handles catalog business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListProducts returns active products priced for the given country.
// An optional line filter restricts to one product line.
func (s *Service) ListProducts(country, line string) ([]PricedProduct, error) {
	query := s.db.Where("is_active = ?", true)
	if line != "" {
		query = query.Where("line = ?", line)
	}

	var products []Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	priced := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		priced = append(priced, Priced(p, country))
	}
	return priced, nil
}

// GetProduct returns a single product priced for the given country.
func (s *Service) GetProduct(id uint, country string) (*PricedProduct, error) {
	var product Product
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	priced := Priced(product, country)
	return &priced, nil
}
