// internal/domain/catalog/entity.go
package catalog

import "time"

// Product represents a catalog product. Prices are whole Mexican pesos;
// the Colombian price is derived, never stored.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       int64     `json:"price" gorm:"not null"`
	Image       string    `json:"image"`
	Line        string    `json:"line" gorm:"index"` // "mujer" or "hombre"
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}

// PricedProduct is a product with its price resolved for a country.
type PricedProduct struct {
	Product
	UnitPrice    int64  `json:"unit_price"`
	DisplayPrice string `json:"display_price"`
	Currency     string `json:"currency"`
}

// DefaultProducts returns the fixed product lineup seeded at startup.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Acondicionador", Description: "Acondicionador capilar línea mujer", Price: 507, Image: "/images/acondicionador.png", Line: "mujer", IsActive: true},
		{ID: 2, Name: "Shampoo", Description: "Shampoo capilar línea mujer", Price: 507, Image: "/images/shampoo.png", Line: "mujer", IsActive: true},
		{ID: 3, Name: "Aceite", Description: "Aceite capilar", Price: 427, Image: "/images/aceite.png", Line: "mujer", IsActive: true},
		{ID: 4, Name: "Crema 3 en 1", Description: "Crema capilar 3 en 1 línea mujer", Price: 507, Image: "/images/crema.png", Line: "mujer", IsActive: true},
		{ID: 5, Name: "Gel", Description: "Gel capilar línea mujer", Price: 507, Image: "/images/gel.png", Line: "mujer", IsActive: true},
		{ID: 6, Name: "Acondicionador Men", Description: "Acondicionador capilar línea hombre", Price: 507, Image: "/images/acondicionador-men.png", Line: "hombre", IsActive: true},
		{ID: 7, Name: "Shampoo Special Men", Description: "Shampoo capilar línea hombre", Price: 507, Image: "/images/shampoo-men.png", Line: "hombre", IsActive: true},
		{ID: 8, Name: "Cream 3 in 1 Men", Description: "Crema capilar 3 en 1 línea hombre", Price: 507, Image: "/images/crema-men.png", Line: "hombre", IsActive: true},
		{ID: 9, Name: "Gel Men", Description: "Gel capilar línea hombre", Price: 507, Image: "/images/gel-men.png", Line: "hombre", IsActive: true},
	}
}
