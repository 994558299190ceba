// internal/domain/cart/service.go
package cart

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/domain/catalog"
)

// Store persists session carts. Load returns nil without error when
// nothing is stored for the session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// ProductCatalog prices products for a country.
type ProductCatalog interface {
	GetProduct(id uint, country string) (*catalog.PricedProduct, error)
}

// CountryResolver resolves the country behind a referral code.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, ref string) string
}

// Service manages session carts, pricing incoming items through the
// catalog for the referral's country.
type Service struct {
	store    Store
	catalog  ProductCatalog
	resolver CountryResolver
	log      *logrus.Logger
}

// NewService creates a new cart service
func NewService(store Store, productCatalog ProductCatalog, resolver CountryResolver, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		catalog:  productCatalog,
		resolver: resolver,
		log:      log,
	}
}

// Get loads the cart for a session, returning an empty cart when none
// is stored.
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		now := time.Now()
		return &Cart{SessionID: sessionID, Currency: catalog.CurrencyMXN, CreatedAt: now, UpdatedAt: now}, nil
	}
	return c, nil
}

// AddItem prices the product for the referral's country and adds it to
// the session cart. A cart holds one currency: when the resolved
// currency differs from the cart's, every stored line is repriced for
// the new country before the add.
func (s *Service) AddItem(ctx context.Context, sessionID, ref string, productID uint, quantity int) (*Cart, error) {
	country := s.resolver.ResolveCountry(ctx, ref)

	product, err := s.catalog.GetProduct(productID, country)
	if err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !c.IsEmpty() && c.Currency != product.Currency {
		s.reprice(c, country)
	}
	c.Currency = product.Currency
	c.Add(LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		UnitPrice: product.UnitPrice,
		Quantity:  quantity,
	})

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItemQuantity sets the quantity of a cart line. Zero or less
// removes the line.
func (s *Service) UpdateItemQuantity(ctx context.Context, sessionID string, productID uint, quantity int) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, quantity)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes a product line from the session cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uint) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Remove(productID)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear drops the session cart entirely.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Count returns the total quantity across the session cart's lines.
func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.Totals().Quantity, nil
}

// reprice refreshes every stored line against the catalog for the newly
// resolved country. Lines whose product has left the catalog keep
// their price.
func (s *Service) reprice(c *Cart, country string) {
	for i := range c.Items {
		product, err := s.catalog.GetProduct(c.Items[i].ProductID, country)
		if err != nil {
			s.log.WithError(err).WithField("product_id", c.Items[i].ProductID).Warn("could not reprice cart line")
			continue
		}
		c.Items[i].UnitPrice = product.UnitPrice
	}
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = c.UpdatedAt
	}

	if err := s.store.Save(ctx, c); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": c.SessionID,
		"items":      len(c.Items),
	}).Debug("cart saved")

	return nil
}
