// internal/domain/cart/entity.go
package cart

import "time"

// LineItem is one product line in a cart. Display metadata and the
// unit price are fixed when the line is first added.
type LineItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Totals is the aggregate over a cart's lines. Always recomputed,
// never stored.
type Totals struct {
	Items    int   `json:"items"`
	Quantity int   `json:"quantity"`
	Total    int64 `json:"total"`
}

// Cart is a session shopping cart. Lines keep insertion order and
// hold at most one entry per product id with quantity >= 1.
type Cart struct {
	SessionID string     `json:"session_id"`
	Currency  string     `json:"currency"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Add inserts a line for the product or increments an existing one.
// A non-positive quantity on the incoming item means "one". Metadata
// of an existing line is not overwritten.
func (c *Cart) Add(item LineItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if i := c.find(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a product line. A quantity of
// zero or less removes the line; carts never store non-positive
// quantities. Unknown products are a no-op.
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	i := c.find(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return
	}
	c.Items[i].Quantity = quantity
}

// Remove deletes a product line if present.
func (c *Cart) Remove(productID uint) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals recomputes the cart aggregates from its lines.
func (c *Cart) Totals() Totals {
	t := Totals{Items: len(c.Items)}
	for _, item := range c.Items {
		t.Quantity += item.Quantity
		t.Total += item.LineTotal()
	}
	return t
}

func (c *Cart) find(productID uint) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
