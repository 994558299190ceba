// internal/domain/order/entity.go
package order

import "time"

// OrderStatus is the payment status as reported by the gateway. The
// platform only tags orders with it; there are no client-owned
// transitions.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusInProcess OrderStatus = "in_process"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a submitted checkout. The JSON field names are the wire
// contract of the public checkout form and the dashboard views.
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	DocumentID    string      `json:"cedula"`
	FirstName     string      `json:"nombre"`
	LastName      string      `json:"apellidos"`
	CountryRegion string      `json:"pais_region"`
	StreetAddress string      `json:"direccion_calle"`
	HouseNumber   string      `json:"numero_casa"`
	State         string      `json:"estado_municipio"`
	City          string      `json:"localidad_ciudad"`
	Phone         string      `json:"telefono"`
	Email         string      `json:"correo_electronico" gorm:"index;not null"`
	Ref           string      `json:"ref" gorm:"index;not null"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	ShippingCost  int64       `json:"costo_envio"`
	Total         int64       `json:"total"`
	Currency      string      `json:"currency"`
	Status        OrderStatus `json:"status" gorm:"index;default:'pending'"`
	PreferenceID  string      `json:"preference_id,omitempty"`
	TransactionID string      `json:"transaction_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName returns the table name for Order
func (Order) TableName() string {
	return "orders"
}

// Subtotal is the order total without shipping. Commission is paid
// over this amount.
func (o *Order) Subtotal() int64 {
	return o.Total - o.ShippingCost
}

// BuyerName returns the buyer's full name.
func (o *Order) BuyerName() string {
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// OrderItem is one purchased line of an order.
type OrderItem struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	OrderID   uint   `json:"-" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	UnitPrice int64  `json:"unit_price" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
}

// TableName returns the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns unit price times quantity.
func (i *OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Transaction is a payment event recorded from the gateway webhook.
// ExternalReference carries the order id the preference was created
// with.
type Transaction struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	PaymentID         string     `json:"payment_id" gorm:"uniqueIndex;not null"`
	Status            string     `json:"status" gorm:"not null"`
	ExternalReference string     `json:"external_reference" gorm:"index"`
	DateCreated       *time.Time `json:"date_created"`
	DateApproved      *time.Time `json:"date_approved"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName returns the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
