// internal/domain/client/entity.go
package client

import "time"

// Client is an end buyer attributed to an ambassador. Ref is the
// ambassador's lowercased email, the same code carried by catalog
// links and orders.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"index;not null"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	Ref       string    `json:"ref" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for Client
func (Client) TableName() string {
	return "clients"
}
