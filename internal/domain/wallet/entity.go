// internal/domain/wallet/entity.go
package wallet

import "time"

// Wallet holds the accumulated sales and commission of one ambassador,
// keyed by ref. Amounts are whole currency units in the ambassador's
// selling currency.
type Wallet struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Ref        string    `json:"ref" gorm:"uniqueIndex;not null"`
	TotalSales int64     `json:"total_sales"`
	Commission int64     `json:"commission"`
	Orders     int       `json:"orders"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}
