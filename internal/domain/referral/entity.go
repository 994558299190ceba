// internal/domain/referral/entity.go
package referral

import "time"

// Account roles. Stored and compared verbatim; the values are part of
// the wire contract with existing consumers.
const (
	RoleBusiness    = "Negocio"
	RoleDistributor = "Distribuidor"
	RoleAmbassador  = "Embajador"
)

// Business represents a business account. It owns the Mercado Pago
// credentials and the public catalog domain its ambassadors sell under.
type Business struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Country       string    `json:"country"`
	CatalogDomain string    `json:"catalog_domain"`
	MPAccessToken string    `json:"-"`
	MPPublicKey   string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for Business
func (Business) TableName() string {
	return "businesses"
}

// HasCredentials reports whether the business can take payments.
func (b *Business) HasCredentials() bool {
	return b.MPAccessToken != ""
}

// Distributor represents a distributor account under a business.
type Distributor struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Country      string    `json:"country"`
	BusinessID   uint      `json:"business_id" gorm:"index;not null"`
	Business     *Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for Distributor
func (Distributor) TableName() string {
	return "distributors"
}

// Ambassador represents an ambassador account. The ambassador's email,
// lowercased, is the referral code (`ref`) carried by catalog links.
type Ambassador struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"not null"`
	Email         string       `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string       `json:"-" gorm:"not null"`
	Country       string       `json:"country" gorm:"not null"`
	Phone         string       `json:"phone"`
	DistributorID uint         `json:"distributor_id" gorm:"index;not null"`
	Distributor   *Distributor `json:"distributor,omitempty" gorm:"foreignKey:DistributorID"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName returns the table name for Ambassador
func (Ambassador) TableName() string {
	return "ambassadors"
}

// Account is the role-agnostic view of an authenticated principal.
type Account struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Country string `json:"country"`
}
