// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/your-org/ambassador-platform/internal/domain/catalog"
	"github.com/your-org/ambassador-platform/internal/domain/client"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/domain/wallet"
	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&referral.Business{},
		&referral.Distributor{},
		&referral.Ambassador{},
		&client.Client{},
		&catalog.Product{},
		&order.Order{},
		&order.OrderItem{},
		&order.Transaction{},
		&wallet.Wallet{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	if err := seedCatalog(db); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_ambassadors_email ON ambassadors(email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_ref ON orders(ref)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_external_reference ON transactions(external_reference)",
		"CREATE INDEX IF NOT EXISTS idx_clients_ref ON clients(ref)",
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedCatalog inserts the fixed product lineup on first boot. Prices are
// whole Mexican pesos; Colombian pricing is applied at resolution time.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	products := catalog.DefaultProducts()
	return db.Create(&products).Error
}
