// internal/domain/wallet/service.go
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"gorm.io/gorm"
)

// Service computes ambassador commissions over approved orders
type Service struct {
	db     *gorm.DB
	config *config.Config
	log    *logrus.Logger
}

// NewService creates a new wallet service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{db: db, config: cfg, log: log}
}

// CommissionFor computes the commission over a sales subtotal at the
// given rate, rounding down to whole units.
func CommissionFor(subtotal int64, rate float64) int64 {
	if subtotal <= 0 {
		return 0
	}
	return int64(math.Floor(float64(subtotal) * rate))
}

// Recalculate sums the subtotals (total minus shipping) of an
// ambassador's approved orders, applies the commission rate and
// upserts the wallet row.
func (s *Service) Recalculate(ctx context.Context, ref string) (*Wallet, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))

	var row struct {
		Subtotal int64
		Count    int
	}
	err := s.db.WithContext(ctx).Model(&order.Order{}).
		Select("COALESCE(SUM(total - shipping_cost), 0) AS subtotal, COUNT(*) AS count").
		Where("ref = ? AND status = ?", ref, order.OrderStatusApproved).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved orders: %w", err)
	}

	w := Wallet{Ref: ref}
	err = s.db.WithContext(ctx).Where("ref = ?", ref).First(&w).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	w.TotalSales = row.Subtotal
	w.Commission = CommissionFor(row.Subtotal, s.config.Wallet.CommissionRate)
	w.Orders = row.Count

	if err := s.db.WithContext(ctx).Save(&w).Error; err != nil {
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"ref":        ref,
		"sales":      w.TotalSales,
		"commission": w.Commission,
	}).Debug("wallet recalculated")

	return &w, nil
}

// Get returns the stored wallet for a ref, zero-valued when no
// approved sale has been recorded yet.
func (s *Service) Get(ctx context.Context, ref string) (*Wallet, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))

	var w Wallet
	err := s.db.WithContext(ctx).Where("ref = ?", ref).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Wallet{Ref: ref}, nil
		}
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return &w, nil
}
