// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/ambassador-platform/internal/domain/client"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"gorm.io/gorm"
)

// Metrics is the dashboard summary for one account. Counts are scoped
// to the account's network: an ambassador sees itself, a distributor
// its ambassadors, a business everything under its distributors.
type Metrics struct {
	Role           string `json:"role"`
	Ambassadors    int64  `json:"ambassadors,omitempty"`
	Distributors   int64  `json:"distributors,omitempty"`
	Clients        int64  `json:"clients"`
	ApprovedOrders int64  `json:"approved_orders"`
	SalesTotal     int64  `json:"sales_total"`
}

// ClientActivity is a client with its purchase history aggregates.
type ClientActivity struct {
	client.Client
	OrderCount int64 `json:"order_count"`
	TotalSpent int64 `json:"total_spent"`
}

// Service aggregates dashboard metrics across the account hierarchy
type Service struct {
	db       *gorm.DB
	referral *referral.Service
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, referralService *referral.Service) *Service {
	return &Service{db: db, referral: referralService}
}

// Dashboard computes the metrics for an authenticated account.
func (s *Service) Dashboard(ctx context.Context, role, email string) (*Metrics, error) {
	refs, err := s.referral.NetworkRefs(ctx, role, email)
	if err != nil {
		return nil, err
	}

	m := &Metrics{Role: role}

	switch role {
	case referral.RoleDistributor:
		m.Ambassadors = int64(len(refs))
	case referral.RoleBusiness:
		m.Ambassadors = int64(len(refs))
		if err := s.countDistributors(ctx, email, &m.Distributors); err != nil {
			return nil, err
		}
	}

	if len(refs) == 0 {
		return m, nil
	}

	err = s.db.WithContext(ctx).Model(&client.Client{}).
		Where("ref IN ?", refs).
		Count(&m.Clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	var sales struct {
		Count int64
		Total int64
	}
	err = s.db.WithContext(ctx).Model(&order.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total - shipping_cost), 0) AS total").
		Where("ref IN ? AND status = ?", refs, order.OrderStatusApproved).
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved sales: %w", err)
	}

	m.ApprovedOrders = sales.Count
	m.SalesTotal = sales.Total
	return m, nil
}

// NetworkClients lists the clients visible to an account with their
// approved purchase aggregates.
func (s *Service) NetworkClients(ctx context.Context, role, email string) ([]ClientActivity, error) {
	refs, err := s.referral.NetworkRefs(ctx, role, email)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return []ClientActivity{}, nil
	}

	var clients []client.Client
	err = s.db.WithContext(ctx).
		Where("ref IN ?", refs).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list network clients: %w", err)
	}

	activity := make([]ClientActivity, 0, len(clients))
	for _, c := range clients {
		var agg struct {
			Count int64
			Total int64
		}
		err := s.db.WithContext(ctx).Model(&order.Order{}).
			Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
			Where("ref = ? AND email = ? AND status = ?", c.Ref, strings.ToLower(c.Email), order.OrderStatusApproved).
			Scan(&agg).Error
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate client orders: %w", err)
		}
		activity = append(activity, ClientActivity{Client: c, OrderCount: agg.Count, TotalSpent: agg.Total})
	}

	return activity, nil
}

func (s *Service) countDistributors(ctx context.Context, businessEmail string, out *int64) error {
	business, err := s.referral.GetBusinessByEmail(ctx, businessEmail)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&referral.Distributor{}).
		Where("business_id = ?", business.ID).
		Count(out).Error
}
