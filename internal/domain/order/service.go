// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/domain/client"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// Service handles order persistence and listings
type Service struct {
	db      *gorm.DB
	clients *client.Service
	log     *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, clientService *client.Service, log *logrus.Logger) *Service {
	return &Service{
		db:      db,
		clients: clientService,
		log:     log,
	}
}

// Create persists a new order with its items.
func (s *Service) Create(ctx context.Context, o *Order) error {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	o.Ref = strings.ToLower(strings.TrimSpace(o.Ref))
	o.Email = strings.ToLower(strings.TrimSpace(o.Email))

	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Save persists changes to an existing order.
func (s *Service) Save(ctx context.Context, o *Order) error {
	if err := s.db.WithContext(ctx).Save(o).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// GetByID loads an order with its items.
func (s *Service) GetByID(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &o, nil
}

// GetByExternalReference resolves an order from a gateway external
// reference, which carries the order id as a decimal string.
func (s *Service) GetByExternalReference(ctx context.Context, externalReference string) (*Order, error) {
	id, err := strconv.ParseUint(externalReference, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid external reference %q: %w", externalReference, err)
	}
	return s.GetByID(ctx, uint(id))
}

// ListByRef lists an ambassador's orders, newest first. Statuses of
// pending orders are synced from recorded transactions, and buyers of
// approved orders are registered as clients of the ref.
func (s *Service) ListByRef(ctx context.Context, ref string) ([]Order, error) {
	ref = strings.ToLower(ref)

	var orders []Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("ref = ?", ref).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.syncStatuses(ctx, orders)
	s.registerBuyers(ctx, orders)

	return orders, nil
}

// ListByRefs lists orders across a network of refs, newest first.
func (s *Service) ListByRefs(ctx context.Context, refs []string) ([]Order, error) {
	if len(refs) == 0 {
		return []Order{}, nil
	}

	var orders []Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("ref IN ?", refs).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.syncStatuses(ctx, orders)

	return orders, nil
}

// ListApprovedByClient lists a buyer's approved orders under a ref.
func (s *Service) ListApprovedByClient(ctx context.Context, ref, email string) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("ref = ? AND email = ? AND status = ?",
			strings.ToLower(ref), strings.ToLower(email), OrderStatusApproved).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list client orders: %w", err)
	}
	return orders, nil
}

// ListApprovedByRef lists an ambassador's approved orders. The wallet
// view is computed over these.
func (s *Service) ListApprovedByRef(ctx context.Context, ref string) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("ref = ? AND status = ?", strings.ToLower(ref), OrderStatusApproved).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approved orders: %w", err)
	}
	return orders, nil
}

// RecordTransaction upserts a payment transaction and applies its
// status to the referenced order.
func (s *Service) RecordTransaction(ctx context.Context, t *Transaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Transaction
		err := tx.Where("payment_id = ?", t.PaymentID).First(&existing).Error
		switch {
		case err == nil:
			existing.Status = t.Status
			existing.DateApproved = t.DateApproved
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*t = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if t.ExternalReference == "" {
			return nil
		}
		id, err := strconv.ParseUint(t.ExternalReference, 10, 32)
		if err != nil {
			// Reference set by someone else's preference; keep the
			// transaction, skip the order update.
			return nil
		}

		return tx.Model(&Order{}).
			Where("id = ?", uint(id)).
			Updates(map[string]interface{}{
				"status":         statusFromGateway(t.Status),
				"transaction_id": t.PaymentID,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// syncStatuses backfills order statuses from recorded transactions for
// orders still pending. Failures only log; listings still return.
func (s *Service) syncStatuses(ctx context.Context, orders []Order) {
	for i := range orders {
		if orders[i].Status != OrderStatusPending {
			continue
		}

		var t Transaction
		err := s.db.WithContext(ctx).
			Where("external_reference = ?", strconv.FormatUint(uint64(orders[i].ID), 10)).
			Order("created_at DESC").
			First(&t).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.WithError(err).WithField("order_id", orders[i].ID).Warn("failed to sync order status")
			}
			continue
		}

		if !applyTransaction(&orders[i], &t) {
			continue
		}

		if err := s.db.WithContext(ctx).Model(&Order{}).
			Where("id = ?", orders[i].ID).
			Updates(map[string]interface{}{"status": orders[i].Status, "transaction_id": orders[i].TransactionID}).Error; err != nil {
			s.log.WithError(err).WithField("order_id", orders[i].ID).Warn("failed to persist synced status")
		}
	}
}

// applyTransaction applies a recorded gateway transaction to an order,
// reporting whether anything changed.
func applyTransaction(o *Order, t *Transaction) bool {
	status := statusFromGateway(t.Status)
	if status == o.Status {
		return false
	}
	o.Status = status
	o.TransactionID = t.PaymentID
	return true
}

// registerBuyers ensures buyers of approved orders exist as clients of
// the attributing ambassador.
func (s *Service) registerBuyers(ctx context.Context, orders []Order) {
	for i := range orders {
		if orders[i].Status != OrderStatusApproved {
			continue
		}
		err := s.clients.EnsureRegistered(ctx,
			orders[i].Ref,
			orders[i].BuyerName(),
			orders[i].Email,
			orders[i].Phone,
			orders[i].CountryRegion,
		)
		if err != nil {
			s.log.WithError(err).WithField("order_id", orders[i].ID).Warn("failed to register buyer as client")
		}
	}
}

// statusFromGateway maps a gateway payment status onto an order status.
// Unknown statuses stay pending rather than guessing.
func statusFromGateway(status string) OrderStatus {
	switch status {
	case "approved":
		return OrderStatusApproved
	case "rejected":
		return OrderStatusRejected
	case "in_process", "in_mediation":
		return OrderStatusInProcess
	case "cancelled", "refunded", "charged_back":
		return OrderStatusCancelled
	default:
		return OrderStatusPending
	}
}
