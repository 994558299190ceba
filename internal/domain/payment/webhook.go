// internal/domain/payment/webhook.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
)

var ErrNoCredentialedBusiness = errors.New("no business with payment credentials")

// Notification is a webhook notification. Mercado Pago sends the
// payment id either as data.id in the body or as an id query param,
// with topic/type "payment".
type Notification struct {
	Topic     string
	PaymentID string
}

// BusinessDirectory resolves the businesses whose credentials can fetch
// payments.
type BusinessDirectory interface {
	CredentialedBusinesses(ctx context.Context) ([]referral.Business, error)
	PayingBusinessForRef(ctx context.Context, ref string) (*referral.Business, error)
}

// PaymentFetcher fetches a payment from the gateway with a business's
// credentials.
type PaymentFetcher interface {
	GetPayment(ctx context.Context, accessToken, paymentID string) (*Payment, error)
}

// TransactionRecorder resolves orders from gateway references and
// records payment transactions against them.
type TransactionRecorder interface {
	GetByExternalReference(ctx context.Context, externalReference string) (*order.Order, error)
	RecordTransaction(ctx context.Context, t *order.Transaction) error
}

// Processor handles webhook notifications: it fetches the payment,
// attributes it to the right business and records the transaction.
type Processor struct {
	directory BusinessDirectory
	gateway   PaymentFetcher
	orders    TransactionRecorder
	log       *logrus.Logger
}

// NewProcessor creates a new webhook processor
func NewProcessor(directory BusinessDirectory, gateway PaymentFetcher, orders TransactionRecorder, log *logrus.Logger) *Processor {
	return &Processor{
		directory: directory,
		gateway:   gateway,
		orders:    orders,
		log:       log,
	}
}

// Process handles one payment notification. The payment is first
// fetched with any credentialed business to learn its external
// reference, then re-fetched with the attributed business before the
// transaction is recorded.
func (p *Processor) Process(ctx context.Context, n *Notification) error {
	if n.Topic != "" && n.Topic != "payment" {
		p.log.WithField("topic", n.Topic).Debug("ignoring non-payment notification")
		return nil
	}
	if n.PaymentID == "" {
		return errors.New("notification carries no payment id")
	}

	probe, err := p.probePayment(ctx, n.PaymentID)
	if err != nil {
		return err
	}

	o, err := p.orders.GetByExternalReference(ctx, probe.ExternalReference)
	if err != nil {
		return fmt.Errorf("payment %s references no known order: %w", n.PaymentID, err)
	}

	payment := probe
	if business, err := p.directory.PayingBusinessForRef(ctx, o.Ref); err != nil {
		p.log.WithError(err).WithField("order_id", o.ID).Warn("could not attribute payment to a business, keeping probe result")
	} else if authoritative, err := p.gateway.GetPayment(ctx, business.MPAccessToken, n.PaymentID); err != nil {
		p.log.WithError(err).WithField("order_id", o.ID).Warn("authoritative payment fetch failed, keeping probe result")
	} else {
		payment = authoritative
	}

	t := &order.Transaction{
		PaymentID:         strconv.FormatInt(payment.ID, 10),
		Status:            payment.Status,
		ExternalReference: payment.ExternalReference,
		DateCreated:       payment.DateCreated,
		DateApproved:      payment.DateApproved,
	}
	if err := p.orders.RecordTransaction(ctx, t); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"payment_id": t.PaymentID,
		"status":     t.Status,
		"order_id":   o.ID,
	}).Info("payment transaction recorded")

	return nil
}

// probePayment fetches the payment with the first business able to see
// it. External references are unique across the platform, so any hit
// identifies the order.
func (p *Processor) probePayment(ctx context.Context, paymentID string) (*Payment, error) {
	businesses, err := p.directory.CredentialedBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return nil, ErrNoCredentialedBusiness
	}

	var lastErr error
	for i := range businesses {
		payment, err := p.gateway.GetPayment(ctx, businesses[i].MPAccessToken, paymentID)
		if err == nil {
			return payment, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("payment %s not visible to any business: %w", paymentID, lastErr)
}
