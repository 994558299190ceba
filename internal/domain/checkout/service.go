// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/domain/catalog"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/payment"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
)

var ErrUnknownRef = errors.New("referral does not resolve to an ambassador")

// OrderStore persists checkout orders.
type OrderStore interface {
	Create(ctx context.Context, o *order.Order) error
	Save(ctx context.Context, o *order.Order) error
}

// AmbassadorResolver resolves refs to ambassadors and their business.
type AmbassadorResolver interface {
	ResolveAmbassador(ctx context.Context, ref string) (*referral.Ambassador, error)
	BusinessForAmbassador(ctx context.Context, a *referral.Ambassador) (*referral.Business, error)
}

// PreferenceGateway creates checkout preferences at the payment gateway.
type PreferenceGateway interface {
	CreatePreference(ctx context.Context, accessToken string, req *payment.PreferenceRequest) (*payment.Preference, error)
}

// Service turns validated checkout submissions into pending orders and
// gateway preferences.
type Service struct {
	orders   OrderStore
	resolver AmbassadorResolver
	gateway  PreferenceGateway
	config   *config.Config
	log      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(orders OrderStore, resolver AmbassadorResolver, gateway PreferenceGateway, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		orders:   orders,
		resolver: resolver,
		gateway:  gateway,
		config:   cfg,
		log:      log,
	}
}

// CheckoutResponse is returned to the storefront after a successful
// preference creation.
type CheckoutResponse struct {
	OrderID   uint   `json:"order_id"`
	InitPoint string `json:"init_point"`
}

// CreatePreference validates the submission, persists a pending order
// and creates the gateway preference. Orders are never mutated after
// submission; a retry creates a new order.
func (s *Service) CreatePreference(ctx context.Context, req *CreatePreferenceRequest) (*CheckoutResponse, error) {
	if verrs := req.Validate(); len(verrs) > 0 {
		return nil, verrs
	}

	ambassador, err := s.resolver.ResolveAmbassador(ctx, req.Ref)
	if err != nil {
		if errors.Is(err, referral.ErrAmbassadorNotFound) {
			return nil, ErrUnknownRef
		}
		return nil, err
	}

	business, err := s.resolver.BusinessForAmbassador(ctx, ambassador)
	if err != nil {
		return nil, err
	}
	if !business.HasCredentials() {
		return nil, payment.ErrMissingAccessToken
	}

	o := req.toOrder(ambassador)
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	preference, err := s.gateway.CreatePreference(ctx, business.MPAccessToken, s.preferenceFor(o, business))
	if err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Error("preference creation failed")
		return nil, err
	}

	o.PreferenceID = preference.ID
	if err := s.orders.Save(ctx, o); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Warn("failed to store preference id")
	}

	s.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"ref":      o.Ref,
		"total":    o.Total,
	}).Info("checkout preference created")

	return &CheckoutResponse{OrderID: o.ID, InitPoint: preference.InitPoint}, nil
}

// preferenceFor builds the gateway preference for an order: one line
// per item plus a shipping line, back URLs pointing at the business
// catalog with the referral preserved.
func (s *Service) preferenceFor(o *order.Order, business *referral.Business) *payment.PreferenceRequest {
	items := make([]payment.PreferenceItem, 0, len(o.Items)+1)
	for _, item := range o.Items {
		items = append(items, payment.PreferenceItem{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if o.ShippingCost > 0 {
		items = append(items, payment.PreferenceItem{
			Title:     "Costo de envío",
			Quantity:  1,
			UnitPrice: o.ShippingCost,
		})
	}

	backURL := business.CatalogDomain + "?ref=" + url.QueryEscape(o.Ref)

	return &payment.PreferenceRequest{
		Items:             items,
		ExternalReference: strconv.FormatUint(uint64(o.ID), 10),
		BackURLs: payment.BackURLs{
			Success: backURL,
			Failure: backURL,
			Pending: backURL,
		},
		AutoReturn:      "approved",
		NotificationURL: s.config.MercadoPago.WebhookURL,
	}
}

func (r *CreatePreferenceRequest) toOrder(ambassador *referral.Ambassador) *order.Order {
	items := make([]order.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, order.OrderItem{
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	return &order.Order{
		DocumentID:    r.DocumentID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		CountryRegion: r.CountryRegion,
		StreetAddress: r.StreetAddress,
		HouseNumber:   r.HouseNumber,
		State:         r.State,
		City:          r.City,
		Phone:         r.Phone,
		Email:         r.Email,
		Ref:           referral.NormalizeRef(r.Ref),
		Items:         items,
		ShippingCost:  r.ShippingCost,
		Total:         r.Total(),
		Currency:      catalog.CurrencyFor(ambassador.Country),
		Status:        order.OrderStatusPending,
	}
}
