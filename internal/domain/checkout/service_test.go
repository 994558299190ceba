package checkout

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/payment"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
)

type fakeOrderStore struct {
	mu      sync.Mutex
	nextID  uint
	created []*order.Order
	saved   []*order.Order
}

func (f *fakeOrderStore) Create(_ context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderStore) Save(_ context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, o)
	return nil
}

type fakeResolver struct {
	ambassador  *referral.Ambassador
	business    *referral.Business
	resolveErr  error
	businessErr error
}

func (f *fakeResolver) ResolveAmbassador(_ context.Context, _ string) (*referral.Ambassador, error) {
	return f.ambassador, f.resolveErr
}

func (f *fakeResolver) BusinessForAmbassador(_ context.Context, _ *referral.Ambassador) (*referral.Business, error) {
	return f.business, f.businessErr
}

type fakeGateway struct {
	mu         sync.Mutex
	calls      int
	lastToken  string
	lastReq    *payment.PreferenceRequest
	preference *payment.Preference
	err        error
}

func (f *fakeGateway) CreatePreference(_ context.Context, accessToken string, req *payment.PreferenceRequest) (*payment.Preference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastToken = accessToken
	f.lastReq = req
	return f.preference, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.MercadoPago.WebhookURL = "https://platform.test/webhook"
	return cfg
}

func validRequest() *CreatePreferenceRequest {
	return &CreatePreferenceRequest{
		DocumentID:    "1020304050",
		FirstName:     "Ana",
		LastName:      "Gómez",
		CountryRegion: "Colombia",
		StreetAddress: "Calle 10",
		HouseNumber:   "5-23",
		State:         "Antioquia",
		City:          "Medellín",
		Phone:         "3001234567",
		Email:         "ana@example.com",
		Ref:           "Embajadora%40example.com",
		Items: []ItemInput{
			{Title: "Shampoo", Quantity: 2, UnitPrice: 507},
			{Title: "Aceite", Quantity: 1, UnitPrice: 427},
		},
		ShippingCost: 250,
	}
}

func newTestService(orders *fakeOrderStore, resolver *fakeResolver, gateway *fakeGateway) *Service {
	return NewService(orders, resolver, gateway, testConfig(), quietLogger())
}

func TestValidate_RequiredFields(t *testing.T) {
	req := &CreatePreferenceRequest{Items: []ItemInput{{Title: "Shampoo", Quantity: 1, UnitPrice: 507}}}

	errs := req.Validate()

	for _, field := range []string{"cedula", "nombre", "apellidos", "direccion_calle",
		"estado_municipio", "localidad_ciudad", "telefono", "correo_electronico", "ref"} {
		assert.Equal(t, "Este campo es obligatorio", errs[field], field)
	}
}

func TestValidate_EmailShape(t *testing.T) {
	req := validRequest()
	req.Email = "not-an-email"

	errs := req.Validate()

	assert.Equal(t, "Correo electrónico inválido", errs["correo_electronico"])
}

func TestValidate_EmptyItems(t *testing.T) {
	req := validRequest()
	req.Items = nil

	errs := req.Validate()

	assert.Equal(t, "El pedido no tiene productos", errs["items"])
}

func TestValidate_NonPositiveQuantity(t *testing.T) {
	req := validRequest()
	req.Items[0].Quantity = 0

	errs := req.Validate()

	assert.Equal(t, "Cantidad inválida", errs["items"])
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, validRequest().Validate())
}

func TestTotal(t *testing.T) {
	req := validRequest()

	// 507*2 + 427 = 1441, plus 250 shipping
	assert.Equal(t, int64(1691), req.Total())
}

func TestCreatePreference_Success(t *testing.T) {
	orders := &fakeOrderStore{}
	resolver := &fakeResolver{
		ambassador: &referral.Ambassador{ID: 7, Email: "embajadora@example.com", Country: "Colombia"},
		business: &referral.Business{
			ID:            1,
			CatalogDomain: "https://catalogo.test",
			MPAccessToken: "TEST-TOKEN",
		},
	}
	gateway := &fakeGateway{preference: &payment.Preference{ID: "pref-9", InitPoint: "https://mp.test/init"}}
	service := newTestService(orders, resolver, gateway)

	resp, err := service.CreatePreference(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.OrderID)
	assert.Equal(t, "https://mp.test/init", resp.InitPoint)

	require.Len(t, orders.created, 1)
	o := orders.created[0]
	assert.Equal(t, order.OrderStatusPending, o.Status)
	assert.Equal(t, int64(1691), o.Total)
	assert.Equal(t, int64(1441), o.Subtotal())
	assert.Equal(t, "embajadora@example.com", o.Ref)
	assert.Equal(t, "COP", o.Currency)

	assert.Equal(t, "TEST-TOKEN", gateway.lastToken)
	require.NotNil(t, gateway.lastReq)
	assert.Equal(t, "1", gateway.lastReq.ExternalReference)
	assert.Equal(t, "approved", gateway.lastReq.AutoReturn)
	assert.Equal(t, "https://platform.test/webhook", gateway.lastReq.NotificationURL)
	assert.Equal(t, "https://catalogo.test?ref=embajadora%40example.com", gateway.lastReq.BackURLs.Success)

	require.Len(t, gateway.lastReq.Items, 3, "two products plus the shipping line")
	shipping := gateway.lastReq.Items[2]
	assert.Equal(t, "Costo de envío", shipping.Title)
	assert.Equal(t, int64(250), shipping.UnitPrice)

	require.Len(t, orders.saved, 1)
	assert.Equal(t, "pref-9", orders.saved[0].PreferenceID)
}

func TestCreatePreference_ValidationBlocksSubmission(t *testing.T) {
	orders := &fakeOrderStore{}
	gateway := &fakeGateway{}
	service := newTestService(orders, &fakeResolver{}, gateway)

	req := validRequest()
	req.Email = ""

	_, err := service.CreatePreference(context.Background(), req)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "correo_electronico")
	assert.Empty(t, orders.created)
	assert.Zero(t, gateway.calls)
}

func TestCreatePreference_UnknownRef(t *testing.T) {
	service := newTestService(&fakeOrderStore{}, &fakeResolver{resolveErr: referral.ErrAmbassadorNotFound}, &fakeGateway{})

	_, err := service.CreatePreference(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrUnknownRef)
}

func TestCreatePreference_BusinessWithoutCredentials(t *testing.T) {
	resolver := &fakeResolver{
		ambassador: &referral.Ambassador{Email: "embajadora@example.com", Country: "Colombia"},
		business:   &referral.Business{CatalogDomain: "https://catalogo.test"},
	}
	orders := &fakeOrderStore{}
	service := newTestService(orders, resolver, &fakeGateway{})

	_, err := service.CreatePreference(context.Background(), validRequest())

	assert.ErrorIs(t, err, payment.ErrMissingAccessToken)
	assert.Empty(t, orders.created, "no order persisted without a payable business")
}

func TestCreatePreference_GatewayFailure(t *testing.T) {
	resolver := &fakeResolver{
		ambassador: &referral.Ambassador{Email: "embajadora@example.com", Country: "Colombia"},
		business:   &referral.Business{CatalogDomain: "https://catalogo.test", MPAccessToken: "TEST-TOKEN"},
	}
	orders := &fakeOrderStore{}
	gatewayErr := errors.New("gateway returned 500")
	service := newTestService(orders, resolver, &fakeGateway{err: gatewayErr})

	_, err := service.CreatePreference(context.Background(), validRequest())

	assert.ErrorIs(t, err, gatewayErr)
	require.Len(t, orders.created, 1, "order stays recorded as pending for retry tracing")
	assert.Equal(t, order.OrderStatusPending, orders.created[0].Status)
	assert.Empty(t, orders.saved)
}
