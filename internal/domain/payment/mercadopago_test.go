package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ambassador-platform/internal/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.MercadoPago.BaseURL = baseURL
	cfg.MercadoPago.Timeout = 5 * time.Second
	return NewClient(cfg)
}

func TestClient_CreatePreference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer TEST-TOKEN", r.Header.Get("Authorization"))

		var req PreferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req.ExternalReference)
		assert.Equal(t, "approved", req.AutoReturn)
		require.Len(t, req.Items, 2)
		assert.Equal(t, int64(507), req.Items[0].UnitPrice)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Preference{ID: "pref-1", InitPoint: "https://mp.test/init/pref-1"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	preference, err := client.CreatePreference(context.Background(), "TEST-TOKEN", &PreferenceRequest{
		Items: []PreferenceItem{
			{Title: "Shampoo", Quantity: 2, UnitPrice: 507},
			{Title: "Envío", Quantity: 1, UnitPrice: 250},
		},
		ExternalReference: "42",
		AutoReturn:        "approved",
	})

	require.NoError(t, err)
	assert.Equal(t, "pref-1", preference.ID)
	assert.Equal(t, "https://mp.test/init/pref-1", preference.InitPoint)
}

func TestClient_CreatePreference_NoInitPoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Preference{ID: "pref-2"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreatePreference(context.Background(), "TEST-TOKEN", &PreferenceRequest{})

	assert.ErrorIs(t, err, ErrNoInitPoint)
}

func TestClient_CreatePreference_MissingToken(t *testing.T) {
	client := newTestClient("http://unused.test")

	_, err := client.CreatePreference(context.Background(), "", &PreferenceRequest{})

	assert.ErrorIs(t, err, ErrMissingAccessToken)
}

func TestClient_GetPayment(t *testing.T) {
	approved := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/123456", r.URL.Path)
		json.NewEncoder(w).Encode(Payment{
			ID:                123456,
			Status:            "approved",
			ExternalReference: "42",
			DateApproved:      &approved,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	payment, err := client.GetPayment(context.Background(), "TEST-TOKEN", "123456")

	require.NoError(t, err)
	assert.Equal(t, int64(123456), payment.ID)
	assert.Equal(t, "approved", payment.Status)
	assert.Equal(t, "42", payment.ExternalReference)
	require.NotNil(t, payment.DateApproved)
	assert.True(t, approved.Equal(*payment.DateApproved))
}

func TestClient_GetPayment_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"payment not found"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetPayment(context.Background(), "TEST-TOKEN", "999")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_SearchPayments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "date_created", q.Get("range"))
		assert.NotEmpty(t, q.Get("begin_date"))
		assert.NotEmpty(t, q.Get("end_date"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []Payment{
				{ID: 2, Status: "approved"},
				{ID: 1, Status: "rejected"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	payments, err := client.SearchPayments(context.Background(), "TEST-TOKEN",
		time.Now().Add(-24*time.Hour), time.Now())

	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "approved", payments[0].Status)
}
