// internal/domain/payment/mercadopago.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/your-org/ambassador-platform/internal/config"
)

var (
	ErrMissingAccessToken = errors.New("business has no payment credentials")
	ErrNoInitPoint        = errors.New("gateway returned no init_point")
)

// PreferenceItem is one line of a checkout preference.
type PreferenceItem struct {
	Title      string `json:"title"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	CurrencyID string `json:"currency_id,omitempty"`
}

// BackURLs are the redirect targets after payment.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the payload for creating a checkout preference.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

// Preference is the gateway's checkout preference. InitPoint is the
// URL the buyer is redirected to.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Payment is a gateway payment as returned by the payments API.
type Payment struct {
	ID                int64      `json:"id"`
	Status            string     `json:"status"`
	ExternalReference string     `json:"external_reference"`
	TransactionAmount float64    `json:"transaction_amount"`
	DateCreated       *time.Time `json:"date_created"`
	DateApproved      *time.Time `json:"date_approved"`
}

// Client is a Mercado Pago HTTP client. Credentials are passed per
// call; each business pays into its own account.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Mercado Pago client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.MercadoPago.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.MercadoPago.Timeout,
		},
	}
}

// CreatePreference creates a checkout preference and returns it. A
// response without an init_point is treated as an error.
func (c *Client) CreatePreference(ctx context.Context, accessToken string, req *PreferenceRequest) (*Preference, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	var preference Preference
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", accessToken, req, &preference); err != nil {
		return nil, err
	}
	if preference.InitPoint == "" {
		return nil, ErrNoInitPoint
	}
	return &preference, nil
}

// GetPayment fetches a payment by its gateway id.
func (c *Client) GetPayment(ctx context.Context, accessToken, paymentID string) (*Payment, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	var payment Payment
	path := "/v1/payments/" + url.PathEscape(paymentID)
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// SearchPayments searches payments created in a date range, newest
// first.
func (c *Client) SearchPayments(ctx context.Context, accessToken string, begin, end time.Time) ([]Payment, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	params := url.Values{}
	params.Set("sort", "date_created")
	params.Set("criteria", "desc")
	params.Set("range", "date_created")
	params.Set("begin_date", begin.UTC().Format(time.RFC3339))
	params.Set("end_date", end.UTC().Format(time.RFC3339))

	var result struct {
		Results []Payment `json:"results"`
	}
	path := "/v1/payments/search?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, accessToken, nil, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
