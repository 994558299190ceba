package payment

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
)

type fakeDirectory struct {
	mu         sync.Mutex
	businesses []referral.Business
	listErr    error
	paying     *referral.Business
	payingErr  error
	payingRefs []string
}

func (f *fakeDirectory) CredentialedBusinesses(_ context.Context) ([]referral.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.businesses, f.listErr
}

func (f *fakeDirectory) PayingBusinessForRef(_ context.Context, ref string) (*referral.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payingRefs = append(f.payingRefs, ref)
	return f.paying, f.payingErr
}

// fakeFetcher serves payments per access token, recording the order in
// which tokens were tried.
type fakeFetcher struct {
	mu       sync.Mutex
	payments map[string]*Payment
	tokens   []string
}

func (f *fakeFetcher) GetPayment(_ context.Context, accessToken, _ string) (*Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, accessToken)
	if p, ok := f.payments[accessToken]; ok {
		return p, nil
	}
	return nil, errors.New("payment not found")
}

type fakeRecorder struct {
	mu        sync.Mutex
	order     *order.Order
	orderErr  error
	recordErr error
	recorded  []*order.Transaction
}

func (f *fakeRecorder) GetByExternalReference(_ context.Context, _ string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order, f.orderErr
}

func (f *fakeRecorder) RecordTransaction(_ context.Context, t *order.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, t)
	return f.recordErr
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func twoBusinesses() []referral.Business {
	return []referral.Business{
		{ID: 1, MPAccessToken: "TOKEN-A"},
		{ID: 2, MPAccessToken: "TOKEN-B"},
	}
}

func TestProcess_RecordsAuthoritativePayment(t *testing.T) {
	approvedAt := time.Now()
	directory := &fakeDirectory{
		businesses: twoBusinesses(),
		paying:     &referral.Business{ID: 2, MPAccessToken: "TOKEN-B"},
	}
	gateway := &fakeFetcher{payments: map[string]*Payment{
		// The probe lands on the first business that can see the
		// payment; the attributed business returns the full record.
		"TOKEN-A": {ID: 314, Status: "in_process", ExternalReference: "42"},
		"TOKEN-B": {ID: 314, Status: "approved", ExternalReference: "42", DateApproved: &approvedAt},
	}}
	recorder := &fakeRecorder{order: &order.Order{ID: 42, Ref: "embajadora@example.com"}}
	processor := NewProcessor(directory, gateway, recorder, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "payment", PaymentID: "314"})

	require.NoError(t, err)
	require.Len(t, recorder.recorded, 1)
	recorded := recorder.recorded[0]
	assert.Equal(t, "314", recorded.PaymentID)
	assert.Equal(t, "approved", recorded.Status)
	assert.Equal(t, "42", recorded.ExternalReference)
	assert.Equal(t, &approvedAt, recorded.DateApproved)

	assert.Equal(t, []string{"embajadora@example.com"}, directory.payingRefs)
	assert.Equal(t, []string{"TOKEN-A", "TOKEN-B"}, gateway.tokens)
}

func TestProcess_ProbeSkipsBusinessesThatCannotSeeThePayment(t *testing.T) {
	directory := &fakeDirectory{
		businesses: twoBusinesses(),
		paying:     &referral.Business{ID: 2, MPAccessToken: "TOKEN-B"},
	}
	gateway := &fakeFetcher{payments: map[string]*Payment{
		"TOKEN-B": {ID: 314, Status: "approved", ExternalReference: "42"},
	}}
	recorder := &fakeRecorder{order: &order.Order{ID: 42, Ref: "embajadora@example.com"}}
	processor := NewProcessor(directory, gateway, recorder, quietLogger())

	err := processor.Process(context.Background(), &Notification{PaymentID: "314"})

	require.NoError(t, err)
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, "approved", recorder.recorded[0].Status)
	// TOKEN-A fails the probe, TOKEN-B answers it and the fetch after
	// attribution.
	assert.Equal(t, []string{"TOKEN-A", "TOKEN-B", "TOKEN-B"}, gateway.tokens)
}

func TestProcess_KeepsProbeWhenAttributionFails(t *testing.T) {
	directory := &fakeDirectory{
		businesses: twoBusinesses(),
		payingErr:  referral.ErrAmbassadorNotFound,
	}
	gateway := &fakeFetcher{payments: map[string]*Payment{
		"TOKEN-A": {ID: 314, Status: "in_process", ExternalReference: "42"},
	}}
	recorder := &fakeRecorder{order: &order.Order{ID: 42, Ref: "embajadora@example.com"}}
	processor := NewProcessor(directory, gateway, recorder, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "payment", PaymentID: "314"})

	require.NoError(t, err)
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, "in_process", recorder.recorded[0].Status)
	assert.Equal(t, []string{"TOKEN-A"}, gateway.tokens, "no authoritative fetch without attribution")
}

func TestProcess_KeepsProbeWhenAuthoritativeFetchFails(t *testing.T) {
	directory := &fakeDirectory{
		businesses: []referral.Business{{ID: 1, MPAccessToken: "TOKEN-A"}},
		paying:     &referral.Business{ID: 2, MPAccessToken: "TOKEN-MISSING"},
	}
	gateway := &fakeFetcher{payments: map[string]*Payment{
		"TOKEN-A": {ID: 314, Status: "in_process", ExternalReference: "42"},
	}}
	recorder := &fakeRecorder{order: &order.Order{ID: 42, Ref: "embajadora@example.com"}}
	processor := NewProcessor(directory, gateway, recorder, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "payment", PaymentID: "314"})

	require.NoError(t, err)
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, "in_process", recorder.recorded[0].Status)
}

func TestProcess_IgnoresNonPaymentTopic(t *testing.T) {
	directory := &fakeDirectory{businesses: twoBusinesses()}
	gateway := &fakeFetcher{}
	recorder := &fakeRecorder{}
	processor := NewProcessor(directory, gateway, recorder, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "merchant_order", PaymentID: "314"})

	require.NoError(t, err)
	assert.Empty(t, gateway.tokens)
	assert.Empty(t, recorder.recorded)
}

func TestProcess_MissingPaymentID(t *testing.T) {
	processor := NewProcessor(&fakeDirectory{}, &fakeFetcher{}, &fakeRecorder{}, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "payment"})

	assert.Error(t, err)
}

func TestProcess_NoCredentialedBusiness(t *testing.T) {
	processor := NewProcessor(&fakeDirectory{}, &fakeFetcher{}, &fakeRecorder{}, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "payment", PaymentID: "314"})

	assert.ErrorIs(t, err, ErrNoCredentialedBusiness)
}

func TestProcess_UnknownOrder(t *testing.T) {
	directory := &fakeDirectory{businesses: []referral.Business{{ID: 1, MPAccessToken: "TOKEN-A"}}}
	gateway := &fakeFetcher{payments: map[string]*Payment{
		"TOKEN-A": {ID: 314, Status: "approved", ExternalReference: "nope"},
	}}
	recorder := &fakeRecorder{orderErr: order.ErrOrderNotFound}
	processor := NewProcessor(directory, gateway, recorder, quietLogger())

	err := processor.Process(context.Background(), &Notification{Topic: "payment", PaymentID: "314"})

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Empty(t, recorder.recorded)
}
