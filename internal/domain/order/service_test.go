package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromGateway(t *testing.T) {
	cases := []struct {
		gateway string
		want    OrderStatus
	}{
		{"approved", OrderStatusApproved},
		{"rejected", OrderStatusRejected},
		{"in_process", OrderStatusInProcess},
		{"in_mediation", OrderStatusInProcess},
		{"cancelled", OrderStatusCancelled},
		{"refunded", OrderStatusCancelled},
		{"charged_back", OrderStatusCancelled},
		{"pending", OrderStatusPending},
		{"something_new", OrderStatusPending},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFromGateway(tc.gateway), "gateway status %q", tc.gateway)
	}
}

func TestApplyTransaction_ApprovesPendingOrder(t *testing.T) {
	o := &Order{ID: 42, Status: OrderStatusPending}
	tx := &Transaction{PaymentID: "314", Status: "approved", ExternalReference: "42"}

	assert.True(t, applyTransaction(o, tx))
	assert.Equal(t, OrderStatusApproved, o.Status)
	assert.Equal(t, "314", o.TransactionID)
}

func TestApplyTransaction_RejectsPendingOrder(t *testing.T) {
	o := &Order{ID: 42, Status: OrderStatusPending}
	tx := &Transaction{PaymentID: "314", Status: "rejected"}

	assert.True(t, applyTransaction(o, tx))
	assert.Equal(t, OrderStatusRejected, o.Status)
}

func TestApplyTransaction_NoChangeWhenStatusMatches(t *testing.T) {
	o := &Order{ID: 42, Status: OrderStatusPending}
	tx := &Transaction{PaymentID: "314", Status: "pending"}

	assert.False(t, applyTransaction(o, tx))
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Empty(t, o.TransactionID, "transaction id only stamped on a real transition")
}

func TestApplyTransaction_UnknownGatewayStatusKeepsPending(t *testing.T) {
	o := &Order{ID: 42, Status: OrderStatusPending}
	tx := &Transaction{PaymentID: "314", Status: "something_new"}

	assert.False(t, applyTransaction(o, tx))
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestOrder_Subtotal(t *testing.T) {
	o := &Order{Total: 1441 + 250, ShippingCost: 250}
	assert.Equal(t, int64(1441), o.Subtotal())
}

func TestOrder_BuyerName(t *testing.T) {
	assert.Equal(t, "Ana Gómez", (&Order{FirstName: "Ana", LastName: "Gómez"}).BuyerName())
	assert.Equal(t, "Ana", (&Order{FirstName: "Ana"}).BuyerName())
}
