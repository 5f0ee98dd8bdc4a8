package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
)

func TestValidTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusPaymentCompleted},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusPaymentCompleted, OrderStatusPacking},
		{OrderStatusPacking, OrderStatusPacked},
		{OrderStatusPacked, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, c := range cases {
		assert.NoError(t, ValidateTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestSkippingStatesRejected(t *testing.T) {
	err := ValidateTransition(OrderStatusPending, OrderStatusPacked)
	assert.True(t, apperrors.IsConflict(err))

	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, string(OrderStatusPending), conflict.CurrentState)

	assert.Error(t, ValidateTransition(OrderStatusPending, OrderStatusShipped))
	assert.Error(t, ValidateTransition(OrderStatusConfirmed, OrderStatusPacking))
}

func TestBackwardTransitionsRejected(t *testing.T) {
	assert.Error(t, ValidateTransition(OrderStatusShipped, OrderStatusPending))
	assert.Error(t, ValidateTransition(OrderStatusPacked, OrderStatusPacking))
	assert.Error(t, ValidateTransition(OrderStatusDelivered, OrderStatusShipped))
}

func TestTerminalStatesFrozen(t *testing.T) {
	for _, to := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPaymentCompleted,
		OrderStatusPacking, OrderStatusPacked, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.Error(t, ValidateTransition(OrderStatusDelivered, to), "delivered -> %s", to)
		assert.Error(t, ValidateTransition(OrderStatusCancelled, to), "cancelled -> %s", to)
	}
}

func TestCancellationOnlyBeforeShipping(t *testing.T) {
	for _, from := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPaymentCompleted,
		OrderStatusPacking, OrderStatusPacked,
	} {
		assert.NoError(t, ValidateTransition(from, OrderStatusCancelled), "%s -> cancelled", from)
	}
	assert.Error(t, ValidateTransition(OrderStatusShipped, OrderStatusCancelled))
}

func TestPackingRequiresCompletedPayment(t *testing.T) {
	assert.Error(t, ValidateState(OrderStatusPacking, PaymentStatusPending))
	assert.Error(t, ValidateState(OrderStatusShipped, PaymentStatusFailed))
	assert.NoError(t, ValidateState(OrderStatusPacking, PaymentStatusCompleted))
	assert.NoError(t, ValidateState(OrderStatusConfirmed, PaymentStatusPending))
}
