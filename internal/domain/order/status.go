// internal/domain/order/status.go
package order

import (
	"fmt"

	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
)

// validTransitions is the workflow-axis state machine. cancelled is
// reachable from every pre-shipped state; shipped and later states cannot
// be cancelled.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:        {OrderStatusPaymentCompleted, OrderStatusCancelled},
	OrderStatusPaymentCompleted: {OrderStatusPacking, OrderStatusCancelled},
	OrderStatusPacking:          {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:           {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:          {OrderStatusDelivered},
	OrderStatusDelivered:        {},
	OrderStatusCancelled:        {},
}

// minimumPayment maps each workflow status to the payment axis it requires.
// Statuses from payment_completed onward demand collected money, preventing
// combinations like delivered with payment still pending.
var minimumPayment = map[OrderStatus]PaymentStatus{
	OrderStatusPaymentCompleted: PaymentStatusCompleted,
	OrderStatusPacking:          PaymentStatusCompleted,
	OrderStatusPacked:           PaymentStatusCompleted,
	OrderStatusShipped:          PaymentStatusCompleted,
	OrderStatusDelivered:        PaymentStatusCompleted,
}

// ValidateTransition checks a workflow transition against the table. The
// returned ConflictError carries the current authoritative status so the
// caller can resync.
func ValidateTransition(from, to OrderStatus) error {
	allowed, exists := validTransitions[from]
	if !exists {
		return apperrors.NewConflict(fmt.Sprintf("unknown order status %q", from), string(from))
	}

	for _, status := range allowed {
		if status == to {
			return nil
		}
	}
	return apperrors.NewConflict(
		fmt.Sprintf("invalid status transition from %s to %s", from, to),
		string(from),
	)
}

// ValidateState checks that the two status axes form a permitted
// combination.
func ValidateState(status OrderStatus, payment PaymentStatus) error {
	required, exists := minimumPayment[status]
	if !exists {
		return nil
	}
	if payment != required {
		return apperrors.NewConflict(
			fmt.Sprintf("status %s requires payment status %s, have %s", status, required, payment),
			string(status),
		)
	}
	return nil
}
