package checkout

import (
	"context"

	"trexle/internal/gateway"
)

// OrderContext is what the host platform knows about an order at payment
// time. TransactionID is the most recent non-empty gateway token recorded
// against the order, or "" when nothing was charged yet.
type OrderContext struct {
	CartID        uint
	Amount        float64
	Currency      string
	State         string
	Email         string
	TransactionID string
}

// OrderStore is the narrow collaborator boundary into the host platform's
// order state machine. The payment flow never touches order rows directly.
type OrderStore interface {
	// FetchOrderContext loads the payment-relevant slice of an order.
	FetchOrderContext(ctx context.Context, orderID uint) (OrderContext, error)

	// ApplyResult records the outcome of a gateway operation: an order
	// message, optionally a payment row carrying transactionID, and a
	// state transition when state is non-empty. It returns the order's
	// resulting state.
	ApplyResult(ctx context.Context, orderID uint, state, message, transactionID string) (string, error)
}

// IdempotencyStore guards against double submission of the same checkout
// attempt. Acquire returns false when the key was already used.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string) (bool, error)
}

// Gateway is the transaction core surface the service drives. Satisfied by
// *gateway.Client.
type Gateway interface {
	Charge(ctx context.Context, req gateway.ChargeRequest) gateway.Result
	Preauth(ctx context.Context, req gateway.ChargeRequest) gateway.Result
	Refund(ctx context.Context, transactionID string, amount float64, currency string) gateway.Result
	Capture(ctx context.Context, transactionID string, amount float64, currency string) gateway.Result
}
