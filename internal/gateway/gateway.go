// Package gateway adapts the external payment settlement provider. Order
// creation and signature verification are the only two operations the booking
// engine consumes; checkout UI and webhooks live outside this service.
package gateway

import "context"

// Order is a provider-side payment order awaiting capture.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units, as the provider reports it
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PaymentGateway is the engine-facing contract. Amounts cross this boundary
// in major currency units; the implementation converts to minor units on the
// wire (x100) and nowhere else does that conversion happen.
type PaymentGateway interface {
	// CreateOrder registers an order for the given amount. Non-2xx responses
	// and timeouts surface as domain.ErrGateway (retryable).
	CreateOrder(ctx context.Context, amountMajor int64, receipt string) (*Order, error)

	// VerifySignature checks the capture proof for an order. A mismatch is
	// domain.ErrVerificationFailed, a definitive rejection.
	VerifySignature(orderID, paymentID, signature string) error
}
