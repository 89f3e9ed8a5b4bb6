package domain

import "errors"

// Error taxonomy shared across services and transports. Services wrap these
// with %w and a human-readable reason; handlers map them to status codes.
var (
	// ErrValidation covers bad input shape or range. Not retryable.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when a lifecycle operation is attempted
	// from a non-matching booking status. The booking is left untouched.
	ErrInvalidTransition = errors.New("invalid booking state transition")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUsed is returned on a single-use violation (coupon burn).
	ErrAlreadyUsed = errors.New("already used")

	// ErrAlreadyClaimed is returned when a refund/payout claim or penalty
	// payment is attempted after the record has left its initial state.
	ErrAlreadyClaimed = errors.New("already claimed")

	// ErrSlotUnavailable is returned when a booking window overlaps an active
	// booking for the same car. Exactly one of two concurrent confirmations
	// for overlapping windows succeeds.
	ErrSlotUnavailable = errors.New("car is not available for the requested window")

	// ErrInvalidDestination rejects a claim with an empty or malformed payout
	// destination id. No state change occurs.
	ErrInvalidDestination = errors.New("invalid payout destination")

	// ErrOTPMismatch rejects a pickup/drop confirmation whose code does not
	// match the stored handover OTP.
	ErrOTPMismatch = errors.New("otp does not match")

	// ErrGateway indicates a payment gateway failure (non-2xx, timeout).
	// Retryable by the caller; the engine never auto-retries.
	ErrGateway = errors.New("payment gateway error")

	// ErrVerificationFailed indicates a definitive payment signature
	// rejection. Not retryable with the same proof.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrUploadFailed indicates an evidence storage failure. Retryable.
	ErrUploadFailed = errors.New("evidence upload failed")
)
