package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight rejects a submit while an attempt is running.
	ErrSubmissionInFlight = errors.New("a checkout attempt is already in flight")

	IllegalTransitionError = errors.New("illegal transition of checkout status")
)

// Gateway stages, so intent and confirmation failures are distinguishable in
// logs and messages.
const (
	StageIntent       = "payment_intent"
	StageConfirmation = "confirmation"
)

// ValidationError carries the per-field failures of a rejected submission.
// It is raised before any network call and is fully recoverable locally.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed for %d field(s)", len(e.Fields))
}

// GatewayError is a payment-intent or confirmation failure. The cart and its
// persisted storage are untouched; the shopper may simply retry.
type GatewayError struct {
	Stage string
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Stage, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// BackendError is an order placement failure after payment was confirmed.
// This is the most severe class: money may be captured without a recorded
// order, so the message must be unmistakably different from a gateway
// failure and the cart is deliberately left intact.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("order placement failed after payment was confirmed, reconciliation may be needed: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
