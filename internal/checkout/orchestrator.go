package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Mr-randomize/ecommerce-go/internal/cart"
	"github.com/Mr-randomize/ecommerce-go/internal/telemetry"
)

// Currency is the fixed currency code sent to the payment gateway.
const Currency = "USD"

// Result is what a completed checkout hands back to the caller.
type Result struct {
	OrderTrackingNumber string    `json:"orderTrackingNumber"`
	Purchase            *Purchase `json:"-"`
}

// Orchestrator drives one checkout session through validation, payment and
// order placement. The three network operations of an attempt run strictly
// in sequence and are never retried; every failure is terminal for that
// attempt and hands control back to Editing with the cart untouched.
type Orchestrator struct {
	cart    *cart.Store
	form    *Form
	gateway Gateway
	backend Backend
	events  CompletionPublisher
	metrics *telemetry.CheckoutMetrics

	mu      sync.Mutex
	status  Status
	lastErr error
}

// NewOrchestrator wires one orchestrator to one session's cart store.
// events and metrics may be nil.
func NewOrchestrator(cartStore *cart.Store, form *Form, gateway Gateway, backend Backend,
	events CompletionPublisher, metrics *telemetry.CheckoutMetrics) *Orchestrator {
	return &Orchestrator{
		cart:    cartStore,
		form:    form,
		gateway: gateway,
		backend: backend,
		events:  events,
		metrics: metrics,
		status:  StatusEditing,
	}
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// LastError returns the error of the most recent failed attempt, if any.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func (o *Orchestrator) Form() *Form {
	return o.form
}

func (o *Orchestrator) Cart() *cart.Store {
	return o.cart
}

// Submit runs one checkout attempt. It is only valid from Editing; a submit
// while another attempt is in flight returns ErrSubmissionInFlight and has no
// other effect.
func (o *Orchestrator) Submit(ctx context.Context) (*Result, error) {
	started := time.Now()

	o.mu.Lock()
	if o.status.InFlight() {
		o.mu.Unlock()
		o.metrics.Record(telemetry.OutcomeDuplicateRejected)
		return nil, ErrSubmissionInFlight
	}
	o.status = StatusValidating
	o.lastErr = nil
	o.mu.Unlock()

	if errs := Validate(o.form); errs.Any() {
		o.form.MarkAllTouched()
		o.setStatus(StatusEditing)
		o.metrics.Record(telemetry.OutcomeValidationFailed)
		return nil, &ValidationError{Fields: errs}
	}

	// Freeze the attempt: live cart mutations after this point do not leak
	// into the purchase.
	items := o.cart.Items()
	totals := o.cart.Totals()
	purchase := newPurchase(ctx, items, totals, o.form)

	if err := o.setStatus(StatusAwaitingPaymentIntent); err != nil {
		return nil, o.fail(ctx, err, telemetry.OutcomeGatewayFailed)
	}
	slog.InfoContext(ctx, "creating payment intent",
		slog.String("session_id", o.cart.SessionID()),
		slog.Int64("amount_minor", MinorUnits(totals.Price)),
		slog.Int("total_quantity", totals.Quantity))

	clientSecret, err := o.gateway.CreateIntent(ctx, IntentRequest{
		Amount:       MinorUnits(totals.Price),
		Currency:     Currency,
		ReceiptEmail: purchase.Customer.Email,
	})
	if err != nil {
		return nil, o.fail(ctx, &GatewayError{Stage: StageIntent, Err: err}, telemetry.OutcomeGatewayFailed)
	}

	if err := o.setStatus(StatusAwaitingPaymentConfirmation); err != nil {
		return nil, o.fail(ctx, err, telemetry.OutcomeGatewayFailed)
	}
	err = o.gateway.Confirm(ctx, clientSecret, instrumentFrom(o.form.Card), BillingDetails{
		Name:    purchase.Customer.FirstName + " " + purchase.Customer.LastName,
		Email:   purchase.Customer.Email,
		Address: purchase.BillingAddress,
	})
	if err != nil {
		return nil, o.fail(ctx, &GatewayError{Stage: StageConfirmation, Err: err}, telemetry.OutcomeGatewayFailed)
	}

	if err := o.setStatus(StatusPlacingOrder); err != nil {
		return nil, o.fail(ctx, err, telemetry.OutcomeBackendFailed)
	}
	resp, err := o.backend.PlaceOrder(ctx, purchase)
	if err != nil {
		return nil, o.fail(ctx, &BackendError{Err: err}, telemetry.OutcomeBackendFailed)
	}
	if resp == nil || resp.OrderTrackingNumber == "" {
		return nil, o.fail(ctx, &BackendError{Err: errors.New("backend returned no tracking number")}, telemetry.OutcomeBackendFailed)
	}

	if err := o.setStatus(StatusCompleted); err != nil {
		return nil, o.fail(ctx, err, telemetry.OutcomeBackendFailed)
	}

	// The one and only place the cart is cleared.
	if err := o.cart.Reset(ctx); err != nil {
		slog.WarnContext(ctx, "cart reset after completed checkout failed", slog.Any("error", err))
	}
	o.form.Reset()

	if o.events != nil {
		o.events.OrderCompleted(purchase, resp.OrderTrackingNumber)
	}
	o.metrics.Record(telemetry.OutcomeCompleted)
	o.metrics.Observe(time.Since(started).Seconds())
	slog.InfoContext(ctx, "checkout completed",
		slog.String("session_id", o.cart.SessionID()),
		slog.String("tracking_number", resp.OrderTrackingNumber))

	// ready for a fresh cart
	o.setStatus(StatusEditing)

	return &Result{OrderTrackingNumber: resp.OrderTrackingNumber, Purchase: purchase}, nil
}

// fail records the error, passes through ErrorState and returns control to
// Editing, re-enabling the submit affordance. The cart and its persisted
// storage are left exactly as they were.
func (o *Orchestrator) fail(ctx context.Context, err error, outcome string) error {
	o.mu.Lock()
	from := o.status
	o.status = StatusError
	o.lastErr = err
	o.status = StatusEditing
	o.mu.Unlock()

	o.metrics.Record(outcome)
	slog.ErrorContext(ctx, "checkout attempt failed",
		slog.String("session_id", o.cart.SessionID()),
		slog.String("failed_in", from.String()),
		slog.Any("error", err))
	return err
}

func (o *Orchestrator) setStatus(to Status) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !CanTransitionTo(o.status, to) {
		return fmt.Errorf("%w: %s -> %s", IllegalTransitionError, o.status, to)
	}
	o.status = to
	return nil
}

func instrumentFrom(card CardFields) Instrument {
	return Instrument{
		CardType:        card.CardType,
		NameOnCard:      card.NameOnCard,
		CardNumber:      card.CardNumber,
		SecurityCode:    card.SecurityCode,
		ExpirationMonth: card.ExpirationMonth,
		ExpirationYear:  card.ExpirationYear,
	}
}
