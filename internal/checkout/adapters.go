package checkout

import "context"

// IntentRequest asks the gateway to create a payment intent. Amount is in
// integer minor currency units.
type IntentRequest struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ReceiptEmail string `json:"receiptEmail"`
}

// Instrument is the payment instrument confirmed against a client secret.
type Instrument struct {
	CardType        string `json:"cardType"`
	NameOnCard      string `json:"nameOnCard"`
	CardNumber      string `json:"cardNumber"`
	SecurityCode    string `json:"securityCode"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
}

type BillingDetails struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

// Gateway is the payment gateway port. The vendor integration lives entirely
// behind it; a client secret from CreateIntent is consumed by exactly one
// Confirm and never reused.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (clientSecret string, err error)
	Confirm(ctx context.Context, clientSecret string, instrument Instrument, billing BillingDetails) error
}

type PlaceOrderResponse struct {
	OrderTrackingNumber string `json:"orderTrackingNumber"`
}

// Backend is the order backend port, consuming the purchase snapshot after a
// confirmed payment.
type Backend interface {
	PlaceOrder(ctx context.Context, purchase *Purchase) (*PlaceOrderResponse, error)
}

// CompletionPublisher is notified after a completed checkout. Implementations
// must not block; a lost notification never affects the checkout result.
type CompletionPublisher interface {
	OrderCompleted(purchase *Purchase, trackingNumber string)
}
