package checkout

import (
	"context"
	"sync"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
)

// stubDirectory serves a fixed country/region set for form fixtures.
type stubDirectory struct{}

func (stubDirectory) Countries(context.Context) ([]address.Country, error) {
	return []address.Country{{Code: "US", Name: "United States"}}, nil
}

func (stubDirectory) Regions(context.Context, string) ([]address.Region, error) {
	return []address.Region{{Code: "NY", Name: "New York"}, {Code: "CA", Name: "California"}}, nil
}

// mockGateway implements Gateway and records what it was asked to do.
type mockGateway struct {
	mu sync.Mutex

	IntentErr  error
	ConfirmErr error
	Secret     string

	// OnCreateIntent runs inside CreateIntent, before returning; used to
	// mutate the live cart mid-flight in snapshot tests.
	OnCreateIntent func()
	// BlockConfirm, when set, makes Confirm wait until the channel closes.
	BlockConfirm chan struct{}

	IntentRequests []IntentRequest
	ConfirmedWith  []string
	Instruments    []Instrument
	Billing        []BillingDetails
}

func (g *mockGateway) CreateIntent(_ context.Context, req IntentRequest) (string, error) {
	g.mu.Lock()
	g.IntentRequests = append(g.IntentRequests, req)
	hook := g.OnCreateIntent
	g.mu.Unlock()

	if hook != nil {
		hook()
	}
	if g.IntentErr != nil {
		return "", g.IntentErr
	}
	return g.Secret, nil
}

func (g *mockGateway) Confirm(_ context.Context, clientSecret string, instrument Instrument, billing BillingDetails) error {
	if g.BlockConfirm != nil {
		<-g.BlockConfirm
	}
	g.mu.Lock()
	g.ConfirmedWith = append(g.ConfirmedWith, clientSecret)
	g.Instruments = append(g.Instruments, instrument)
	g.Billing = append(g.Billing, billing)
	g.mu.Unlock()
	return g.ConfirmErr
}

func (g *mockGateway) intentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.IntentRequests)
}

// mockBackend implements Backend.
type mockBackend struct {
	mu sync.Mutex

	Resp *PlaceOrderResponse
	Err  error

	Placed []*Purchase
}

func (b *mockBackend) PlaceOrder(_ context.Context, purchase *Purchase) (*PlaceOrderResponse, error) {
	b.mu.Lock()
	b.Placed = append(b.Placed, purchase)
	b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Resp, nil
}

func (b *mockBackend) placeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Placed)
}

// recordingPublisher implements CompletionPublisher.
type recordingPublisher struct {
	mu       sync.Mutex
	Purchase *Purchase
	Tracking string
}

func (p *recordingPublisher) OrderCompleted(purchase *Purchase, trackingNumber string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Purchase = purchase
	p.Tracking = trackingNumber
}
