package checkout

import (
	"context"
	"sync"

	"github.com/Mr-randomize/ecommerce-go/internal/address"
	"github.com/Mr-randomize/ecommerce-go/internal/cart"
	"github.com/Mr-randomize/ecommerce-go/internal/telemetry"
)

// Sessions hands out one orchestrator per session, each bound to the
// session's cart store and a fresh form pre-filled with the stored user
// email.
type Sessions struct {
	carts    *cart.Manager
	resolver *address.Resolver
	gateway  Gateway
	backend  Backend
	events   CompletionPublisher
	metrics  *telemetry.CheckoutMetrics

	mu sync.Mutex
	m  map[string]*Orchestrator
}

func NewSessions(carts *cart.Manager, resolver *address.Resolver, gateway Gateway, backend Backend,
	events CompletionPublisher, metrics *telemetry.CheckoutMetrics) *Sessions {
	return &Sessions{
		carts:    carts,
		resolver: resolver,
		gateway:  gateway,
		backend:  backend,
		events:   events,
		metrics:  metrics,
		m:        make(map[string]*Orchestrator),
	}
}

func (s *Sessions) Orchestrator(ctx context.Context, sessionID string) *Orchestrator {
	s.mu.Lock()
	if o, ok := s.m[sessionID]; ok {
		s.mu.Unlock()
		return o
	}
	s.mu.Unlock()

	store := s.carts.Store(ctx, sessionID)
	form := NewForm(address.NewForm(s.resolver))
	form.Customer.Email = store.UserEmail(ctx)
	o := NewOrchestrator(store, form, s.gateway, s.backend, s.events, s.metrics)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.m[sessionID]; ok {
		return existing
	}
	s.m[sessionID] = o
	return o
}

// End tears down a session's checkout and cart state, e.g. on logout.
func (s *Sessions) End(sessionID string) {
	s.mu.Lock()
	delete(s.m, sessionID)
	s.mu.Unlock()
	s.carts.Evict(sessionID)
}
