package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_HappyPath(t *testing.T) {
	path := []Status{
		StatusEditing,
		StatusValidating,
		StatusAwaitingPaymentIntent,
		StatusAwaitingPaymentConfirmation,
		StatusPlacingOrder,
		StatusCompleted,
		StatusEditing,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransitionTo(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCanTransitionTo_FailuresGoThroughError(t *testing.T) {
	for _, from := range []Status{
		StatusValidating,
		StatusAwaitingPaymentIntent,
		StatusAwaitingPaymentConfirmation,
		StatusPlacingOrder,
	} {
		assert.True(t, CanTransitionTo(from, StatusError), "%s -> ERROR", from)
	}
	assert.True(t, CanTransitionTo(StatusError, StatusEditing))
}

func TestCanTransitionTo_NoSkippingStages(t *testing.T) {
	assert.False(t, CanTransitionTo(StatusEditing, StatusAwaitingPaymentIntent))
	assert.False(t, CanTransitionTo(StatusValidating, StatusPlacingOrder))
	assert.False(t, CanTransitionTo(StatusAwaitingPaymentIntent, StatusCompleted))
	assert.False(t, CanTransitionTo(StatusCompleted, StatusPlacingOrder))
	assert.False(t, CanTransitionTo(StatusError, StatusValidating))
}

func TestInFlight(t *testing.T) {
	assert.False(t, StatusEditing.InFlight())
	for _, s := range []Status{
		StatusValidating,
		StatusAwaitingPaymentIntent,
		StatusAwaitingPaymentConfirmation,
		StatusPlacingOrder,
		StatusCompleted,
		StatusError,
	} {
		assert.True(t, s.InFlight(), s)
	}
}
