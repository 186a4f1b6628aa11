package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-randomize/ecommerce-go/internal/checkout"
)

func TestCreateIntent_SendsAmountAndReturnsSecret(t *testing.T) {
	var got checkout.IntentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment-intents", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"client_secret": "pi_abc"})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	secret, err := g.CreateIntent(context.Background(), checkout.IntentRequest{
		Amount:       4500,
		Currency:     "USD",
		ReceiptEmail: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_abc", secret)
	assert.Equal(t, int64(4500), got.Amount)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "jane@example.com", got.ReceiptEmail)
}

func TestCreateIntent_MissingSecretIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	_, err := g.CreateIntent(context.Background(), checkout.IntentRequest{Amount: 100, Currency: "USD"})
	assert.ErrorContains(t, err, "no client secret")
}

func TestConfirm_SendsSecretInstrumentAndBilling(t *testing.T) {
	var got confirmRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment-intents/confirm", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	err := g.Confirm(context.Background(), "pi_abc",
		checkout.Instrument{CardType: "Visa", CardNumber: "4242424242424242"},
		checkout.BillingDetails{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "pi_abc", got.ClientSecret)
	assert.Equal(t, "Visa", got.Instrument.CardType)
	assert.Equal(t, "Jane Doe", got.Billing.Name)
}

func TestConfirm_NonSuccessStatusSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "card declined", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, srv.Client())
	err := g.Confirm(context.Background(), "pi_abc", checkout.Instrument{}, checkout.BillingDetails{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "402")
	assert.ErrorContains(t, err, "card declined")
}

func TestGateway_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // every call now fails at the transport

	g := NewHTTPGateway(srv.URL, srv.Client())
	for i := 0; i < 5; i++ {
		err := g.Confirm(context.Background(), "pi_abc", checkout.Instrument{}, checkout.BillingDetails{})
		require.Error(t, err)
	}

	err := g.Confirm(context.Background(), "pi_abc", checkout.Instrument{}, checkout.BillingDetails{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
