package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Mr-randomize/ecommerce-go/internal/checkout"
)

// HTTPGateway implements checkout.Gateway against the payment processor's
// REST API. Every call goes through a circuit breaker so a degraded processor
// fails fast instead of tying up checkout attempts.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &HTTPGateway{baseURL: baseURL, client: client, breaker: breaker}
}

type intentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// CreateIntent registers the amount with the processor and returns the client
// secret identifying the intent.
func (g *HTTPGateway) CreateIntent(ctx context.Context, req checkout.IntentRequest) (string, error) {
	var out intentResponse
	if err := g.post(ctx, g.baseURL+"/payment-intents", req, &out); err != nil {
		return "", err
	}
	if out.ClientSecret == "" {
		return "", fmt.Errorf("payment processor returned no client secret")
	}
	return out.ClientSecret, nil
}

type confirmRequest struct {
	ClientSecret string                  `json:"client_secret"`
	Instrument   checkout.Instrument     `json:"instrument"`
	Billing      checkout.BillingDetails `json:"billing"`
}

func (g *HTTPGateway) Confirm(ctx context.Context, clientSecret string, instrument checkout.Instrument, billing checkout.BillingDetails) error {
	body := confirmRequest{ClientSecret: clientSecret, Instrument: instrument, Billing: billing}
	return g.post(ctx, g.baseURL+"/payment-intents/confirm", body, nil)
}

func (g *HTTPGateway) post(ctx context.Context, u string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.breaker.Execute(func() (*http.Response, error) {
		return g.client.Do(req)
	})
	if err != nil {
		return fmt.Errorf("payment processor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("payment processor returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode payment processor response: %w", err)
		}
	}
	return nil
}
