package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Mr-randomize/ecommerce-go/internal/checkout"
)

// HTTPBackend implements checkout.Backend against the order service's REST
// API. It submits the frozen purchase and expects a tracking number back.
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

func NewHTTPBackend(baseURL string, client *http.Client) *HTTPBackend {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPBackend{baseURL: baseURL, client: client}
}

func (b *HTTPBackend) PlaceOrder(ctx context.Context, purchase *checkout.Purchase) (*checkout.PlaceOrderResponse, error) {
	payload, err := json.Marshal(purchase)
	if err != nil {
		return nil, fmt.Errorf("encode purchase: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/checkout/purchase", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("order service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out checkout.PlaceOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order service response: %w", err)
	}
	return &out, nil
}
