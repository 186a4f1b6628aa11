package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// HTTPDirectory talks to the reference-data backend. The backend is a Spring
// Data REST service, so collections arrive under an _embedded wrapper.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

func NewHTTPDirectory(baseURL string, client *http.Client) *HTTPDirectory {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDirectory{baseURL: baseURL, client: client}
}

type countriesResponse struct {
	Embedded struct {
		Countries []Country `json:"countries"`
	} `json:"_embedded"`
}

type regionsResponse struct {
	Embedded struct {
		States []Region `json:"states"`
	} `json:"_embedded"`
}

func (d *HTTPDirectory) Countries(ctx context.Context) ([]Country, error) {
	var resp countriesResponse
	if err := d.get(ctx, d.baseURL+"/countries", &resp); err != nil {
		return nil, err
	}
	return resp.Embedded.Countries, nil
}

func (d *HTTPDirectory) Regions(ctx context.Context, countryCode string) ([]Region, error) {
	u := fmt.Sprintf("%s/states/search/findByCountryCode?code=%s", d.baseURL, url.QueryEscape(countryCode))
	var resp regionsResponse
	if err := d.get(ctx, u, &resp); err != nil {
		return nil, err
	}
	return resp.Embedded.States, nil
}

func (d *HTTPDirectory) get(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode directory response: %w", err)
	}
	return nil
}
