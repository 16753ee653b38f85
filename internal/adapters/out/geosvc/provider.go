// Package geosvc implements the location provider port against the fleet
// telemetry service. Positions are read-only and informational; nothing in
// the order lifecycle depends on them.
package geosvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freightline/internal/core/domain/model/kernel"
	"freightline/internal/core/ports"
	"freightline/internal/pkg/errs"
)

// Provider implements ports.LocationProvider over the telemetry HTTP API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// NewProvider creates a Provider for the given API base URL.
func NewProvider(baseURL string, timeout time.Duration) *Provider {
	return &Provider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DriverLocation returns the driver's last reported position.
// Returns errs.ErrObjectNotFound when the service has no position for the driver.
func (p *Provider) DriverLocation(ctx context.Context, driverID kernel.UUID) (ports.Coordinates, error) {
	url := fmt.Sprintf("%s/v1/drivers/%s/location", p.baseURL, driverID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Coordinates{}, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ports.Coordinates{}, fmt.Errorf("location service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.Coordinates{}, errs.NewObjectNotFoundError("driver location", driverID.String())
	}
	if resp.StatusCode != http.StatusOK {
		return ports.Coordinates{}, fmt.Errorf("location service returned %d", resp.StatusCode)
	}

	var result locationResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ports.Coordinates{}, fmt.Errorf("location service returned malformed response: %w", err)
	}

	return ports.Coordinates{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
	}, nil
}
