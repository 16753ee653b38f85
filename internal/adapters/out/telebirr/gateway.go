// Package telebirr implements the payment gateway port against the Telebirr
// HTTP API. Only the hold/capture/refund subset the marketplace needs is
// wrapped; everything else the provider offers is out of scope.
package telebirr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"freightline/internal/core/domain/model/kernel"
)

// Gateway implements ports.PaymentGateway over the provider's REST endpoints.
// The caller's referenceID is forwarded as the provider's idempotency key, so
// replaying a request after a timeout cannot double-charge.
type Gateway struct {
	baseURL    string
	appKey     string
	httpClient *http.Client
}

// NewGateway creates a Gateway for the given API base URL and application key.
func NewGateway(baseURL, appKey string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		appKey:  appKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type paymentRequest struct {
	ReferenceID string `json:"reference_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type paymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// Authorize places a hold on the payer's funds.
func (g *Gateway) Authorize(ctx context.Context, referenceID string, amount kernel.Money) (string, error) {
	return g.post(ctx, "/v1/payments/authorize", paymentRequest{
		ReferenceID: referenceID,
		Amount:      amount.Amount(),
		Currency:    amount.Currency(),
	})
}

// Capture charges previously authorized funds, fully or partially.
func (g *Gateway) Capture(ctx context.Context, gatewayRef string, amount kernel.Money) (string, error) {
	return g.post(ctx, fmt.Sprintf("/v1/payments/%s/capture", gatewayRef), paymentRequest{
		ReferenceID: gatewayRef,
		Amount:      amount.Amount(),
		Currency:    amount.Currency(),
	})
}

// Refund releases previously authorized funds back to the payer.
func (g *Gateway) Refund(ctx context.Context, gatewayRef string, amount kernel.Money) (string, error) {
	return g.post(ctx, fmt.Sprintf("/v1/payments/%s/refund", gatewayRef), paymentRequest{
		ReferenceID: gatewayRef,
		Amount:      amount.Amount(),
		Currency:    amount.Currency(),
	})
}

func (g *Gateway) post(ctx context.Context, path string, payload paymentRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-App-Key", g.appKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment gateway returned %d: %s", resp.StatusCode, raw)
	}

	var result paymentResponse
	if err = json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("payment gateway returned malformed response: %w", err)
	}
	if result.Status != "SUCCESS" {
		return "", fmt.Errorf("payment gateway rejected operation: %s", result.Message)
	}

	return result.TransactionID, nil
}
