package bankcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPClient calls an external bank verification API over REST.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a penny-drop client against the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

type verifyRequest struct {
	AccountNumber string `json:"accountNumber"`
	RoutingCode   string `json:"routingCode"`
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

func (c *HTTPClient) VerifyAccount(ctx context.Context, accountNumber, routingCode string) (bool, error) {
	body, err := json.Marshal(verifyRequest{
		AccountNumber: accountNumber,
		RoutingCode:   routingCode,
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("penny drop API returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}
	return result.Verified, nil
}
