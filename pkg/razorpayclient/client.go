/**
 * @description
 * This package provides a client for the Razorpay X payout API. It
 * encapsulates the logic for making authenticated HTTP requests to the
 * contacts, fund accounts, and payouts endpoints.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net/http, time: Standard Go libraries.
 * - The service's internal domain package for request/response models.
 */
package razorpayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/domain"
)

// payoutIdempotencyHeader lets Razorpay de-duplicate retried payout requests.
const payoutIdempotencyHeader = "X-Payout-Idempotency"

// Client is a client for the Razorpay API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient creates a new Razorpay API client authenticating with the given
// key pair. Outbound calls are bounded by a fixed timeout.
func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateContact registers a payee identity on Razorpay.
func (c *Client) CreateContact(ctx context.Context, req domain.CreateContactRequest) (*domain.ContactResponse, error) {
	var resp domain.ContactResponse
	url := fmt.Sprintf("%s/contacts", c.baseURL)
	if err := c.do(ctx, http.MethodPost, url, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateFundAccount registers a payout destination tied to a contact.
func (c *Client) CreateFundAccount(ctx context.Context, req domain.CreateFundAccountRequest) (*domain.FundAccountResponse, error) {
	var resp domain.FundAccountResponse
	url := fmt.Sprintf("%s/fund_accounts", c.baseURL)
	if err := c.do(ctx, http.MethodPost, url, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePayout executes a payout to a fund account. The idempotency key is
// forwarded so Razorpay can collapse retried requests into one payout.
func (c *Client) CreatePayout(ctx context.Context, req domain.CreatePayoutRequest, idempotencyKey string) (*domain.PayoutResponse, error) {
	var resp domain.PayoutResponse
	url := fmt.Sprintf("%s/payouts", c.baseURL)
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{payoutIdempotencyHeader: idempotencyKey}
	}
	if err := c.do(ctx, http.MethodPost, url, headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// errorResponse is Razorpay's error envelope.
type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// do is a helper function to make HTTP requests to the Razorpay API.
func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	log.Printf("Making Razorpay API request: %s %s", method, url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("razorpay request %s %s: %v: %w", method, url, err, domain.ErrProvider)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Razorpay API returned non-success status code %d: %s", resp.StatusCode, string(respBody))
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("razorpay api error: status %d: %s (%s): %w",
				resp.StatusCode, apiErr.Error.Description, apiErr.Error.Code, domain.ErrProvider)
		}
		return fmt.Errorf("razorpay api error: status %d, body: %s: %w", resp.StatusCode, string(respBody), domain.ErrProvider)
	}

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return fmt.Errorf("failed to unmarshal razorpay response: %v: %w", err, domain.ErrProvider)
		}
	}

	return nil
}
