package siwe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/clients"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/logging"
)

// Client talks to the identity backend that issues and verifies
// wallet sign-in messages.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	logger      logging.Logger
	retryConfig clients.RetryConfig
}

// Config represents the configuration for the identity backend client
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Logger      logging.Logger
	RetryConfig *clients.RetryConfig
}

// NewClient creates a new identity backend client
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	retryConfig := clients.DefaultRetryConfig()
	if config.RetryConfig != nil {
		retryConfig = *config.RetryConfig
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: clients.DefaultTransport(),
	}

	return &Client{
		baseURL:     config.BaseURL,
		httpClient:  httpClient,
		logger:      config.Logger,
		retryConfig: retryConfig,
	}
}

// MessageRequest asks the backend for a message to sign.
type MessageRequest struct {
	Address string `json:"address"`
	Domain  string `json:"domain"`
	URI     string `json:"uri"`
}

// MessageResponse carries the challenge message issued by the backend.
type MessageResponse struct {
	Message string `json:"message"`
}

// VerifyRequest submits the signed message for verification.
type VerifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// VerifyResponse reports the verification outcome.
type VerifyResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Message requests a sign-in challenge for the given account.
func (c *Client) Message(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, "/metamask/message", req, &resp); err != nil {
		return nil, err
	}
	if resp.Message == "" {
		return nil, fmt.Errorf("identity backend returned an empty challenge")
	}
	return &resp, nil
}

// Verify submits a signed challenge and returns the backend's verdict.
func (c *Client) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.post(ctx, "/metamask/verify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := clients.DoWithRetry(ctx, c.httpClient, req, c.retryConfig)
	if err != nil {
		return fmt.Errorf("failed to call identity backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.WithFields(logging.Fields{
				"endpoint": endpoint,
				"status":   resp.StatusCode,
			}).Warn("Identity backend request failed")
		}
		return fmt.Errorf("identity backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
