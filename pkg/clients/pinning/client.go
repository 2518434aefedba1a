package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/clients"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/logging"
	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

// Client pins media files and resolves pinned content through a
// public gateway.
type Client struct {
	baseURL     string
	gatewayURL  string
	jwt         string
	httpClient  *http.Client
	logger      logging.Logger
	retryConfig clients.RetryConfig
	limiter     *rate.Limiter
}

// Config represents the configuration for the pinning client
type Config struct {
	BaseURL     string
	GatewayURL  string
	JWT         string
	Timeout     time.Duration
	Logger      logging.Logger
	RetryConfig *clients.RetryConfig

	// RequestsPerSecond caps outbound calls; 0 disables limiting
	RequestsPerSecond float64
}

// NewClient creates a new pinning client
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.GatewayURL == "" {
		config.GatewayURL = "https://gateway.pinata.cloud"
	}

	retryConfig := clients.DefaultRetryConfig()
	if config.RetryConfig != nil {
		retryConfig = *config.RetryConfig
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    config.BaseURL,
		gatewayURL: strings.TrimSuffix(config.GatewayURL, "/"),
		jwt:        config.JWT,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: clients.DefaultTransport(),
		},
		logger:      config.Logger,
		retryConfig: retryConfig,
		limiter:     limiter,
	}
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
	Error     string `json:"error,omitempty"`
}

// Pin uploads a file and returns its content identifier.
func (c *Client) Pin(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to read media: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/pinning/pinFileToIPFS", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.jwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.jwt)
	}

	resp, err := clients.DoWithRetry(ctx, c.httpClient, req, c.retryConfig)
	if err != nil {
		return "", fmt.Errorf("failed to call pinning service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.WithFields(logging.Fields{
				"status":   resp.StatusCode,
				"filename": filename,
			}).Warn("Media pin failed")
		}
		return "", fmt.Errorf("pinning service returned status %d: %s", resp.StatusCode, string(body))
	}

	var pin pinResponse
	if err := json.Unmarshal(body, &pin); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if pin.IpfsHash == "" {
		return "", fmt.Errorf("pinning service returned no content id")
	}
	return pin.IpfsHash, nil
}

// GatewayURL returns the public URL for a pinned content id.
func (c *Client) GatewayURL(cid string) string {
	if cid == "" {
		return ""
	}
	return c.gatewayURL + "/ipfs/" + cid
}

// ProbeKind classifies pinned content by issuing a HEAD request to the
// gateway and inspecting the Content-Type. An empty cid yields
// MediaKindNone without a request.
func (c *Client) ProbeKind(ctx context.Context, cid string) (models.MediaKind, error) {
	if cid == "" {
		return models.MediaKindNone, nil
	}
	if err := c.wait(ctx); err != nil {
		return models.MediaKindNone, err
	}

	req, err := http.NewRequestWithContext(ctx, "HEAD", c.GatewayURL(cid), nil)
	if err != nil {
		return models.MediaKindNone, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := clients.DoWithRetry(ctx, c.httpClient, req, c.retryConfig)
	if err != nil {
		return models.MediaKindNone, fmt.Errorf("failed to probe media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.MediaKindNone, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	return KindFromContentType(resp.Header.Get("Content-Type")), nil
}

// KindFromContentType maps a MIME type to a media kind. Anything that
// is not an image or video renders as a generic file.
func KindFromContentType(contentType string) models.MediaKind {
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return models.MediaKindImage
	case strings.HasPrefix(mediaType, "video/"):
		return models.MediaKindVideo
	default:
		return models.MediaKindFile
	}
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
