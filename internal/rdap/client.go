// Package rdap queries Registration Data Access Protocol servers for
// domain registration records. It resolves the responsible registry per
// TLD, with optional refresh from the IANA bootstrap registry, and distills
// the verbose RDAP document into the handful of fields the checker needs.
package rdap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client is a high-level client for RDAP domain lookups.
type Client struct {
	httpClient   *http.Client
	endpoints    *endpointTable
	userAgent    string
	bootstrapURL string
	logger       *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient   *http.Client
	logger       *slog.Logger
	timeout      time.Duration
	userAgent    string
	endpoints    map[string]string
	bootstrapURL string
}

// New creates an RDAP client with the built-in registry table.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	userAgent := cfg.userAgent
	if userAgent == "" {
		userAgent = "domaincheck/1.0"
	}

	bootstrapURL := cfg.bootstrapURL
	if bootstrapURL == "" {
		bootstrapURL = BootstrapURL
	}

	return &Client{
		httpClient:   httpClient,
		endpoints:    newEndpointTable(cfg.endpoints),
		userAgent:    userAgent,
		bootstrapURL: bootstrapURL,
		logger:       logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent to registries.
func WithUserAgent(ua string) Option {
	return func(cfg *clientConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithEndpoints installs per-TLD base URL overrides (key: TLD without dot).
func WithEndpoints(m map[string]string) Option {
	return func(cfg *clientConfig) error {
		cfg.endpoints = m
		return nil
	}
}

// WithBootstrapURL overrides the IANA bootstrap registry URL.
func WithBootstrapURL(u string) Option {
	return func(cfg *clientConfig) error {
		if u == "" {
			return fmt.Errorf("rdap: bootstrap URL must not be empty")
		}
		cfg.bootstrapURL = u
		return nil
	}
}

// doJSON executes a GET and decodes the JSON response into dst.
// Error statuses come back as *APIError.
func (c *Client) doJSON(ctx context.Context, url, operation string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/rdap+json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "rdap request", "operation", operation, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "rdap response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := string(body)
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, msg)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

// Domain looks up registration data for a fully qualified domain name.
// A registry 404 means the domain is not registered and returns (nil, nil);
// any other failure returns an error.
func (c *Client) Domain(ctx context.Context, domain string) (*Registration, error) {
	url := c.endpoints.domainURL(domain)

	var doc domainDocument
	err := c.doJSON(ctx, url, fmt.Sprintf("rdap domain %s", domain), &doc)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.registration(domain), nil
}
