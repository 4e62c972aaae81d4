package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

const serviceName = "restaurant"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new restaurant REST API client
func NewClient(cfg config.RestaurantConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// envelope is the response wrapper used by every endpoint
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// do sends a JSON request and decodes the envelope's data into out
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errors.ErrUpstream{Service: serviceName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.ErrUpstream{Service: serviceName, Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode == http.StatusOK {
			return &errors.ErrUpstream{Service: serviceName, Op: op, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
		}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("Restaurant API error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message),
		)
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &errors.ErrUpstream{Service: serviceName, Op: op, StatusCode: resp.StatusCode, Err: stderrors.New(msg)}
	}

	if env.Status != "" && env.Status != "success" {
		return &errors.ErrUpstream{Service: serviceName, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %q: %s", env.Status, env.Message)}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &errors.ErrUpstream{Service: serviceName, Op: op, Err: fmt.Errorf("failed to unmarshal data: %w", err)}
	}
	return nil
}

// isNotFound reports whether err is an upstream 404
func isNotFound(err error) bool {
	var upstream *errors.ErrUpstream
	return stderrors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound
}
