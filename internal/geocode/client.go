package geocode

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

const serviceName = "geocode"

var errUnexpectedStatus = stderrors.New("unexpected response status")

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a reverse-geocoding client
func NewClient(cfg config.GeocodeConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// reverseResponse is the subset of the reverse-geocode payload we use
type reverseResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Locality    string  `json:"locality"`
	City        string  `json:"city"`
	Postcode    string  `json:"postcode"`
	CountryName string  `json:"countryName"`
}

// Geocode resolves position into an address. With a nil position the service
// locates the caller from its IP address.
func (c *Client) Geocode(ctx context.Context, position *domain.GeoPosition) (*domain.GeocodeResult, error) {
	query := url.Values{}
	query.Set("localityLanguage", "en")
	if position != nil {
		query.Set("latitude", strconv.FormatFloat(position.Latitude, 'f', -1, 64))
		query.Set("longitude", strconv.FormatFloat(position.Longitude, 'f', -1, 64))
	}

	endpoint := c.baseURL + "/data/reverse-geocode-client?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrUpstream{Service: serviceName, Op: "reverse geocode", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrUpstream{Service: serviceName, Op: "reverse geocode", Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Geocode API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &errors.ErrUpstream{
			Service:    serviceName,
			Op:         "reverse geocode",
			StatusCode: resp.StatusCode,
			Err:        errUnexpectedStatus,
		}
	}

	var rr reverseResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, &errors.ErrUpstream{Service: serviceName, Op: "reverse geocode", Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}

	result := &domain.GeocodeResult{
		Address:  FormatAddress(rr.Locality, rr.City, rr.Postcode, rr.CountryName),
		Position: domain.GeoPosition{Latitude: rr.Latitude, Longitude: rr.Longitude},
	}
	// Prefer the coordinates the device reported over the service's echo
	if position != nil {
		result.Position = *position
	}
	return result, nil
}

// FormatAddress renders "locality, city postcode, country", skipping empty parts
func FormatAddress(locality, city, postcode, country string) string {
	cityLine := strings.TrimSpace(strings.Join([]string{city, postcode}, " "))

	parts := make([]string, 0, 3)
	for _, p := range []string{locality, cityLine, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
