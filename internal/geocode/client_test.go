package geocode

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/internal/domain"
	"github.com/jafarshop/fastpizza/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.GeocodeConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop())
}

func TestClient_GeocodePosition(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/reverse-geocode-client", r.URL.Path)
		assert.Equal(t, "-34.58", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-58.42", r.URL.Query().Get("longitude"))
		_, _ = w.Write([]byte(`{"latitude":-34.5801,"longitude":-58.4199,"locality":"Palermo","city":"Buenos Aires","postcode":"1425","countryName":"Argentina"}`))
	})

	res, err := c.Geocode(context.Background(), &domain.GeoPosition{Latitude: -34.58, Longitude: -58.42})
	require.NoError(t, err)

	assert.Equal(t, "Palermo, Buenos Aires 1425, Argentina", res.Address)
	assert.Equal(t, domain.GeoPosition{Latitude: -34.58, Longitude: -58.42}, res.Position)
}

func TestClient_GeocodeByIP(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("latitude"))
		_, _ = w.Write([]byte(`{"latitude":52.52,"longitude":13.4,"locality":"Mitte","city":"Berlin","postcode":"","countryName":"Germany"}`))
	})

	res, err := c.Geocode(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Mitte, Berlin, Germany", res.Address)
	assert.Equal(t, 52.52, res.Position.Latitude)
}

func TestClient_GeocodeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"description":"api key quota exceeded for 10.0.0.7"}`))
	})

	_, err := c.Geocode(context.Background(), nil)

	var upstream *errors.ErrUpstream
	require.True(t, stderrors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.NotContains(t, err.Error(), "10.0.0.7")
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "Palermo, Buenos Aires 1425, Argentina", FormatAddress("Palermo", "Buenos Aires", "1425", "Argentina"))
	assert.Equal(t, "Argentina", FormatAddress("", "", "", "Argentina"))
	assert.Equal(t, "1425", FormatAddress("", "", "1425", ""))
}
