package get_spot_bookings

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet,
		"/api/v1/spots/7/bookings?from=2026-08-20T00:00:00Z&to=2026-08-21T00:00:00Z&status=pending&includeInactive=true", nil)

	req, err := ToServiceRequest(r, 7, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(7), req.SpotID)
	assert.Equal(t, int64(3), req.UserID)
	require.NotNil(t, req.From)
	assert.True(t, req.From.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.Status)
	assert.Equal(t, "pending", *req.Status)
	assert.True(t, req.IncludeInactive)
}

func TestToServiceRequest_Defaults(t *testing.T) {
	req, err := ToServiceRequest(httptest.NewRequest(http.MethodGet, "/api/v1/spots/7/bookings", nil), 7, 3)

	require.NoError(t, err)
	assert.Nil(t, req.From)
	assert.Nil(t, req.To)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeInactive)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, query := range []string{"from=yesterday", "includeInactive=maybe"} {
		_, err := ToServiceRequest(httptest.NewRequest(http.MethodGet, "/api/v1/spots/7/bookings?"+query, nil), 7, 3)
		assert.Error(t, err, query)
	}
}
