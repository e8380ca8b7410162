package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GalliPark-BookingService/internal/api/middleware"
	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

type stubService struct {
	booking *models.BookingResponse
	err     error
}

func (s stubService) GetByID(_ context.Context, _ int64, _ int64) (*models.BookingResponse, error) {
	return s.booking, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ListsAllowedActions(t *testing.T) {
	tests := []struct {
		status domain.BookingStatus
		want   []string
	}{
		{domain.StatusPending, []string{"activate", "cancel"}},
		{domain.StatusActive, []string{"complete", "cancel"}},
		{domain.StatusCompleted, []string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			svc := stubService{booking: &models.BookingResponse{ID: 5, Status: string(tt.status), TotalPrice: "216.00"}}
			rec := serve(svc, "/bookings/5")

			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.EqualValues(t, 5, body["id"])
			assert.Equal(t, "216.00", body["totalPrice"])

			actions := make([]string, 0)
			for _, a := range body["allowedActions"].([]interface{}) {
				actions = append(actions, a.(string))
			}
			assert.Equal(t, tt.want, actions)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"bad id", "/bookings/abc", nil, http.StatusBadRequest},
		{"not found", "/bookings/5", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"stranger", "/bookings/5", bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/bookings/5", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(stubService{err: tt.err}, tt.path)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
