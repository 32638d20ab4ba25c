package get_business_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.GetBusinessAppointmentsRequest
	err error
}

func (f *fakeService) GetBusinessAppointments(_ context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/businesses/{businessId}/appointments", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(1, 7, "2025-03-10", "2025-03-11T12:00:00+03:00", "approved", "true")
	require.NoError(t, err)

	assert.Equal(t, int64(1), req.BusinessID)
	assert.Equal(t, int64(7), req.UserID)
	require.NotNil(t, req.From)
	assert.True(t, req.From.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.To)
	assert.True(t, req.To.Equal(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.Status)
	assert.Equal(t, "approved", *req.Status)
	assert.True(t, req.IncludeInactive)

	empty, err := ToServiceRequest(1, 7, "", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, empty.From)
	assert.Nil(t, empty.To)
	assert.Nil(t, empty.Status)
	assert.False(t, empty.IncludeInactive)

	for _, tc := range []struct{ from, to, inactive string }{
		{from: "10.03.2025"},
		{to: "tomorrow"},
		{inactive: "maybe"},
	} {
		_, err := ToServiceRequest(1, 7, tc.from, tc.to, "", tc.inactive)
		assert.Error(t, err)
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "ok", target: "/api/v1/businesses/1/appointments?from=2025-03-10&to=2025-03-17", want: http.StatusOK},
		{name: "bad business id", target: "/api/v1/businesses/abc/appointments", want: http.StatusBadRequest},
		{name: "bad from", target: "/api/v1/businesses/1/appointments?from=yesterday", want: http.StatusBadRequest},
		{name: "not a manager", target: "/api/v1/businesses/1/appointments", err: appointments.ErrAccessDenied, want: http.StatusForbidden},
		{name: "unknown business", target: "/api/v1/businesses/1/appointments", err: appointments.ErrBusinessNotFound, want: http.StatusNotFound},
		{name: "invalid filter", target: "/api/v1/businesses/1/appointments", err: appointments.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/businesses/1/appointments", err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(svc, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
