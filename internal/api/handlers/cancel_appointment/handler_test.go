package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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
	gotID  int64
	gotReq *models.CancelAppointmentRequest
	err    error
}

func (f *fakeService) Cancel(_ context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	f.gotID = id
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "canceled"}, nil
}

func newRouter(svc AppointmentService) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/appointments/{appointmentId}/cancel", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)
	return r
}

func TestHandler_CancelWithAndWithoutBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantReason *string
	}{
		{name: "empty body", body: ""},
		{name: "with reason", body: `{"reason":"перенесу"}`, wantReason: func() *string { s := "перенесу"; return &s }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			req := httptest.NewRequest(http.MethodPatch, "/appointments/9/cancel", strings.NewReader(tt.body))
			req.Header.Set(middleware.UserIDHeader, "42")
			rec := httptest.NewRecorder()

			newRouter(svc).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, int64(9), svc.gotID)
			assert.Equal(t, int64(42), svc.gotReq.UserID)
			assert.Equal(t, tt.wantReason, svc.gotReq.Reason)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: appointments.ErrAppointmentNotFound, status: http.StatusNotFound},
		{err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{err: appointments.ErrCannotCancel, status: http.StatusConflict},
		{err: appointments.ErrCancellationDisabled, status: http.StatusForbidden},
		{err: appointments.ErrCancellationTooLate, status: http.StatusUnprocessableEntity},
		{err: appointments.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/appointments/9/cancel", nil)
			req.Header.Set(middleware.UserIDHeader, "42")
			rec := httptest.NewRecorder()

			newRouter(&fakeService{err: tt.err}).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
