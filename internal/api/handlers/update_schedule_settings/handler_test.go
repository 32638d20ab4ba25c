package update_schedule_settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{BusinessID: req.BusinessID}, nil
}

func serve(svc *fakeService, businessID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/businesses/{businessId}/schedule-settings", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/businesses/"+businessID+"/schedule-settings", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PassesPatch(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "3", `{"slotDurationMinutes":45,"autoApprove":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.BusinessID)
	assert.Equal(t, int64(7), svc.got.UserID)
	require.NotNil(t, svc.got.SlotDurationMinutes)
	assert.Equal(t, 45, *svc.got.SlotDurationMinutes)
	require.NotNil(t, svc.got.AutoApprove)
	assert.True(t, *svc.got.AutoApprove)
	assert.Nil(t, svc.got.AllowCancellation)
}

func TestHandler_ValidationMessage(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: slotDurationMinutes must be between 5 and 480", schedule.ErrInvalidInput)}

	rec := serve(svc, "3", `{"slotDurationMinutes":1}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "slotDurationMinutes must be between 5 and 480", body.Message)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		businessID string
		body       string
		err        error
		want       int
	}{
		{name: "bad business id", businessID: "0", body: `{}`, want: http.StatusBadRequest},
		{name: "unknown field", businessID: "3", body: `{"slot":30}`, want: http.StatusBadRequest},
		{name: "broken json", businessID: "3", body: `{`, want: http.StatusBadRequest},
		{name: "not a manager", businessID: "3", body: `{"autoApprove":true}`, err: schedule.ErrAccessDenied, want: http.StatusForbidden},
		{name: "unknown business", businessID: "3", body: `{"autoApprove":true}`, err: schedule.ErrBusinessNotFound, want: http.StatusNotFound},
		{name: "internal", businessID: "3", body: `{"autoApprove":true}`, err: schedule.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.businessID, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
