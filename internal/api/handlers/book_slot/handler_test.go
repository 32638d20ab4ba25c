package book_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-SalonService/internal/usecase/book_slot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *bookSlot.Request
	resp *bookSlot.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"businessId":1,"serviceId":10,"date":"2025-03-11","startTime":"14:00","notes":"без спешки"}`

func serve(h *Handler, body string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	start := time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &bookSlot.Response{
		ID:              5,
		BusinessID:      1,
		CustomerID:      42,
		ServiceID:       10,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		Status:          "pending",
		ServiceName:     "Стрижка",
		ServiceDuration: 60,
		ServicePrice:    1500,
	}}
	h := NewHandler(uc, nopLogger{})

	rec := serve(h, validBody, "42")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.CustomerID)
	assert.Equal(t, "14:00", uc.got.StartTime.String())
	assert.Equal(t, 11, uc.got.Date.Day())

	var body AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "pending", body.Status)
	assert.True(t, body.EndTime.Equal(start.Add(time.Hour)))
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot taken", err: fmt.Errorf("%w: overlap", bookSlot.ErrSlotTaken), status: http.StatusConflict},
		{name: "service not found", err: bookSlot.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "business not found", err: bookSlot.ErrBusinessNotFound, status: http.StatusNotFound},
		{name: "customer not found", err: bookSlot.ErrCustomerNotFound, status: http.StatusNotFound},
		{name: "customer blocked", err: bookSlot.ErrCustomerBlocked, status: http.StatusForbidden},
		{name: "business closed", err: fmt.Errorf("%w: day_off", bookSlot.ErrBusinessClosed), status: http.StatusUnprocessableEntity},
		{name: "busy", err: bookSlot.ErrBusy, status: http.StatusServiceUnavailable},
		{name: "invalid input", err: bookSlot.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: bookSlot.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := serve(h, validBody, "42")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID string
		status int
	}{
		{name: "no user", body: validBody, userID: "", status: http.StatusUnauthorized},
		{name: "malformed json", body: `{"businessId":`, userID: "42", status: http.StatusBadRequest},
		{name: "missing service", body: `{"businessId":1,"date":"2025-03-11","startTime":"14:00"}`, userID: "42", status: http.StatusBadRequest},
		{name: "bad date", body: `{"businessId":1,"serviceId":10,"date":"11.03.2025","startTime":"14:00"}`, userID: "42", status: http.StatusBadRequest},
		{name: "bad time", body: `{"businessId":1,"serviceId":10,"date":"2025-03-11","startTime":"25:00"}`, userID: "42", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, nopLogger{})

			rec := serve(h, tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
