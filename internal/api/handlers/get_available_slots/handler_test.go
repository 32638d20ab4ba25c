package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/businesses/{businessId}/available-slots", NewHandler(uc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_ReturnsSlots(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	date := time.Date(2025, 3, 11, 0, 0, 0, 0, loc)
	start := time.Date(2025, 3, 11, 10, 0, 0, 0, loc)

	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:       date,
		BusinessID: 1,
		ServiceID:  10,
		Timezone:   "Europe/Moscow",
		Slots: []domain.CandidateSlot{
			{StartTime: start, FormattedTime: "10:00", DurationMinutes: 60, ServiceName: "Стрижка", ServicePrice: 1500},
		},
	}}

	rec := serve(uc, "/api/v1/businesses/1/available-slots?serviceId=10&date=2025-03-11")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.BusinessID)
	assert.Equal(t, int64(10), uc.got.ServiceID)
	assert.Equal(t, "2025-03-11", uc.got.Date.Format(domain.DateFormat))

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-11", body.Date)
	assert.False(t, body.Closed)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "10:00", body.Slots[0].FormattedTime)
	assert.True(t, body.Slots[0].EndTime.Equal(start.Add(time.Hour)))
}

func TestHandler_ClosedDayIsOK(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:         time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		BusinessID:   1,
		ServiceID:    10,
		Timezone:     "UTC",
		Closed:       true,
		ClosedReason: "day_off",
	}}

	rec := serve(uc, "/api/v1/businesses/1/available-slots?serviceId=10&date=2025-03-09")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Closed)
	assert.Equal(t, "day_off", body.ClosedReason)
	assert.NotNil(t, body.Slots)
	assert.Empty(t, body.Slots)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{name: "bad business id", target: "/api/v1/businesses/x/available-slots?serviceId=1&date=2025-03-11", want: http.StatusBadRequest},
		{name: "missing service", target: "/api/v1/businesses/1/available-slots?date=2025-03-11", want: http.StatusBadRequest},
		{name: "bad service", target: "/api/v1/businesses/1/available-slots?serviceId=x&date=2025-03-11", want: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/businesses/1/available-slots?serviceId=1", want: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/businesses/1/available-slots?serviceId=1&date=11.03.2025", want: http.StatusBadRequest},
		{name: "business not found", target: "/api/v1/businesses/1/available-slots?serviceId=1&date=2025-03-11", err: getAvailableSlots.ErrBusinessNotFound, want: http.StatusNotFound},
		{name: "service not found", target: "/api/v1/businesses/1/available-slots?serviceId=1&date=2025-03-11", err: getAvailableSlots.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "invalid input", target: "/api/v1/businesses/1/available-slots?serviceId=1&date=2025-03-11", err: getAvailableSlots.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/businesses/1/available-slots?serviceId=1&date=2025-03-11", err: getAvailableSlots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
