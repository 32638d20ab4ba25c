package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/100", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":100,"first_name":"Анна","is_blocked":false}`))
	})
	mux.HandleFunc("/internal/users/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/internal/users/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetCustomer(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	customer, err := client.GetCustomer(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), customer.ID)
	assert.Equal(t, "Анна", customer.FirstName)

	_, err = client.GetCustomer(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = client.GetCustomer(context.Background(), 500)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetCustomerWithGracefulDegradation(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	_, err := client.GetCustomerWithGracefulDegradation(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = client.GetCustomerWithGracefulDegradation(context.Background(), 500)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	unreachable := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})
	_, err = unreachable.GetCustomerWithGracefulDegradation(context.Background(), 100)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
