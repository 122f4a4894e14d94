package noaa

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchForecast_Success(t *testing.T) {
	const report = "Kp Index Forecast\n18Jun 1.0 1.0 1.0 1.0 1.0 1.0 1.0 1.0\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(report))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	text, err := client.FetchForecast(context.Background())

	require.NoError(t, err)
	assert.Equal(t, report, text)
}

func TestFetchForecast_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	_, err := client.FetchForecast(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.Error(), "status 503")
}

func TestFetchForecast_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	_, err := client.FetchForecast(context.Background())

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Unwrap())
}

func TestFetchForecast_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, 5*time.Second, discardLogger())
	_, err := client.FetchForecast(ctx)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, errors.Is(err, context.Canceled))
}
