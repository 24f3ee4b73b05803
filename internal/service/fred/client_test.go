package fred

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psm5556/Crisis-Alert/internal/domain/models"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New("test-key", WithBaseURL(srv.URL), WithRateLimit(100), WithTimeout(2*time.Second), WithRetries(3, time.Millisecond))
}

func TestFetch_NormalizesObservations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fred/series/observations", r.URL.Path)
		assert.Equal(t, "SOFR", r.URL.Query().Get("series_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "json", r.URL.Query().Get("file_type"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("observation_start"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"observations":[
			{"date":"2024-01-03","value":"5.31"},
			{"date":"2024-01-02","value":"5.30"},
			{"date":"2024-01-04","value":"."},
			{"date":"2024-01-05","value":""},
			{"date":"2024-01-08","value":"5.32"}
		]}`))
	})

	s, err := c.Fetch(context.Background(), "SOFR", start)
	require.NoError(t, err)
	assert.Equal(t, "SOFR", s.ID)
	assert.Equal(t, []float64{5.30, 5.31, 5.32}, s.Values())
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), latest.Date)
}

func TestFetch_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations":[{"date":"2024-01-02","value":"."}]}`))
	})
	_, err := c.Fetch(context.Background(), "SOFR", start)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrEmpty))
}

func TestFetch_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, models.ErrAuthFailed},
		{"forbidden", http.StatusForbidden, `{}`, models.ErrAuthFailed},
		{"bad api key", http.StatusBadRequest, `{"error_code":400,"error_message":"Bad Request.  The value for variable api_key is not registered."}`, models.ErrAuthFailed},
		{"bad series", http.StatusBadRequest, `{"error_code":400,"error_message":"Bad Request.  The series does not exist."}`, models.ErrUnavailable},
		{"server error", http.StatusInternalServerError, `oops`, models.ErrUnavailable},
		{"undecodable", http.StatusOK, `<html>`, models.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(context.Background(), "SOFR", start)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var fe *models.FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "SOFR", fe.Series)
		})
	}
}

func TestFetch_MissingKeySkipsNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := New("", WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "SOFR", start)
	assert.True(t, errors.Is(err, models.ErrAuthFailed))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetch_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New("k", WithBaseURL(url), WithRetries(2, time.Millisecond))
	_, err := c.Fetch(context.Background(), "SOFR", start)
	assert.True(t, errors.Is(err, models.ErrUnavailable))
}

func TestFetch_CanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, "SOFR", start)
	assert.True(t, errors.Is(err, models.ErrUnavailable))
}

func TestFetchSpread_AlignsDates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("series_id") {
		case "GS10":
			_, _ = w.Write([]byte(`{"observations":[
				{"date":"2024-01-01","value":"4.00"},
				{"date":"2024-02-01","value":"4.10"},
				{"date":"2024-03-01","value":"4.20"}]}`))
		case "GS2":
			_, _ = w.Write([]byte(`{"observations":[
				{"date":"2024-02-01","value":"4.50"},
				{"date":"2024-03-01","value":"4.00"},
				{"date":"2024-04-01","value":"3.90"}]}`))
		}
	})

	s, err := c.FetchSpread(context.Background(), "GS10", "GS2", start)
	require.NoError(t, err)
	assert.Equal(t, "GS10-GS2", s.ID)
	require.Equal(t, 2, s.Len())
	vals := s.Values()
	assert.InDelta(t, -0.4, vals[0], 1e-9)
	assert.InDelta(t, 0.2, vals[1], 1e-9)
}

func TestFetchSpread_NoOverlapIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("series_id") == "GS10" {
			_, _ = w.Write([]byte(`{"observations":[{"date":"2024-01-01","value":"4.00"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"observations":[{"date":"2024-02-01","value":"4.50"}]}`))
	})
	_, err := c.FetchSpread(context.Background(), "GS10", "GS2", start)
	assert.True(t, errors.Is(err, models.ErrEmpty))
}

func TestFetchSpread_PropagatesLegFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	_, err := c.FetchSpread(context.Background(), "GS10", "GS2", start)
	assert.True(t, errors.Is(err, models.ErrAuthFailed))
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"observations":[{"date":"2024-01-02","value":"5.30"}]}`))
	})
	s, err := c.Fetch(context.Background(), "SOFR", start)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_DoesNotRetryAuth(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := c.Fetch(context.Background(), "SOFR", start)
	assert.True(t, errors.Is(err, models.ErrAuthFailed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
