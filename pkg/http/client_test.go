package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndParse_JSONAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "crisis-test", r.Header.Get("User-Agent"))
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["tag"])
		_, _ = w.Write([]byte(`{"name":"SOFR","value":5.31}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("crisis-test"))
	var out struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		URL:         srv.URL,
		QueryParams: map[string][]string{"tag": {"a", "b"}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "SOFR", out.Name)
	assert.Equal(t, 5.31, out.Value)
}

func TestSendAndParse_RawDestinations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewClient()
	var raw []byte
	require.NoError(t, c.SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, &raw))
	assert.Equal(t, "<html>ok</html>", string(raw))

	var buf bytes.Buffer
	require.NoError(t, c.SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, &buf))
	assert.Equal(t, "<html>ok</html>", buf.String())
}

func TestSendAndParse_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), 64))
	}))
	defer srv.Close()

	var raw []byte
	err := NewClient(WithMaxBodySize(32)).SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, &raw)
	require.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Empty(t, raw)

	require.NoError(t, NewClient(WithMaxBodySize(64)).SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, &raw))
	assert.Len(t, raw, 64)
}

func TestSendAndParse_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_message":"bad api_key"}`))
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, string(se.Body), "api_key")
}

func TestSendAndParse_PostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{
		Method: MethodPost,
		URL:    srv.URL,
		Body:   map[string]int{"points": 3},
	}, nil)
	assert.NoError(t, err)
}
