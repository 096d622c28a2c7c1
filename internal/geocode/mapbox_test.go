package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{"features":[{"place_name":"Potheri, Chengalpattu, Tamil Nadu","center":[80.0421,12.8201]},{"place_name":"Second match","center":[80.1,12.9]}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token", 12.8236, 80.0452)
	c.SetBaseURL(srv.URL)
	return c
}

func TestForwardFirstMatchWins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	})

	m, err := c.Forward(context.Background(), "Potheri")
	require.NoError(t, err)
	assert.Equal(t, "Potheri, Chengalpattu, Tamil Nadu", m.Address)
	assert.InDelta(t, 12.8201, m.Lat, 1e-9)
	assert.InDelta(t, 80.0421, m.Lng, 1e-9)
}

func TestForwardNoMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := c.Forward(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestForwardCachesResults(t *testing.T) {
	var calls int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(sampleResponse))
	})

	_, err := c.Forward(context.Background(), "Potheri")
	require.NoError(t, err)
	_, err = c.Forward(context.Background(), "Potheri")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestReverse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	})

	addr, err := c.Reverse(context.Background(), 12.8201, 80.0421)
	require.NoError(t, err)
	assert.Equal(t, "Potheri, Chengalpattu, Tamil Nadu", addr)
}

func TestFetchErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Forward(context.Background(), "Potheri")
	assert.Error(t, err)
}
