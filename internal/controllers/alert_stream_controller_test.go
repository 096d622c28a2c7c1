package controllers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialAlertStream(t *testing.T) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/alerts", HandleAlertStream)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/alerts"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// A burst of near-simultaneous events must reach the client intact; the hub
// writes to each connection from exactly one goroutine, so rapid publishes
// never race on the socket.
func TestAlertStreamDeliversBurstInOrder(t *testing.T) {
	before := alertHub.clientCount()
	conn := dialAlertStream(t)
	require.Eventually(t, func() bool {
		return alertHub.clientCount() == before+1
	}, time.Second, 10*time.Millisecond)

	const burst = 25
	blob := strings.Repeat("x", 2048)
	for i := 0; i < burst; i++ {
		alertHub.Publish(AlertEvent{
			Kind:    "crime_report",
			Payload: map[string]string{"seq": fmt.Sprint(i), "blob": blob},
		})
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for i := 0; i < burst; i++ {
		var ev AlertEvent
		require.NoError(t, conn.ReadJSON(&ev), "event %d", i)
		assert.Equal(t, "crime_report", ev.Kind)
		payload, ok := ev.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, fmt.Sprint(i), payload["seq"], "events arrive in publish order")
		assert.False(t, ev.At.IsZero())
	}
}

func TestAlertStreamUnregistersOnDisconnect(t *testing.T) {
	before := alertHub.clientCount()
	conn := dialAlertStream(t)
	require.Eventually(t, func() bool {
		return alertHub.clientCount() == before+1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return alertHub.clientCount() == before
	}, time.Second, 10*time.Millisecond)

	// the handler's deferred Unregister races the write loop's; publishing
	// after the client is gone must be a no-op, not a crash
	assert.NotPanics(t, func() {
		alertHub.Publish(AlertEvent{Kind: "sos_alert", Payload: "after close"})
	})
}
