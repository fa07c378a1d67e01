package feed

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourquote/internal/domain"
	jwtsvc "tourquote/internal/pkg/jwt"
)

func startFeedServer(t *testing.T) (*Hub, *jwtsvc.Service, *httptest.Server) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	hub := NewHub()
	jwtService := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)

	r := gin.New()
	r.GET("/ws/estimates/:id", NewWSHandler(hub, jwtService).HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.Close)

	return hub, jwtService, srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func waitForSubscriber(t *testing.T, hub *Hub, estimateID int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(estimateID) > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("subscriber never registered")
}

func TestHubDeliversTotals(t *testing.T) {
	hub, jwtService, srv := startFeedServer(t)

	token, err := jwtService.GenerateToken(1, "manager@test.com", "manager")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/estimates/42?token="+token), nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForSubscriber(t, hub, 42)

	hub.NotifyTotals(42, domain.EstimateTotals{
		Currency:     "USD",
		DisplayMode:  "with_markup",
		DisplayTotal: 880,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg struct {
		Type       string                `json:"type"`
		EstimateID int64                 `json:"estimate_id"`
		Totals     domain.EstimateTotals `json:"totals"`
	}
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "totals", msg.Type)
	assert.Equal(t, int64(42), msg.EstimateID)
	assert.Equal(t, 880.0, msg.Totals.DisplayTotal)
}

func TestHubScopesByEstimate(t *testing.T) {
	hub, jwtService, srv := startFeedServer(t)

	token, err := jwtService.GenerateToken(1, "manager@test.com", "manager")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/estimates/7?token="+token), nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForSubscriber(t, hub, 7)

	// a push for a different estimate must not reach this subscriber
	hub.NotifyTotals(8, domain.EstimateTotals{DisplayTotal: 100})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	_, _, srv := startFeedServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/estimates/1?token=bogus"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestClientDisconnectUnsubscribes(t *testing.T) {
	hub, jwtService, srv := startFeedServer(t)

	token, err := jwtService.GenerateToken(1, "manager@test.com", "manager")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/estimates/5?token="+token), nil)
	require.NoError(t, err)

	waitForSubscriber(t, hub, 5)
	require.NoError(t, conn.Close())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(5) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("subscriber never removed after disconnect")
}
