package feed

import (
	"log"
	"net/http"
	"strconv"

	"tourquote/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// dev setting; lock down the origin check before exposing publicly
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleWebSocket upgrades GET /ws/estimates/:id?token=JWT and keeps the
// connection subscribed to that estimate's totals until the client leaves.
// Auth rides in the query because websocket clients cannot set headers.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}
	if _, err := h.jwtService.ValidateToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	estimateID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estimate ID"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.hub.Subscribe(estimateID, conn)
	defer h.hub.Unsubscribe(estimateID, conn)

	// reads only serve to detect the close; subscribers are push-only
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
