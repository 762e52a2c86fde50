package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/pkg/response"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range config.CORSAllowedOrigins {
			if o == "*" || o == origin {
				return true
			}
		}
		log.Printf("[ws] rejected origin %q", origin)
		return false
	},
}

// FeedHandler streams application events to the back-office.
type FeedHandler struct {
	hub *events.Hub
}

func NewFeedHandler(hub *events.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Applications godoc
// @Summary Live feed of application events
// @Tags admin
// @Security BearerAuth
// @Success 101 {object} events.Event "Switching protocols; one JSON event per message"
// @Failure 503 {object} response.ErrorResponse "Feed not available"
// @Router /ws/applications [get]
func (h *FeedHandler) Applications(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "feed not available"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	feed, cancel := h.hub.Subscribe()
	defer cancel()

	done := make(chan struct{})

	// Reader: only pongs and close frames are expected.
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[ws] read: %v", err)
				}
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()
	defer func() { _ = conn.Close() }()

	for {
		select {
		case ev, ok := <-feed:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
