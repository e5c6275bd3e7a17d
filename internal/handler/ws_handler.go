package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lumela/schoolsync-backend/internal/config"
	"github.com/lumela/schoolsync-backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/lumela/schoolsync-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live attendance captures to monitor dashboards.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// MonitorStream godoc
// WS /ws/v1/monitor
// Upgrades to WebSocket and relays capture events published on the Redis
// monitor channel. Every connected dashboard sees every capture, regardless
// of which server instance handled it.
func (h *WSHandler) MonitorStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("staff_id", claims.StaffID).Logger()
	wsLog.Info().Msg("Monitor connected")

	sub := h.rdb.Subscribe(c.Request.Context(), config.CacheKey.AttendanceMonitorChannel())
	defer sub.Close()

	done := make(chan struct{})
	replies := make(chan interface{}, 8)
	go h.readLoop(conn, wsLog, done, replies)

	h.relay(conn, wsLog, sub.Channel(), replies, done)
}

// relay is the connection's only writer. Capture events and control replies
// are funneled through it so no two goroutines ever write to the socket.
func (h *WSHandler) relay(
	conn *websocket.Conn,
	wsLog zerolog.Logger,
	events <-chan *redis.Message,
	replies <-chan interface{},
	done <-chan struct{},
) {
	for {
		select {
		case msg, ok := <-events:
			if !ok {
				wsLog.Warn().Msg("Monitor subscription closed")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Monitor write failed")
				return
			}
		case r := <-replies:
			if err := ws.WriteTyped(conn, r); err != nil {
				wsLog.Debug().Err(err).Msg("Monitor reply failed")
				return
			}
		case <-done:
			wsLog.Info().Msg("Monitor disconnected")
			return
		}
	}
}

// readLoop drains client messages until the peer closes. Replies are handed
// to the relay goroutine rather than written here.
func (h *WSHandler) readLoop(conn *websocket.Conn, wsLog zerolog.Logger, done chan<- struct{}, replies chan<- interface{}) {
	defer close(done)
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}

		var reply interface{}
		switch msg.Action {
		case ws.ActionPing:
			reply = ws.PongResponse{Event: ws.EventPong}
		default:
			reply = ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)}
		}

		select {
		case replies <- reply:
		default:
			// Writer saturated; a lost control reply is harmless.
		}
	}
}
