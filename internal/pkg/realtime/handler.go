package realtime

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
)

// Handler upgrades authenticated requests to push-only WebSocket connections
type Handler struct {
	hub       *Hub
	userIDKey string
	upgrader  websocket.Upgrader
	logger    zerolog.Logger
}

// NewHandler creates a new WebSocket handler. userIDKey is the gin context key
// the auth middleware stores the caller's int64 id under. allowedOrigins uses
// the CORS setting; "*" accepts any origin.
func NewHandler(hub *Hub, userIDKey string, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		userIDKey: userIDKey,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		// same host is always fine
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// HandleConnection godoc
// @Summary Open the realtime message stream
// @Description Upgrades to a WebSocket that receives {type:"message", conversationId, message} for every direct message addressed to the caller
// @Tags messages
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /messages/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	raw, exists := c.Get(h.userIDKey)
	userID, ok := raw.(int64)
	if !exists || !ok || userID <= 0 {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: userID,
		logger: h.logger,
	}
	if !h.hub.attach(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
