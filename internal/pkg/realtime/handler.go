package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/incampus/backend/internal/pkg/auth"
	"github.com/incampus/backend/internal/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests to websocket connections and
// attaches them to the hub.
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
}

// NewHandler creates a websocket handler
func NewHandler(hub *Hub, jwtService *auth.JWTService) *Handler {
	return &Handler{hub: hub, jwtService: jwtService}
}

// Serve handles GET /ws. The client authenticates with a "token" query
// parameter or the usual Authorization header.
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("Authorization")
	}

	raw, err := auth.ExtractBearerToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := h.jwtService.ValidateToken(raw)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	go client.Run()
}
