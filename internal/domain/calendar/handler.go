package calendar

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"culturehub/internal/middleware"
	"culturehub/internal/pkg/jwt"
	"culturehub/internal/pkg/response"
)

type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

// NewWSHandler accepts any origin when allowedOrigins is empty.
func NewWSHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string, log zerolog.Logger) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return allowed[u.Scheme+"://"+u.Host]
			},
		},
	}
}

// HandleWebSocket handles GET /api/ws/calendar?token=JWT&facilityId=1&facilityId=2
//
// Browsers cannot set headers on a websocket handshake, so the token comes in the query.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	var facilities []int64
	for _, raw := range c.QueryArray("facilityId") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid facilityId")
			return
		}
		facilities = append(facilities, id)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("calendar websocket upgrade failed")
		return
	}

	h.log.Debug().Int64("user_id", claims.UserID).Msg("calendar client connected")
	h.hub.ServeWS(conn, claims.UserID, claims.Role == middleware.RoleAdmin, facilities)
	h.log.Debug().Int64("user_id", claims.UserID).Msg("calendar client disconnected")
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/calendar", h.HandleWebSocket)
}
