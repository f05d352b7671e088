package notification

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationController struct {
	repo      NotificationRepository
	hub       *Hub
	jwtSecret string
}

func NewNotificationController(repo NotificationRepository, hub *Hub, jwtSecret string) *NotificationController {
	return &NotificationController{repo: repo, hub: hub, jwtSecret: jwtSecret}
}

// Connect godoc
// @Summary Open a realtime notification stream
// @Description Upgrades to a websocket. Authenticate with ?access_token=<jwt>.
// @Tags notifications
// @Param access_token query string true "JWT access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} responses.ErrorResponse
// @Router /ws/notifications [get]
func (nc *NotificationController) Connect(c *gin.Context) {
	// Browsers cannot set headers on websocket handshakes, so the token
	// arrives as a query parameter here.
	raw := c.Query("access_token")
	if raw == "" {
		responses.Unauthorized(c, "Missing access token")
		return
	}
	claims, err := token.ValidateJWT(raw, nc.jwtSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired token")
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		responses.Unauthorized(c, "Invalid token subject")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	nc.hub.Register(userID, conn)
	go nc.readLoop(userID, conn)
}

func (nc *NotificationController) readLoop(userID uint, conn *websocket.Conn) {
	defer nc.hub.Unregister(userID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// GetMyNotifications godoc
// @Summary List notifications for the current user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/Notifications [get]
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	items, err := nc.repo.GetNotificationsForUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch notifications")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notifications retrieved", items)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Notifications/{id}/read [put]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := nc.repo.MarkAsRead(id, userID); err != nil {
		responses.NotFound(c, "Notification not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification marked as read", nil)
}
