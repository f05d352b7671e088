package notification

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/pkg/responses"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// RegisterNotificationRoutes wires the realtime stream and the REST
// notification endpoints.
func RegisterNotificationRoutes(router *gin.Engine, nc *NotificationController, authMiddleware gin.HandlerFunc) {
	router.GET("/ws/notifications", nc.Connect)

	api := router.Group("/api/Notifications")
	api.Use(authMiddleware)
	{
		api.GET("", nc.GetMyNotifications)
		api.PUT("/:id/read", nc.MarkRead)
	}
}
