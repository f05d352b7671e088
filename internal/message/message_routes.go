package message

import "github.com/gin-gonic/gin"

// RegisterMessageRoutes wires the club message endpoints. All require auth.
func RegisterMessageRoutes(router *gin.Engine, mc *MessageController, authMiddleware gin.HandlerFunc) {
	group := router.Group("/api/ClubMessages")
	group.Use(authMiddleware)
	{
		group.POST("", mc.SendMessage)
		group.GET("/club/:clubId", mc.GetMessagesByClub)
		group.GET("/my", mc.GetMyMessages)
		group.PUT("/:id/respond", mc.RespondToMessage)
		group.PUT("/:id/mark-read", mc.MarkRead)
	}
}
