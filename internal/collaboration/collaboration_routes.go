package collaboration

import "github.com/gin-gonic/gin"

// RegisterCollaborationRoutes wires the inter-club collaboration endpoints.
func RegisterCollaborationRoutes(router *gin.Engine, cc *CollaborationController, authMiddleware gin.HandlerFunc) {
	group := router.Group("/api/ClubCollaborations")
	group.Use(authMiddleware)
	{
		group.POST("", cc.CreateCollaboration)
		group.GET("/received", cc.GetReceived)
		group.GET("/sent", cc.GetSent)
		group.PUT("/:id/respond", cc.Respond)
	}
}
