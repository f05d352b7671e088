package achievement

import "github.com/gin-gonic/gin"

// RegisterAchievementRoutes wires the achievement endpoints. The approved
// list is public; everything else requires a token.
func RegisterAchievementRoutes(router *gin.Engine, ac *AchievementController, authMiddleware gin.HandlerFunc) {
	router.GET("/api/Achievements/club/:clubId", ac.GetApprovedByClub)

	protected := router.Group("/api/Achievements")
	protected.Use(authMiddleware)
	{
		protected.GET("/club/:clubId/all", ac.GetAllByClub)
		protected.POST("", ac.CreateAchievement)
		protected.PUT("/:id/review", ac.ReviewAchievement)
		protected.DELETE("/:id", ac.DeleteAchievement)
	}
}
