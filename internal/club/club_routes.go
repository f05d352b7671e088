package club

import (
	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/pkg/rmiddleware"
)

// RegisterClubRoutes wires the club endpoints. Reads are public except for
// member-scoped views; club creation needs the ClubAdmin platform role.
func RegisterClubRoutes(router *gin.Engine, cc *ClubController, authMiddleware gin.HandlerFunc) {
	clubs := router.Group("/api/Clubs")
	{
		clubs.GET("", cc.GetAllClubs)
		clubs.GET("/:id", cc.GetClubByID)
		clubs.GET("/:id/executives", cc.GetExecutives)
	}

	protected := router.Group("/api/Clubs")
	protected.Use(authMiddleware)
	{
		protected.GET("/my", cc.GetMyClubs)
		protected.POST("", rmiddleware.ClubAdminMiddleware(), cc.CreateClub)
		protected.POST("/:id/join", cc.JoinClub)
		protected.DELETE("/:id/leave", cc.LeaveClub)
		protected.GET("/:id/members", cc.GetMembers)
		protected.GET("/:id/members/me", cc.GetMyMembership)
		protected.PUT("/:id/executives", cc.UpsertExecutives)
		protected.PUT("/:id/profile", cc.UpdateClubProfile)
	}
}
