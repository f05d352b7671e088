package post

import "github.com/gin-gonic/gin"

// RegisterPostRoutes wires the club post endpoints.
func RegisterPostRoutes(router *gin.Engine, pc *PostController, authMiddleware gin.HandlerFunc) {
	router.GET("/api/ClubPosts/club/:clubId", pc.GetPostsByClub)

	protected := router.Group("/api/ClubPosts")
	protected.Use(authMiddleware)
	{
		protected.POST("", pc.CreatePost)
		protected.DELETE("/:id", pc.DeletePost)
	}
}
