package user

import "github.com/gin-gonic/gin"

// RegisterUserRoutes wires the user profile endpoints. All require auth.
func RegisterUserRoutes(router *gin.Engine, uc *UserController, authMiddleware gin.HandlerFunc) {
	group := router.Group("/api/Users")
	group.Use(authMiddleware)
	{
		group.GET("/:id", uc.GetUser)
		group.PUT("/:id", uc.UpdateUser)
		group.POST("/:id/change-password", uc.ChangePassword)
	}
}
