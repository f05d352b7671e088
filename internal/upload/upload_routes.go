package upload

import "github.com/gin-gonic/gin"

// RegisterUploadRoutes wires the file upload endpoints. Both require auth.
func RegisterUploadRoutes(router *gin.Engine, uc *UploadController, authMiddleware gin.HandlerFunc) {
	group := router.Group("/api/FileUpload")
	group.Use(authMiddleware)
	{
		group.POST("", uc.UploadFile)
		group.POST("/multiple", uc.UploadMultiple)
	}
}
