package auth

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes wires the public authentication endpoints.
func RegisterAuthRoutes(router *gin.Engine, ac *AuthController) {
	authGroup := router.Group("/api/Auth")
	{
		authGroup.POST("/register", ac.Register)
		authGroup.POST("/login", ac.Login)
		authGroup.POST("/send-registration-otp", ac.SendRegistrationOtp)
		authGroup.POST("/verify-otp", ac.VerifyOtp)
		authGroup.POST("/register-with-otp", ac.RegisterWithOtp)
		authGroup.POST("/forgot-password", ac.ForgotPassword)
		authGroup.POST("/reset-password", ac.ResetPassword)
	}
}
