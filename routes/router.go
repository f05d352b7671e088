package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/config"
	"github.com/anweshon/anweshon-api/internal/achievement"
	"github.com/anweshon/anweshon-api/internal/auth"
	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/collaboration"
	"github.com/anweshon/anweshon-api/internal/event"
	"github.com/anweshon/anweshon-api/internal/mailer"
	"github.com/anweshon/anweshon-api/internal/message"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/internal/post"
	"github.com/anweshon/anweshon-api/internal/upload"
	"github.com/anweshon/anweshon-api/internal/user"
)

// SetupRouter builds the gin engine with every route group wired to its
// controller. The hub is shared so controllers can push realtime payloads.
func SetupRouter(db *gorm.DB, cfg *config.Config, hub *notification.Hub) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Uploaded images are served straight from the web root.
	router.Static("/uploads", cfg.App.UploadDir)

	authMW := middleware.AuthMiddleware(cfg.JWT.Secret, db)

	// Repositories.
	userRepo := user.NewUserRepository(db)
	otpRepo := auth.NewOtpRepository(db)
	clubRepo := club.NewClubRepository(db)
	eventRepo := event.NewEventRepository(db)
	achievementRepo := achievement.NewAchievementRepository(db)
	postRepo := post.NewPostRepository(db)
	messageRepo := message.NewMessageRepository(db)
	collaborationRepo := collaboration.NewCollaborationRepository(db)
	notificationRepo := notification.NewNotificationRepository(db)

	authorizer := club.NewAuthorizer(clubRepo)
	mail := mailer.NewSMTPMailer(mailer.Settings{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		Password: cfg.SMTP.Password,
	})

	// Controllers.
	authController := auth.NewAuthController(userRepo, otpRepo, mail, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)
	userController := user.NewUserController(userRepo)
	clubController := club.NewClubController(clubRepo, authorizer, hub)
	eventController := event.NewEventController(eventRepo, clubRepo, authorizer, notificationRepo, hub)
	registrationController := event.NewRegistrationController(eventRepo, clubRepo, hub)
	achievementController := achievement.NewAchievementController(achievementRepo, authorizer)
	postController := post.NewPostController(postRepo, authorizer)
	messageController := message.NewMessageController(messageRepo, authorizer)
	collaborationController := collaboration.NewCollaborationController(collaborationRepo, clubRepo, authorizer)
	notificationController := notification.NewNotificationController(notificationRepo, hub, cfg.JWT.Secret)
	uploadController := upload.NewUploadController(cfg.App.UploadDir)

	// Routes.
	auth.RegisterAuthRoutes(router, authController)
	user.RegisterUserRoutes(router, userController, authMW)
	club.RegisterClubRoutes(router, clubController, authMW)
	event.RegisterEventRoutes(router, eventController, registrationController, authMW)
	achievement.RegisterAchievementRoutes(router, achievementController, authMW)
	post.RegisterPostRoutes(router, postController, authMW)
	message.RegisterMessageRoutes(router, messageController, authMW)
	collaboration.RegisterCollaborationRoutes(router, collaborationController, authMW)
	notification.RegisterNotificationRoutes(router, notificationController, authMW)
	upload.RegisterUploadRoutes(router, uploadController, authMW)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
