package main

import (
	"log"

	"github.com/anweshon/anweshon-api/config"
	_ "github.com/anweshon/anweshon-api/docs"
	"github.com/anweshon/anweshon-api/internal/achievement"
	"github.com/anweshon/anweshon-api/internal/auth"
	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/collaboration"
	"github.com/anweshon/anweshon-api/internal/event"
	"github.com/anweshon/anweshon-api/internal/message"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/internal/post"
	"github.com/anweshon/anweshon-api/internal/user"
	"github.com/anweshon/anweshon-api/routes"
)

// @title Anweshon API
// @version 1.0
// @description Campus club management backend: clubs, memberships, events, achievements, posts, collaborations, and realtime notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := config.GetConfig()
	db := config.DB

	err := db.AutoMigrate(
		&user.User{},
		&user.Role{},
		&user.UserRole{},
		&auth.OtpVerification{},
		&club.Club{},
		&club.Membership{},
		&club.ClubExecutive{},
		&event.Event{},
		&event.EventRegistration{},
		&achievement.Achievement{},
		&post.ClubPost{},
		&post.ClubPostImage{},
		&message.ClubMessage{},
		&collaboration.ClubCollaboration{},
		&notification.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed the role table so assignments never race on first use.
	userRepo := user.NewUserRepository(db)
	for _, role := range []string{user.RoleStudent, user.RoleClubAdmin, user.RoleAdmin} {
		if _, err := userRepo.EnsureRole(role); err != nil {
			log.Fatalf("Failed to seed role %s: %v", role, err)
		}
	}

	hub := notification.NewHub()
	router := routes.SetupRouter(db, cfg, hub)

	log.Printf("Starting server on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
