package event

import "github.com/gin-gonic/gin"

// RegisterEventRoutes wires event and registration endpoints. Event reads
// are public; everything else requires a token.
func RegisterEventRoutes(router *gin.Engine, ec *EventController, rc *RegistrationController, authMiddleware gin.HandlerFunc) {
	events := router.Group("/api/Events")
	{
		events.GET("/upcoming", ec.GetUpcomingEvents)
		events.GET("/club/:clubId", ec.GetEventsByClub)
		events.GET("/club/:clubId/past", ec.GetPastEventsByClub)
		events.GET("/:id", ec.GetEventByID)
	}

	protectedEvents := router.Group("/api/Events")
	protectedEvents.Use(authMiddleware)
	{
		protectedEvents.POST("", ec.CreateEvent)
		protectedEvents.PUT("/:id", ec.UpdateEvent)
		protectedEvents.DELETE("/:id", ec.DeleteEvent)
	}

	registrations := router.Group("/api/EventRegistrations")
	registrations.Use(authMiddleware)
	{
		registrations.POST("", rc.Register)
		registrations.GET("/my", rc.GetMyRegistrations)
		registrations.GET("/my/:eventId", rc.GetMyRegistrationForEvent)
		registrations.DELETE("/my/:eventId", rc.CancelMyRegistration)
	}
}
