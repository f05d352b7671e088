package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type EventController struct {
	repo             EventRepository
	clubRepo         club.ClubRepository
	authorizer       *club.Authorizer
	notificationRepo notification.NotificationRepository
	notifier         notification.Notifier
}

func NewEventController(
	repo EventRepository,
	clubRepo club.ClubRepository,
	authorizer *club.Authorizer,
	notificationRepo notification.NotificationRepository,
	notifier notification.Notifier,
) *EventController {
	return &EventController{
		repo:             repo,
		clubRepo:         clubRepo,
		authorizer:       authorizer,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

type CreateEventRequest struct {
	ClubID           uint       `json:"clubId" binding:"required"`
	Title            string     `json:"title" binding:"required,min=2,max=200"`
	Description      string     `json:"description"`
	StartDateTime    time.Time  `json:"startDateTime" binding:"required"`
	EndDateTime      *time.Time `json:"endDateTime"`
	Location         string     `json:"location"`
	Capacity         int        `json:"capacity" binding:"omitempty,min=0"`
	RegistrationFee  float64    `json:"registrationFee" binding:"omitempty,min=0"`
	BannerUrl        string     `json:"bannerUrl"`
	Status           string     `json:"status" binding:"omitempty,oneof=Draft Published"`
	ShowInPastEvents *bool      `json:"showInPastEvents"`
}

type UpdateEventRequest struct {
	Title            string     `json:"title" binding:"omitempty,min=2,max=200"`
	Description      *string    `json:"description"`
	StartDateTime    *time.Time `json:"startDateTime"`
	EndDateTime      *time.Time `json:"endDateTime"`
	Location         *string    `json:"location"`
	Capacity         *int       `json:"capacity" binding:"omitempty,min=0"`
	RegistrationFee  *float64   `json:"registrationFee" binding:"omitempty,min=0"`
	BannerUrl        *string    `json:"bannerUrl"`
	Status           string     `json:"status" binding:"omitempty,oneof=Draft Published Deleted"`
	IsArchived       *bool      `json:"isArchived"`
	ShowInPastEvents *bool      `json:"showInPastEvents"`
}

func parseEventID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// GetUpcomingEvents godoc
// @Summary List upcoming published events across all clubs
// @Tags events
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Events/upcoming [get]
func (ec *EventController) GetUpcomingEvents(c *gin.Context) {
	events, err := ec.repo.GetUpcomingEvents(time.Now().UTC())
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch events")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Upcoming events retrieved", events)
}

// GetEventsByClub godoc
// @Summary List a club's events
// @Tags events
// @Produce json
// @Param clubId path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Events/club/{clubId} [get]
func (ec *EventController) GetEventsByClub(c *gin.Context) {
	clubID, ok := parseEventID(c, "clubId")
	if !ok {
		return
	}
	events, err := ec.repo.GetEventsByClub(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch events")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Events retrieved", events)
}

// GetPastEventsByClub godoc
// @Summary List a club's past events
// @Tags events
// @Produce json
// @Param clubId path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Events/club/{clubId}/past [get]
func (ec *EventController) GetPastEventsByClub(c *gin.Context) {
	clubID, ok := parseEventID(c, "clubId")
	if !ok {
		return
	}
	events, err := ec.repo.GetPastEventsByClub(clubID, time.Now().UTC())
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch events")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Past events retrieved", events)
}

// GetEventByID godoc
// @Summary Get an event by id
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Events/{id} [get]
func (ec *EventController) GetEventByID(c *gin.Context) {
	id, ok := parseEventID(c, "id")
	if !ok {
		return
	}
	event, err := ec.repo.GetEventByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if event == nil || event.Status == StatusDeleted {
		responses.NotFound(c, "Event not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event retrieved", event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Publishing an event also stores a broadcast notification and pushes it to every connected client.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Events [post]
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	owner, err := ec.clubRepo.GetClubByID(req.ClubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch club")
		return
	}
	if owner == nil {
		responses.NotFound(c, "Club not found")
		return
	}

	allowed, err := ec.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), req.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can create events")
		return
	}

	status := StatusPublished
	if req.Status != "" {
		status = EventStatus(req.Status)
	}
	showInPast := true
	if req.ShowInPastEvents != nil {
		showInPast = *req.ShowInPastEvents
	}

	event := Event{
		ClubID:           req.ClubID,
		Title:            req.Title,
		Description:      req.Description,
		StartDateTime:    req.StartDateTime,
		EndDateTime:      req.EndDateTime,
		Location:         req.Location,
		Capacity:         req.Capacity,
		RegistrationFee:  req.RegistrationFee,
		BannerUrl:        req.BannerUrl,
		Status:           status,
		ShowInPastEvents: showInPast,
		CreatedBy:        userID,
	}
	if err := ec.repo.CreateEvent(&event); err != nil {
		responses.InternalServerError(c, "Failed to create event")
		return
	}

	// Broadcasts are best-effort and commit separately from the event.
	if event.Status == StatusPublished {
		title := "New Event: " + event.Title
		message := owner.Name + " published a new event"
		record := notification.Notification{
			Title:   title,
			Message: message,
			Type:    "NewEvent",
		}
		if err := ec.notificationRepo.CreateNotification(&record); err == nil {
			ec.notifier.Broadcast(gin.H{
				"type":      "NewEvent",
				"title":     title,
				"message":   message,
				"eventId":   event.ID,
				"clubId":    owner.ID,
				"createdAt": record.CreatedAt,
			})
		}
	}

	responses.SendSuccess(c, http.StatusCreated, "Event created successfully", event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Events/{id} [put]
func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseEventID(c, "id")
	if !ok {
		return
	}

	event, err := ec.repo.GetEventByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if event == nil || event.Status == StatusDeleted {
		responses.NotFound(c, "Event not found")
		return
	}

	allowed, err := ec.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), event.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can update events")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	if req.Status != "" {
		next := EventStatus(req.Status)
		if !CanTransition(event.Status, next) {
			responses.BadRequest(c, "Invalid status transition from "+string(event.Status)+" to "+string(next))
			return
		}
		event.Status = next
	}
	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDateTime != nil {
		event.StartDateTime = *req.StartDateTime
	}
	if req.EndDateTime != nil {
		event.EndDateTime = req.EndDateTime
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.RegistrationFee != nil {
		event.RegistrationFee = *req.RegistrationFee
	}
	if req.BannerUrl != nil {
		event.BannerUrl = *req.BannerUrl
	}
	if req.IsArchived != nil {
		event.IsArchived = *req.IsArchived
	}
	if req.ShowInPastEvents != nil {
		event.ShowInPastEvents = *req.ShowInPastEvents
	}

	if err := ec.repo.UpdateEvent(event); err != nil {
		responses.InternalServerError(c, "Failed to update event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event updated", event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Soft delete: the event's status flips to Deleted and it is archived. Rows are never removed.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Events/{id} [delete]
func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseEventID(c, "id")
	if !ok {
		return
	}

	event, err := ec.repo.GetEventByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if event == nil || event.Status == StatusDeleted {
		responses.NotFound(c, "Event not found")
		return
	}

	allowed, err := ec.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), event.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can delete events")
		return
	}

	event.Status = StatusDeleted
	event.IsArchived = true
	if err := ec.repo.UpdateEvent(event); err != nil {
		responses.InternalServerError(c, "Failed to delete event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event deleted", nil)
}
