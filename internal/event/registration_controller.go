package event

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type RegistrationController struct {
	repo     EventRepository
	clubRepo club.ClubRepository
	notifier notification.Notifier
}

func NewRegistrationController(repo EventRepository, clubRepo club.ClubRepository, notifier notification.Notifier) *RegistrationController {
	return &RegistrationController{repo: repo, clubRepo: clubRepo, notifier: notifier}
}

type RegisterForEventRequest struct {
	EventID uint `json:"eventId" binding:"required"`
}

// Register godoc
// @Summary Register for an event
// @Description Rejects duplicates, unpublished events, and full events. Notifies the club's executives.
// @Tags event-registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registration body RegisterForEventRequest true "Event to register for"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/EventRegistrations [post]
func (rc *RegistrationController) Register(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req RegisterForEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	event, err := rc.repo.GetEventByID(req.EventID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return
	}
	if event == nil || event.Status == StatusDeleted {
		responses.NotFound(c, "Event not found")
		return
	}
	if event.Status != StatusPublished || event.IsArchived {
		responses.BadRequest(c, "Registration is not open for this event")
		return
	}

	existing, err := rc.repo.GetRegistration(req.EventID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check registration")
		return
	}
	if existing != nil {
		responses.BadRequest(c, "You are already registered for this event")
		return
	}

	if event.Capacity > 0 {
		count, err := rc.repo.CountRegistrations(event.ID)
		if err != nil {
			responses.InternalServerError(c, "Failed to check capacity")
			return
		}
		if count >= int64(event.Capacity) {
			responses.BadRequest(c, "This event is full")
			return
		}
	}

	reg := EventRegistration{
		EventID:      event.ID,
		UserID:       userID,
		RegisteredAt: time.Now().UTC(),
	}
	if err := rc.repo.CreateRegistration(&reg); err != nil {
		responses.BadRequest(c, "You are already registered for this event")
		return
	}

	rc.notifyExecutives(userID, event)

	responses.SendSuccess(c, http.StatusCreated, "Registered successfully", reg)
}

func (rc *RegistrationController) notifyExecutives(userID uint, event *Event) {
	owner, err := rc.clubRepo.GetClubByID(event.ClubID)
	if err != nil || owner == nil {
		return
	}
	registrant, err := rc.clubRepo.GetUserByID(userID)
	if err != nil || registrant == nil {
		return
	}
	execIDs, err := rc.clubRepo.GetExecutiveUserIDs(event.ClubID)
	if err != nil || len(execIDs) == 0 {
		return
	}
	rc.notifier.SendToUsers(execIDs, gin.H{
		"type":       "event_registration",
		"title":      "New Event Registration",
		"message":    fmt.Sprintf("%s registered for %s", registrant.FullName, event.Title),
		"eventId":    event.ID,
		"eventTitle": event.Title,
		"clubId":     owner.ID,
		"clubName":   owner.Name,
		"timestamp":  time.Now().UTC(),
	})
}

// GetMyRegistrations godoc
// @Summary List the current user's event registrations
// @Tags event-registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /api/EventRegistrations/my [get]
func (rc *RegistrationController) GetMyRegistrations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	regs, err := rc.repo.GetRegistrationsForUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch registrations")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Registrations retrieved", regs)
}

// GetMyRegistrationForEvent godoc
// @Summary Get the current user's registration for one event
// @Tags event-registrations
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/EventRegistrations/my/{eventId} [get]
func (rc *RegistrationController) GetMyRegistrationForEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := parseEventID(c, "eventId")
	if !ok {
		return
	}
	reg, err := rc.repo.GetRegistration(eventID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch registration")
		return
	}
	if reg == nil {
		responses.NotFound(c, "You are not registered for this event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Registration retrieved", reg)
}

// CancelMyRegistration godoc
// @Summary Cancel the current user's registration for an event
// @Tags event-registrations
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/EventRegistrations/my/{eventId} [delete]
func (rc *RegistrationController) CancelMyRegistration(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := parseEventID(c, "eventId")
	if !ok {
		return
	}
	if err := rc.repo.DeleteRegistration(eventID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			responses.NotFound(c, "You are not registered for this event")
			return
		}
		responses.InternalServerError(c, "Failed to cancel registration")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Registration cancelled", nil)
}
