package message

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type MessageController struct {
	repo       MessageRepository
	authorizer *club.Authorizer
}

func NewMessageController(repo MessageRepository, authorizer *club.Authorizer) *MessageController {
	return &MessageController{repo: repo, authorizer: authorizer}
}

type SendMessageRequest struct {
	ClubID  uint   `json:"clubId" binding:"required"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
	Body    string `json:"body" binding:"required"`
}

type RespondMessageRequest struct {
	Response string `json:"response" binding:"required"`
}

func parseMessageID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// SendMessage godoc
// @Summary Send a message to a club's administration
// @Tags club-messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body SendMessageRequest true "Message"
// @Success 201 {object} responses.SuccessResponse
// @Router /api/ClubMessages [post]
func (mc *MessageController) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	m := ClubMessage{
		ClubID:   req.ClubID,
		SenderID: userID,
		Subject:  req.Subject,
		Body:     req.Body,
	}
	if err := mc.repo.CreateMessage(&m); err != nil {
		responses.InternalServerError(c, "Failed to send message")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Message sent", m)
}

// GetMessagesByClub godoc
// @Summary List messages sent to a club
// @Tags club-messages
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/ClubMessages/club/{clubId} [get]
func (mc *MessageController) GetMessagesByClub(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseMessageID(c, "clubId")
	if !ok {
		return
	}

	allowed, err := mc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), clubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can read club messages")
		return
	}

	msgs, err := mc.repo.GetMessagesByClub(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch messages")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Messages retrieved", msgs)
}

// GetMyMessages godoc
// @Summary List messages the current user has sent
// @Tags club-messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /api/ClubMessages/my [get]
func (mc *MessageController) GetMyMessages(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	msgs, err := mc.repo.GetMessagesBySender(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch messages")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Messages retrieved", msgs)
}

// RespondToMessage godoc
// @Summary Respond to a club message
// @Description Stores the admin response and marks the message read.
// @Tags club-messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param response body RespondMessageRequest true "Response text"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/ClubMessages/{id}/respond [put]
func (mc *MessageController) RespondToMessage(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseMessageID(c, "id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMessageByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch message")
		return
	}
	if m == nil {
		responses.NotFound(c, "Message not found")
		return
	}

	allowed, err := mc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), m.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can respond to messages")
		return
	}

	var req RespondMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	m.AdminResponse = req.Response
	m.IsRead = true
	m.RespondedBy = &userID
	if err := mc.repo.UpdateMessage(m); err != nil {
		responses.InternalServerError(c, "Failed to respond")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Response saved", m)
}

// MarkRead godoc
// @Summary Mark a club message as read
// @Tags club-messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/ClubMessages/{id}/mark-read [put]
func (mc *MessageController) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseMessageID(c, "id")
	if !ok {
		return
	}

	m, err := mc.repo.GetMessageByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch message")
		return
	}
	if m == nil {
		responses.NotFound(c, "Message not found")
		return
	}

	allowed, err := mc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), m.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can mark messages read")
		return
	}

	m.IsRead = true
	if err := mc.repo.UpdateMessage(m); err != nil {
		responses.InternalServerError(c, "Failed to update message")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Message marked as read", m)
}
