package collaboration

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type CollaborationController struct {
	repo       CollaborationRepository
	clubRepo   club.ClubRepository
	authorizer *club.Authorizer
}

func NewCollaborationController(repo CollaborationRepository, clubRepo club.ClubRepository, authorizer *club.Authorizer) *CollaborationController {
	return &CollaborationController{repo: repo, clubRepo: clubRepo, authorizer: authorizer}
}

type CreateCollaborationRequest struct {
	RequesterClubID    uint       `json:"requesterClubId" binding:"required"`
	TargetClubID       uint       `json:"targetClubId" binding:"required"`
	Message            string     `json:"message" binding:"required"`
	ProposedEventTitle string     `json:"proposedEventTitle"`
	ProposedEventDate  *time.Time `json:"proposedEventDate"`
}

type RespondCollaborationRequest struct {
	Status   string `json:"status" binding:"required,oneof=Accepted Rejected"`
	Response string `json:"response"`
}

func parseCollabID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// CreateCollaboration godoc
// @Summary Send a collaboration request to another club
// @Tags club-collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collaboration body CreateCollaborationRequest true "Request details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/ClubCollaborations [post]
func (cc *CollaborationController) CreateCollaboration(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	if req.RequesterClubID == req.TargetClubID {
		responses.BadRequest(c, "A club cannot collaborate with itself")
		return
	}

	allowed, err := cc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), req.RequesterClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only executives of the requesting club can send collaboration requests")
		return
	}

	target, err := cc.clubRepo.GetClubByID(req.TargetClubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch target club")
		return
	}
	if target == nil {
		responses.NotFound(c, "Target club not found")
		return
	}

	item := ClubCollaboration{
		RequesterClubID:    req.RequesterClubID,
		TargetClubID:       req.TargetClubID,
		Message:            req.Message,
		ProposedEventTitle: req.ProposedEventTitle,
		ProposedEventDate:  req.ProposedEventDate,
		Status:             StatusPending,
		RequestedBy:        userID,
	}
	if err := cc.repo.CreateCollaboration(&item); err != nil {
		responses.InternalServerError(c, "Failed to create collaboration request")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Collaboration request sent", item)
}

// GetReceived godoc
// @Summary List collaboration requests received by a club
// @Tags club-collaborations
// @Produce json
// @Security BearerAuth
// @Param clubId query int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/ClubCollaborations/received [get]
func (cc *CollaborationController) GetReceived(c *gin.Context) {
	cc.listForClub(c, func(clubID uint) ([]ClubCollaboration, error) {
		return cc.repo.GetReceivedByClub(clubID)
	})
}

// GetSent godoc
// @Summary List collaboration requests sent by a club
// @Tags club-collaborations
// @Produce json
// @Security BearerAuth
// @Param clubId query int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/ClubCollaborations/sent [get]
func (cc *CollaborationController) GetSent(c *gin.Context) {
	cc.listForClub(c, func(clubID uint) ([]ClubCollaboration, error) {
		return cc.repo.GetSentByClub(clubID)
	})
}

func (cc *CollaborationController) listForClub(c *gin.Context, fetch func(uint) ([]ClubCollaboration, error)) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, err := strconv.ParseUint(c.Query("clubId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid clubId parameter")
		return
	}

	allowed, err := cc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), uint(clubID), club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can view collaboration requests")
		return
	}

	items, err := fetch(uint(clubID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch collaboration requests")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Collaboration requests retrieved", items)
}

// Respond godoc
// @Summary Accept or reject a collaboration request
// @Tags club-collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Collaboration ID"
// @Param response body RespondCollaborationRequest true "Decision and optional response text"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/ClubCollaborations/{id}/respond [put]
func (cc *CollaborationController) Respond(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseCollabID(c, "id")
	if !ok {
		return
	}

	item, err := cc.repo.GetCollaborationByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch collaboration request")
		return
	}
	if item == nil {
		responses.NotFound(c, "Collaboration request not found")
		return
	}

	allowed, err := cc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), item.TargetClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only executives of the target club can respond")
		return
	}

	if item.Status != StatusPending {
		responses.BadRequest(c, "This request has already been responded to")
		return
	}

	var req RespondCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	item.Status = req.Status
	item.Response = req.Response
	item.RespondedBy = &userID
	if err := cc.repo.UpdateCollaboration(item); err != nil {
		responses.InternalServerError(c, "Failed to update collaboration request")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Collaboration request updated", item)
}
