package achievement

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type AchievementController struct {
	repo       AchievementRepository
	authorizer *club.Authorizer
}

func NewAchievementController(repo AchievementRepository, authorizer *club.Authorizer) *AchievementController {
	return &AchievementController{repo: repo, authorizer: authorizer}
}

type CreateAchievementRequest struct {
	ClubID          uint      `json:"clubId" binding:"required"`
	Title           string    `json:"title" binding:"required,min=2,max=200"`
	Description     string    `json:"description"`
	AchievementDate time.Time `json:"achievementDate" binding:"required"`
	ImageUrl        string    `json:"imageUrl"`
}

type ReviewAchievementRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// GetApprovedByClub godoc
// @Summary List a club's approved achievements
// @Tags achievements
// @Produce json
// @Param clubId path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Achievements/club/{clubId} [get]
func (ac *AchievementController) GetApprovedByClub(c *gin.Context) {
	clubID, ok := parseID(c, "clubId")
	if !ok {
		return
	}
	items, err := ac.repo.GetApprovedByClub(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch achievements")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievements retrieved", items)
}

// GetAllByClub godoc
// @Summary List all of a club's achievements, including pending and rejected
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Achievements/club/{clubId}/all [get]
func (ac *AchievementController) GetAllByClub(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseID(c, "clubId")
	if !ok {
		return
	}
	allowed, err := ac.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), clubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can view unapproved achievements")
		return
	}
	items, err := ac.repo.GetAllByClub(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch achievements")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievements retrieved", items)
}

// CreateAchievement godoc
// @Summary Submit an achievement
// @Description Submissions by executives or the club admin are approved immediately; member submissions start Pending.
// @Tags achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param achievement body CreateAchievementRequest true "Achievement details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Achievements [post]
func (ac *AchievementController) CreateAchievement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	roles := middleware.GetUserRolesFromContext(c)

	isMember, err := ac.authorizer.Authorize(userID, roles, req.ClubID, club.LevelMember)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !isMember {
		responses.Forbidden(c, "Only club members can submit achievements")
		return
	}

	privileged, err := ac.authorizer.Authorize(userID, roles, req.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}

	status := StatusPending
	var reviewedBy *uint
	if privileged {
		status = StatusApproved
		reviewedBy = &userID
	}

	item := Achievement{
		ClubID:          req.ClubID,
		Title:           req.Title,
		Description:     req.Description,
		AchievementDate: req.AchievementDate,
		ImageUrl:        req.ImageUrl,
		Status:          status,
		SubmittedBy:     userID,
		ReviewedBy:      reviewedBy,
	}
	if err := ac.repo.CreateAchievement(&item); err != nil {
		responses.InternalServerError(c, "Failed to create achievement")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Achievement submitted", item)
}

// ReviewAchievement godoc
// @Summary Approve or reject a pending achievement
// @Tags achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Param review body ReviewAchievementRequest true "Decision"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Achievements/{id}/review [put]
func (ac *AchievementController) ReviewAchievement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := ac.repo.GetAchievementByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch achievement")
		return
	}
	if item == nil {
		responses.NotFound(c, "Achievement not found")
		return
	}

	allowed, err := ac.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), item.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can review achievements")
		return
	}

	if item.Status != StatusPending {
		responses.BadRequest(c, "Only pending achievements can be reviewed")
		return
	}

	var req ReviewAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	item.Status = req.Status
	item.ReviewedBy = &userID
	if err := ac.repo.UpdateAchievement(item); err != nil {
		responses.InternalServerError(c, "Failed to update achievement")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievement reviewed", item)
}

// DeleteAchievement godoc
// @Summary Delete an achievement
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Achievements/{id} [delete]
func (ac *AchievementController) DeleteAchievement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := ac.repo.GetAchievementByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch achievement")
		return
	}
	if item == nil {
		responses.NotFound(c, "Achievement not found")
		return
	}

	allowed, err := ac.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), item.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only executives can delete achievements")
		return
	}

	if err := ac.repo.DeleteAchievement(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			responses.NotFound(c, "Achievement not found")
			return
		}
		responses.InternalServerError(c, "Failed to delete achievement")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Achievement deleted", nil)
}
