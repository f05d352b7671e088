package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
	hashutil "github.com/anweshon/anweshon-api/utils"
)

type UserController struct {
	repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{repo: repo}
}

type UpdateProfileRequest struct {
	FullName   string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func parseUserID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// requireSelf rejects requests targeting another user unless the actor is
// a platform admin.
func requireSelf(c *gin.Context, targetID uint) bool {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return false
	}
	if actorID != targetID && !middleware.HasRole(c, RoleAdmin) {
		responses.Forbidden(c, "You can only manage your own account")
		return false
	}
	return true
}

// GetUser godoc
// @Summary Get a user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}
	u, err := uc.repo.GetUserByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User retrieved", u.ToResponse())
}

// UpdateUser godoc
// @Summary Update a user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Users/{id} [put]
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}
	if !requireSelf(c, id) {
		return
	}

	u, err := uc.repo.GetUserByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User not found")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}
	if req.Phone != "" && !validator.IsValidBdPhone(req.Phone) {
		responses.SendValidationErrors(c, map[string]string{
			"phone": "Phone must be a valid Bangladeshi number (01XXXXXXXXX)",
		})
		return
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Department != "" {
		u.Department = req.Department
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}

	if err := uc.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update user")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated", u.ToResponse())
}

// ChangePassword godoc
// @Summary Change a user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param passwords body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Users/{id}/change-password [post]
func (uc *UserController) ChangePassword(c *gin.Context) {
	id, ok := parseUserID(c, "id")
	if !ok {
		return
	}
	if !requireSelf(c, id) {
		return
	}

	u, err := uc.repo.GetUserByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User not found")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	if !hashutil.CheckPassword(u.Password, req.CurrentPassword) {
		responses.BadRequest(c, "Current password is incorrect")
		return
	}

	hashed, err := hashutil.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to process password")
		return
	}
	u.Password = hashed
	if err := uc.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update password")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed", nil)
}
