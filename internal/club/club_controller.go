package club

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type ClubController struct {
	repo       ClubRepository
	authorizer *Authorizer
	notifier   notification.Notifier
}

func NewClubController(repo ClubRepository, authorizer *Authorizer, notifier notification.Notifier) *ClubController {
	return &ClubController{repo: repo, authorizer: authorizer, notifier: notifier}
}

type CreateClubRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=150"`
	ShortCode       string `json:"shortCode" binding:"omitempty,max=20"`
	Description     string `json:"description"`
	LogoUrl         string `json:"logoUrl"`
	BannerUrl       string `json:"bannerUrl"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	ContactEmail    string `json:"contactEmail" binding:"omitempty,email"`
	WebsiteUrl      string `json:"websiteUrl"`
	FacebookUrl     string `json:"facebookUrl"`
	InstagramUrl    string `json:"instagramUrl"`
	Tagline         string `json:"tagline"`
	FoundedYear     *int   `json:"foundedYear"`
	MeetingLocation string `json:"meetingLocation"`
}

type UpdateClubProfileRequest struct {
	Description     string `json:"description"`
	LogoUrl         string `json:"logoUrl"`
	BannerUrl       string `json:"bannerUrl"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	ContactEmail    string `json:"contactEmail" binding:"omitempty,email"`
	WebsiteUrl      string `json:"websiteUrl"`
	FacebookUrl     string `json:"facebookUrl"`
	InstagramUrl    string `json:"instagramUrl"`
	Tagline         string `json:"tagline"`
	FoundedYear     *int   `json:"foundedYear"`
	MeetingLocation string `json:"meetingLocation"`
}

type ExecutiveInput struct {
	UserID       *uint  `json:"userId"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PhotoUrl     string `json:"photoUrl"`
	DisplayOrder int    `json:"displayOrder"`
}

type UpsertExecutivesRequest struct {
	Executives []ExecutiveInput `json:"executives" binding:"required"`
}

type MemberResponse struct {
	UserID     uint      `json:"userId"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	StudentID  string    `json:"studentId"`
	Department string    `json:"department"`
	RoleInClub string    `json:"roleInClub"`
	JoinedAt   time.Time `json:"joinedAt"`
}

func parseClubID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// GetAllClubs godoc
// @Summary List all clubs
// @Tags clubs
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Clubs [get]
func (cc *ClubController) GetAllClubs(c *gin.Context) {
	clubs, err := cc.repo.GetAllClubs()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch clubs")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Clubs retrieved", clubs)
}

// GetClubByID godoc
// @Summary Get a club by id
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Clubs/{id} [get]
func (cc *ClubController) GetClubByID(c *gin.Context) {
	id, ok := parseClubID(c, "id")
	if !ok {
		return
	}
	club, err := cc.repo.GetClubByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch club")
		return
	}
	if club == nil {
		responses.NotFound(c, "Club not found")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club retrieved", club)
}

// GetMyClubs godoc
// @Summary List clubs the current user belongs to
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Clubs/my [get]
func (cc *ClubController) GetMyClubs(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubs, err := cc.repo.GetClubsForUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch clubs")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Clubs retrieved", clubs)
}

// CreateClub godoc
// @Summary Create a club
// @Description The creator becomes the club's Admin member and its Founder executive.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club body CreateClubRequest true "Club details"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /api/Clubs [post]
func (cc *ClubController) CreateClub(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	existing, err := cc.repo.GetClubByName(req.Name)
	if err != nil {
		responses.InternalServerError(c, "Failed to check club name")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A club with this name already exists")
		return
	}

	creator, err := cc.repo.GetUserByID(userID)
	if err != nil || creator == nil {
		responses.Unauthorized(c, "User not found")
		return
	}

	club := Club{
		Name:            req.Name,
		ShortCode:       req.ShortCode,
		Description:     req.Description,
		LogoUrl:         req.LogoUrl,
		BannerUrl:       req.BannerUrl,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		ContactEmail:    req.ContactEmail,
		WebsiteUrl:      req.WebsiteUrl,
		FacebookUrl:     req.FacebookUrl,
		InstagramUrl:    req.InstagramUrl,
		Tagline:         req.Tagline,
		FoundedYear:     req.FoundedYear,
		MeetingLocation: req.MeetingLocation,
	}

	// Creating a club also seats the creator as its Admin member and its
	// Founder executive, in one transaction.
	err = cc.repo.WithTransaction(func(tx ClubRepository) error {
		if err := tx.CreateClub(&club); err != nil {
			return err
		}
		membership := Membership{
			ClubID:     club.ID,
			UserID:     userID,
			RoleInClub: RoleInClubAdmin,
			JoinedAt:   time.Now().UTC(),
		}
		if err := tx.AddMembership(&membership); err != nil {
			return err
		}
		founder := ClubExecutive{
			ClubID:   club.ID,
			UserID:   &userID,
			Name:     creator.FullName,
			Position: PositionFounder,
			Email:    creator.Email,
			Phone:    creator.Phone,
		}
		return tx.AddExecutive(&founder)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to create club")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Club created successfully", club)
}

// UpdateClubProfile godoc
// @Summary Update a club's profile
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param profile body UpdateClubProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Clubs/{id}/profile [put]
func (cc *ClubController) UpdateClubProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}

	allowed, err := cc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), clubID, LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can update the club profile")
		return
	}

	club, err := cc.repo.GetClubByID(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch club")
		return
	}
	if club == nil {
		responses.NotFound(c, "Club not found")
		return
	}

	var req UpdateClubProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	club.Description = req.Description
	club.LogoUrl = req.LogoUrl
	club.BannerUrl = req.BannerUrl
	club.PrimaryColor = req.PrimaryColor
	club.SecondaryColor = req.SecondaryColor
	club.ContactEmail = req.ContactEmail
	club.WebsiteUrl = req.WebsiteUrl
	club.FacebookUrl = req.FacebookUrl
	club.InstagramUrl = req.InstagramUrl
	club.Tagline = req.Tagline
	club.FoundedYear = req.FoundedYear
	club.MeetingLocation = req.MeetingLocation

	if err := cc.repo.UpdateClub(club); err != nil {
		responses.InternalServerError(c, "Failed to update club")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Club profile updated", club)
}

// JoinClub godoc
// @Summary Join a club as a member
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 201 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Clubs/{id}/join [post]
func (cc *ClubController) JoinClub(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}

	club, err := cc.repo.GetClubByID(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch club")
		return
	}
	if club == nil {
		responses.NotFound(c, "Club not found")
		return
	}

	already, err := cc.repo.IsMember(clubID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership")
		return
	}
	if already {
		responses.BadRequest(c, "You are already a member of this club")
		return
	}

	joiner, err := cc.repo.GetUserByID(userID)
	if err != nil || joiner == nil {
		responses.Unauthorized(c, "User not found")
		return
	}

	membership := Membership{
		ClubID:     clubID,
		UserID:     userID,
		RoleInClub: RoleInClubMember,
		JoinedAt:   time.Now().UTC(),
	}
	if err := cc.repo.AddMembership(&membership); err != nil {
		// The unique index guards the concurrent-join race.
		responses.BadRequest(c, "You are already a member of this club")
		return
	}

	// Best-effort fan-out to the club's executives. A crash after the
	// membership commit only loses the realtime ping.
	execIDs, err := cc.repo.GetExecutiveUserIDs(clubID)
	if err == nil && len(execIDs) > 0 {
		cc.notifier.SendToUsers(execIDs, gin.H{
			"type":      "member_joined",
			"title":     "New Member Joined",
			"message":   fmt.Sprintf("%s joined %s", joiner.FullName, club.Name),
			"clubId":    club.ID,
			"clubName":  club.Name,
			"timestamp": time.Now().UTC(),
		})
	}

	responses.SendSuccess(c, http.StatusCreated, "Joined club successfully", membership)
}

// LeaveClub godoc
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Clubs/{id}/leave [delete]
func (cc *ClubController) LeaveClub(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}

	if err := cc.repo.RemoveMembership(clubID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			responses.NotFound(c, "You are not a member of this club")
			return
		}
		responses.InternalServerError(c, "Failed to leave club")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Left club successfully", nil)
}

// GetMembers godoc
// @Summary List a club's members
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Clubs/{id}/members [get]
func (cc *ClubController) GetMembers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}

	allowed, err := cc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), clubID, LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can view the member list")
		return
	}

	memberships, err := cc.repo.GetMemberships(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch members")
		return
	}

	members := make([]MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		u, err := cc.repo.GetUserByID(m.UserID)
		if err != nil || u == nil {
			continue
		}
		members = append(members, MemberResponse{
			UserID:     u.ID,
			FullName:   u.FullName,
			Email:      u.Email,
			StudentID:  u.StudentID,
			Department: u.Department,
			RoleInClub: m.RoleInClub,
			JoinedAt:   m.JoinedAt,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "Members retrieved", members)
}

// GetMyMembership godoc
// @Summary Get the current user's membership in a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/Clubs/{id}/members/me [get]
func (cc *ClubController) GetMyMembership(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}

	membership, err := cc.repo.GetMembership(clubID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch membership")
		return
	}
	if membership == nil {
		responses.NotFound(c, "You are not a member of this club")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Membership retrieved", membership)
}

// GetExecutives godoc
// @Summary List a club's executives
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /api/Clubs/{id}/executives [get]
func (cc *ClubController) GetExecutives(c *gin.Context) {
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}
	execs, err := cc.repo.GetExecutives(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch executives")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Executives retrieved", execs)
}

// UpsertExecutives godoc
// @Summary Replace a club's executive list
// @Description Replaces the full executive set. Entries with a blank name or position are dropped.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param executives body UpsertExecutivesRequest true "Executive set"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/Clubs/{id}/executives [put]
func (cc *ClubController) UpsertExecutives(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	clubID, ok := parseClubID(c, "id")
	if !ok {
		return
	}

	allowed, err := cc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), clubID, LevelClubAdmin)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only the club admin can edit executives")
		return
	}

	var req UpsertExecutivesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	execs := make([]ClubExecutive, 0, len(req.Executives))
	for _, in := range req.Executives {
		if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Position) == "" {
			continue
		}
		execs = append(execs, ClubExecutive{
			ClubID:       clubID,
			UserID:       in.UserID,
			Name:         strings.TrimSpace(in.Name),
			Position:     strings.TrimSpace(in.Position),
			Email:        in.Email,
			Phone:        in.Phone,
			PhotoUrl:     in.PhotoUrl,
			DisplayOrder: in.DisplayOrder,
		})
	}

	if err := cc.repo.ReplaceExecutives(clubID, execs); err != nil {
		responses.InternalServerError(c, "Failed to update executives")
		return
	}

	updated, err := cc.repo.GetExecutives(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch executives")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Executives updated", updated)
}
