package post

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/validator"
)

type PostController struct {
	repo       PostRepository
	authorizer *club.Authorizer
}

func NewPostController(repo PostRepository, authorizer *club.Authorizer) *PostController {
	return &PostController{repo: repo, authorizer: authorizer}
}

type PostImageInput struct {
	ImageUrl     string `json:"imageUrl" binding:"required"`
	Caption      string `json:"caption"`
	DisplayOrder int    `json:"displayOrder"`
}

type CreatePostRequest struct {
	ClubID  uint             `json:"clubId" binding:"required"`
	Title   string           `json:"title" binding:"required,min=1,max=200"`
	Content string           `json:"content"`
	Images  []PostImageInput `json:"images" binding:"omitempty,dive"`
}

func parsePostID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// GetPostsByClub godoc
// @Summary List a club's posts with their image galleries
// @Tags club-posts
// @Produce json
// @Param clubId path int true "Club ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /api/ClubPosts/club/{clubId} [get]
func (pc *PostController) GetPostsByClub(c *gin.Context) {
	clubID, ok := parsePostID(c, "clubId")
	if !ok {
		return
	}
	posts, err := pc.repo.GetPostsByClub(clubID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch posts")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Posts retrieved", posts)
}

// CreatePost godoc
// @Summary Create a club post
// @Tags club-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostRequest true "Post with optional images"
// @Success 201 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Router /api/ClubPosts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationErrors(c, validator.ParseError(err))
		return
	}

	allowed, err := pc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), req.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed {
		responses.Forbidden(c, "Only club executives can create posts")
		return
	}

	images := make([]ClubPostImage, 0, len(req.Images))
	for _, in := range req.Images {
		images = append(images, ClubPostImage{
			ImageUrl:     in.ImageUrl,
			Caption:      in.Caption,
			DisplayOrder: in.DisplayOrder,
		})
	}

	p := ClubPost{
		ClubID:   req.ClubID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Images:   images,
	}
	if err := pc.repo.CreatePost(&p); err != nil {
		responses.InternalServerError(c, "Failed to create post")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Post created", p)
}

// DeletePost godoc
// @Summary Delete a club post and its images
// @Tags club-posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /api/ClubPosts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		responses.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := parsePostID(c, "id")
	if !ok {
		return
	}

	p, err := pc.repo.GetPostByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch post")
		return
	}
	if p == nil {
		responses.NotFound(c, "Post not found")
		return
	}

	allowed, err := pc.authorizer.Authorize(userID, middleware.GetUserRolesFromContext(c), p.ClubID, club.LevelExecutive)
	if err != nil {
		responses.InternalServerError(c, "Authorization check failed")
		return
	}
	if !allowed && p.AuthorID != userID {
		responses.Forbidden(c, "You cannot delete this post")
		return
	}

	if err := pc.repo.DeletePost(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			responses.NotFound(c, "Post not found")
			return
		}
		responses.InternalServerError(c, "Failed to delete post")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Post deleted", nil)
}
