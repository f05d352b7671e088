package upload

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anweshon/anweshon-api/pkg/responses"
	"github.com/anweshon/anweshon-api/pkg/utils"
)

// MaxFileSize is the upload size ceiling per file.
const MaxFileSize = 5 << 20 // 5MB

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type UploadController struct {
	uploadDir string
}

func NewUploadController(uploadDir string) *UploadController {
	return &UploadController{uploadDir: uploadDir}
}

type UploadResult struct {
	FileName string `json:"fileName"`
	Url      string `json:"url"`
	Size     int64  `json:"size"`
}

func validateFile(header *multipart.FileHeader) (string, string) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Sprintf("File type %s is not allowed. Allowed: jpg, jpeg, png, gif, webp", ext)
	}
	if header.Size > MaxFileSize {
		return "", "File exceeds the 5MB size limit"
	}
	return ext, ""
}

func (uc *UploadController) saveFile(c *gin.Context, header *multipart.FileHeader) (*UploadResult, string) {
	ext, msg := validateFile(header)
	if msg != "" {
		return nil, msg
	}

	if err := utils.EnsureDir(uc.uploadDir); err != nil {
		return nil, "Failed to prepare upload directory"
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(uc.uploadDir, name)
	if err := c.SaveUploadedFile(header, dst); err != nil {
		return nil, "Failed to store file"
	}

	return &UploadResult{
		FileName: name,
		Url:      "/uploads/" + name,
		Size:     header.Size,
	}, ""
}

// UploadFile godoc
// @Summary Upload a single image
// @Description Accepts jpg, jpeg, png, gif, or webp up to 5MB and returns a root-relative URL.
// @Tags file-upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/FileUpload [post]
func (uc *UploadController) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		responses.BadRequest(c, "No file provided")
		return
	}
	result, msg := uc.saveFile(c, header)
	if msg != "" {
		responses.BadRequest(c, msg)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "File uploaded", result)
}

// UploadMultiple godoc
// @Summary Upload several images at once
// @Tags file-upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Image files"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /api/FileUpload/multiple [post]
func (uc *UploadController) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		responses.BadRequest(c, "No files provided")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		responses.BadRequest(c, "No files provided")
		return
	}

	results := make([]UploadResult, 0, len(files))
	for _, header := range files {
		result, msg := uc.saveFile(c, header)
		if msg != "" {
			responses.BadRequest(c, fmt.Sprintf("%s: %s", header.Filename, msg))
			return
		}
		results = append(results, *result)
	}
	responses.SendSuccess(c, http.StatusOK, "Files uploaded", results)
}
