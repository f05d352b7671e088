package upload_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/testutil"
	"github.com/anweshon/anweshon-api/internal/upload"
	"github.com/anweshon/anweshon-api/internal/user"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestFileUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	dir := t.TempDir()
	controller := upload.NewUploadController(dir)

	router := gin.New()
	upload.RegisterUploadRoutes(router, controller, middleware.AuthMiddleware(testutil.TestJWTSecret, db))

	u := testutil.CreateUser(t, db, "Uploader", "up@example.com", "secret123", user.RoleStudent)
	tok := testutil.IssueToken(t, u, user.RoleStudent)

	t.Run("AcceptsImageAndReturnsURL", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "banner.png", []byte("fake image bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/FileUpload", body)
		req.Header.Set("Content-Type", contentType)
		testutil.Authorize(req, tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data upload.UploadResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Data.Url, "/uploads/"))
		assert.True(t, strings.HasSuffix(resp.Data.FileName, ".png"))
		// The stored name is generated, never the client's filename.
		assert.NotContains(t, resp.Data.FileName, "banner")

		stored, err := os.ReadFile(filepath.Join(dir, resp.Data.FileName))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image bytes"), stored)
	})

	t.Run("RejectsDisallowedExtension", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "script.exe", []byte("MZ"))
		req := httptest.NewRequest(http.MethodPost, "/api/FileUpload", body)
		req.Header.Set("Content-Type", contentType)
		testutil.Authorize(req, tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RejectsOversizedFile", func(t *testing.T) {
		big := make([]byte, upload.MaxFileSize+1)
		body, contentType := multipartBody(t, "file", "huge.jpg", big)
		req := httptest.NewRequest(http.MethodPost, "/api/FileUpload", body)
		req.Header.Set("Content-Type", contentType)
		testutil.Authorize(req, tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RejectsUnauthenticated", func(t *testing.T) {
		body, contentType := multipartBody(t, "file", "photo.jpg", []byte("img"))
		req := httptest.NewRequest(http.MethodPost, "/api/FileUpload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MultipleUploadsAll", func(t *testing.T) {
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for _, name := range []string{"a.jpg", "b.webp"} {
			part, err := writer.CreateFormFile("files", name)
			require.NoError(t, err)
			_, err = part.Write([]byte("data-" + name))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/FileUpload/multiple", buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		testutil.Authorize(req, tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data []upload.UploadResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
	})
}
