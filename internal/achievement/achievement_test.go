package achievement_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/achievement"
	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/testutil"
	"github.com/anweshon/anweshon-api/internal/user"
)

type achievementEnv struct {
	db          *gorm.DB
	repo        achievement.AchievementRepository
	clubRepo    club.ClubRepository
	club        *club.Club
	exec        *user.User
	execToken   string
	member      *user.User
	memberToken string
}

func setupAchievementRouter(t *testing.T) (*gin.Engine, *achievementEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	repo := achievement.NewAchievementRepository(db)
	clubRepo := club.NewClubRepository(db)
	controller := achievement.NewAchievementController(repo, club.NewAuthorizer(clubRepo))

	router := gin.New()
	achievement.RegisterAchievementRoutes(router, controller, middleware.AuthMiddleware(testutil.TestJWTSecret, db))

	c := &club.Club{Name: "Chess Club"}
	require.NoError(t, clubRepo.CreateClub(c))

	exec := testutil.CreateUser(t, db, "Exec", "exec@example.com", "secret123", user.RoleStudent)
	require.NoError(t, clubRepo.AddExecutive(&club.ClubExecutive{ClubID: c.ID, UserID: &exec.ID, Name: "Exec", Position: "President"}))

	member := testutil.CreateUser(t, db, "Member", "member@example.com", "secret123", user.RoleStudent)
	require.NoError(t, clubRepo.AddMembership(&club.Membership{ClubID: c.ID, UserID: member.ID, RoleInClub: club.RoleInClubMember}))

	return router, &achievementEnv{
		db:          db,
		repo:        repo,
		clubRepo:    clubRepo,
		club:        c,
		exec:        exec,
		execToken:   testutil.IssueToken(t, exec, user.RoleStudent),
		member:      member,
		memberToken: testutil.IssueToken(t, member, user.RoleStudent),
	}
}

func submitAchievement(router *gin.Engine, tok string, clubID uint, title string, date time.Time) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{
		"clubId":          clubID,
		"title":           title,
		"achievementDate": date,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/Achievements", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testutil.Authorize(req, tok)
	return serve(router, req, httptest.NewRecorder())
}

func serve(router *gin.Engine, req *http.Request, w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	router.ServeHTTP(w, req)
	return w
}

func TestAchievementModeration(t *testing.T) {
	router, env := setupAchievementRouter(t)

	t.Run("MemberSubmissionStartsPending", func(t *testing.T) {
		w := submitAchievement(router, env.memberToken, env.club.ID, "Regional Runner-up", time.Now().UTC())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Data achievement.Achievement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, achievement.StatusPending, resp.Data.Status)
		assert.Nil(t, resp.Data.ReviewedBy)
	})

	t.Run("ExecutiveSubmissionAutoApproved", func(t *testing.T) {
		w := submitAchievement(router, env.execToken, env.club.ID, "National Champions", time.Now().UTC())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Data achievement.Achievement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, achievement.StatusApproved, resp.Data.Status)
		require.NotNil(t, resp.Data.ReviewedBy)
		assert.Equal(t, env.exec.ID, *resp.Data.ReviewedBy)
	})

	t.Run("OutsiderCannotSubmit", func(t *testing.T) {
		outsider := testutil.CreateUser(t, env.db, "Outsider", "out@example.com", "secret123", user.RoleStudent)
		w := submitAchievement(router, testutil.IssueToken(t, outsider, user.RoleStudent), env.club.ID, "Fake Trophy", time.Now().UTC())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("PublicListShowsOnlyApprovedNewestFirst", func(t *testing.T) {
		older := &achievement.Achievement{
			ClubID:          env.club.ID,
			Title:           "Old Victory",
			AchievementDate: time.Now().UTC().Add(-365 * 24 * time.Hour),
			Status:          achievement.StatusApproved,
			SubmittedBy:     env.exec.ID,
		}
		require.NoError(t, env.repo.CreateAchievement(older))

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/Achievements/club/%d", env.club.ID), nil)
		w := serve(router, req, httptest.NewRecorder())
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []achievement.Achievement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "National Champions", resp.Data[0].Title)
		assert.Equal(t, "Old Victory", resp.Data[1].Title)
		for _, a := range resp.Data {
			assert.Equal(t, achievement.StatusApproved, a.Status)
		}
	})

	t.Run("ExecutiveRejectsPendingSubmission", func(t *testing.T) {
		pending, err := env.repo.GetPendingByClub(env.club.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		body, _ := json.Marshal(gin.H{"status": achievement.StatusRejected})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/Achievements/%d/review", pending[0].ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, env.execToken)
		w := serve(router, req, httptest.NewRecorder())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		stored, err := env.repo.GetAchievementByID(pending[0].ID)
		require.NoError(t, err)
		assert.Equal(t, achievement.StatusRejected, stored.Status)
	})

	t.Run("ReviewedAchievementCannotBeReviewedAgain", func(t *testing.T) {
		items, err := env.repo.GetAllByClub(env.club.ID)
		require.NoError(t, err)
		var rejected *achievement.Achievement
		for i := range items {
			if items[i].Status == achievement.StatusRejected {
				rejected = &items[i]
			}
		}
		require.NotNil(t, rejected)

		body, _ := json.Marshal(gin.H{"status": achievement.StatusApproved})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/Achievements/%d/review", rejected.ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, env.execToken)
		w := serve(router, req, httptest.NewRecorder())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MemberCannotDeleteOwnSubmission", func(t *testing.T) {
		w := submitAchievement(router, env.memberToken, env.club.ID, "Self Service", time.Now().UTC())
		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data achievement.Achievement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/Achievements/%d", resp.Data.ID), nil)
		testutil.Authorize(req, env.memberToken)
		w2 := serve(router, req, httptest.NewRecorder())
		assert.Equal(t, http.StatusForbidden, w2.Code)

		stored, err := env.repo.GetAchievementByID(resp.Data.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
	})

	t.Run("ExecutiveDeletesAchievement", func(t *testing.T) {
		w := submitAchievement(router, env.memberToken, env.club.ID, "Short Lived", time.Now().UTC())
		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data achievement.Achievement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/Achievements/%d", resp.Data.ID), nil)
		testutil.Authorize(req, env.execToken)
		w2 := serve(router, req, httptest.NewRecorder())
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

		stored, err := env.repo.GetAchievementByID(resp.Data.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("MemberCannotReview", func(t *testing.T) {
		w := submitAchievement(router, env.memberToken, env.club.ID, "Another Entry", time.Now().UTC())
		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data achievement.Achievement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		body, _ := json.Marshal(gin.H{"status": achievement.StatusApproved})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/Achievements/%d/review", resp.Data.ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, env.memberToken)
		w2 := serve(router, req, httptest.NewRecorder())
		assert.Equal(t, http.StatusForbidden, w2.Code)
	})
}
