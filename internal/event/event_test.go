package event_test

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

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/event"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/internal/testutil"
	"github.com/anweshon/anweshon-api/internal/user"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to event.EventStatus
		want     bool
	}{
		{event.StatusDraft, event.StatusPublished, true},
		{event.StatusDraft, event.StatusDeleted, true},
		{event.StatusPublished, event.StatusDraft, true},
		{event.StatusPublished, event.StatusDeleted, true},
		{event.StatusDeleted, event.StatusPublished, false},
		{event.StatusDeleted, event.StatusDraft, false},
		{event.StatusPublished, event.StatusPublished, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, event.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func setupEventRouter(t *testing.T) (*gin.Engine, *testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	repo := event.NewEventRepository(db)
	clubRepo := club.NewClubRepository(db)
	authorizer := club.NewAuthorizer(clubRepo)
	notificationRepo := notification.NewNotificationRepository(db)
	notifier := &testutil.RecordingNotifier{}

	ec := event.NewEventController(repo, clubRepo, authorizer, notificationRepo, notifier)
	rc := event.NewRegistrationController(repo, clubRepo, notifier)

	router := gin.New()
	event.RegisterEventRoutes(router, ec, rc, middleware.AuthMiddleware(testutil.TestJWTSecret, db))

	admin := testutil.CreateUser(t, db, "Alice Admin", "alice@example.com", "secret123", user.RoleClubAdmin)
	c := &club.Club{Name: "Photography Club"}
	require.NoError(t, clubRepo.CreateClub(c))
	require.NoError(t, clubRepo.AddMembership(&club.Membership{ClubID: c.ID, UserID: admin.ID, RoleInClub: club.RoleInClubAdmin}))
	require.NoError(t, clubRepo.AddExecutive(&club.ClubExecutive{ClubID: c.ID, UserID: &admin.ID, Name: "Alice Admin", Position: "Founder"}))

	return router, &testEnv{
		db:               db,
		repo:             repo,
		clubRepo:         clubRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		club:             c,
		admin:            admin,
		adminToken:       testutil.IssueToken(t, admin, user.RoleClubAdmin),
	}
}

type testEnv struct {
	db               *gorm.DB
	repo             event.EventRepository
	clubRepo         club.ClubRepository
	notificationRepo notification.NotificationRepository
	notifier         *testutil.RecordingNotifier
	club             *club.Club
	admin            *user.User
	adminToken       string
}

func TestEventLifecycle(t *testing.T) {
	router, env := setupEventRouter(t)

	var eventID uint

	t.Run("CreatePublishedEventBroadcasts", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"clubId":        env.club.ID,
			"title":         "Photo Walk",
			"startDateTime": time.Now().UTC().Add(48 * time.Hour),
			"capacity":      2,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/Events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, env.adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.Len(t, env.notifier.Broadcasts, 1)

		// The broadcast also leaves a persisted notification row.
		items, err := env.notificationRepo.GetNotificationsForUser(env.admin.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "NewEvent", items[0].Type)
		assert.Nil(t, items[0].UserID)

		events, err := env.repo.GetEventsByClub(env.club.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		eventID = events[0].ID
	})

	t.Run("DraftEventDoesNotBroadcast", func(t *testing.T) {
		before := len(env.notifier.Broadcasts)
		body, _ := json.Marshal(gin.H{
			"clubId":        env.club.ID,
			"title":         "Secret Workshop",
			"startDateTime": time.Now().UTC().Add(72 * time.Hour),
			"status":        "Draft",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/Events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, env.adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Len(t, env.notifier.Broadcasts, before)
	})

	t.Run("UpcomingExcludesDraftsAndPast", func(t *testing.T) {
		past := &event.Event{
			ClubID:        env.club.ID,
			Title:         "Old Exhibition",
			StartDateTime: time.Now().UTC().Add(-48 * time.Hour),
			Status:        event.StatusPublished,
		}
		require.NoError(t, env.repo.CreateEvent(past))

		req := httptest.NewRequest(http.MethodGet, "/api/Events/upcoming", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []event.Event `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Photo Walk", resp.Data[0].Title)
	})

	t.Run("PastViewIsComputedFromStartTime", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/Events/club/%d/past", env.club.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []event.Event `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Old Exhibition", resp.Data[0].Title)
	})

	t.Run("InvalidStatusTransitionRejected", func(t *testing.T) {
		// Soft-delete first, then try to resurrect.
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/Events/%d", eventID), nil)
		testutil.Authorize(req, env.adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := env.repo.GetEventByID(eventID)
		require.NoError(t, err)
		assert.Equal(t, event.StatusDeleted, stored.Status)
		assert.True(t, stored.IsArchived)

		body, _ := json.Marshal(gin.H{"status": "Published"})
		req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/Events/%d", eventID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, env.adminToken)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// Deleted events vanish from the API.
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEventRegistration(t *testing.T) {
	router, env := setupEventRouter(t)

	ev := &event.Event{
		ClubID:        env.club.ID,
		Title:         "Annual Contest",
		StartDateTime: time.Now().UTC().Add(24 * time.Hour),
		Status:        event.StatusPublished,
		Capacity:      1,
	}
	require.NoError(t, env.repo.CreateEvent(ev))

	student := testutil.CreateUser(t, env.db, "Bob", "bob@example.com", "secret123", user.RoleStudent)
	studentToken := testutil.IssueToken(t, student, user.RoleStudent)

	register := func(tok string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{"eventId": ev.ID})
		req := httptest.NewRequest(http.MethodPost, "/api/EventRegistrations", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("RegisterNotifiesExecutives", func(t *testing.T) {
		env.notifier.SentTo = nil
		w := register(studentToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, []uint{env.admin.ID}, env.notifier.SentTo)
	})

	t.Run("DuplicateRegistrationRejected", func(t *testing.T) {
		w := register(studentToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CapacityEnforced", func(t *testing.T) {
		other := testutil.CreateUser(t, env.db, "Carol", "carol@example.com", "secret123", user.RoleStudent)
		w := register(testutil.IssueToken(t, other, user.RoleStudent))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MyRegistrationsListsEvent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/EventRegistrations/my", nil)
		testutil.Authorize(req, studentToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []event.EventRegistration `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, ev.ID, resp.Data[0].EventID)
	})

	t.Run("CancelFreesSeat", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/EventRegistrations/my/%d", ev.ID), nil)
		testutil.Authorize(req, studentToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		count, err := env.repo.CountRegistrations(ev.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("CancelTwiceIsNotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/EventRegistrations/my/%d", ev.ID), nil)
		testutil.Authorize(req, studentToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
