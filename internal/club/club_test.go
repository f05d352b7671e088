package club_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/middleware"
	"github.com/anweshon/anweshon-api/internal/testutil"
	"github.com/anweshon/anweshon-api/internal/user"
)

func TestClubLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	repo := club.NewClubRepository(db)
	authorizer := club.NewAuthorizer(repo)
	notifier := &testutil.RecordingNotifier{}
	controller := club.NewClubController(repo, authorizer, notifier)

	router := gin.New()
	club.RegisterClubRoutes(router, controller, middleware.AuthMiddleware(testutil.TestJWTSecret, db))

	admin := testutil.CreateUser(t, db, "Alice Admin", "alice@example.com", "secret123", user.RoleClubAdmin)
	adminToken := testutil.IssueToken(t, admin, user.RoleClubAdmin)

	member := testutil.CreateUser(t, db, "Bob Member", "bob@example.com", "secret123", user.RoleStudent)
	memberToken := testutil.IssueToken(t, member, user.RoleStudent)

	var clubID uint

	t.Run("CreateClubSeatsFounder", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"name":        "Robotics Society",
			"description": "Builds robots",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/Clubs", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		created, err := repo.GetClubByName("Robotics Society")
		require.NoError(t, err)
		require.NotNil(t, created)
		clubID = created.ID

		// Exactly one membership and one executive row for the creator.
		memberships, err := repo.GetMemberships(clubID)
		require.NoError(t, err)
		require.Len(t, memberships, 1)
		assert.Equal(t, admin.ID, memberships[0].UserID)
		assert.Equal(t, club.RoleInClubAdmin, memberships[0].RoleInClub)

		execs, err := repo.GetExecutives(clubID)
		require.NoError(t, err)
		require.Len(t, execs, 1)
		require.NotNil(t, execs[0].UserID)
		assert.Equal(t, admin.ID, *execs[0].UserID)
		assert.Equal(t, club.PositionFounder, execs[0].Position)
		assert.Equal(t, "Alice Admin", execs[0].Name)
	})

	t.Run("CreateClubRejectsStudentRole", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"name": "Shadow Club"})
		req := httptest.NewRequest(http.MethodPost, "/api/Clubs", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, memberToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("CreateClubRejectsDuplicateName", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{"name": "Robotics Society"})
		req := httptest.NewRequest(http.MethodPost, "/api/Clubs", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("JoinNotifiesDistinctExecutives", func(t *testing.T) {
		// Two executive rows linked to the same account, plus the
		// founder and one officer without an account.
		execUser := testutil.CreateUser(t, db, "Carol Exec", "carol@example.com", "secret123", user.RoleStudent)
		err := repo.ReplaceExecutives(clubID, []club.ClubExecutive{
			{Name: "Alice Admin", Position: "Founder", UserID: &admin.ID},
			{Name: "Carol Exec", Position: "President", UserID: &execUser.ID},
			{Name: "Carol Exec", Position: "Treasurer", UserID: &execUser.ID},
			{Name: "Ghost Officer", Position: "Advisor"},
		})
		require.NoError(t, err)

		notifier.SentTo = nil
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/Clubs/%d/join", clubID), nil)
		testutil.Authorize(req, memberToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		// One send per distinct linked user id, never per executive row.
		assert.ElementsMatch(t, []uint{admin.ID, execUser.ID}, notifier.SentTo)
	})

	t.Run("SecondJoinRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/Clubs/%d/join", clubID), nil)
		testutil.Authorize(req, memberToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ExecutiveUpsertRoundTrip", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"executives": []gin.H{
				{"name": "Dana", "position": "President", "displayOrder": 1},
				{"name": "   ", "position": "Secretary"},
				{"name": "Eve", "position": "", "email": "eve@example.com"},
				{"name": "Frank", "position": "Treasurer", "displayOrder": 2},
			},
		})
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/Clubs/%d/executives", clubID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		testutil.Authorize(req, adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		execs, err := repo.GetExecutives(clubID)
		require.NoError(t, err)
		// Blank name or position entries are dropped; the rest replace
		// the previous set wholesale.
		require.Len(t, execs, 2)
		assert.Equal(t, "Dana", execs[0].Name)
		assert.Equal(t, "Frank", execs[1].Name)
	})

	t.Run("LeaveRemovesMembership", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/Clubs/%d/leave", clubID), nil)
		testutil.Authorize(req, memberToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		isMember, err := repo.IsMember(clubID, member.ID)
		require.NoError(t, err)
		assert.False(t, isMember)
	})

	t.Run("LeaveWithoutMembershipIsNotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/Clubs/%d/leave", clubID), nil)
		testutil.Authorize(req, memberToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorizerLevels(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := club.NewClubRepository(db)
	authorizer := club.NewAuthorizer(repo)

	c := &club.Club{Name: "Debate Club"}
	require.NoError(t, repo.CreateClub(c))

	adminUser := testutil.CreateUser(t, db, "Admin", "admin@example.com", "secret123")
	execUser := testutil.CreateUser(t, db, "Exec", "exec@example.com", "secret123")
	memberUser := testutil.CreateUser(t, db, "Member", "member@example.com", "secret123")
	outsider := testutil.CreateUser(t, db, "Outsider", "out@example.com", "secret123")

	require.NoError(t, repo.AddMembership(&club.Membership{ClubID: c.ID, UserID: adminUser.ID, RoleInClub: club.RoleInClubAdmin}))
	require.NoError(t, repo.AddMembership(&club.Membership{ClubID: c.ID, UserID: memberUser.ID, RoleInClub: club.RoleInClubMember}))
	require.NoError(t, repo.AddExecutive(&club.ClubExecutive{ClubID: c.ID, UserID: &execUser.ID, Name: "Exec", Position: "President"}))

	cases := []struct {
		name    string
		actorID uint
		roles   []string
		level   club.AccessLevel
		want    bool
	}{
		{"ClubAdminPassesAdminLevel", adminUser.ID, nil, club.LevelClubAdmin, true},
		{"ClubAdminPassesExecutiveLevel", adminUser.ID, nil, club.LevelExecutive, true},
		{"ExecutivePassesExecutiveLevel", execUser.ID, nil, club.LevelExecutive, true},
		{"ExecutiveFailsAdminLevel", execUser.ID, nil, club.LevelClubAdmin, false},
		{"ExecutivePassesMemberLevel", execUser.ID, nil, club.LevelMember, true},
		{"MemberPassesMemberLevel", memberUser.ID, nil, club.LevelMember, true},
		{"MemberFailsExecutiveLevel", memberUser.ID, nil, club.LevelExecutive, false},
		{"OutsiderFailsMemberLevel", outsider.ID, nil, club.LevelMember, false},
		{"PlatformAdminPassesEverything", outsider.ID, []string{"Admin"}, club.LevelClubAdmin, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authorizer.Authorize(tc.actorID, tc.roles, c.ID, tc.level)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
