// Package testutil provides shared helpers for package tests: an isolated
// in-memory database and token-issuing shortcuts.
package testutil

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anweshon/anweshon-api/internal/achievement"
	"github.com/anweshon/anweshon-api/internal/auth"
	"github.com/anweshon/anweshon-api/internal/club"
	"github.com/anweshon/anweshon-api/internal/collaboration"
	"github.com/anweshon/anweshon-api/internal/event"
	"github.com/anweshon/anweshon-api/internal/message"
	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/internal/post"
	"github.com/anweshon/anweshon-api/internal/user"
	"github.com/anweshon/anweshon-api/pkg/token"
	hashutil "github.com/anweshon/anweshon-api/utils"
)

// TestJWTSecret is the signing key used by all tests.
const TestJWTSecret = "test-secret-key-for-testing"

// OpenTestDB opens an isolated in-memory database with the full schema.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{},
		&user.Role{},
		&user.UserRole{},
		&auth.OtpVerification{},
		&club.Club{},
		&club.Membership{},
		&club.ClubExecutive{},
		&event.Event{},
		&event.EventRegistration{},
		&achievement.Achievement{},
		&post.ClubPost{},
		&post.ClubPostImage{},
		&message.ClubMessage{},
		&collaboration.ClubCollaboration{},
		&notification.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given roles and a bcrypt password.
func CreateUser(t *testing.T, db *gorm.DB, fullName, email, password string, roles ...string) *user.User {
	t.Helper()

	hashed, err := hashutil.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	u := &user.User{
		FullName:   fullName,
		Email:      email,
		Password:   hashed,
		StudentID:  "2103001",
		Department: "CSE",
		Phone:      "01712345678",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	repo := user.NewUserRepository(db)
	for _, role := range roles {
		if err := repo.AssignRoleToUser(u.ID, role); err != nil {
			t.Fatalf("failed to assign role %s: %v", role, err)
		}
	}
	return u
}

// IssueToken signs a JWT for the user with the test secret.
func IssueToken(t *testing.T, u *user.User, roles ...string) string {
	t.Helper()

	signed, err := token.GenerateJWT(u.ID, u.Email, u.FullName, roles, TestJWTSecret, "anweshon-test", 1)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return signed
}

// Authorize sets the bearer header on a test request.
func Authorize(req *http.Request, tok string) {
	req.Header.Set("Authorization", "Bearer "+tok)
}

// RecordingNotifier captures fan-out calls for assertions.
type RecordingNotifier struct {
	SentTo     []uint
	Broadcasts []interface{}
	Payloads   []interface{}
}

func (n *RecordingNotifier) SendToUser(userID uint, payload interface{}) {
	n.SentTo = append(n.SentTo, userID)
	n.Payloads = append(n.Payloads, payload)
}

func (n *RecordingNotifier) SendToUsers(userIDs []uint, payload interface{}) {
	seen := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		n.SendToUser(id, payload)
	}
}

func (n *RecordingNotifier) Broadcast(payload interface{}) {
	n.Broadcasts = append(n.Broadcasts, payload)
}
