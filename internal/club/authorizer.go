package club

import (
	"strings"

	"github.com/anweshon/anweshon-api/internal/user"
)

// AccessLevel describes how much authority an action needs within a club.
type AccessLevel int

const (
	// LevelMember requires an active membership in the club.
	LevelMember AccessLevel = iota
	// LevelExecutive requires an executive seat or higher in the club.
	LevelExecutive
	// LevelClubAdmin requires the club's Admin membership role or a
	// platform-wide admin role.
	LevelClubAdmin
)

func (l AccessLevel) String() string {
	switch l {
	case LevelMember:
		return "Member"
	case LevelExecutive:
		return "Executive"
	case LevelClubAdmin:
		return "ClubAdmin"
	default:
		return "Unknown"
	}
}

// Authorizer is the single decision point for club-scoped permissions.
// Every controller asks it instead of re-deriving role checks inline.
type Authorizer struct {
	repo ClubRepository
}

func NewAuthorizer(repo ClubRepository) *Authorizer {
	return &Authorizer{repo: repo}
}

// Authorize reports whether the actor may perform an action of the given
// level in the club. Platform admins pass every check; a ClubAdmin passes
// executive and member checks; an executive passes member checks.
func (a *Authorizer) Authorize(actorID uint, actorRoles []string, clubID uint, level AccessLevel) (bool, error) {
	for _, role := range actorRoles {
		if strings.EqualFold(role, user.RoleAdmin) {
			return true, nil
		}
	}

	membership, err := a.repo.GetMembership(clubID, actorID)
	if err != nil {
		return false, err
	}

	isClubAdmin := membership != nil && strings.EqualFold(membership.RoleInClub, RoleInClubAdmin)
	if isClubAdmin {
		return true, nil
	}

	switch level {
	case LevelClubAdmin:
		return false, nil
	case LevelExecutive:
		return a.repo.IsExecutive(clubID, actorID)
	case LevelMember:
		if membership != nil {
			return true, nil
		}
		return a.repo.IsExecutive(clubID, actorID)
	default:
		return false, nil
	}
}
