package club

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleInClubAdmin  = "Admin"
	RoleInClubMember = "Member"

	PositionFounder = "Founder"
)

// Club is a registered campus club with its branding and contact details.
type Club struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	ShortCode   string `json:"shortCode"`
	Description string `json:"description"`

	LogoUrl        string `json:"logoUrl"`
	BannerUrl      string `json:"bannerUrl"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`

	ContactEmail string `json:"contactEmail"`
	WebsiteUrl   string `json:"websiteUrl"`
	FacebookUrl  string `json:"facebookUrl"`
	InstagramUrl string `json:"instagramUrl"`

	Tagline         string `json:"tagline"`
	FoundedYear     *int   `json:"foundedYear"`
	MeetingLocation string `json:"meetingLocation"`
}

// Membership makes a user a general member of a club. At most one row may
// exist per (club, user) pair.
type Membership struct {
	gorm.Model
	ClubID     uint      `gorm:"uniqueIndex:idx_club_user;not null" json:"clubId"`
	UserID     uint      `gorm:"uniqueIndex:idx_club_user;not null" json:"userId"`
	RoleInClub string    `json:"roleInClub"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// ClubExecutive is a named officer of a club. UserID is nullable so clubs can
// list officers who have no account on the platform.
type ClubExecutive struct {
	gorm.Model
	ClubID       uint   `gorm:"index;not null" json:"clubId"`
	UserID       *uint  `gorm:"index" json:"userId"`
	Name         string `gorm:"not null" json:"name"`
	Position     string `gorm:"not null" json:"position"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PhotoUrl     string `json:"photoUrl"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}
