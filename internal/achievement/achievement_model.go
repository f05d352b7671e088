package achievement

import (
	"time"

	"gorm.io/gorm"
)

// Moderation states for a submitted achievement.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Achievement struct {
	gorm.Model
	ClubID          uint      `gorm:"index;not null" json:"clubId"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	AchievementDate time.Time `gorm:"not null" json:"achievementDate"`
	ImageUrl        string    `json:"imageUrl"`
	Status          string    `gorm:"not null;default:Pending;index" json:"status"`
	SubmittedBy     uint      `gorm:"not null" json:"submittedBy"`
	ReviewedBy      *uint     `json:"reviewedBy"`
}
