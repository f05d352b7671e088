package collaboration

import (
	"time"

	"gorm.io/gorm"
)

// Status values for a collaboration request.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// ClubCollaboration is a directed request from one club to another,
// optionally proposing a joint event.
type ClubCollaboration struct {
	gorm.Model
	RequesterClubID    uint       `gorm:"index;not null" json:"requesterClubId"`
	TargetClubID       uint       `gorm:"index;not null" json:"targetClubId"`
	Message            string     `gorm:"type:text;not null" json:"message"`
	ProposedEventTitle string     `json:"proposedEventTitle"`
	ProposedEventDate  *time.Time `json:"proposedEventDate"`
	Status             string     `gorm:"not null;default:Pending;index" json:"status"`
	Response           string     `gorm:"type:text" json:"response"`
	RequestedBy        uint       `gorm:"not null" json:"requestedBy"`
	RespondedBy        *uint      `json:"respondedBy"`
}
