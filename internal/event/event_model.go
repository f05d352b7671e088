package event

import (
	"time"

	"gorm.io/gorm"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusDraft     EventStatus = "Draft"
	StatusPublished EventStatus = "Published"
	StatusDeleted   EventStatus = "Deleted"
)

// validTransitions holds the allowed status moves. Deleted is terminal.
var validTransitions = map[EventStatus][]EventStatus{
	StatusDraft:     {StatusPublished, StatusDeleted},
	StatusPublished: {StatusDraft, StatusDeleted},
	StatusDeleted:   {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to EventStatus) bool {
	if from == to {
		return true
	}
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Event struct {
	gorm.Model
	ClubID           uint        `gorm:"index;not null" json:"clubId"`
	Title            string      `gorm:"not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	StartDateTime    time.Time   `gorm:"not null;index" json:"startDateTime"`
	EndDateTime      *time.Time  `json:"endDateTime"`
	Location         string      `json:"location"`
	Capacity         int         `gorm:"default:0" json:"capacity"`
	RegistrationFee  float64     `gorm:"default:0" json:"registrationFee"`
	BannerUrl        string      `json:"bannerUrl"`
	Status           EventStatus `gorm:"not null;default:Published;index" json:"status"`
	IsArchived       bool        `gorm:"default:false" json:"isArchived"`
	ShowInPastEvents bool        `gorm:"default:true" json:"showInPastEvents"`
	CreatedBy        uint        `json:"createdBy"`
}

// EventRegistration links a user to an event, at most once per pair.
type EventRegistration struct {
	gorm.Model
	EventID      uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"eventId"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"userId"`
	RegisteredAt time.Time `gorm:"not null" json:"registeredAt"`
	Event        *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
