package message

import "gorm.io/gorm"

// ClubMessage is an inbound message from a member to a club's administration,
// with an optional admin response and a read flag.
type ClubMessage struct {
	gorm.Model
	ClubID        uint   `gorm:"index;not null" json:"clubId"`
	SenderID      uint   `gorm:"index;not null" json:"senderId"`
	Subject       string `json:"subject"`
	Body          string `gorm:"type:text;not null" json:"body"`
	AdminResponse string `gorm:"type:text" json:"adminResponse"`
	IsRead        bool   `gorm:"default:false" json:"isRead"`
	RespondedBy   *uint  `json:"respondedBy"`
}
