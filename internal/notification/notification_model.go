package notification

import "gorm.io/gorm"

// Notification is a persisted announcement. A nil UserID means the row is a
// broadcast visible to every user; otherwise it belongs to one user.
type Notification struct {
	gorm.Model
	UserID  *uint  `gorm:"index" json:"userId"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `gorm:"not null" json:"type"`
	IsRead  bool   `gorm:"default:false" json:"isRead"`
}
