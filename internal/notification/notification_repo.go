package notification

import "gorm.io/gorm"

type NotificationRepository interface {
	CreateNotification(n *Notification) error
	GetNotificationsForUser(userID uint) ([]Notification, error)
	MarkAsRead(id, userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(n *Notification) error {
	return r.db.Create(n).Error
}

// GetNotificationsForUser returns the user's own notifications plus all
// broadcasts, newest first.
func (r *notificationRepository) GetNotificationsForUser(userID uint) ([]Notification, error) {
	var items []Notification
	err := r.db.
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at desc").
		Limit(100).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// MarkAsRead only touches the caller's own rows. Broadcast rows share a
// single is_read column, so flipping it for one reader would hide the
// notification from everyone else.
func (r *notificationRepository) MarkAsRead(id, userID uint) error {
	result := r.db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
