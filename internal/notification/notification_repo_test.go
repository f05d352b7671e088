package notification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/notification"
	"github.com/anweshon/anweshon-api/internal/testutil"
)

func TestMarkAsRead(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := notification.NewNotificationRepository(db)

	const reader uint = 7
	readerID := reader
	own := notification.Notification{UserID: &readerID, Title: "Welcome", Type: "Info"}
	require.NoError(t, repo.CreateNotification(&own))

	broadcast := notification.Notification{Title: "New Event", Type: "NewEvent"}
	require.NoError(t, repo.CreateNotification(&broadcast))

	t.Run("OwnNotification", func(t *testing.T) {
		require.NoError(t, repo.MarkAsRead(own.ID, reader))

		var stored notification.Notification
		require.NoError(t, db.First(&stored, own.ID).Error)
		assert.True(t, stored.IsRead)
	})

	t.Run("SomeoneElsesNotification", func(t *testing.T) {
		err := repo.MarkAsRead(own.ID, reader+1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("BroadcastStaysUnread", func(t *testing.T) {
		// Broadcast rows are shared, so one reader cannot flip the flag
		// for everyone.
		err := repo.MarkAsRead(broadcast.ID, reader)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		var stored notification.Notification
		require.NoError(t, db.First(&stored, broadcast.ID).Error)
		assert.False(t, stored.IsRead)
	})
}
