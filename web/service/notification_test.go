package service

import (
	"context"
	"testing"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAllRead(t *testing.T) {
	setup(t)
	s := &NotificationService{}
	feedback := &FeedbackService{}
	for i := 0; i < 3; i++ {
		_, err := feedback.SubmitFeedback(context.Background(), FeedbackForm{FullName: "А", Message: "Б"})
		require.NoError(t, err)
	}

	unread, err := s.UnreadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	require.NoError(t, s.MarkAllRead())
	unread, err = s.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, unread)

	var notes []model.Notification
	require.NoError(t, database.GetDB().Find(&notes).Error)
	for _, n := range notes {
		assert.True(t, n.IsRead)
	}

	_, err = feedback.SubmitFeedback(context.Background(), FeedbackForm{FullName: "В", Message: "Г"})
	require.NoError(t, err)
	unread, err = s.UnreadCount()
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestMarkRead(t *testing.T) {
	setup(t)
	s := &NotificationService{}
	_, err := (&FeedbackService{}).SubmitFeedback(context.Background(), FeedbackForm{FullName: "А", Message: "Б"})
	require.NoError(t, err)

	list, err := s.GetNotifications(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, s.MarkRead(list[0].Id))

	unread, err := s.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, unread)
	assert.True(t, database.IsNotFound(s.MarkRead(999)))
}
