package service

import (
	"context"
	"testing"
	"time"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackCreatesOneNotification(t *testing.T) {
	ch := setup(t)
	s := &FeedbackService{}

	feedback, err := s.SubmitFeedback(context.Background(), FeedbackForm{
		FullName: "Сидоров Пётр",
		Email:    "  ",
		Phone:    "+7 900 000-00-00",
		Message:  "Прошу принять заявление",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FeedbackNew, feedback.Status)
	assert.Nil(t, feedback.Email)
	require.NotNil(t, feedback.Phone)

	var notes []model.Notification
	require.NoError(t, database.GetDB().Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, "Новое заявление #1", notes[0].Title)
	assert.Equal(t, "Поступило заявление от Сидоров Пётр", notes[0].Message)
	require.NotNil(t, notes[0].FeedbackId)
	assert.Equal(t, feedback.Id, *notes[0].FeedbackId)
	assert.False(t, notes[0].IsRead)

	sent := ch.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Прошу принять заявление", sent[0].Body)
}

func TestSubmitFeedbackRequiresNameAndMessage(t *testing.T) {
	setup(t)
	s := &FeedbackService{}

	_, err := s.SubmitFeedback(context.Background(), FeedbackForm{FullName: "Иван"})
	assert.ErrorIs(t, err, ErrRequiredFields)
	assert.Zero(t, countRows(t, &model.Feedback{}))
	assert.Zero(t, countRows(t, &model.Notification{}))
}

func TestSubmitFeedbackSurvivesFailingChannels(t *testing.T) {
	setup(t)
	failing := &fakeChannel{name: "failing", enabled: true, err: errBoom}
	exploding := &fakeChannel{name: "exploding", enabled: true, panics: true}
	healthy := &fakeChannel{name: "healthy", enabled: true}
	SetChannels(failing, exploding, healthy)

	_, err := (&FeedbackService{}).SubmitFeedback(context.Background(), FeedbackForm{FullName: "А", Message: "Б"})
	require.NoError(t, err)

	assert.Len(t, healthy.sent(), 1)
	assert.EqualValues(t, 1, countRows(t, &model.Notification{}))
}

func TestUpdateFeedbackStatus(t *testing.T) {
	setup(t)
	s := &FeedbackService{}
	feedback, err := s.SubmitFeedback(context.Background(), FeedbackForm{FullName: "А", Message: "Б"})
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(feedback.Id, model.FeedbackInProgress))
	got, err := s.GetFeedback(feedback.Id)
	require.NoError(t, err)
	assert.Equal(t, model.FeedbackInProgress, got.Status)

	assert.ErrorIs(t, s.UpdateStatus(feedback.Id, "archived"), ErrInvalidStatus)
	assert.True(t, database.IsNotFound(s.UpdateStatus(999, model.FeedbackDone)))
}

func TestGetStaleFeedback(t *testing.T) {
	setup(t)
	s := &FeedbackService{}
	old, err := s.SubmitFeedback(context.Background(), FeedbackForm{FullName: "Старое", Message: "x"})
	require.NoError(t, err)
	_, err = s.SubmitFeedback(context.Background(), FeedbackForm{FullName: "Новое", Message: "y"})
	require.NoError(t, err)
	require.NoError(t, database.GetDB().Model(old).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	stale, err := s.GetStale(24 * time.Hour)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.Id, stale[0].Id)
}

func TestRemindStaleSendsOneSummaryAndKeepsInbox(t *testing.T) {
	ch := setup(t)
	s := &FeedbackService{}
	ctx := context.Background()

	n, err := s.RemindStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	for _, name := range []string{"Первый", "Второй"} {
		f, err := s.SubmitFeedback(ctx, FeedbackForm{FullName: name, Message: "x"})
		require.NoError(t, err)
		require.NoError(t, database.GetDB().Model(f).Update("created_at", time.Now().Add(-30*time.Hour)).Error)
	}
	before := countRows(t, &model.Notification{})
	sentBefore := len(ch.sent())

	n, err = s.RemindStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sent := ch.sent()
	require.Len(t, sent, sentBefore+1)
	reminder := sent[len(sent)-1]
	assert.Len(t, reminder.Fields, 2)
	assert.Contains(t, reminder.Subject, "(2)")
	assert.Equal(t, before, countRows(t, &model.Notification{}))
}
