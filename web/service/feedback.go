package service

import (
	"context"
	"strings"
	"time"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/common"

	"gorm.io/gorm"
)

type FeedbackForm struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

type FeedbackService struct {
	notifyService NotifyService
}

// SubmitFeedback stores the request together with its inbox entry and then
// notifies the external channels.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, form FeedbackForm) (*model.Feedback, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Message = strings.TrimSpace(form.Message)
	if form.FullName == "" || form.Message == "" {
		return nil, ErrRequiredFields
	}

	feedback := &model.Feedback{
		FullName: form.FullName,
		Email:    common.NilIfEmpty(form.Email),
		Phone:    common.NilIfEmpty(form.Phone),
		Message:  form.Message,
		Status:   model.FeedbackNew,
	}
	var event Event
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}
		event = feedbackEvent(feedback)
		_, err := s.notifyService.Record(tx, event)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("feedback #%d received from %s", feedback.Id, feedback.FullName)

	s.notifyService.Dispatch(ctx, event)
	return feedback, nil
}

func (s *FeedbackService) GetFeedbacks() ([]model.Feedback, error) {
	var list []model.Feedback
	err := database.GetDB().Order("created_at desc, id desc").Find(&list).Error
	return list, err
}

func (s *FeedbackService) GetFeedback(id int) (*model.Feedback, error) {
	feedback := &model.Feedback{}
	err := database.GetDB().First(feedback, id).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *FeedbackService) UpdateStatus(id int, status model.FeedbackStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	feedback, err := s.GetFeedback(id)
	if err != nil {
		return err
	}
	return database.GetDB().Model(feedback).Update("status", status).Error
}

func (s *FeedbackService) CountByStatus(status model.FeedbackStatus) (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.Feedback{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// GetStale returns the feedback still in status new after the given age, oldest first.
func (s *FeedbackService) GetStale(age time.Duration) ([]model.Feedback, error) {
	var list []model.Feedback
	err := database.GetDB().
		Where("status = ? AND created_at < ?", model.FeedbackNew, time.Now().Add(-age)).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

// RemindStale sends one summary of the feedback left in status new for longer
// than age to the external channels. The inbox is not touched. It returns the
// number of entries reported.
func (s *FeedbackService) RemindStale(ctx context.Context, age time.Duration) (int, error) {
	stale, err := s.GetStale(age)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}
	s.notifyService.Dispatch(ctx, staleFeedbackEvent(stale))
	return len(stale), nil
}
