package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"

	"gorm.io/gorm"
)

// ReviewForm carries the raw form input; Rating is parsed by the service.
type ReviewForm struct {
	AuthorName string
	Rating     string
	Title      string
	Content    string
}

type ReviewService struct {
	notifyService NotifyService
}

func ParseRating(raw string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || rating < 1 || rating > 5 {
		return 0, ErrRatingOutOfRange
	}
	return rating, nil
}

// SubmitReview stores a review. It is listed publicly right away whatever its
// moderation status.
func (s *ReviewService) SubmitReview(ctx context.Context, form ReviewForm) (*model.Review, error) {
	form.AuthorName = strings.TrimSpace(form.AuthorName)
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)
	if form.AuthorName == "" || form.Title == "" || form.Content == "" || strings.TrimSpace(form.Rating) == "" {
		return nil, ErrRequiredFields
	}
	rating, err := ParseRating(form.Rating)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		AuthorName: strings.ToUpper(form.AuthorName),
		Rating:     rating,
		Title:      form.Title,
		Content:    form.Content,
		Status:     model.Pending,
	}
	var event Event
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		event = reviewEvent(review)
		_, err := s.notifyService.Record(tx, event)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("review #%d received from %s", review.Id, review.AuthorName)

	s.notifyService.Dispatch(ctx, event)
	return review, nil
}

func (s *ReviewService) GetReviews() ([]model.Review, error) {
	var list []model.Review
	err := database.GetDB().Order("created_at desc, id desc").Find(&list).Error
	return list, err
}

func (s *ReviewService) GetReview(id int) (*model.Review, error) {
	review := &model.Review{}
	err := database.GetDB().First(review, id).Error
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Approve(id int) error {
	return s.decide(id, model.Approved)
}

func (s *ReviewService) Reject(id int) error {
	return s.decide(id, model.Rejected)
}

// decide sets the moderation status. Unlike documents, a review can be
// moderated again after an earlier decision.
func (s *ReviewService) decide(id int, to model.Decision) error {
	review, err := s.GetReview(id)
	if err != nil {
		return err
	}
	return database.GetDB().Model(review).Update("status", to).Error
}
