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

type DocumentForm struct {
	Title        string
	Content      string
	DocumentType string
	FileURL      string
}

// DocumentTypes lists the kinds offered by the submission form.
var DocumentTypes = []string{
	"Рапорт",
	"Постановление",
	"Протокол",
	"Запрос",
	"Справка",
	"Иное",
}

type DocumentService struct {
	notifyService NotifyService
}

func (s *DocumentService) SubmitDocument(ctx context.Context, author *model.AdminUser, form DocumentForm) (*model.Document, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)
	form.DocumentType = strings.TrimSpace(form.DocumentType)
	if form.Title == "" || form.Content == "" || form.DocumentType == "" {
		return nil, ErrRequiredFields
	}

	doc := &model.Document{
		Title:        form.Title,
		Content:      form.Content,
		DocumentType: form.DocumentType,
		AuthorId:     author.Id,
		Status:       model.Pending,
		FileURL:      common.NilIfEmpty(form.FileURL),
	}
	var event Event
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		event = documentEvent(doc, author)
		_, err := s.notifyService.Record(tx, event)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("document #%d submitted by %s", doc.Id, author.Username)

	s.notifyService.Dispatch(ctx, event)
	return doc, nil
}

func (s *DocumentService) GetDocument(id int) (*model.Document, error) {
	doc := &model.Document{}
	err := database.GetDB().Preload("Author").Preload("ApprovedBy").First(doc, id).Error
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) GetDocuments() ([]model.Document, error) {
	var list []model.Document
	err := database.GetDB().Preload("Author").Order("created_at desc, id desc").Find(&list).Error
	return list, err
}

// GetByAuthor returns the documents submitted by the given user, newest first.
func (s *DocumentService) GetByAuthor(authorId int) ([]model.Document, error) {
	var list []model.Document
	err := database.GetDB().Preload("ApprovedBy").
		Where("author_id = ?", authorId).
		Order("created_at desc, id desc").
		Find(&list).Error
	return list, err
}

func (s *DocumentService) GetApproved() ([]model.Document, error) {
	var list []model.Document
	err := database.GetDB().Preload("Author").
		Where("status = ?", model.Approved).
		Order("approved_at desc, id desc").
		Find(&list).Error
	return list, err
}

func (s *DocumentService) CountByStatus(status model.DocumentStatus) (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.Document{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Approve records the approver and the approval time.
func (s *DocumentService) Approve(id int, actor *model.AdminUser) error {
	if _, err := s.GetDocument(id); err != nil {
		return err
	}
	err := applyDecision(database.GetDB(), &model.Document{}, id, map[string]any{
		"status":         model.Approved,
		"approved_by_id": actor.Id,
		"approved_at":    time.Now(),
	})
	if err == nil {
		logger.Infof("document #%d approved by %s", id, actor.Username)
	}
	return err
}

// Reject records the approver only; ApprovedAt stays empty.
func (s *DocumentService) Reject(id int, actor *model.AdminUser) error {
	if _, err := s.GetDocument(id); err != nil {
		return err
	}
	err := applyDecision(database.GetDB(), &model.Document{}, id, map[string]any{
		"status":         model.Rejected,
		"approved_by_id": actor.Id,
	})
	if err == nil {
		logger.Infof("document #%d rejected by %s", id, actor.Username)
	}
	return err
}
