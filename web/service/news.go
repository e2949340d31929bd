package service

import (
	"mime/multipart"
	"strings"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"

	"gorm.io/gorm"
)

const recentNewsLimit = 8

// NewsForm holds the editable fields of a news item. An empty ImageURL keeps the
// current image on update; an ImageFile wins over ImageURL and is stored only
// once the rest of the form is valid.
type NewsForm struct {
	Title       string
	Content     string
	IsPublished bool
	ImageURL    string
	ImageFile   *multipart.FileHeader
	ParentId    *int
}

type NewsService struct {
	uploadService UploadService
}

// GetPublished returns the published top-level news, newest first.
func (s *NewsService) GetPublished(limit int) ([]model.News, error) {
	var list []model.News
	db := database.GetDB().
		Where("is_published = ? AND parent_id IS NULL", true).
		Order("created_at desc, id desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&list).Error
	return list, err
}

// GetRecentOthers returns published top-level news other than exceptId.
func (s *NewsService) GetRecentOthers(exceptId int) ([]model.News, error) {
	var list []model.News
	err := database.GetDB().
		Where("id <> ? AND is_published = ? AND parent_id IS NULL", exceptId, true).
		Order("created_at desc, id desc").
		Limit(recentNewsLimit).
		Find(&list).Error
	return list, err
}

// GetChildren returns the published sub-items of a news item, oldest first.
func (s *NewsService) GetChildren(parentId int) ([]model.News, error) {
	var list []model.News
	err := database.GetDB().
		Where("parent_id = ? AND is_published = ?", parentId, true).
		Order("created_at asc, id asc").
		Find(&list).Error
	return list, err
}

func (s *NewsService) GetAll() ([]model.News, error) {
	var list []model.News
	err := database.GetDB().Order("created_at desc, id desc").Find(&list).Error
	return list, err
}

// GetParentChoices lists the items that may become the parent of exceptId.
func (s *NewsService) GetParentChoices(exceptId int) ([]model.News, error) {
	var list []model.News
	err := database.GetDB().
		Where("id <> ?", exceptId).
		Order("created_at desc, id desc").
		Find(&list).Error
	return list, err
}

func (s *NewsService) GetNews(id int) (*model.News, error) {
	item := &model.News{}
	err := database.GetDB().First(item, id).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *NewsService) Count(publishedOnly bool) (int64, error) {
	var count int64
	db := database.GetDB().Model(&model.News{})
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}
	err := db.Count(&count).Error
	return count, err
}

func (s *NewsService) CreateNews(form NewsForm) (*model.News, error) {
	if err := validateNews(&form, 0); err != nil {
		return nil, err
	}
	saved, err := s.storeImage(&form)
	if err != nil {
		return nil, err
	}
	item := &model.News{
		Title:       form.Title,
		Content:     form.Content,
		IsPublished: form.IsPublished,
		ParentId:    form.ParentId,
	}
	if form.ImageURL != "" {
		item.ImageURL = &form.ImageURL
	}
	if err := database.GetDB().Create(item).Error; err != nil {
		s.discardImage(saved)
		return nil, err
	}
	return item, nil
}

func (s *NewsService) UpdateNews(id int, form NewsForm) error {
	item, err := s.GetNews(id)
	if err != nil {
		return err
	}
	if err := validateNews(&form, id); err != nil {
		return err
	}
	saved, err := s.storeImage(&form)
	if err != nil {
		return err
	}
	item.Title = form.Title
	item.Content = form.Content
	item.IsPublished = form.IsPublished
	item.ParentId = form.ParentId
	if form.ImageURL != "" {
		item.ImageURL = &form.ImageURL
	}
	if err := database.GetDB().Save(item).Error; err != nil {
		s.discardImage(saved)
		return err
	}
	return nil
}

// storeImage saves form.ImageFile and points form.ImageURL at it. It returns
// the URL of the stored file, or "" when nothing was uploaded.
func (s *NewsService) storeImage(form *NewsForm) (string, error) {
	if form.ImageFile == nil {
		return "", nil
	}
	url, err := s.uploadService.SaveImage(form.ImageFile)
	if err != nil {
		return "", err
	}
	form.ImageURL = url
	return url, nil
}

func (s *NewsService) discardImage(url string) {
	if url == "" {
		return
	}
	if err := s.uploadService.RemoveImage(url); err != nil {
		logger.Warning("remove unused upload failed:", err)
	}
}

// DeleteNews removes the item and turns its sub-items into top-level news.
func (s *NewsService) DeleteNews(id int) error {
	item, err := s.GetNews(id)
	if err != nil {
		return err
	}
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.News{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

func validateNews(form *NewsForm, id int) error {
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)
	form.ImageURL = strings.TrimSpace(form.ImageURL)
	if form.Title == "" || form.Content == "" {
		return ErrRequiredFields
	}
	if form.ParentId != nil && *form.ParentId == id {
		return ErrInvalidParent
	}
	return nil
}
