package service

import (
	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
)

type NotificationService struct{}

func (s *NotificationService) GetNotifications(limit int) ([]model.Notification, error) {
	var list []model.Notification
	db := database.GetDB().Order("created_at desc, id desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&list).Error
	return list, err
}

func (s *NotificationService) MarkRead(id int) error {
	n := &model.Notification{}
	if err := database.GetDB().First(n, id).Error; err != nil {
		return err
	}
	return database.GetDB().Model(n).Update("is_read", true).Error
}

func (s *NotificationService) MarkAllRead() error {
	return database.GetDB().Model(&model.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
