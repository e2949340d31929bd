package database

import (
	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/crypto"

	"gorm.io/gorm"
)

const (
	defaultAdminFullName = "ИВАНОВ ИВАН ИВАНОВИЧ"
	defaultAdminPosition = "Руководитель следственного управления"
	defaultAdminRank     = "Полковник юстиции"
)

// Provision creates the bootstrap administrator and the site info row when they
// are missing, and restores the administrator's role if it was changed.
func Provision(db *gorm.DB) error {
	if err := provisionAdmin(db); err != nil {
		return err
	}
	return provisionSiteInfo(db)
}

func provisionAdmin(db *gorm.DB) error {
	username := config.GetBootstrapUsername()

	var count int64
	if err := db.Model(&model.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := crypto.HashPasswordAsBcrypt(config.GetBootstrapPassword())
		if err != nil {
			return err
		}
		logger.Infof("creating bootstrap administrator %q", username)
		return db.Create(&model.AdminUser{
			Username:     username,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			FullName:     defaultAdminFullName,
			Position:     defaultAdminPosition,
			Rank:         defaultAdminRank,
		}).Error
	}

	admin := &model.AdminUser{}
	err := db.Where("username = ?", username).First(admin).Error
	if IsNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}

	updates := map[string]any{}
	if admin.Role != model.RoleAdmin {
		logger.Warningf("bootstrap administrator %q had role %q, restoring admin", username, admin.Role)
		updates["role"] = model.RoleAdmin
	}
	if admin.FullName == "" {
		updates["full_name"] = defaultAdminFullName
		updates["position"] = defaultAdminPosition
		updates["rank"] = defaultAdminRank
	}
	if len(updates) == 0 {
		return nil
	}
	return db.Model(admin).Updates(updates).Error
}

func provisionSiteInfo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SiteInfo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&model.SiteInfo{}).Error
}
