package database

import (
	"fmt"
	"time"

	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/crypto"

	"gorm.io/gorm"
)

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// migrations is append-only. Every step must be additive so that a database
// written by an older release keeps working.
var migrations = []migration{
	{1, "create tables", createTables},
	{2, "backfill empty statuses", backfillStatuses},
	{3, "backfill empty roles", backfillRoles},
	{4, "hash staged application passwords", hashStagedPasswords},
}

func entities() []any {
	return []any{
		&model.AdminUser{},
		&model.News{},
		&model.SiteInfo{},
		&model.Feedback{},
		&model.Notification{},
		&model.JobApplication{},
		&model.Review{},
		&model.Document{},
	}
}

// Migrate applies every migration not yet recorded in the schema_migration table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.SchemaMigration{}); err != nil {
		return err
	}

	var applied []model.SchemaMigration
	if err := db.Find(&applied).Error; err != nil {
		return err
	}
	done := make(map[int]bool, len(applied))
	for _, m := range applied {
		done[m.Version] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&model.SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		logger.Infof("applied migration %d: %s", m.version, m.name)
	}
	return nil
}

// PendingMigrations lists the versions that Migrate would apply.
func PendingMigrations(db *gorm.DB) ([]int, error) {
	var versions []int
	if db.Migrator().HasTable(&model.SchemaMigration{}) {
		if err := db.Model(&model.SchemaMigration{}).Pluck("version", &versions).Error; err != nil {
			return nil, err
		}
	}
	done := make(map[int]bool, len(versions))
	for _, v := range versions {
		done[v] = true
	}
	var pending []int
	for _, m := range migrations {
		if !done[m.version] {
			pending = append(pending, m.version)
		}
	}
	return pending, nil
}

// createTables creates missing tables and adds missing columns; it never drops
// or alters existing columns.
func createTables(tx *gorm.DB) error {
	for _, entity := range entities() {
		if err := tx.AutoMigrate(entity); err != nil {
			return err
		}
	}
	return nil
}

func backfillStatuses(tx *gorm.DB) error {
	updates := []struct {
		table  string
		status string
	}{
		{"feedback", string(model.FeedbackNew)},
		{"job_application", string(model.Pending)},
		{"review", string(model.Pending)},
		{"document", string(model.Pending)},
	}
	for _, u := range updates {
		err := tx.Table(u.table).
			Where("status IS NULL OR status = ''").
			Update("status", u.status).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func backfillRoles(tx *gorm.DB) error {
	return tx.Model(&model.AdminUser{}).
		Where("role IS NULL OR role = ''").
		Update("role", model.RoleInvestigator).Error
}

func hashStagedPasswords(tx *gorm.DB) error {
	var apps []model.JobApplication
	if err := tx.Select("id", "desired_password").Find(&apps).Error; err != nil {
		return err
	}
	for _, app := range apps {
		if crypto.IsBcryptHash(app.DesiredPassword) {
			continue
		}
		hash, err := crypto.HashPasswordAsBcrypt(app.DesiredPassword)
		if err != nil {
			return err
		}
		err = tx.Model(&model.JobApplication{}).
			Where("id = ?", app.Id).
			Update("desired_password", hash).Error
		if err != nil {
			return err
		}
	}
	return nil
}
