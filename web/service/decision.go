package service

import (
	"github.com/officeportal/portal/database/model"

	"gorm.io/gorm"
)

// applyDecision moves a pending row to its final status. The status check is part
// of the UPDATE so two concurrent decisions can not both succeed.
func applyDecision(tx *gorm.DB, table any, id int, updates map[string]any) error {
	res := tx.Model(table).
		Where("id = ? AND status = ?", id, model.Pending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
