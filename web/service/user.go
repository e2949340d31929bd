package service

import (
	"strings"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/crypto"

	"gorm.io/gorm"
)

// UserForm carries the editable fields of a staff account. An empty Password on
// update keeps the current one.
type UserForm struct {
	Username string
	Password string
	Role     model.Role
	FullName string
	Position string
	Rank     string
}

type UserService struct{}

// CheckUser returns the account matching the credentials, or nil.
func (s *UserService) CheckUser(username string, password string) *model.AdminUser {
	db := database.GetDB()

	user := &model.AdminUser{}
	err := db.Model(model.AdminUser{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil
	}
	return user
}

func (s *UserService) GetUser(id int) (*model.AdminUser, error) {
	user := &model.AdminUser{}
	err := database.GetDB().First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.AdminUser, error) {
	user := &model.AdminUser{}
	err := database.GetDB().Where("username = ?", username).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsers() ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := database.GetDB().Order("id asc").Find(&users).Error
	return users, err
}

func (s *UserService) IsProtected(user *model.AdminUser) bool {
	return user.Username == config.GetBootstrapUsername()
}

func (s *UserService) CreateUser(form UserForm) (*model.AdminUser, error) {
	form.Username = strings.TrimSpace(form.Username)
	if form.Username == "" || form.Password == "" {
		return nil, ErrRequiredFields
	}
	if form.Role == "" {
		form.Role = model.RoleInvestigator
	}
	if !form.Role.Valid() {
		return nil, ErrInvalidRole
	}

	db := database.GetDB()
	taken, err := usernameTaken(db, form.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(form.Password)
	if err != nil {
		return nil, err
	}
	user := &model.AdminUser{
		Username:     form.Username,
		PasswordHash: hash,
		Role:         form.Role,
		FullName:     strings.TrimSpace(form.FullName),
		Position:     strings.TrimSpace(form.Position),
		Rank:         strings.TrimSpace(form.Rank),
	}
	if err = db.Create(user).Error; err != nil {
		return nil, err
	}
	logger.Infof("user %q created with role %s", user.Username, user.Role)
	return user, nil
}

func (s *UserService) UpdateUser(id int, form UserForm) error {
	form.Username = strings.TrimSpace(form.Username)
	if form.Username == "" {
		return ErrRequiredFields
	}
	if !form.Role.Valid() {
		return ErrInvalidRole
	}

	db := database.GetDB()
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if s.IsProtected(user) && (form.Username != user.Username || form.Role != model.RoleAdmin) {
		return ErrProtectedUser
	}
	taken, err := usernameTaken(db, form.Username, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	updates := map[string]any{
		"username":  form.Username,
		"role":      form.Role,
		"full_name": strings.TrimSpace(form.FullName),
		"position":  strings.TrimSpace(form.Position),
		"rank":      strings.TrimSpace(form.Rank),
	}
	if form.Password != "" {
		hash, err := crypto.HashPasswordAsBcrypt(form.Password)
		if err != nil {
			return err
		}
		updates["password_hash"] = hash
	}
	return db.Model(user).Updates(updates).Error
}

// DeleteUser removes the account. Documents it authored move to the first other
// administrator and approvals it made lose their approver.
func (s *UserService) DeleteUser(id int) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if s.IsProtected(user) {
		return ErrProtectedUser
	}

	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		var authored int64
		if err := tx.Model(&model.Document{}).Where("author_id = ?", id).Count(&authored).Error; err != nil {
			return err
		}
		if authored > 0 {
			heir := &model.AdminUser{}
			err := tx.Where("role = ? AND id <> ?", model.RoleAdmin, id).Order("id asc").First(heir).Error
			if database.IsNotFound(err) {
				return ErrNoAdminForReassign
			} else if err != nil {
				return err
			}
			if err := tx.Model(&model.Document{}).Where("author_id = ?", id).Update("author_id", heir.Id).Error; err != nil {
				return err
			}
			logger.Infof("reassigned %d documents of %q to %q", authored, user.Username, heir.Username)
		}
		if err := tx.Model(&model.Document{}).Where("approved_by_id = ?", id).Update("approved_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(user).Error; err != nil {
			return err
		}
		logger.Infof("user %q deleted", user.Username)
		return nil
	})
}

// ResetUser sets the password of the named account, creating it as an
// administrator when it does not exist.
func (s *UserService) ResetUser(username string, password string) error {
	if username == "" || password == "" {
		return ErrRequiredFields
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user, err := s.GetUserByUsername(username)
	if database.IsNotFound(err) {
		return db.Create(&model.AdminUser{
			Username:     username,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}).Error
	} else if err != nil {
		return err
	}
	return db.Model(user).Update("password_hash", hash).Error
}

func usernameTaken(db *gorm.DB, username string, exceptId int) (bool, error) {
	var count int64
	err := db.Model(&model.AdminUser{}).
		Where("username = ? AND id <> ?", username, exceptId).
		Count(&count).Error
	return count > 0, err
}
