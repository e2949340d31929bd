package service

import (
	"context"
	"strings"

	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/common"
	"github.com/officeportal/portal/util/crypto"

	"gorm.io/gorm"
)

const (
	hiredPosition = "Следователь"
	hiredRank     = "Лейтенант юстиции"
)

// JobApplicationForm holds the public form. Questions 1-3 are required.
type JobApplicationForm struct {
	FullName        string
	DesiredUsername string
	DesiredPassword string
	Questions       [8]string
}

type JobApplicationService struct {
	notifyService NotifyService
}

// SubmitApplication stages a new account request. The password is stored as a
// bcrypt hash. The inbox entry is the only notification sent.
func (s *JobApplicationService) SubmitApplication(ctx context.Context, form JobApplicationForm) (*model.JobApplication, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.DesiredUsername = strings.TrimSpace(form.DesiredUsername)
	form.DesiredPassword = strings.TrimSpace(form.DesiredPassword)
	for i := range form.Questions {
		form.Questions[i] = strings.TrimSpace(form.Questions[i])
	}
	if form.FullName == "" || form.DesiredUsername == "" || form.DesiredPassword == "" ||
		form.Questions[0] == "" || form.Questions[1] == "" || form.Questions[2] == "" {
		return nil, ErrRequiredFields
	}

	hash, err := crypto.HashPasswordAsBcrypt(form.DesiredPassword)
	if err != nil {
		return nil, err
	}
	app := &model.JobApplication{
		FullName:        form.FullName,
		DesiredUsername: form.DesiredUsername,
		DesiredPassword: hash,
		Question1:       form.Questions[0],
		Question2:       form.Questions[1],
		Question3:       form.Questions[2],
		Question4:       common.NilIfEmpty(form.Questions[3]),
		Question5:       common.NilIfEmpty(form.Questions[4]),
		Question6:       common.NilIfEmpty(form.Questions[5]),
		Question7:       common.NilIfEmpty(form.Questions[6]),
		Question8:       common.NilIfEmpty(form.Questions[7]),
		Status:          model.Pending,
	}

	var event Event
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := checkUsernameFree(tx, app.DesiredUsername); err != nil {
			return err
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		event = jobApplicationEvent(app)
		_, err := s.notifyService.Record(tx, event)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("job application #%d received for login %q", app.Id, app.DesiredUsername)

	s.notifyService.Dispatch(ctx, event)
	return app, nil
}

// checkUsernameFree refuses logins held by an account or by another pending application.
func checkUsernameFree(tx *gorm.DB, username string) error {
	taken, err := usernameTaken(tx, username, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	var pending int64
	err = tx.Model(&model.JobApplication{}).
		Where("desired_username = ? AND status = ?", username, model.Pending).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrUsernameTaken
	}
	return nil
}

// TrackApplication returns the latest application filed for the login.
func (s *JobApplicationService) TrackApplication(username string) (*model.JobApplication, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrRequiredFields
	}
	app := &model.JobApplication{}
	err := database.GetDB().
		Where("desired_username = ?", username).
		Order("created_at desc, id desc").
		First(app).Error
	if database.IsNotFound(err) {
		return nil, ErrApplicationNotFound
	} else if err != nil {
		return nil, err
	}
	return app, nil
}

func (s *JobApplicationService) GetApplications() ([]model.JobApplication, error) {
	var list []model.JobApplication
	err := database.GetDB().Order("created_at desc, id desc").Find(&list).Error
	return list, err
}

func (s *JobApplicationService) GetApplication(id int) (*model.JobApplication, error) {
	app := &model.JobApplication{}
	err := database.GetDB().First(app, id).Error
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (s *JobApplicationService) CountByStatus(status model.ApplicationStatus) (int64, error) {
	var count int64
	err := database.GetDB().Model(&model.JobApplication{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Approve creates the investigator account and closes the application in one
// transaction.
func (s *JobApplicationService) Approve(id int) (*model.AdminUser, error) {
	app, err := s.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransition(model.Approved) {
		return nil, ErrInvalidTransition
	}

	user := &model.AdminUser{
		Username:     app.DesiredUsername,
		PasswordHash: app.DesiredPassword,
		Role:         model.RoleInvestigator,
		FullName:     app.FullName,
		Position:     hiredPosition,
		Rank:         hiredRank,
	}
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		taken, err := usernameTaken(tx, user.Username, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		if err := applyDecision(tx, &model.JobApplication{}, app.Id, map[string]any{"status": model.Approved}); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	logger.Infof("job application #%d approved, user %q created", app.Id, user.Username)
	return user, nil
}

func (s *JobApplicationService) Reject(id int) error {
	app, err := s.GetApplication(id)
	if err != nil {
		return err
	}
	if err := applyDecision(database.GetDB(), &model.JobApplication{}, app.Id, map[string]any{"status": model.Rejected}); err != nil {
		return err
	}
	logger.Infof("job application #%d rejected", app.Id)
	return nil
}
