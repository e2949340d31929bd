package service

import (
	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/util/common"
)

type SiteForm struct {
	LeaderFirstName string
	LeaderLastName  string
	LeaderRank      string
	LeaderPosition  string
	LeaderPhotoURL  string
}

type SiteService struct{}

// GetSiteInfo returns the site info row, or an empty value when none exists yet.
func (s *SiteService) GetSiteInfo() (*model.SiteInfo, error) {
	site := &model.SiteInfo{}
	err := database.GetDB().Order("id asc").First(site).Error
	if database.IsNotFound(err) {
		return site, nil
	} else if err != nil {
		return nil, err
	}
	return site, nil
}

// UpdateSiteInfo stores the form; blank values become NULL.
func (s *SiteService) UpdateSiteInfo(form SiteForm) error {
	site, err := s.GetSiteInfo()
	if err != nil {
		return err
	}
	site.LeaderFirstName = common.NilIfEmpty(form.LeaderFirstName)
	site.LeaderLastName = common.NilIfEmpty(form.LeaderLastName)
	site.LeaderRank = common.NilIfEmpty(form.LeaderRank)
	site.LeaderPosition = common.NilIfEmpty(form.LeaderPosition)
	site.LeaderPhotoURL = common.NilIfEmpty(form.LeaderPhotoURL)
	return database.GetDB().Save(site).Error
}
