package service

import (
	"os"
	"strings"
	"testing"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsPublishingAndChildren(t *testing.T) {
	setup(t)
	s := &NewsService{}

	parent, err := s.CreateNews(NewsForm{Title: "Главная", Content: "текст", IsPublished: true})
	require.NoError(t, err)
	draft, err := s.CreateNews(NewsForm{Title: "Черновик", Content: "текст"})
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)
	child, err := s.CreateNews(NewsForm{Title: "Дополнение", Content: "текст", IsPublished: true, ParentId: &parent.Id})
	require.NoError(t, err)

	published, err := s.GetPublished(0)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, parent.Id, published[0].Id)

	children, err := s.GetChildren(parent.Id)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.Id, children[0].Id)

	others, err := s.GetRecentOthers(parent.Id)
	require.NoError(t, err)
	assert.Empty(t, others)

	total, err := s.Count(false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestNewsImageIsStoredOnlyForValidForms(t *testing.T) {
	setup(t)
	t.Setenv("PORTAL_UPLOAD_FOLDER", t.TempDir())
	s := &NewsService{}

	_, err := s.CreateNews(NewsForm{Content: "c", ImageFile: fileHeader(t, "photo.png", []byte("png"))})
	assert.ErrorIs(t, err, ErrRequiredFields)
	files, err := os.ReadDir(config.GetUploadFolder())
	require.NoError(t, err)
	assert.Empty(t, files)

	item, err := s.CreateNews(NewsForm{Title: "t", Content: "c", ImageURL: "https://example.org/x.png", ImageFile: fileHeader(t, "photo.png", []byte("png"))})
	require.NoError(t, err)
	require.NotNil(t, item.ImageURL)
	assert.True(t, strings.HasPrefix(*item.ImageURL, UploadURLPrefix))

	err = s.UpdateNews(item.Id, NewsForm{Title: " ", Content: "c", ImageFile: fileHeader(t, "other.png", []byte("png"))})
	assert.ErrorIs(t, err, ErrRequiredFields)
	files, err = os.ReadDir(config.GetUploadFolder())
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestUpdateNewsValidation(t *testing.T) {
	setup(t)
	s := &NewsService{}
	item, err := s.CreateNews(NewsForm{Title: "t", Content: "c", ImageURL: "/uploads/a.png"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.UpdateNews(item.Id, NewsForm{Title: "t", Content: "c", ParentId: &item.Id}), ErrInvalidParent)
	assert.ErrorIs(t, s.UpdateNews(item.Id, NewsForm{Title: "", Content: "c"}), ErrRequiredFields)

	require.NoError(t, s.UpdateNews(item.Id, NewsForm{Title: "t2", Content: "c2", IsPublished: true}))
	got, err := s.GetNews(item.Id)
	require.NoError(t, err)
	assert.Equal(t, "t2", got.Title)
	assert.True(t, got.IsPublished)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "/uploads/a.png", *got.ImageURL)
}

func TestDeleteNewsDetachesChildren(t *testing.T) {
	setup(t)
	s := &NewsService{}
	parent, err := s.CreateNews(NewsForm{Title: "p", Content: "c", IsPublished: true})
	require.NoError(t, err)
	child, err := s.CreateNews(NewsForm{Title: "ch", Content: "c", IsPublished: true, ParentId: &parent.Id})
	require.NoError(t, err)

	require.NoError(t, s.DeleteNews(parent.Id))
	_, err = s.GetNews(parent.Id)
	assert.True(t, database.IsNotFound(err))

	got, err := s.GetNews(child.Id)
	require.NoError(t, err)
	assert.Nil(t, got.ParentId)
}

func TestSiteInfoBlankBecomesNull(t *testing.T) {
	setup(t)
	s := &SiteService{}

	require.NoError(t, s.UpdateSiteInfo(SiteForm{LeaderFirstName: "Иван", LeaderLastName: "  "}))
	site, err := s.GetSiteInfo()
	require.NoError(t, err)
	require.NotNil(t, site.LeaderFirstName)
	assert.Equal(t, "Иван", *site.LeaderFirstName)
	assert.Nil(t, site.LeaderLastName)
}
