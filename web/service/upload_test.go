package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/officeportal/portal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image_file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image_file"][0]
}

func TestSaveImage(t *testing.T) {
	t.Setenv("PORTAL_UPLOAD_FOLDER", t.TempDir())
	s := &UploadService{}

	url, err := s.SaveImage(fileHeader(t, "../Фото здания.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, UploadURLPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.NotContains(t, strings.TrimPrefix(url, UploadURLPrefix), "/")

	data, err := os.ReadFile(filepath.Join(config.GetUploadFolder(), strings.TrimPrefix(url, UploadURLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	second, err := s.SaveImage(fileHeader(t, "../Фото здания.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.NotEqual(t, url, second)
}

func TestSaveImageRejectsOtherTypes(t *testing.T) {
	t.Setenv("PORTAL_UPLOAD_FOLDER", t.TempDir())

	_, err := (&UploadService{}).SaveImage(fileHeader(t, "script.sh", []byte("#!/bin/sh")))
	assert.ErrorIs(t, err, ErrUploadForbidden)
}
