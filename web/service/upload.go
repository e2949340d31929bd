package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/officeportal/portal/config"

	"github.com/google/uuid"
)

// UploadURLPrefix is the route serving the upload folder.
const UploadURLPrefix = "/uploads/"

var (
	imageExts     = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}
	unsafeNameRe  = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	maxNameLength = 40
)

type UploadService struct{}

// SaveImage stores an uploaded image under a unique name and returns its public URL.
func (s *UploadService) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > config.GetMaxUploadSize() {
		return "", ErrUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		return "", ErrUploadForbidden
	}

	name := uniqueName(fh.Filename, ext)
	folder := config.GetUploadFolder()
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(folder, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(dst, io.LimitReader(src, config.GetMaxUploadSize()+1)); err != nil {
		dst.Close()
		return "", err
	}
	if err = dst.Close(); err != nil {
		return "", err
	}
	return UploadURLPrefix + name, nil
}

// RemoveImage deletes a file previously returned by SaveImage.
func (s *UploadService) RemoveImage(url string) error {
	name := strings.TrimPrefix(url, UploadURLPrefix)
	if name == url || name == "" || strings.ContainsAny(name, `/\`) {
		return ErrUploadForbidden
	}
	return os.Remove(filepath.Join(config.GetUploadFolder(), name))
}

func uniqueName(original string, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Trim(unsafeNameRe.ReplaceAllString(base, "_"), "_")
	if len(base) > maxNameLength {
		base = base[:maxNameLength]
	}
	if base == "" {
		base = "image"
	}
	return base + "_" + uuid.NewString() + ext
}
