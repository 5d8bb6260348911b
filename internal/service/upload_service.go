package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// MaxUploadSize is the largest accepted image, 5 MiB.
const MaxUploadSize = 5 << 20

type imageType struct {
	format string // image.DecodeConfig 返回的格式名
	ext    string
}

// allowedImageTypes maps accepted MIME types to their decoded format and the
// extension objects are stored under.
var allowedImageTypes = map[string]imageType{
	"image/jpeg": {format: "jpeg", ext: "jpg"},
	"image/png":  {format: "png", ext: "png"},
	"image/gif":  {format: "gif", ext: "gif"},
	"image/webp": {format: "webp", ext: "webp"},
}

// ObjectStore persists uploaded objects and exposes them by URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PublicURL(key string) string
}

// UploadInput describes one uploaded file.
type UploadInput struct {
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is the stored object's public location.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// UploadService 校验图片并写入对象存储。
type UploadService struct {
	store ObjectStore
	now   func() time.Time
}

// NewUploadService creates an UploadService backed by store.
func NewUploadService(store ObjectStore) *UploadService {
	return &UploadService{store: store, now: time.Now}
}

// WithClock replaces the time source used for object keys.
func (s *UploadService) WithClock(now func() time.Time) *UploadService {
	if now != nil {
		s.now = now
	}
	return s
}

// Upload checks type and size, confirms the bytes decode as the declared
// image format and stores them under {userId}/{unixMillis}-{random6}.{ext}.
// The extension follows the validated type; the client's filename is ignored.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Body == nil {
		return nil, ErrFileMissing
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	kind, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedFileType
	}
	if input.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrFileMissing
	}
	if len(data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	if _, decoded, err := image.DecodeConfig(bytes.NewReader(data)); err != nil || decoded != kind.format {
		return nil, ErrUnsupportedFileType
	}

	key := s.objectKey(input.UserID, kind.ext)
	if err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return &UploadResult{URL: s.store.PublicURL(key), FileName: key}, nil
}

func (s *UploadService) objectKey(userID, ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s/%d-%s.%s", userID, s.now().UnixMilli(), suffix, ext)
}
