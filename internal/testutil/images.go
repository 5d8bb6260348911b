package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"sync"
	"testing"
)

// PNGBytes encodes a tiny solid image.
func PNGBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// JPEGBytes encodes a tiny solid image as JPEG.
func JPEGBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// StoredObject is one object captured by MemoryStore.
type StoredObject struct {
	ContentType string
	Data        []byte
}

// MemoryStore is an in-memory object store for upload tests.
type MemoryStore struct {
	mu      sync.Mutex
	Objects map[string]StoredObject
	Err     error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Objects: make(map[string]StoredObject)}
}

// Put records the object unless Err is set.
func (s *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	if s.Err != nil {
		return s.Err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = StoredObject{ContentType: contentType, Data: data}
	return nil
}

// PublicURL maps a key onto a fake CDN host.
func (s *MemoryStore) PublicURL(key string) string {
	return "https://cdn.test/post-images/" + key
}
