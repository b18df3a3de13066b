package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/shared/logger"
)

func newTestStore(t *testing.T) *ImageStore {
	t.Helper()
	s := NewImageStore(t.TempDir(), logger.NewNopLogger())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func upload(name, contentType string, body []byte) UploadedFile {
	return UploadedFile{
		OriginalName: name,
		ContentType:  contentType,
		Size:         int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}
}

// Minimal file heads that content detection recognises.
var (
	jpegBody = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00jpeg-data")
	pngBody  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRpng-data")
	webpBody = []byte("RIFF\x24\x00\x00\x00WEBPVP8 webp-data")
)

func TestImageStore_Store(t *testing.T) {
	s := newTestStore(t)
	body := pngBody

	stored, err := s.Store(context.Background(), upload("Photo.PNG", "image/png", body), repair.ImageKindRepair)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^repair-images/repair-1700000000000-[0-9A-Za-z]{8}\.png$`), stored.Path)
	assert.Equal(t, "Photo.PNG", stored.OriginalName)
	assert.Equal(t, int64(len(body)), stored.Size)

	data, err := os.ReadFile(filepath.Join(s.Root(), filepath.FromSlash(stored.Path)))
	require.NoError(t, err)
	assert.Equal(t, body, data)

	done, err := s.Store(context.Background(), upload("after.webp", "image/webp", webpBody), repair.ImageKindCompletion)
	require.NoError(t, err)
	assert.Regexp(t, `^completion-images/completion-`, done.Path)
}

func TestImageStore_StoreNormalizesOriginalName(t *testing.T) {
	s := newTestStore(t)
	// "e" followed by a combining acute accent.
	decomposed := "cafe\u0301.jpg"

	stored, err := s.Store(context.Background(), upload(decomposed, "image/jpeg", jpegBody), repair.ImageKindRepair)
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9.jpg", stored.OriginalName)
}

func TestImageStore_Validate(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name        string
		file        string
		contentType string
		wantErr     bool
	}{
		{"jpeg", "a.jpeg", "image/jpeg", false},
		{"jpg with jpg media type", "a.jpg", "image/jpg", false},
		{"gif", "a.gif", "image/gif", false},
		{"media type parameters", "a.png", "image/png; charset=binary", false},
		{"upper case extension", "a.WEBP", "image/webp", false},
		{"pdf", "a.pdf", "application/pdf", true},
		{"image extension with wrong media type", "a.png", "text/plain", true},
		{"allowed media type with wrong extension", "a.exe", "image/png", true},
		{"no extension", "image", "image/png", true},
		{"svg", "a.svg", "image/svg+xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(upload(tt.file, tt.contentType, nil))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMediaType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImageStore_StoreRejectsBeforeWriting(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Store(context.Background(), upload("notes.txt", "text/plain", []byte("x")), repair.ImageKindRepair)
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)

	_, statErr := os.Stat(filepath.Join(s.Root(), "repair-images"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestImageStore_StoreChecksContent(t *testing.T) {
	tests := []struct {
		name    string
		file    UploadedFile
		wantErr bool
	}{
		{"jpeg", upload("a.jpg", "image/jpeg", jpegBody), false},
		{"png named jpg", upload("a.jpg", "image/jpeg", pngBody), false},
		{"html named jpg", upload("a.jpg", "image/jpeg", []byte("<html><script>alert(1)</script></html>")), true},
		{"empty file", upload("a.png", "image/png", nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			stored, err := s.Store(context.Background(), tt.file, repair.ImageKindRepair)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.FileExists(t, filepath.Join(s.Root(), filepath.FromSlash(stored.Path)))
				return
			}
			assert.ErrorIs(t, err, ErrUnsupportedMediaType)
			assert.NoDirExists(t, filepath.Join(s.Root(), "repair-images"))
		})
	}
}

func TestImageStore_Delete(t *testing.T) {
	s := newTestStore(t)
	stored, err := s.Store(context.Background(), upload("a.jpg", "image/jpeg", jpegBody), repair.ImageKindRepair)
	require.NoError(t, err)

	assert.True(t, s.Delete(stored.Path))
	assert.False(t, s.Delete(stored.Path), "second delete finds nothing")
	assert.False(t, s.Delete(""))
	assert.False(t, s.Delete("../outside.jpg"))
}

func TestImageStore_DeleteAcceptsLegacyForms(t *testing.T) {
	s := newTestStore(t)
	dir := filepath.Join(s.Root(), "repair-images")
	require.NoError(t, os.MkdirAll(dir, 0750))

	for _, stored := range []string{`repair-images\old.jpg`, "/uploads/repair-images/old.jpg", "./repair-images/old.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "old.jpg"), []byte("x"), 0640))
		assert.True(t, s.Delete(stored), stored)
	}
}

func TestImageStore_Reconcile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var existing []*repair.Image
	for i := uint(1); i <= 3; i++ {
		f, err := s.Store(ctx, upload("a.jpg", "image/jpeg", jpegBody), repair.ImageKindRepair)
		require.NoError(t, err)
		existing = append(existing, repair.ReconstructImage(i, 10, repair.ImageKindRepair, f.Path, f.OriginalName, f.Size, time.Now()))
	}

	t.Run("no keep list leaves everything", func(t *testing.T) {
		assert.Empty(t, s.Reconcile(existing, repair.NoReconcile()))
	})

	t.Run("removes images outside keep set", func(t *testing.T) {
		removed := s.Reconcile(existing, repair.KeepOnly(false, 2))
		require.Len(t, removed, 2)
		assert.Equal(t, uint(1), removed[0].ID())
		assert.Equal(t, uint(3), removed[1].ID())

		_, err := os.Stat(filepath.Join(s.Root(), filepath.FromSlash(existing[1].FilePath())))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(s.Root(), filepath.FromSlash(existing[0].FilePath())))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		`repair-images\a.jpg`:       "repair-images/a.jpg",
		"repair-images/a.jpg":       "repair-images/a.jpg",
		"./repair-images/a.jpg":     "repair-images/a.jpg",
		`.\completion-images\b.png`: "completion-images/b.png",
		"":                          "",
	}
	for in, want := range tests {
		got := NormalizePath(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, NormalizePath(got), "idempotent for %q", in)
	}
}
