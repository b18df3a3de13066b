package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/shared/logger"
)

func writeFile(t *testing.T, root, rel string, modTime time.Time) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0750))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0640))
	require.NoError(t, os.Chtimes(full, modTime, modTime))
}

func TestImageStore_Sweep(t *testing.T) {
	now := time.Now()
	s := NewImageStore(t.TempDir(), logger.NewNopLogger())
	s.now = func() time.Time { return now }

	old := now.Add(-2 * time.Hour)
	writeFile(t, s.Root(), "repair-images/kept.jpg", old)
	writeFile(t, s.Root(), "repair-images/orphan.jpg", old)
	writeFile(t, s.Root(), "completion-images/orphan.png", old)
	writeFile(t, s.Root(), "repair-images/fresh.jpg", now.Add(-time.Minute))
	writeFile(t, s.Root(), "other/untouched.jpg", old)

	referenced := map[string]struct{}{"repair-images/kept.jpg": {}}
	removed, err := s.Sweep(context.Background(), referenced, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for rel, exists := range map[string]bool{
		"repair-images/kept.jpg":       true,
		"repair-images/orphan.jpg":     false,
		"completion-images/orphan.png": false,
		"repair-images/fresh.jpg":      true,
		"other/untouched.jpg":          true,
	} {
		_, err := os.Stat(filepath.Join(s.Root(), filepath.FromSlash(rel)))
		assert.Equal(t, exists, err == nil, rel)
	}
}

func TestImageStore_SweepMissingDirectories(t *testing.T) {
	s := NewImageStore(t.TempDir(), logger.NewNopLogger())

	removed, err := s.Sweep(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"repair-images/a.jpg", "repair-images/a.jpg", true},
		{`repair-images\a.jpg`, "repair-images/a.jpg", true},
		{"/uploads/repair-images/a.jpg", "repair-images/a.jpg", true},
		{"./completion-images/b.png", "completion-images/b.png", true},
		{"../etc/passwd", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := RelativePath(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
