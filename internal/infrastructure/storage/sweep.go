package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"repairdesk/internal/shared/constants"
)

// Sweep removes files in the image directories that are not in referenced
// and were last modified more than minAge ago. Keys of referenced must be
// RelativePath results. It returns the number of files removed.
func (s *ImageStore) Sweep(ctx context.Context, referenced map[string]struct{}, minAge time.Duration) (int, error) {
	cutoff := s.now().Add(-minAge)
	removed := 0

	for _, dir := range []string{constants.DirRepairImages, constants.DirCompletionImages} {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, err
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return removed, err
			}
			if entry.IsDir() {
				continue
			}
			rel := path.Join(dir, entry.Name())
			if _, ok := referenced[rel]; ok {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if s.Delete(rel) {
				s.logger.Infow("removed orphan upload", "path", rel)
				removed++
			}
		}
	}

	return removed, nil
}
