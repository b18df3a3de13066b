package usecases

import (
	"context"
	"fmt"
	"time"

	"repairdesk/internal/infrastructure/storage"
	"repairdesk/internal/shared/logger"
)

// ImagePathLister lists the stored path of every image row.
type ImagePathLister interface {
	ListFilePaths(ctx context.Context) ([]string, error)
}

// UploadSweeper removes unreferenced upload files.
type UploadSweeper interface {
	Sweep(ctx context.Context, referenced map[string]struct{}, minAge time.Duration) (int, error)
}

// SweepOrphanUploadsUseCase deletes files left behind when a post-commit
// unlink failed or a request died between writing a file and committing its
// row. Files younger than minAge are skipped so in-flight uploads survive.
type SweepOrphanUploadsUseCase struct {
	images  ImagePathLister
	sweeper UploadSweeper
	minAge  time.Duration
	logger  logger.Interface
}

func NewSweepOrphanUploadsUseCase(
	images ImagePathLister,
	sweeper UploadSweeper,
	minAge time.Duration,
	logger logger.Interface,
) *SweepOrphanUploadsUseCase {
	return &SweepOrphanUploadsUseCase{
		images:  images,
		sweeper: sweeper,
		minAge:  minAge,
		logger:  logger,
	}
}

// Execute returns the number of files removed.
func (uc *SweepOrphanUploadsUseCase) Execute(ctx context.Context) (int, error) {
	paths, err := uc.images.ListFilePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load referenced images: %w", err)
	}

	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if rel, ok := storage.RelativePath(p); ok {
			referenced[rel] = struct{}{}
		}
	}

	removed, err := uc.sweeper.Sweep(ctx, referenced, uc.minAge)
	if err != nil {
		return removed, fmt.Errorf("failed to sweep uploads: %w", err)
	}
	return removed, nil
}
