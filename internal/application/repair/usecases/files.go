package usecases

import (
	"context"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/storage"
)

// fileSession tracks the disk side of one transactional attempt. Files
// written during the attempt are removed if it fails. Files of removed rows
// are only unlinked once the transaction has committed.
type fileSession struct {
	store      ImageStore
	written    []string
	doomed     []string
	reconciles []pendingReconcile
}

type pendingReconcile struct {
	existing []*repair.Image
	keep     repair.KeepSet
}

func newFileSession(store ImageStore) *fileSession {
	return &fileSession{store: store}
}

func (s *fileSession) write(ctx context.Context, f storage.UploadedFile, kind repair.ImageKind) (*storage.StoredFile, error) {
	stored, err := s.store.Store(ctx, f, kind)
	if err != nil {
		return nil, err
	}
	s.written = append(s.written, stored.Path)
	return stored, nil
}

func (s *fileSession) removeAfterCommit(paths ...string) {
	s.doomed = append(s.doomed, paths...)
}

// rollback deletes everything written in this attempt.
func (s *fileSession) rollback() {
	for _, p := range s.written {
		s.store.Delete(p)
	}
	s.reset()
}

// commit unlinks the files whose rows were removed.
func (s *fileSession) commit() {
	for _, rc := range s.reconciles {
		s.store.Reconcile(rc.existing, rc.keep)
	}
	for _, p := range s.doomed {
		s.store.Delete(p)
	}
	s.reset()
}

func (s *fileSession) reset() {
	s.written, s.doomed, s.reconciles = nil, nil, nil
}

func validateUploads(store ImageStore, files []storage.UploadedFile) error {
	for _, f := range files {
		if err := store.Validate(f); err != nil {
			return err
		}
	}
	return nil
}

// attachImages stores files and inserts one image row per file.
func attachImages(
	ctx context.Context,
	images repair.ImageRepository,
	session *fileSession,
	repairID uint,
	kind repair.ImageKind,
	files []storage.UploadedFile,
) error {
	for _, f := range files {
		stored, err := session.write(ctx, f, kind)
		if err != nil {
			return err
		}
		img, err := repair.NewImage(repairID, kind, stored.Path, stored.OriginalName, stored.Size)
		if err != nil {
			return err
		}
		if err := images.Create(ctx, img); err != nil {
			return err
		}
	}
	return nil
}

// reconcileImages deletes the rows of images keep does not retain and
// schedules their files for removal after commit. It reports how many rows
// were removed.
func reconcileImages(
	ctx context.Context,
	images repair.ImageRepository,
	session *fileSession,
	repairID uint,
	kind repair.ImageKind,
	keep repair.KeepSet,
) (int, error) {
	if !keep.Applies() {
		return 0, nil
	}
	existing, err := images.ListByRepair(ctx, repairID, kind)
	if err != nil {
		return 0, err
	}
	removed := repair.Unkept(existing, keep)
	if len(removed) == 0 {
		return 0, nil
	}

	ids := make([]uint, len(removed))
	for i, img := range removed {
		ids[i] = img.ID()
	}
	if err := images.DeleteByIDs(ctx, kind, ids); err != nil {
		return 0, err
	}
	session.reconciles = append(session.reconciles, pendingReconcile{existing: existing, keep: keep})
	return len(removed), nil
}
