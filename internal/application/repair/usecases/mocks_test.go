package usecases

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/infrastructure/persistence/testutil"
	"repairdesk/internal/infrastructure/repository"
	"repairdesk/internal/infrastructure/storage"
	"repairdesk/internal/shared/authorization"
	"repairdesk/internal/shared/db"
	"repairdesk/internal/shared/logger"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) RepairCreated(ctx context.Context, repairID uint) {
	m.Called(ctx, repairID)
}

func (m *mockNotifier) RepairCompleted(ctx context.Context, repairID uint, oldStatus, newStatus vo.Status, actorName string) {
	m.Called(ctx, repairID, oldStatus, newStatus, actorName)
}

// flakyImageRepository fails Create after allow successful inserts.
type flakyImageRepository struct {
	repair.ImageRepository
	allow int
}

var errImageInsert = errors.New("image insert failed")

func (r *flakyImageRepository) Create(ctx context.Context, img *repair.Image) error {
	if r.allow == 0 {
		return errImageInsert
	}
	r.allow--
	return r.ImageRepository.Create(ctx, img)
}

type fixture struct {
	db       *gorm.DB
	store    *storage.ImageStore
	notifier *mockNotifier

	txMgr      *db.TransactionManager
	repairs    *repository.RepairRepository
	images     repair.ImageRepository
	history    *repository.StatusHistoryRepository
	queries    *repository.RepairQueryRepository
	users      *repository.UserRepository
	categories *repository.CategoryRepository

	requester repair.Actor
	stranger  repair.Actor
	tech      repair.Actor
	admin     repair.Actor
	category  uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.NewTestDB(t)
	log := logger.NewNopLogger()

	f := &fixture{
		db:         gdb,
		store:      storage.NewImageStore(t.TempDir(), log),
		notifier:   new(mockNotifier),
		txMgr:      db.NewTransactionManager(gdb),
		repairs:    repository.NewRepairRepository(gdb, log),
		images:     repository.NewRepairImageRepository(gdb),
		history:    repository.NewStatusHistoryRepository(gdb),
		queries:    repository.NewRepairQueryRepository(gdb),
		users:      repository.NewUserRepository(gdb),
		categories: repository.NewCategoryRepository(gdb),
		category:   testutil.SeedCategory(t, gdb, "Plumbing"),
	}
	f.requester = f.seedActor(t, "Alice Resident", "alice@example.com", authorization.RoleUser)
	f.stranger = f.seedActor(t, "Bob Resident", "bob@example.com", authorization.RoleUser)
	f.tech = f.seedActor(t, "Tom Tech", "tom@example.com", authorization.RoleTechnician)
	f.admin = f.seedActor(t, "Ada Admin", "ada@example.com", authorization.RoleAdmin)
	return f
}

func (f *fixture) seedActor(t *testing.T, name, email string, role authorization.UserRole) repair.Actor {
	id := testutil.SeedUser(t, f.db, name, email, role.String(), nil)
	return repair.Actor{UserID: id, Role: role, FullName: name}
}

func (f *fixture) createUseCase() *CreateRepairUseCase {
	return NewCreateRepairUseCase(f.txMgr, f.repairs, f.images, f.queries, f.categories, f.store, f.notifier, logger.NewNopLogger())
}

func (f *fixture) updateUseCase(mode repair.KeepListMode) *UpdateRepairUseCase {
	return NewUpdateRepairUseCase(f.txMgr, f.repairs, f.images, f.queries, f.categories, f.store, mode, logger.NewNopLogger())
}

func (f *fixture) statusUseCase() *UpdateRepairStatusUseCase {
	return f.statusUseCaseWithMode(repair.KeepListLenient)
}

func (f *fixture) statusUseCaseWithMode(mode repair.KeepListMode) *UpdateRepairStatusUseCase {
	return NewUpdateRepairStatusUseCase(f.txMgr, f.repairs, f.images, f.history, f.queries, f.users, f.store, f.notifier, mode, logger.NewNopLogger())
}

func (f *fixture) deleteUseCase() *DeleteRepairUseCase {
	return NewDeleteRepairUseCase(f.txMgr, f.repairs, f.images, f.store, logger.NewNopLogger())
}

// create submits a repair as the requester with the given images.
func (f *fixture) create(t *testing.T, names ...string) uint {
	t.Helper()
	f.notifier.On("RepairCreated", mock.Anything, mock.Anything).Return().Maybe()

	files := make([]storage.UploadedFile, len(names))
	for i, n := range names {
		files[i] = jpeg(n)
	}
	result, err := f.createUseCase().Execute(context.Background(), CreateRepairCommand{
		Actor:       f.requester,
		Title:       "Leaky faucet",
		Description: "Drips all night",
		CategoryID:  f.category,
		Location:    "Room 204",
		Priority:    "medium",
		Images:      files,
	})
	require.NoError(t, err)
	return result.ID
}

func (f *fixture) exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(f.store.Root(), filepath.FromSlash(relPath)))
	return err == nil
}

// filesIn lists the names stored under one purpose directory.
func (f *fixture) filesIn(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.store.Root(), dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func jpeg(name string) storage.UploadedFile {
	return upload(name, "image/jpeg")
}

// imageHeads are minimal file heads that content detection recognises.
var imageHeads = map[string]string{
	"image/jpeg": "\xff\xd8\xff\xe0\x00\x10JFIF\x00",
	"image/png":  "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR",
	"image/gif":  "GIF89a",
	"image/webp": "RIFF\x24\x00\x00\x00WEBPVP8 ",
}

func upload(name, contentType string) storage.UploadedFile {
	return rawUpload(name, contentType, []byte(imageHeads[contentType]+"image:"+name))
}

func rawUpload(name, contentType string, body []byte) storage.UploadedFile {
	return storage.UploadedFile{
		OriginalName: name,
		ContentType:  contentType,
		Size:         int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
