package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/infrastructure/persistence/testutil"
	"repairdesk/internal/infrastructure/storage"
	"repairdesk/internal/shared/constants"
	apperrors "repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
	"repairdesk/internal/shared/services/markdown"
)

func (f *fixture) get(t *testing.T, id uint) *dto.RepairDTO {
	t.Helper()
	result, err := NewGetRepairUseCase(f.queries, markdown.NewMarkdownService(), logger.NewNopLogger()).
		Execute(context.Background(), GetRepairQuery{Actor: f.admin, RepairID: id})
	require.NoError(t, err)
	return result
}

func TestCreateRepair_ThenGetReturnsPendingWithUploads(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("RepairCreated", mock.Anything, mock.Anything).Return().Once()

	result, err := f.createUseCase().Execute(context.Background(), CreateRepairCommand{
		Actor:       f.requester,
		Title:       "Leaky faucet",
		Description: "Drips all night",
		CategoryID:  f.category,
		Location:    "Room 204",
		Priority:    "medium",
		Images:      []storage.UploadedFile{jpeg("imgA.jpg"), upload("b.png", "image/png")},
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", result.Status)
	assert.Nil(t, result.AssigneeID)
	assert.Equal(t, "Plumbing", result.CategoryName)
	assert.Equal(t, "Alice Resident", result.RequesterName)
	require.Len(t, result.Images, 2)
	assert.Equal(t, "imgA.jpg", result.Images[0].OriginalName)
	assert.Equal(t, "b.png", result.Images[1].OriginalName)
	for _, img := range result.Images {
		assert.True(t, f.exists(img.FilePath), img.FilePath)
		assert.Contains(t, img.FilePath, constants.DirRepairImages+"/")
	}

	f.notifier.AssertCalled(t, "RepairCreated", mock.Anything, result.ID)
}

func TestCreateRepair_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cmd *CreateRepairCommand)
		wantType apperrors.ErrorType
	}{
		{"missing title", func(c *CreateRepairCommand) { c.Title = "  " }, apperrors.ErrorTypeValidation},
		{"missing description", func(c *CreateRepairCommand) { c.Description = "" }, apperrors.ErrorTypeValidation},
		{"missing category", func(c *CreateRepairCommand) { c.CategoryID = 0 }, apperrors.ErrorTypeValidation},
		{"missing location", func(c *CreateRepairCommand) { c.Location = "" }, apperrors.ErrorTypeValidation},
		{"missing priority", func(c *CreateRepairCommand) { c.Priority = "" }, apperrors.ErrorTypeValidation},
		{"unknown priority", func(c *CreateRepairCommand) { c.Priority = "whenever" }, apperrors.ErrorTypeValidation},
		{"unknown category", func(c *CreateRepairCommand) { c.CategoryID = 999 }, apperrors.ErrorTypeNotFound},
		{"pdf upload", func(c *CreateRepairCommand) {
			c.Images = []storage.UploadedFile{jpeg("ok.jpg"), upload("doc.pdf", "application/pdf")}
		}, apperrors.ErrorTypeUnsupportedMediaType},
		{"jpeg named as gif but sent as text", func(c *CreateRepairCommand) {
			c.Images = []storage.UploadedFile{upload("photo.gif", "text/plain")}
		}, apperrors.ErrorTypeUnsupportedMediaType},
		{"html content behind jpeg name and type", func(c *CreateRepairCommand) {
			c.Images = []storage.UploadedFile{jpeg("ok.jpg"), rawUpload("evil.jpg", "image/jpeg", []byte("<html><body>hi</body></html>"))}
		}, apperrors.ErrorTypeUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cmd := CreateRepairCommand{
				Actor:       f.requester,
				Title:       "Broken light",
				Description: "Flickers",
				CategoryID:  f.category,
				Location:    "Hall",
				Priority:    "low",
				Images:      []storage.UploadedFile{jpeg("a.jpg")},
			}
			tt.mutate(&cmd)

			result, err := f.createUseCase().Execute(context.Background(), cmd)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
			assert.Zero(t, testutil.Count(t, f.db, "repair_requests", 0))
			assert.Empty(t, f.filesIn(t, constants.DirRepairImages))
			f.notifier.AssertNotCalled(t, "RepairCreated", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRepair_FailureRemovesWrittenFiles(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateRepairUseCase(f.txMgr, f.repairs, &flakyImageRepository{ImageRepository: f.images, allow: 1},
		f.queries, f.categories, f.store, f.notifier, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateRepairCommand{
		Actor:       f.requester,
		Title:       "Broken window",
		Description: "Cracked pane",
		CategoryID:  f.category,
		Location:    "Room 1",
		Priority:    "high",
		Images:      []storage.UploadedFile{jpeg("one.jpg"), jpeg("two.jpg"), jpeg("three.jpg")},
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	assert.Zero(t, testutil.Count(t, f.db, "repair_requests", 0))
	assert.Zero(t, testutil.Count(t, f.db, "repair_images", 0))
	assert.Empty(t, f.filesIn(t, constants.DirRepairImages))
	f.notifier.AssertNotCalled(t, "RepairCreated", mock.Anything, mock.Anything)
}

func TestUpdateRepairStatus_CompletionRequiresDetails(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "imgA.jpg")
	uc := f.statusUseCase()

	for _, details := range []*string{nil, ptr(""), ptr("   ")} {
		_, err := uc.Execute(context.Background(), UpdateRepairStatusCommand{
			Actor:             f.tech,
			RepairID:          id,
			Status:            "completed",
			CompletionDetails: details,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err), "got %v", err)
	}
	assert.Zero(t, testutil.Count(t, f.db, "status_history", id))

	f.notifier.On("RepairCompleted", mock.Anything, id, vo.StatusPending, vo.StatusCompleted, "Tom Tech").Return().Once()

	result, err := uc.Execute(context.Background(), UpdateRepairStatusCommand{
		Actor:             f.tech,
		RepairID:          id,
		Status:            "completed",
		CompletionDetails: ptr("Fixed"),
		Images:            []storage.UploadedFile{jpeg("after.jpg")},
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", result.Status)
	require.NotNil(t, result.CompletedAt)
	require.NotNil(t, result.CompletionDetails)
	assert.Equal(t, "Fixed", *result.CompletionDetails)
	require.Len(t, result.CompletionImages, 1)
	assert.Contains(t, result.CompletionImages[0].FilePath, constants.DirCompletionImages+"/")
	require.Len(t, result.History, 1)
	assert.Equal(t, "pending", result.History[0].OldStatus)
	assert.Equal(t, "completed", result.History[0].NewStatus)
	require.NotNil(t, result.History[0].Notes)
	assert.Equal(t, "Fixed", *result.History[0].Notes)
	assert.Equal(t, "Tom Tech", result.History[0].ChangedByName)

	f.notifier.AssertExpectations(t)
}

func TestUpdateRepairStatus_EachTransitionAppendsOneEntry(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	uc := f.statusUseCase()

	steps := []vo.Status{vo.StatusAssigned, vo.StatusInProgress, vo.StatusCancelled, vo.StatusPending, vo.StatusInProgress}
	prev := vo.StatusPending
	for i, next := range steps {
		result, err := uc.Execute(context.Background(), UpdateRepairStatusCommand{
			Actor:    f.tech,
			RepairID: id,
			Status:   next.String(),
		})
		require.NoError(t, err)
		require.Len(t, result.History, i+1)

		latest := result.History[0]
		assert.Equal(t, prev.String(), latest.OldStatus)
		assert.Equal(t, next.String(), latest.NewStatus)
		assert.Nil(t, latest.Notes)
		prev = next
	}
	f.notifier.AssertNotCalled(t, "RepairCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRepairStatus_AssigneeAndOmittedFields(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	uc := f.statusUseCase()

	result, err := uc.Execute(context.Background(), UpdateRepairStatusCommand{
		Actor:      f.admin,
		RepairID:   id,
		Status:     "assigned",
		AssigneeID: &f.tech.UserID,
	})
	require.NoError(t, err)
	require.NotNil(t, result.AssigneeID)
	assert.Equal(t, f.tech.UserID, *result.AssigneeID)
	require.NotNil(t, result.AssigneeName)
	assert.Equal(t, "Tom Tech", *result.AssigneeName)

	result, err = uc.Execute(context.Background(), UpdateRepairStatusCommand{
		Actor:    f.tech,
		RepairID: id,
		Status:   "in_progress",
	})
	require.NoError(t, err)
	require.NotNil(t, result.AssigneeID, "omitted assignee must be left unchanged")
	assert.Equal(t, f.tech.UserID, *result.AssigneeID)

	_, err = uc.Execute(context.Background(), UpdateRepairStatusCommand{
		Actor:      f.admin,
		RepairID:   id,
		Status:     "assigned",
		AssigneeID: ptr(uint(4242)),
	})
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}

func TestUpdateRepairStatus_Rejections(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	uc := f.statusUseCase()

	_, err := uc.Execute(context.Background(), UpdateRepairStatusCommand{Actor: f.requester, RepairID: id, Status: "assigned"})
	assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)

	_, err = uc.Execute(context.Background(), UpdateRepairStatusCommand{Actor: f.tech, RepairID: 9999, Status: "assigned"})
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)

	_, err = uc.Execute(context.Background(), UpdateRepairStatusCommand{Actor: f.tech, RepairID: id, Status: "done"})
	assert.True(t, apperrors.IsValidationError(err), "got %v", err)

	_, err = uc.Execute(context.Background(), UpdateRepairStatusCommand{
		Actor:    f.tech,
		RepairID: id,
		Status:   "assigned",
		Images:   []storage.UploadedFile{jpeg("early.jpg")},
	})
	assert.True(t, apperrors.IsValidationError(err), "got %v", err)

	assert.Zero(t, testutil.Count(t, f.db, "status_history", id))
	assert.Empty(t, f.filesIn(t, constants.DirCompletionImages))
}

func TestUpdateRepairStatus_CompletionKeepList(t *testing.T) {
	tests := []struct {
		name      string
		mode      repair.KeepListMode
		keep      func(ids []uint) string
		uploads   []storage.UploadedFile
		wantKept  int
		wantTotal int
		wantError apperrors.ErrorType
	}{
		{"empty array removes all", repair.KeepListLenient, func([]uint) string { return "[]" }, nil, 0, 0, ""},
		{"current ids remove none", repair.KeepListLenient, func(ids []uint) string {
			return fmt.Sprintf(`[%d, "%d"]`, ids[0], ids[1])
		}, nil, 2, 2, ""},
		{"subset plus new upload", repair.KeepListLenient, func(ids []uint) string {
			return fmt.Sprintf(`[{"type":"new","id":%d}]`, ids[1])
		}, []storage.UploadedFile{jpeg("again.jpg")}, 1, 2, ""},
		{"unparsable is empty when lenient", repair.KeepListLenient, func([]uint) string { return "not json" }, nil, 0, 0, ""},
		{"unparsable rejected when strict", repair.KeepListStrict, func([]uint) string { return "not json" }, nil, 2, 2, apperrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.notifier.On("RepairCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
			id := f.create(t)
			uc := f.statusUseCaseWithMode(tt.mode)

			first, err := uc.Execute(context.Background(), UpdateRepairStatusCommand{
				Actor:             f.tech,
				RepairID:          id,
				Status:            "completed",
				CompletionDetails: ptr("Replaced washer"),
				Images:            []storage.UploadedFile{jpeg("after1.jpg"), jpeg("after2.jpg")},
			})
			require.NoError(t, err)
			require.Len(t, first.CompletionImages, 2)
			ids := []uint{first.CompletionImages[0].ID, first.CompletionImages[1].ID}

			keep := tt.keep(ids)
			_, err = uc.Execute(context.Background(), UpdateRepairStatusCommand{
				Actor:                f.tech,
				RepairID:             id,
				Status:               "completed",
				CompletionDetails:    ptr("Replaced washer and seal"),
				KeepCompletionImages: &keep,
				Images:               tt.uploads,
			})
			if tt.wantError != "" {
				assert.True(t, apperrors.IsType(err, tt.wantError), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			after := f.get(t, id)
			assert.Len(t, after.CompletionImages, tt.wantTotal)
			assert.Len(t, f.filesIn(t, constants.DirCompletionImages), tt.wantTotal)
			kept := 0
			for _, img := range first.CompletionImages {
				stillThere := containsImage(after.CompletionImages, img.ID)
				assert.Equal(t, stillThere, f.exists(img.FilePath), img.FilePath)
				if stillThere {
					kept++
				}
			}
			assert.Equal(t, tt.wantKept, kept)
		})
	}
}

func TestUpdateRepair_EditPolicy(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	uc := f.updateUseCase(repair.KeepListLenient)
	ctx := context.Background()

	_, err := uc.Execute(ctx, UpdateRepairCommand{Actor: f.stranger, RepairID: id, Title: ptr("Mine now")})
	assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)

	result, err := uc.Execute(ctx, UpdateRepairCommand{Actor: f.requester, RepairID: id, Title: ptr("Leaky kitchen faucet")})
	require.NoError(t, err)
	assert.Equal(t, "Leaky kitchen faucet", result.Title)
	assert.Equal(t, "Drips all night", result.Description, "omitted fields stay unchanged")

	_, err = f.statusUseCase().Execute(ctx, UpdateRepairStatusCommand{Actor: f.tech, RepairID: id, Status: "assigned"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, UpdateRepairCommand{Actor: f.requester, RepairID: id, Title: ptr("Too late")})
	assert.True(t, apperrors.IsInvalidStateError(err), "got %v", err)

	result, err = uc.Execute(ctx, UpdateRepairCommand{Actor: f.tech, RepairID: id, Priority: ptr("urgent")})
	require.NoError(t, err)
	assert.Equal(t, "urgent", result.Priority)

	_, err = uc.Execute(ctx, UpdateRepairCommand{Actor: f.tech, RepairID: id, CategoryID: ptr(uint(77))})
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)

	_, err = uc.Execute(ctx, UpdateRepairCommand{Actor: f.tech, RepairID: 404, Title: ptr("x")})
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}

func TestUpdateRepair_KeepList(t *testing.T) {
	tests := []struct {
		name      string
		mode      repair.KeepListMode
		keep      func(ids []uint) string
		wantKept  int
		wantError apperrors.ErrorType
	}{
		{"empty array removes all", repair.KeepListLenient, func([]uint) string { return "[]" }, 0, ""},
		{"unparsable is empty when lenient", repair.KeepListLenient, func([]uint) string { return "{oops" }, 0, ""},
		{"unparsable rejected when strict", repair.KeepListStrict, func([]uint) string { return "{oops" }, 3, apperrors.ErrorTypeValidation},
		{"exact ids remove none", repair.KeepListLenient, func(ids []uint) string {
			return fmt.Sprintf(`[%d, "%d", {"type":"new","id":%d}]`, ids[0], ids[1], ids[2])
		}, 3, ""},
		{"subset", repair.KeepListLenient, func(ids []uint) string { return fmt.Sprintf("[%d]", ids[1]) }, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.create(t, "a.jpg", "b.jpg", "c.jpg")
			before := f.get(t, id)
			ids := make([]uint, len(before.Images))
			for i, img := range before.Images {
				ids[i] = img.ID
			}

			keep := tt.keep(ids)
			_, err := f.updateUseCase(tt.mode).Execute(context.Background(), UpdateRepairCommand{
				Actor:      f.requester,
				RepairID:   id,
				KeepImages: &keep,
			})
			if tt.wantError != "" {
				assert.True(t, apperrors.IsType(err, tt.wantError), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			after := f.get(t, id)
			assert.Len(t, after.Images, tt.wantKept)
			assert.Len(t, f.filesIn(t, constants.DirRepairImages), tt.wantKept)
			for _, img := range before.Images {
				kept := containsImage(after.Images, img.ID)
				assert.Equal(t, kept, f.exists(img.FilePath), img.FilePath)
			}
		})
	}
}

func TestUpdateRepair_SequentialKeepListsLeaveNoOrphans(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a.jpg", "b.jpg")
	uc := f.updateUseCase(repair.KeepListLenient)
	first := f.get(t, id).Images

	keep := fmt.Sprintf("[%d]", first[0].ID)
	_, err := uc.Execute(context.Background(), UpdateRepairCommand{
		Actor:      f.requester,
		RepairID:   id,
		KeepImages: &keep,
		Images:     []storage.UploadedFile{jpeg("c.jpg")},
	})
	require.NoError(t, err)
	second := f.get(t, id).Images
	require.Len(t, second, 2)

	var added dto.ImageDTO
	for _, img := range second {
		if img.ID != first[0].ID {
			added = img
		}
	}
	keep = fmt.Sprintf(`[{"type":"new","id":%d}]`, added.ID)
	_, err = uc.Execute(context.Background(), UpdateRepairCommand{Actor: f.requester, RepairID: id, KeepImages: &keep})
	require.NoError(t, err)

	final := f.get(t, id).Images
	require.Len(t, final, 1)
	assert.Equal(t, added.ID, final[0].ID)
	assert.Equal(t, "c.jpg", final[0].OriginalName)
	assert.ElementsMatch(t, []string{filepath.Base(added.FilePath)}, f.filesIn(t, constants.DirRepairImages))
}

func TestUpdateRepair_LegacyImage(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	legacy := "repair-images/legacy.jpg"
	require.NoError(t, os.MkdirAll(filepath.Join(f.store.Root(), constants.DirRepairImages), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(f.store.Root(), filepath.FromSlash(legacy)), []byte("old"), 0640))
	require.NoError(t, f.db.Exec("UPDATE repair_requests SET image_path = ? WHERE id = ?", legacy, id).Error)

	uc := f.updateUseCase(repair.KeepListLenient)
	keep := `[{"type":"legacy"}]`
	result, err := uc.Execute(context.Background(), UpdateRepairCommand{Actor: f.requester, RepairID: id, KeepImages: &keep})
	require.NoError(t, err)
	require.NotNil(t, result.ImagePath)
	assert.True(t, f.exists(legacy))

	keep = "[]"
	result, err = uc.Execute(context.Background(), UpdateRepairCommand{Actor: f.requester, RepairID: id, KeepImages: &keep})
	require.NoError(t, err)
	assert.Nil(t, result.ImagePath)
	assert.False(t, f.exists(legacy))
}

func TestUpdateRepair_FailureKeepsExistingImages(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a.jpg")
	before := f.get(t, id).Images

	uc := NewUpdateRepairUseCase(f.txMgr, f.repairs, &flakyImageRepository{ImageRepository: f.images},
		f.queries, f.categories, f.store, repair.KeepListLenient, logger.NewNopLogger())
	keep := "[]"
	_, err := uc.Execute(context.Background(), UpdateRepairCommand{
		Actor:      f.requester,
		RepairID:   id,
		KeepImages: &keep,
		Images:     []storage.UploadedFile{jpeg("new.jpg")},
	})
	require.Error(t, err)

	after := f.get(t, id).Images
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.True(t, f.exists(before[0].FilePath))
	assert.Len(t, f.filesIn(t, constants.DirRepairImages), 1)
}

func TestUpdateRepair_StaleVersionConflicts(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)
	uc := f.updateUseCase(repair.KeepListLenient)

	v := f.get(t, id).Version
	result, err := uc.Execute(context.Background(), UpdateRepairCommand{
		Actor: f.requester, RepairID: id, ExpectedVersion: &v, Location: ptr("Room 205"),
	})
	require.NoError(t, err)
	assert.Equal(t, v+1, result.Version)

	_, err = uc.Execute(context.Background(), UpdateRepairCommand{
		Actor: f.requester, RepairID: id, ExpectedVersion: &v, Location: ptr("Room 206"),
	})
	assert.True(t, apperrors.IsConflictError(err), "got %v", err)

	_, err = f.statusUseCase().Execute(context.Background(), UpdateRepairStatusCommand{
		Actor: f.tech, RepairID: id, ExpectedVersion: &v, Status: "assigned",
	})
	assert.True(t, apperrors.IsConflictError(err), "got %v", err)
}

func TestDeleteRepair_RemovesRowsAndFiles(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("RepairCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	id := f.create(t, "a.jpg", "b.jpg")
	_, err := f.statusUseCase().Execute(context.Background(), UpdateRepairStatusCommand{
		Actor:             f.tech,
		RepairID:          id,
		Status:            "completed",
		CompletionDetails: ptr("Replaced washer"),
		Images:            []storage.UploadedFile{jpeg("done.jpg")},
	})
	require.NoError(t, err)
	other := f.create(t, "keep.jpg")

	view := f.get(t, id)
	paths := []string{}
	for _, img := range append(view.Images, view.CompletionImages...) {
		paths = append(paths, img.FilePath)
		assert.True(t, f.exists(img.FilePath))
	}
	require.Len(t, paths, 3)

	err = f.deleteUseCase().Execute(context.Background(), DeleteRepairCommand{Actor: f.tech, RepairID: id})
	assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)

	err = f.deleteUseCase().Execute(context.Background(), DeleteRepairCommand{Actor: f.admin, RepairID: id})
	require.NoError(t, err)

	for _, table := range []string{"completion_images", "repair_images", "status_history"} {
		assert.Zero(t, testutil.Count(t, f.db, table, id), table)
	}
	var n int64
	require.NoError(t, f.db.Table("repair_requests").Where("id = ?", id).Count(&n).Error)
	assert.Zero(t, n)
	for _, p := range paths {
		assert.False(t, f.exists(p), p)
	}
	assert.Len(t, f.get(t, other).Images, 1)
	assert.Len(t, f.filesIn(t, constants.DirRepairImages), 1)

	err = f.deleteUseCase().Execute(context.Background(), DeleteRepairCommand{Actor: f.admin, RepairID: id})
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}

func TestListRepairs(t *testing.T) {
	f := newFixture(t)
	own := f.create(t)
	f.create(t)
	f.notifier.On("RepairCreated", mock.Anything, mock.Anything).Return()
	_, err := f.createUseCase().Execute(context.Background(), CreateRepairCommand{
		Actor: f.stranger, Title: "Door", Description: "Stuck", CategoryID: f.category, Location: "Lobby", Priority: "urgent",
	})
	require.NoError(t, err)
	_, err = f.statusUseCase().Execute(context.Background(), UpdateRepairStatusCommand{Actor: f.tech, RepairID: own, Status: "assigned"})
	require.NoError(t, err)

	uc := NewListRepairsUseCase(f.queries, logger.NewNopLogger())
	ctx := context.Background()

	all, err := uc.Execute(ctx, ListRepairsQuery{Actor: f.admin})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.Len(t, all.Repairs, 3)
	assert.Zero(t, all.PageSize)
	assert.Equal(t, "Door", all.Repairs[0].Title, "newest first")

	mine, err := uc.Execute(ctx, ListRepairsQuery{Actor: f.requester})
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.Total)
	for _, r := range mine.Repairs {
		assert.Equal(t, f.requester.UserID, r.RequesterID)
	}

	assigned, err := uc.Execute(ctx, ListRepairsQuery{Actor: f.tech, Status: "assigned"})
	require.NoError(t, err)
	require.Len(t, assigned.Repairs, 1)
	assert.Equal(t, own, assigned.Repairs[0].ID)

	urgent, err := uc.Execute(ctx, ListRepairsQuery{Actor: f.tech, Priority: "urgent", CategoryID: &f.category})
	require.NoError(t, err)
	assert.EqualValues(t, 1, urgent.Total)

	page, err := uc.Execute(ctx, ListRepairsQuery{Actor: f.admin, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Repairs, 2)
	assert.Equal(t, 1, page.Page)

	page, err = uc.Execute(ctx, ListRepairsQuery{Actor: f.admin, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Repairs, 1)

	page, err = uc.Execute(ctx, ListRepairsQuery{Actor: f.admin, Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, constants.MaxPageSize, page.PageSize)

	page, err = uc.Execute(ctx, ListRepairsQuery{Actor: f.admin, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultPageSize, page.PageSize)

	_, err = uc.Execute(ctx, ListRepairsQuery{Actor: f.admin, Status: "lost"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGetRepair_Visibility(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "a.jpg")
	uc := NewGetRepairUseCase(f.queries, markdown.NewMarkdownService(), logger.NewNopLogger())
	ctx := context.Background()

	result, err := uc.Execute(ctx, GetRepairQuery{Actor: f.requester, RepairID: id})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.RequesterEmail)
	assert.Equal(t, "<p>Drips all night</p>\n", result.DescriptionHTML)
	require.Len(t, result.Images, 1)
	assert.Equal(t, "/uploads/"+result.Images[0].FilePath, result.Images[0].URL)

	_, err = uc.Execute(ctx, GetRepairQuery{Actor: f.stranger, RepairID: id})
	assert.True(t, apperrors.IsForbiddenError(err), "got %v", err)

	_, err = uc.Execute(ctx, GetRepairQuery{Actor: f.tech, RepairID: id})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, GetRepairQuery{Actor: f.admin, RepairID: 31337})
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}

func containsImage(images []dto.ImageDTO, id uint) bool {
	for _, img := range images {
		if img.ID == id {
			return true
		}
	}
	return false
}
