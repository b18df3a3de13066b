package mappers

import (
	"fmt"
	"time"

	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/infrastructure/persistence/models"
)

// RepairMapper handles the conversion between repair domain entities and persistence models.
type RepairMapper interface {
	ToModel(r *repair.Repair) *models.RepairModel
	ToDomain(model *models.RepairModel) (*repair.Repair, error)

	RepairImageToModel(img *repair.Image) *models.RepairImageModel
	CompletionImageToModel(img *repair.Image) *models.CompletionImageModel
	RepairImageToDomain(model *models.RepairImageModel) *repair.Image
	CompletionImageToDomain(model *models.CompletionImageModel) *repair.Image

	HistoryToModel(e *repair.StatusHistoryEntry) *models.StatusHistoryModel
	HistoryToDomain(model *models.StatusHistoryModel) *repair.StatusHistoryEntry
}

// RepairMapperImpl is the concrete implementation of RepairMapper.
type RepairMapperImpl struct{}

func NewRepairMapper() RepairMapper {
	return &RepairMapperImpl{}
}

func (m *RepairMapperImpl) ToModel(r *repair.Repair) *models.RepairModel {
	return &models.RepairModel{
		ID:                r.ID(),
		Title:             r.Title(),
		Description:       r.Description(),
		CategoryID:        r.CategoryID(),
		Location:          r.Location(),
		Priority:          r.Priority().String(),
		Status:            r.Status().String(),
		RequesterID:       r.RequesterID(),
		AssigneeID:        r.AssigneeID(),
		CompletionDetails: r.CompletionDetails(),
		ImagePath:         r.LegacyImagePath(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt().UnixMilli(),
		UpdatedAt:         r.UpdatedAt().UnixMilli(),
		CompletedAt:       millisPtr(r.CompletedAt()),
	}
}

func (m *RepairMapperImpl) ToDomain(model *models.RepairModel) (*repair.Repair, error) {
	if model == nil {
		return nil, fmt.Errorf("repair model is nil")
	}

	return repair.ReconstructRepair(
		model.ID,
		model.Title,
		model.Description,
		model.CategoryID,
		model.Location,
		vo.Priority(model.Priority),
		vo.Status(model.Status),
		model.RequesterID,
		model.AssigneeID,
		model.CompletionDetails,
		model.ImagePath,
		model.Version,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
		timePtr(model.CompletedAt),
	)
}

func (m *RepairMapperImpl) RepairImageToModel(img *repair.Image) *models.RepairImageModel {
	return &models.RepairImageModel{
		ID:           img.ID(),
		RepairID:     img.RepairID(),
		FilePath:     img.FilePath(),
		OriginalName: img.OriginalName(),
		FileSize:     img.FileSize(),
		UploadedAt:   img.UploadedAt().UnixMilli(),
	}
}

func (m *RepairMapperImpl) CompletionImageToModel(img *repair.Image) *models.CompletionImageModel {
	return &models.CompletionImageModel{
		ID:           img.ID(),
		RepairID:     img.RepairID(),
		FilePath:     img.FilePath(),
		OriginalName: img.OriginalName(),
		FileSize:     img.FileSize(),
		UploadedAt:   img.UploadedAt().UnixMilli(),
	}
}

func (m *RepairMapperImpl) RepairImageToDomain(model *models.RepairImageModel) *repair.Image {
	return repair.ReconstructImage(model.ID, model.RepairID, repair.ImageKindRepair,
		model.FilePath, model.OriginalName, model.FileSize, time.UnixMilli(model.UploadedAt))
}

func (m *RepairMapperImpl) CompletionImageToDomain(model *models.CompletionImageModel) *repair.Image {
	return repair.ReconstructImage(model.ID, model.RepairID, repair.ImageKindCompletion,
		model.FilePath, model.OriginalName, model.FileSize, time.UnixMilli(model.UploadedAt))
}

func (m *RepairMapperImpl) HistoryToModel(e *repair.StatusHistoryEntry) *models.StatusHistoryModel {
	return &models.StatusHistoryModel{
		ID:        e.ID(),
		RepairID:  e.RepairID(),
		OldStatus: e.OldStatus().String(),
		NewStatus: e.NewStatus().String(),
		Notes:     e.Notes(),
		ChangedBy: e.ChangedBy(),
		CreatedAt: e.CreatedAt().UnixMilli(),
	}
}

func (m *RepairMapperImpl) HistoryToDomain(model *models.StatusHistoryModel) *repair.StatusHistoryEntry {
	return repair.ReconstructStatusHistoryEntry(
		model.ID,
		model.RepairID,
		vo.Status(model.OldStatus),
		vo.Status(model.NewStatus),
		model.Notes,
		model.ChangedBy,
		time.UnixMilli(model.CreatedAt),
	)
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMilli()
	return &v
}

func timePtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}
