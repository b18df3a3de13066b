package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/persistence/mappers"
	"repairdesk/internal/infrastructure/persistence/models"
	"repairdesk/internal/shared/db"
)

// RepairImageRepository stores both image kinds, each in its own table.
type RepairImageRepository struct {
	db     *gorm.DB
	mapper mappers.RepairMapper
}

func NewRepairImageRepository(db *gorm.DB) *RepairImageRepository {
	return &RepairImageRepository{
		db:     db,
		mapper: mappers.NewRepairMapper(),
	}
}

func (r *RepairImageRepository) Create(ctx context.Context, img *repair.Image) error {
	tx := db.GetTxFromContext(ctx, r.db)

	switch img.Kind() {
	case repair.ImageKindRepair:
		model := r.mapper.RepairImageToModel(img)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save repair image: %w", err)
		}
		return img.SetID(model.ID)
	case repair.ImageKindCompletion:
		model := r.mapper.CompletionImageToModel(img)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save completion image: %w", err)
		}
		return img.SetID(model.ID)
	default:
		return fmt.Errorf("unknown image kind: %s", img.Kind())
	}
}

func (r *RepairImageRepository) ListByRepair(ctx context.Context, repairID uint, kind repair.ImageKind) ([]*repair.Image, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	switch kind {
	case repair.ImageKindRepair:
		var rows []models.RepairImageModel
		if err := tx.Where("repair_id = ?", repairID).Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list repair images: %w", err)
		}
		images := make([]*repair.Image, len(rows))
		for i := range rows {
			images[i] = r.mapper.RepairImageToDomain(&rows[i])
		}
		return images, nil
	case repair.ImageKindCompletion:
		var rows []models.CompletionImageModel
		if err := tx.Where("repair_id = ?", repairID).Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list completion images: %w", err)
		}
		images := make([]*repair.Image, len(rows))
		for i := range rows {
			images[i] = r.mapper.CompletionImageToDomain(&rows[i])
		}
		return images, nil
	default:
		return nil, fmt.Errorf("unknown image kind: %s", kind)
	}
}

func (r *RepairImageRepository) DeleteByIDs(ctx context.Context, kind repair.ImageKind, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	var model interface{}
	switch kind {
	case repair.ImageKindRepair:
		model = &models.RepairImageModel{}
	case repair.ImageKindCompletion:
		model = &models.CompletionImageModel{}
	default:
		return fmt.Errorf("unknown image kind: %s", kind)
	}

	if err := tx.Where("id IN ?", ids).Delete(model).Error; err != nil {
		return fmt.Errorf("failed to delete %s images: %w", kind, err)
	}
	return nil
}

// ListFilePaths returns the stored path of every image of either kind plus
// the legacy single image path of each repair that still has one.
func (r *RepairImageRepository) ListFilePaths(ctx context.Context) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db).WithContext(ctx)

	var repairPaths, completionPaths, legacyPaths []string
	if err := tx.Model(&models.RepairImageModel{}).Pluck("file_path", &repairPaths).Error; err != nil {
		return nil, fmt.Errorf("failed to list repair image paths: %w", err)
	}
	if err := tx.Model(&models.CompletionImageModel{}).Pluck("file_path", &completionPaths).Error; err != nil {
		return nil, fmt.Errorf("failed to list completion image paths: %w", err)
	}
	if err := tx.Model(&models.RepairModel{}).
		Where("image_path IS NOT NULL AND image_path <> ''").
		Pluck("image_path", &legacyPaths).Error; err != nil {
		return nil, fmt.Errorf("failed to list legacy image paths: %w", err)
	}

	paths := make([]string, 0, len(repairPaths)+len(completionPaths)+len(legacyPaths))
	paths = append(paths, repairPaths...)
	paths = append(paths, completionPaths...)
	return append(paths, legacyPaths...), nil
}
