package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/persistence/mappers"
	"repairdesk/internal/infrastructure/persistence/models"
	"repairdesk/internal/shared/db"
	"repairdesk/internal/shared/logger"
)

// RepairRepository implements repair.Repository
type RepairRepository struct {
	db     *gorm.DB
	mapper mappers.RepairMapper
	logger logger.Interface
}

func NewRepairRepository(db *gorm.DB, logger logger.Interface) *RepairRepository {
	return &RepairRepository{
		db:     db,
		mapper: mappers.NewRepairMapper(),
		logger: logger,
	}
}

func (r *RepairRepository) Create(ctx context.Context, rp *repair.Repair) error {
	model := r.mapper.ToModel(rp)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create repair: %w", err)
	}

	return rp.SetID(model.ID)
}

// Update writes every mutable column, guarded by the previous version.
func (r *RepairRepository) Update(ctx context.Context, rp *repair.Repair) error {
	model := r.mapper.ToModel(rp)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.RepairModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"title":              model.Title,
			"description":        model.Description,
			"category_id":        model.CategoryID,
			"location":           model.Location,
			"priority":           model.Priority,
			"status":             model.Status,
			"assignee_id":        model.AssigneeID,
			"completion_details": model.CompletionDetails,
			"image_path":         model.ImagePath,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
			"completed_at":       model.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update repair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("repair version mismatch on update",
			"repair_id", model.ID,
			"expected_version", model.Version-1,
		)
		return repair.ErrVersionConflict
	}

	return nil
}

// Delete removes child rows before the repair itself. Callers run it inside
// a transaction so a failed step leaves nothing half deleted.
func (r *RepairRepository) Delete(ctx context.Context, id uint, version int) error {
	tx := db.GetTxFromContext(ctx, r.db)

	children := []struct {
		model interface{}
		name  string
	}{
		{&models.CompletionImageModel{}, "completion images"},
		{&models.RepairImageModel{}, "repair images"},
		{&models.StatusHistoryModel{}, "status history"},
	}
	for _, child := range children {
		if err := tx.Where("repair_id = ?", id).Delete(child.model).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", child.name, err)
		}
	}

	result := tx.Where("id = ? AND version = ?", id, version).Delete(&models.RepairModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete repair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.RepairModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check repair: %w", err)
		}
		if count == 0 {
			return repair.ErrNotFound
		}
		return repair.ErrVersionConflict
	}

	return nil
}

func (r *RepairRepository) GetByID(ctx context.Context, id uint) (*repair.Repair, error) {
	var model models.RepairModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repair.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find repair: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
