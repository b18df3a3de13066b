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

type StatusHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.RepairMapper
}

func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{
		db:     db,
		mapper: mappers.NewRepairMapper(),
	}
}

func (r *StatusHistoryRepository) Append(ctx context.Context, e *repair.StatusHistoryEntry) error {
	model := r.mapper.HistoryToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *StatusHistoryRepository) ListByRepair(ctx context.Context, repairID uint) ([]*repair.StatusHistoryEntry, error) {
	var rows []models.StatusHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("repair_id = ?", repairID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	entries := make([]*repair.StatusHistoryEntry, len(rows))
	for i := range rows {
		entries[i] = r.mapper.HistoryToDomain(&rows[i])
	}
	return entries, nil
}
