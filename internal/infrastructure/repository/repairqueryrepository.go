package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/persistence/models"
	"repairdesk/internal/shared/db"
)

const repairViewColumns = `r.id, r.title, r.description, r.category_id, r.location, r.priority, r.status,
	r.requester_id, r.assignee_id, r.completion_details, r.image_path, r.version,
	r.created_at, r.updated_at, r.completed_at,
	c.name AS category_name,
	u.full_name AS requester_name, u.email AS requester_email,
	a.full_name AS assignee_name`

// repairViewRow is the flat scan target of the joined query.
type repairViewRow struct {
	ID                uint
	Title             string
	Description       string
	CategoryID        uint
	Location          string
	Priority          string
	Status            string
	RequesterID       uint
	AssigneeID        *uint
	CompletionDetails *string
	ImagePath         *string
	Version           int
	CreatedAt         int64
	UpdatedAt         int64
	CompletedAt       *int64
	CategoryName      *string
	RequesterName     *string
	RequesterEmail    *string
	AssigneeName      *string
}

type historyViewRow struct {
	ID            uint
	OldStatus     string
	NewStatus     string
	Notes         *string
	ChangedBy     uint
	ChangedByName *string
	CreatedAt     int64
}

// RepairQueryRepository implements repair.QueryRepository with joined reads.
type RepairQueryRepository struct {
	db *gorm.DB
}

func NewRepairQueryRepository(db *gorm.DB) *RepairQueryRepository {
	return &RepairQueryRepository{db: db}
}

func (r *RepairQueryRepository) filtered(ctx context.Context, filter repair.ListFilter) *gorm.DB {
	var status, priority string
	if filter.Status != nil {
		status = filter.Status.String()
	}
	if filter.Priority != nil {
		priority = filter.Priority.String()
	}

	return db.GetTxFromContext(ctx, r.db).
		Table(models.RepairModel{}.TableName()+" r").
		Scopes(
			db.WhereIfSet("r.status", status),
			db.WhereIfSet("r.priority", priority),
			db.WhereIDIfSet("r.category_id", filter.CategoryID),
			db.WhereIDIfSet("r.requester_id", filter.RequesterID),
		)
}

func withNames(q *gorm.DB) *gorm.DB {
	return q.Select(repairViewColumns).
		Joins("LEFT JOIN categories c ON c.id = r.category_id").
		Joins("LEFT JOIN users u ON u.id = r.requester_id").
		Joins("LEFT JOIN users a ON a.id = r.assignee_id")
}

// List returns the filtered page newest first and the filtered total.
func (r *RepairQueryRepository) List(ctx context.Context, filter repair.ListFilter) ([]*repair.RepairView, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count repairs: %w", err)
	}

	var rows []repairViewRow
	err := withNames(r.filtered(ctx, filter)).
		Order("r.created_at DESC, r.id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list repairs: %w", err)
	}

	views := make([]*repair.RepairView, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	return views, total, nil
}

// GetView returns one repair with its images and history.
func (r *RepairQueryRepository) GetView(ctx context.Context, id uint) (*repair.RepairView, error) {
	var row repairViewRow
	result := withNames(r.filtered(ctx, repair.ListFilter{})).
		Where("r.id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get repair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repair.ErrNotFound
	}

	view := row.toView()
	tx := db.GetTxFromContext(ctx, r.db)

	var images []models.RepairImageModel
	if err := tx.Where("repair_id = ?", id).Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to load repair images: %w", err)
	}
	view.Images = make([]repair.ImageView, len(images))
	for i, m := range images {
		view.Images[i] = repair.ImageView{
			ID: m.ID, FilePath: m.FilePath, OriginalName: m.OriginalName,
			FileSize: m.FileSize, UploadedAt: time.UnixMilli(m.UploadedAt),
		}
	}

	var completion []models.CompletionImageModel
	if err := tx.Where("repair_id = ?", id).Order("id ASC").Find(&completion).Error; err != nil {
		return nil, fmt.Errorf("failed to load completion images: %w", err)
	}
	view.CompletionImages = make([]repair.ImageView, len(completion))
	for i, m := range completion {
		view.CompletionImages[i] = repair.ImageView{
			ID: m.ID, FilePath: m.FilePath, OriginalName: m.OriginalName,
			FileSize: m.FileSize, UploadedAt: time.UnixMilli(m.UploadedAt),
		}
	}

	var history []historyViewRow
	err := tx.Table(models.StatusHistoryModel{}.TableName()+" h").
		Select("h.id, h.old_status, h.new_status, h.notes, h.changed_by, u.full_name AS changed_by_name, h.created_at").
		Joins("LEFT JOIN users u ON u.id = h.changed_by").
		Where("h.repair_id = ?", id).
		Order("h.created_at DESC, h.id DESC").
		Scan(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	view.History = make([]repair.HistoryView, len(history))
	for i, h := range history {
		view.History[i] = repair.HistoryView{
			ID:            h.ID,
			OldStatus:     h.OldStatus,
			NewStatus:     h.NewStatus,
			Notes:         h.Notes,
			ChangedBy:     h.ChangedBy,
			ChangedByName: deref(h.ChangedByName),
			CreatedAt:     time.UnixMilli(h.CreatedAt),
		}
	}

	return view, nil
}

func (row *repairViewRow) toView() *repair.RepairView {
	v := &repair.RepairView{
		ID:                row.ID,
		Title:             row.Title,
		Description:       row.Description,
		CategoryID:        row.CategoryID,
		CategoryName:      deref(row.CategoryName),
		Location:          row.Location,
		Priority:          row.Priority,
		Status:            row.Status,
		RequesterID:       row.RequesterID,
		RequesterName:     deref(row.RequesterName),
		RequesterEmail:    deref(row.RequesterEmail),
		AssigneeID:        row.AssigneeID,
		AssigneeName:      row.AssigneeName,
		CompletionDetails: row.CompletionDetails,
		LegacyImagePath:   row.ImagePath,
		Version:           row.Version,
		CreatedAt:         time.UnixMilli(row.CreatedAt),
		UpdatedAt:         time.UnixMilli(row.UpdatedAt),
	}
	if row.CompletedAt != nil {
		t := time.UnixMilli(*row.CompletedAt)
		v.CompletedAt = &t
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
