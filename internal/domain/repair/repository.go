package repair

import (
	"context"

	vo "repairdesk/internal/domain/repair/valueobjects"
)

// Repository persists the Repair aggregate.
type Repository interface {
	Create(ctx context.Context, r *Repair) error
	// Update writes r if its stored version is r.Version()-1, otherwise it
	// returns ErrVersionConflict.
	Update(ctx context.Context, r *Repair) error
	// Delete removes the repair and its completion images, repair images and
	// status history, in that order. version must match the stored row.
	Delete(ctx context.Context, id uint, version int) error
	GetByID(ctx context.Context, id uint) (*Repair, error)
}

type ImageRepository interface {
	Create(ctx context.Context, img *Image) error
	ListByRepair(ctx context.Context, repairID uint, kind ImageKind) ([]*Image, error)
	DeleteByIDs(ctx context.Context, kind ImageKind, ids []uint) error
}

type HistoryRepository interface {
	Append(ctx context.Context, e *StatusHistoryEntry) error
	// ListByRepair returns entries newest first.
	ListByRepair(ctx context.Context, repairID uint) ([]*StatusHistoryEntry, error)
}

// ListFilter narrows a listing. Nil fields are not applied. PageSize zero
// returns every matching row.
type ListFilter struct {
	Status      *vo.Status
	CategoryID  *uint
	Priority    *vo.Priority
	RequesterID *uint
	Page        int
	PageSize    int
}

// QueryRepository serves the read side with related names already joined.
type QueryRepository interface {
	List(ctx context.Context, filter ListFilter) ([]*RepairView, int64, error)
	GetView(ctx context.Context, id uint) (*RepairView, error)
}
