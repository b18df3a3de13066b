package repair

import (
	"time"

	vo "repairdesk/internal/domain/repair/valueobjects"
)

// StatusHistoryEntry is an append-only record of one status change.
type StatusHistoryEntry struct {
	id        uint
	repairID  uint
	oldStatus vo.Status
	newStatus vo.Status
	notes     *string
	changedBy uint
	createdAt time.Time
}

func NewStatusHistoryEntry(repairID uint, oldStatus, newStatus vo.Status, notes *string, changedBy uint, now time.Time) *StatusHistoryEntry {
	return &StatusHistoryEntry{
		repairID:  repairID,
		oldStatus: oldStatus,
		newStatus: newStatus,
		notes:     notes,
		changedBy: changedBy,
		createdAt: now,
	}
}

func ReconstructStatusHistoryEntry(id, repairID uint, oldStatus, newStatus vo.Status, notes *string, changedBy uint, createdAt time.Time) *StatusHistoryEntry {
	return &StatusHistoryEntry{
		id:        id,
		repairID:  repairID,
		oldStatus: oldStatus,
		newStatus: newStatus,
		notes:     notes,
		changedBy: changedBy,
		createdAt: createdAt,
	}
}

func (e *StatusHistoryEntry) ID() uint             { return e.id }
func (e *StatusHistoryEntry) RepairID() uint       { return e.repairID }
func (e *StatusHistoryEntry) OldStatus() vo.Status { return e.oldStatus }
func (e *StatusHistoryEntry) NewStatus() vo.Status { return e.newStatus }
func (e *StatusHistoryEntry) Notes() *string       { return e.notes }
func (e *StatusHistoryEntry) ChangedBy() uint      { return e.changedBy }
func (e *StatusHistoryEntry) CreatedAt() time.Time { return e.createdAt }

func (e *StatusHistoryEntry) SetID(id uint) {
	e.id = id
}
