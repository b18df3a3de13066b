package repair

import (
	"context"

	vo "repairdesk/internal/domain/repair/valueobjects"
)

// Notifier schedules outbound notifications. Implementations must not block
// on delivery and never report delivery failures to the caller.
type Notifier interface {
	RepairCreated(ctx context.Context, repairID uint)
	RepairCompleted(ctx context.Context, repairID uint, oldStatus, newStatus vo.Status, actorName string)
}
