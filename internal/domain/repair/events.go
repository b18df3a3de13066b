package repair

import (
	"encoding/json"
	"fmt"

	"repairdesk/internal/domain/shared/events"
	"repairdesk/internal/shared/constants"
)

// CreatedEvent announces a newly submitted repair.
type CreatedEvent struct {
	events.BaseEvent
}

func NewCreatedEvent(repairID uint) CreatedEvent {
	return CreatedEvent{BaseEvent: events.NewBaseEvent(constants.TaskRepairCreated, repairID)}
}

// CompletedEvent announces a transition into the completed status.
type CompletedEvent struct {
	events.BaseEvent
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ActorName string `json:"actor_name"`
}

func NewCompletedEvent(repairID uint, oldStatus, newStatus, actorName string) CompletedEvent {
	return CompletedEvent{
		BaseEvent: events.NewBaseEvent(constants.TaskRepairCompleted, repairID),
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorName: actorName,
	}
}

// DecodeEvent rebuilds a repair event from its JSON form.
func DecodeEvent(eventType string, data []byte) (events.DomainEvent, error) {
	switch eventType {
	case constants.TaskRepairCreated:
		var e CreatedEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case constants.TaskRepairCompleted:
		var e CompletedEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown repair event type: %s", eventType)
	}
}
