// Package notification turns committed repair changes into queued
// notification tasks and delivers them from the queue workers.
package notification

import (
	"context"

	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/domain/shared/events"
	"repairdesk/internal/shared/logger"
)

// Service implements repair.Notifier by publishing events. It never blocks
// on delivery; a rejected task is logged and dropped.
type Service struct {
	publisher events.EventPublisher
	logger    logger.Interface
}

var _ repair.Notifier = (*Service)(nil)

func NewService(publisher events.EventPublisher, log logger.Interface) *Service {
	return &Service{publisher: publisher, logger: log}
}

func (s *Service) RepairCreated(ctx context.Context, repairID uint) {
	s.publish(repair.NewCreatedEvent(repairID))
}

func (s *Service) RepairCompleted(ctx context.Context, repairID uint, oldStatus, newStatus vo.Status, actorName string) {
	s.publish(repair.NewCompletedEvent(repairID, oldStatus.String(), newStatus.String(), actorName))
}

func (s *Service) publish(event events.DomainEvent) {
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Warnw("notification task dropped",
			"task", event.GetEventType(),
			"repair_id", event.GetAggregateID(),
			"error", err,
		)
	}
}
