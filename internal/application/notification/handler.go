package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairdesk/internal/domain/directory"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/domain/setting"
	"repairdesk/internal/domain/shared/events"
	"repairdesk/internal/infrastructure/telegram"
	"repairdesk/internal/shared/authorization"
	sharedConfig "repairdesk/internal/shared/config"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/logger"
)

// Sender delivers rendered notifications.
type Sender interface {
	NotifyNewRequest(ctx context.Context, cfg sharedConfig.TelegramConfig, p telegram.RequestPayload) error
	NotifyStatusUpdate(ctx context.Context, cfg sharedConfig.TelegramConfig, p telegram.RequestPayload, oldStatus, newStatus, actorName string) error
}

// Handler assembles notification payloads from current data and sends them.
// Every task is logged once with its outcome; errors stop here.
type Handler struct {
	queries  repair.QueryRepository
	users    directory.UserRepository
	settings setting.SettingProvider
	sender   Sender
	logger   logger.Interface
}

func NewHandler(
	queries repair.QueryRepository,
	users directory.UserRepository,
	settings setting.SettingProvider,
	sender Sender,
	log logger.Interface,
) *Handler {
	return &Handler{
		queries:  queries,
		users:    users,
		settings: settings,
		sender:   sender,
		logger:   log,
	}
}

// Register subscribes the handler to every repair notification task.
func (h *Handler) Register(sub events.EventSubscriber) error {
	if err := sub.Subscribe(constants.TaskRepairCreated, events.NewSimpleEventHandler(constants.TaskRepairCreated, h.handle)); err != nil {
		return err
	}
	return sub.Subscribe(constants.TaskRepairCompleted, events.NewSimpleEventHandler(constants.TaskRepairCompleted, h.handle))
}

func (h *Handler) handle(ctx context.Context, event events.DomainEvent) error {
	start := time.Now()
	var err error

	switch e := event.(type) {
	case repair.CreatedEvent:
		err = h.handleCreated(ctx, e)
	case repair.CompletedEvent:
		err = h.handleCompleted(ctx, e)
	default:
		err = fmt.Errorf("unsupported event %T", event)
	}

	fields := []interface{}{
		"task", event.GetEventType(),
		"repair_id", event.GetAggregateID(),
		"duration", time.Since(start),
	}
	switch {
	case err == nil:
		h.logger.Infow("notification task handled", fields...)
	case errors.Is(err, repair.ErrNotFound):
		h.logger.Warnw("notification task skipped, repair no longer exists", fields...)
	default:
		h.logger.Errorw("notification task failed", append(fields, "error", err)...)
	}
	return nil
}

func (h *Handler) handleCreated(ctx context.Context, e repair.CreatedEvent) error {
	view, err := h.queries.GetView(ctx, e.GetAggregateID())
	if err != nil {
		return err
	}

	staff, err := h.users.ListNotifiable(ctx, authorization.PrivilegedRoles())
	if err != nil {
		return fmt.Errorf("failed to load recipients: %w", err)
	}

	p := payloadFromView(view, len(view.Images))
	for _, u := range staff {
		if u.TelegramChatID != nil {
			p.Recipients = append(p.Recipients, *u.TelegramChatID)
		}
	}

	return h.sender.NotifyNewRequest(ctx, h.settings.GetTelegramConfig(ctx), p)
}

func (h *Handler) handleCompleted(ctx context.Context, e repair.CompletedEvent) error {
	view, err := h.queries.GetView(ctx, e.GetAggregateID())
	if err != nil {
		return err
	}

	p := payloadFromView(view, len(view.CompletionImages))
	return h.sender.NotifyStatusUpdate(ctx, h.settings.GetTelegramConfig(ctx), p, e.OldStatus, e.NewStatus, e.ActorName)
}

func payloadFromView(v *repair.RepairView, imageCount int) telegram.RequestPayload {
	p := telegram.RequestPayload{
		RepairID:      v.ID,
		Title:         v.Title,
		Description:   v.Description,
		Location:      v.Location,
		Priority:      v.Priority,
		CategoryName:  v.CategoryName,
		RequesterName: v.RequesterName,
		ImageCount:    imageCount,
	}
	if v.CompletionDetails != nil {
		p.CompletionDetails = *v.CompletionDetails
	}
	return p
}
