// Package telegram pushes repair notifications through the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"

	sharedConfig "repairdesk/internal/shared/config"
	"repairdesk/internal/shared/logger"
)

// RequestPayload is the repair data rendered into a notification.
type RequestPayload struct {
	RepairID          uint
	Title             string
	Description       string
	Location          string
	Priority          string
	CategoryName      string
	RequesterName     string
	CompletionDetails string
	ImageCount        int
	// Recipients are the private chats that receive new request messages.
	Recipients []int64
}

// Dispatcher formats and sends notifications. It holds no configuration:
// every call receives the current TelegramConfig.
type Dispatcher struct {
	client *Client
	logger logger.Interface
}

func NewDispatcher(client *Client, log logger.Interface) *Dispatcher {
	return &Dispatcher{client: client, logger: log}
}

// NotifyNewRequest sends the new request message to every recipient. A
// failed recipient does not stop the others; all failures are returned.
func (d *Dispatcher) NotifyNewRequest(ctx context.Context, cfg sharedConfig.TelegramConfig, p RequestPayload) error {
	if !cfg.IsConfigured() {
		d.logger.Debugw("telegram not configured, skipping new request notification", "repair_id", p.RepairID)
		return nil
	}
	if len(p.Recipients) == 0 {
		d.logger.Debugw("no recipients for new request notification", "repair_id", p.RepairID)
		return nil
	}

	text := FormatNewRequest(p)
	var errs []error
	for _, chatID := range p.Recipients {
		if err := d.client.SendMessage(ctx, cfg.APIBaseURL, cfg.BotToken, chatID, text); err != nil {
			if IsBotBlocked(err) {
				d.logger.Warnw("recipient has blocked the bot", "chat_id", chatID, "repair_id", p.RepairID)
			}
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

// NotifyStatusUpdate sends a status change message to the configured group chat.
func (d *Dispatcher) NotifyStatusUpdate(ctx context.Context, cfg sharedConfig.TelegramConfig, p RequestPayload, oldStatus, newStatus, actorName string) error {
	if !cfg.IsConfigured() || cfg.GroupChatID == 0 {
		d.logger.Debugw("telegram group chat not configured, skipping status notification", "repair_id", p.RepairID)
		return nil
	}

	text := FormatStatusUpdate(p, oldStatus, newStatus, actorName)
	if err := d.client.SendMessage(ctx, cfg.APIBaseURL, cfg.BotToken, cfg.GroupChatID, text); err != nil {
		return fmt.Errorf("group chat %d: %w", cfg.GroupChatID, err)
	}
	return nil
}
