package setting

import (
	"context"

	sharedConfig "repairdesk/internal/shared/config"
)

// Telegram setting keys stored under the telegram category.
const (
	KeyTelegramEnabled     = "enabled"
	KeyTelegramBotToken    = "bot_token"
	KeyTelegramGroupChatID = "group_chat_id"
)

// SettingProvider supplies configuration that may change at runtime.
// Infrastructure services depend on this interface so that each send reads
// the current values.
type SettingProvider interface {
	// GetTelegramConfig returns the merged Telegram configuration.
	// Database values take precedence over file and environment values.
	GetTelegramConfig(ctx context.Context) sharedConfig.TelegramConfig
}
