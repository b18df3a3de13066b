package dto

// TelegramSettingsResponse is the effective Telegram configuration.
// The bot token is never returned in clear text.
type TelegramSettingsResponse struct {
	Enabled     bool   `json:"enabled"`
	BotToken    string `json:"bot_token"` // masked display
	GroupChatID int64  `json:"group_chat_id"`
	Configured  bool   `json:"configured"`
}

// UpdateTelegramSettingsRequest updates the stored Telegram settings.
// Nil fields are left unchanged; an empty bot token clears the stored row so
// the file/environment value applies again.
type UpdateTelegramSettingsRequest struct {
	Enabled     *bool   `json:"enabled"`
	BotToken    *string `json:"bot_token"`
	GroupChatID *int64  `json:"group_chat_id"`
}

// IsEmpty reports whether the request carries no field to update.
func (r UpdateTelegramSettingsRequest) IsEmpty() bool {
	return r.Enabled == nil && r.BotToken == nil && r.GroupChatID == nil
}

// MaskSensitiveValue masks a sensitive value for display
// Returns "***...***" format for non-empty values
func MaskSensitiveValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 6 {
		return "***"
	}
	return "***...***"
}
