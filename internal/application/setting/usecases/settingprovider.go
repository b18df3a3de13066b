package usecases

import (
	"context"

	"repairdesk/internal/domain/setting"
	sharedConfig "repairdesk/internal/shared/config"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/logger"
)

// SettingProvider provides hot-reloadable configuration with database-first, env-fallback logic
type SettingProvider struct {
	settingRepo    setting.Repository
	telegramConfig sharedConfig.TelegramConfig
	logger         logger.Interface
}

var _ setting.SettingProvider = (*SettingProvider)(nil)

// NewSettingProvider creates a new SettingProvider
func NewSettingProvider(
	settingRepo setting.Repository,
	telegramConfig sharedConfig.TelegramConfig,
	logger logger.Interface,
) *SettingProvider {
	return &SettingProvider{
		settingRepo:    settingRepo,
		telegramConfig: telegramConfig,
		logger:         logger,
	}
}

// GetTelegramConfig returns the merged Telegram configuration.
// Database values take precedence over file and environment values and are
// read on every call. Malformed rows are skipped with a warning.
func (p *SettingProvider) GetTelegramConfig(ctx context.Context) sharedConfig.TelegramConfig {
	config := p.telegramConfig

	settings, err := p.settingRepo.GetByCategory(ctx, constants.SettingCategoryTelegram)
	if err != nil {
		p.logger.Warnw("failed to get telegram settings from database, using env config",
			"error", err,
		)
		return config
	}

	for _, s := range settings {
		if !s.HasValue() {
			continue
		}
		switch s.Key() {
		case setting.KeyTelegramEnabled:
			v, err := s.GetBoolValue()
			if err != nil {
				p.logger.Warnw("ignoring invalid telegram setting", "key", s.Key(), "error", err)
				continue
			}
			config.Enabled = v
		case setting.KeyTelegramBotToken:
			config.BotToken = s.Value()
		case setting.KeyTelegramGroupChatID:
			v, err := s.GetInt64Value()
			if err != nil {
				p.logger.Warnw("ignoring invalid telegram setting", "key", s.Key(), "error", err)
				continue
			}
			config.GroupChatID = v
		}
	}

	return config
}
