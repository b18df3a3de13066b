package usecases

import (
	"context"

	"repairdesk/internal/application/setting/dto"
	"repairdesk/internal/domain/setting"
	"repairdesk/internal/shared/logger"
)

// GetTelegramSettingsExecutor defines the interface for reading the Telegram settings.
type GetTelegramSettingsExecutor interface {
	Execute(ctx context.Context) (*dto.TelegramSettingsResponse, error)
}

// GetTelegramSettingsUseCase returns the merged Telegram configuration the
// notifier would use right now.
type GetTelegramSettingsUseCase struct {
	provider setting.SettingProvider
	logger   logger.Interface
}

func NewGetTelegramSettingsUseCase(provider setting.SettingProvider, logger logger.Interface) *GetTelegramSettingsUseCase {
	return &GetTelegramSettingsUseCase{
		provider: provider,
		logger:   logger,
	}
}

func (uc *GetTelegramSettingsUseCase) Execute(ctx context.Context) (*dto.TelegramSettingsResponse, error) {
	cfg := uc.provider.GetTelegramConfig(ctx)

	return &dto.TelegramSettingsResponse{
		Enabled:     cfg.Enabled,
		BotToken:    dto.MaskSensitiveValue(cfg.BotToken),
		GroupChatID: cfg.GroupChatID,
		Configured:  cfg.IsConfigured(),
	}, nil
}
