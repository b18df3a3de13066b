package usecases

import (
	"context"
	"strconv"
	"strings"

	"repairdesk/internal/application/setting/dto"
	"repairdesk/internal/domain/setting"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
)

// UpdateTelegramSettingsExecutor defines the interface for updating the Telegram settings.
type UpdateTelegramSettingsExecutor interface {
	Execute(ctx context.Context, req dto.UpdateTelegramSettingsRequest) (*dto.TelegramSettingsResponse, error)
}

// TransactionManager runs fn in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UpdateTelegramSettingsUseCase stores Telegram overrides. The notifier reads
// them on its next send.
type UpdateTelegramSettingsUseCase struct {
	txMgr       TransactionManager
	settingRepo setting.Repository
	getUC       *GetTelegramSettingsUseCase
	logger      logger.Interface
}

func NewUpdateTelegramSettingsUseCase(
	txMgr TransactionManager,
	settingRepo setting.Repository,
	provider setting.SettingProvider,
	logger logger.Interface,
) *UpdateTelegramSettingsUseCase {
	return &UpdateTelegramSettingsUseCase{
		txMgr:       txMgr,
		settingRepo: settingRepo,
		getUC:       NewGetTelegramSettingsUseCase(provider, logger),
		logger:      logger,
	}
}

func (uc *UpdateTelegramSettingsUseCase) Execute(ctx context.Context, req dto.UpdateTelegramSettingsRequest) (*dto.TelegramSettingsResponse, error) {
	if req.IsEmpty() {
		return nil, errors.NewValidationError("at least one telegram setting must be provided")
	}

	rows, err := telegramRows(req)
	if err != nil {
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, s := range rows {
			if err := uc.settingRepo.Upsert(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update telegram settings", "error", err)
		return nil, errors.NewInternalError("failed to update telegram settings")
	}

	uc.logger.Infow("telegram settings updated",
		"enabled_changed", req.Enabled != nil,
		"bot_token_changed", req.BotToken != nil,
		"group_chat_id_changed", req.GroupChatID != nil,
	)

	return uc.getUC.Execute(ctx)
}

func telegramRows(req dto.UpdateTelegramSettingsRequest) ([]*setting.SystemSetting, error) {
	type entry struct {
		key         string
		valueType   setting.ValueType
		value       string
		description string
	}

	var entries []entry
	if req.Enabled != nil {
		entries = append(entries, entry{
			setting.KeyTelegramEnabled, setting.ValueTypeBool,
			strconv.FormatBool(*req.Enabled), "Send repair notifications to Telegram",
		})
	}
	if req.BotToken != nil {
		token := strings.TrimSpace(*req.BotToken)
		if strings.ContainsAny(token, " /") {
			return nil, errors.NewValidationError("invalid bot token")
		}
		entries = append(entries, entry{
			setting.KeyTelegramBotToken, setting.ValueTypeString,
			token, "Telegram bot API token",
		})
	}
	if req.GroupChatID != nil {
		entries = append(entries, entry{
			setting.KeyTelegramGroupChatID, setting.ValueTypeInt,
			strconv.FormatInt(*req.GroupChatID, 10), "Chat that receives repair notifications",
		})
	}

	rows := make([]*setting.SystemSetting, 0, len(entries))
	for _, e := range entries {
		s, err := setting.NewSystemSetting(constants.SettingCategoryTelegram, e.key, e.valueType, e.value, e.description)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		rows = append(rows, s)
	}
	return rows, nil
}
