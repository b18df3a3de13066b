// Package setting provides HTTP handlers for runtime settings administration.
package setting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/application/setting/dto"
	"repairdesk/internal/application/setting/usecases"
	"repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
	"repairdesk/internal/shared/utils"
)

// SettingHandler handles system settings admin API operations
type SettingHandler struct {
	getTelegramUC    usecases.GetTelegramSettingsExecutor
	updateTelegramUC usecases.UpdateTelegramSettingsExecutor
	logger           logger.Interface
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(
	getTelegramUC usecases.GetTelegramSettingsExecutor,
	updateTelegramUC usecases.UpdateTelegramSettingsExecutor,
	logger logger.Interface,
) *SettingHandler {
	return &SettingHandler{
		getTelegramUC:    getTelegramUC,
		updateTelegramUC: updateTelegramUC,
		logger:           logger,
	}
}

// GetTelegramSettings retrieves the effective Telegram configuration
// @Summary Get Telegram notification settings
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /settings/telegram [get]
func (h *SettingHandler) GetTelegramSettings(c *gin.Context) {
	result, err := h.getTelegramUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get telegram settings", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTelegramSettings stores Telegram overrides
// @Summary Update Telegram notification settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateTelegramSettingsRequest true "Telegram settings"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /settings/telegram [put]
func (h *SettingHandler) UpdateTelegramSettings(c *gin.Context) {
	var req dto.UpdateTelegramSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update telegram settings", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateTelegramUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Telegram settings updated", result)
}
