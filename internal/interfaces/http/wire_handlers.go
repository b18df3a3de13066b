package http

import (
	repairHandlers "repairdesk/internal/interfaces/http/handlers/repair"
	settingHandlers "repairdesk/internal/interfaces/http/handlers/setting"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	repairHandler  *repairHandlers.RepairHandler
	settingHandler *settingHandlers.SettingHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	limits := repairHandlers.UploadLimits{
		MaxFileSize: c.cfg.Uploads.MaxFileSize,
		MaxFiles:    c.cfg.Uploads.MaxFiles,
	}

	return &allHandlers{
		repairHandler: repairHandlers.NewRepairHandler(
			u.createRepairUC,
			u.updateRepairUC,
			u.updateStatusUC,
			u.deleteRepairUC,
			u.listRepairsUC,
			u.getRepairUC,
			limits,
			c.log,
		),
		settingHandler: settingHandlers.NewSettingHandler(
			u.getTelegramSettingsUC,
			u.updateTelegramSettingsUC,
			c.log,
		),
	}
}
