package http

import (
	"time"

	"repairdesk/internal/application/notification"
	"repairdesk/internal/application/repair/usecases"
	settingUsecases "repairdesk/internal/application/setting/usecases"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/storage"
	"repairdesk/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	createRepairUC *usecases.CreateRepairUseCase
	updateRepairUC *usecases.UpdateRepairUseCase
	updateStatusUC *usecases.UpdateRepairStatusUseCase
	deleteRepairUC *usecases.DeleteRepairUseCase
	listRepairsUC  *usecases.ListRepairsUseCase
	getRepairUC    *usecases.GetRepairUseCase
	sweepUploadsUC *usecases.SweepOrphanUploadsUseCase

	getTelegramSettingsUC    *settingUsecases.GetTelegramSettingsUseCase
	updateTelegramSettingsUC *settingUsecases.UpdateTelegramSettingsUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log

	store := storage.NewImageStore(c.cfg.Uploads.RootDir, log.Named("imagestore"))
	keepMode := repair.ParseKeepListMode(c.cfg.Uploads.KeepListMode)
	notifier := notification.NewService(c.dispatcher, log.Named("notification"))

	return &allUseCases{
		createRepairUC: usecases.NewCreateRepairUseCase(
			r.txMgr, r.repairRepo, r.imageRepo, r.queryRepo, r.categoryRepo, store, notifier, log,
		),
		updateRepairUC: usecases.NewUpdateRepairUseCase(
			r.txMgr, r.repairRepo, r.imageRepo, r.queryRepo, r.categoryRepo, store, keepMode, log,
		),
		updateStatusUC: usecases.NewUpdateRepairStatusUseCase(
			r.txMgr, r.repairRepo, r.imageRepo, r.historyRepo, r.queryRepo, r.userRepo, store, notifier, keepMode, log,
		),
		deleteRepairUC: usecases.NewDeleteRepairUseCase(r.txMgr, r.repairRepo, r.imageRepo, store, log),
		listRepairsUC:  usecases.NewListRepairsUseCase(r.queryRepo, log),
		getRepairUC:    usecases.NewGetRepairUseCase(r.queryRepo, markdown.NewMarkdownService(), log),
		sweepUploadsUC: usecases.NewSweepOrphanUploadsUseCase(
			r.imageRepo, store, time.Duration(c.cfg.Uploads.OrphanGraceMinutes)*time.Minute, log.Named("sweep"),
		),

		getTelegramSettingsUC:    settingUsecases.NewGetTelegramSettingsUseCase(c.settings, log),
		updateTelegramSettingsUC: settingUsecases.NewUpdateTelegramSettingsUseCase(r.txMgr, r.settingRepo, c.settings, log),
	}
}
