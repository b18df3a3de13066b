package http

import (
	"gorm.io/gorm"

	"repairdesk/internal/domain/directory"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/domain/setting"
	"repairdesk/internal/infrastructure/repository"
	"repairdesk/internal/shared/db"
	"repairdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	txMgr        *db.TransactionManager
	repairRepo   repair.Repository
	imageRepo    *repository.RepairImageRepository
	historyRepo  repair.HistoryRepository
	queryRepo    repair.QueryRepository
	userRepo     directory.UserRepository
	categoryRepo directory.CategoryRepository
	settingRepo  setting.Repository
}

func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		txMgr:        db.NewTransactionManager(gdb),
		repairRepo:   repository.NewRepairRepository(gdb, log),
		imageRepo:    repository.NewRepairImageRepository(gdb),
		historyRepo:  repository.NewStatusHistoryRepository(gdb),
		queryRepo:    repository.NewRepairQueryRepository(gdb),
		userRepo:     repository.NewUserRepository(gdb),
		categoryRepo: repository.NewCategoryRepository(gdb),
		settingRepo:  repository.NewSystemSettingRepository(gdb, log),
	}
}
