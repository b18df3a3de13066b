package usecases

import (
	"context"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/domain/directory"
	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/infrastructure/storage"
	apperrors "repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
)

type CreateRepairCommand struct {
	Actor       repair.Actor
	Title       string
	Description string
	CategoryID  uint
	Location    string
	Priority    string
	Images      []storage.UploadedFile
}

type CreateRepairUseCase struct {
	txMgr      TransactionManager
	repairs    repair.Repository
	images     repair.ImageRepository
	queries    repair.QueryRepository
	categories directory.CategoryRepository
	store      ImageStore
	notifier   repair.Notifier
	logger     logger.Interface
}

func NewCreateRepairUseCase(
	txMgr TransactionManager,
	repairs repair.Repository,
	images repair.ImageRepository,
	queries repair.QueryRepository,
	categories directory.CategoryRepository,
	store ImageStore,
	notifier repair.Notifier,
	logger logger.Interface,
) *CreateRepairUseCase {
	return &CreateRepairUseCase{
		txMgr:      txMgr,
		repairs:    repairs,
		images:     images,
		queries:    queries,
		categories: categories,
		store:      store,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *CreateRepairUseCase) Execute(ctx context.Context, cmd CreateRepairCommand) (*dto.RepairDTO, error) {
	uc.logger.Infow("executing create repair use case",
		"requester_id", cmd.Actor.UserID,
		"category_id", cmd.CategoryID,
		"images", len(cmd.Images),
	)

	if cmd.Priority == "" {
		return nil, apperrors.NewValidationError("priority is required")
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	r, err := repair.NewRepair(cmd.Title, cmd.Description, cmd.CategoryID, cmd.Location, priority, cmd.Actor.UserID)
	if err != nil {
		uc.logger.Warnw("invalid create repair command", "error", err)
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := validateUploads(uc.store, cmd.Images); err != nil {
		uc.logger.Warnw("rejected repair upload", "error", err)
		return nil, toAppError(err)
	}

	files := newFileSession(uc.store)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		exists, err := uc.categories.Exists(txCtx, r.CategoryID())
		if err != nil {
			return err
		}
		if !exists {
			return directory.ErrCategoryNotFound
		}

		if err := uc.repairs.Create(txCtx, r); err != nil {
			return err
		}
		return attachImages(txCtx, uc.images, files, r.ID(), repair.ImageKindRepair, cmd.Images)
	})
	if err != nil {
		files.rollback()
		uc.logger.Errorw("failed to create repair", "requester_id", cmd.Actor.UserID, "error", err)
		return nil, toAppError(err)
	}
	files.commit()

	uc.notifier.RepairCreated(ctx, r.ID())
	uc.logger.Infow("repair created successfully", "repair_id", r.ID(), "images", len(cmd.Images))

	view, err := uc.queries.GetView(ctx, r.ID())
	if err != nil {
		uc.logger.Errorw("failed to load created repair", "repair_id", r.ID(), "error", err)
		return nil, toAppError(err)
	}
	return dto.ToRepairDTO(view), nil
}
