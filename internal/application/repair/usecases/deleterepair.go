package usecases

import (
	"context"

	"repairdesk/internal/domain/repair"
	"repairdesk/internal/shared/logger"
)

type DeleteRepairCommand struct {
	Actor           repair.Actor
	RepairID        uint
	ExpectedVersion *int
}

type DeleteRepairUseCase struct {
	txMgr   TransactionManager
	repairs repair.Repository
	images  repair.ImageRepository
	store   ImageStore
	logger  logger.Interface
}

func NewDeleteRepairUseCase(
	txMgr TransactionManager,
	repairs repair.Repository,
	images repair.ImageRepository,
	store ImageStore,
	logger logger.Interface,
) *DeleteRepairUseCase {
	return &DeleteRepairUseCase{
		txMgr:   txMgr,
		repairs: repairs,
		images:  images,
		store:   store,
		logger:  logger,
	}
}

// Execute removes the repair with all its rows. Files are unlinked after
// the rows are gone; a file that cannot be removed is only logged.
func (uc *DeleteRepairUseCase) Execute(ctx context.Context, cmd DeleteRepairCommand) error {
	uc.logger.Infow("executing delete repair use case", "repair_id", cmd.RepairID, "actor_id", cmd.Actor.UserID)

	if !repair.CanDelete(cmd.Actor) {
		return toAppError(repair.ErrNotAdmin)
	}

	files := newFileSession(uc.store)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.repairs.GetByID(txCtx, cmd.RepairID)
		if err != nil {
			return err
		}
		if err := checkVersion(r, cmd.ExpectedVersion); err != nil {
			return err
		}

		for _, kind := range []repair.ImageKind{repair.ImageKindRepair, repair.ImageKindCompletion} {
			imgs, err := uc.images.ListByRepair(txCtx, r.ID(), kind)
			if err != nil {
				return err
			}
			for _, img := range imgs {
				files.removeAfterCommit(img.FilePath())
			}
		}
		if legacy := r.LegacyImagePath(); legacy != nil && *legacy != "" {
			files.removeAfterCommit(*legacy)
		}

		return uc.repairs.Delete(txCtx, r.ID(), r.Version())
	})
	if err != nil {
		files.rollback()
		uc.logger.Errorw("failed to delete repair", "repair_id", cmd.RepairID, "error", err)
		return toAppError(err)
	}
	files.commit()

	uc.logger.Infow("repair deleted successfully", "repair_id", cmd.RepairID)
	return nil
}
