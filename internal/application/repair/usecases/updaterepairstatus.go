package usecases

import (
	"context"
	"time"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/domain/directory"
	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/infrastructure/storage"
	apperrors "repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
)

// UpdateRepairStatusCommand moves a repair to a new status. AssigneeID and
// CompletionDetails are applied only when supplied. Completion images and
// KeepCompletionImages are only accepted when the new status is completed.
type UpdateRepairStatusCommand struct {
	Actor                repair.Actor
	RepairID             uint
	ExpectedVersion      *int
	Status               string
	AssigneeID           *uint
	CompletionDetails    *string
	KeepCompletionImages *string
	Images               []storage.UploadedFile
}

type UpdateRepairStatusUseCase struct {
	txMgr    TransactionManager
	repairs  repair.Repository
	images   repair.ImageRepository
	history  repair.HistoryRepository
	queries  repair.QueryRepository
	users    directory.UserRepository
	store    ImageStore
	notifier repair.Notifier
	keepMode repair.KeepListMode
	logger   logger.Interface
}

func NewUpdateRepairStatusUseCase(
	txMgr TransactionManager,
	repairs repair.Repository,
	images repair.ImageRepository,
	history repair.HistoryRepository,
	queries repair.QueryRepository,
	users directory.UserRepository,
	store ImageStore,
	notifier repair.Notifier,
	keepMode repair.KeepListMode,
	logger logger.Interface,
) *UpdateRepairStatusUseCase {
	return &UpdateRepairStatusUseCase{
		txMgr:    txMgr,
		repairs:  repairs,
		images:   images,
		history:  history,
		queries:  queries,
		users:    users,
		store:    store,
		notifier: notifier,
		keepMode: keepMode,
		logger:   logger,
	}
}

func (uc *UpdateRepairStatusUseCase) Execute(ctx context.Context, cmd UpdateRepairStatusCommand) (*dto.RepairDTO, error) {
	uc.logger.Infow("executing update repair status use case",
		"repair_id", cmd.RepairID,
		"actor_id", cmd.Actor.UserID,
		"status", cmd.Status,
	)

	newStatus, err := vo.NewStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !newStatus.IsCompleted() && (len(cmd.Images) > 0 || cmd.KeepCompletionImages != nil) {
		return nil, apperrors.NewValidationError("completion images can only be supplied when completing a repair")
	}

	keep := repair.NoReconcile()
	if cmd.KeepCompletionImages != nil {
		keep, err = repair.ParseKeepList(*cmd.KeepCompletionImages, uc.keepMode)
		if err != nil {
			return nil, toAppError(err)
		}
	}

	if err := validateUploads(uc.store, cmd.Images); err != nil {
		uc.logger.Warnw("rejected completion upload", "repair_id", cmd.RepairID, "error", err)
		return nil, toAppError(err)
	}

	var oldStatus vo.Status
	files := newFileSession(uc.store)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.repairs.GetByID(txCtx, cmd.RepairID)
		if err != nil {
			return err
		}
		if !repair.CanTransition(cmd.Actor, r, newStatus) {
			return repair.ErrNotPrivileged
		}
		if err := checkVersion(r, cmd.ExpectedVersion); err != nil {
			return err
		}

		if cmd.AssigneeID != nil {
			if _, err := uc.users.GetByID(txCtx, *cmd.AssigneeID); err != nil {
				return err
			}
		}

		oldStatus = r.Status()
		now := time.Now()
		entry, err := r.ChangeStatus(newStatus, cmd.AssigneeID, cmd.CompletionDetails, cmd.Actor.UserID, now)
		if err != nil {
			return err
		}

		if newStatus.IsCompleted() {
			if _, err := reconcileImages(txCtx, uc.images, files, r.ID(), repair.ImageKindCompletion, keep); err != nil {
				return err
			}
			if err := attachImages(txCtx, uc.images, files, r.ID(), repair.ImageKindCompletion, cmd.Images); err != nil {
				return err
			}
		}

		if err := uc.repairs.Update(txCtx, r); err != nil {
			return err
		}
		return uc.history.Append(txCtx, entry)
	})
	if err != nil {
		files.rollback()
		uc.logger.Errorw("failed to update repair status", "repair_id", cmd.RepairID, "error", err)
		return nil, toAppError(err)
	}
	files.commit()

	if newStatus.IsCompleted() {
		uc.notifier.RepairCompleted(ctx, cmd.RepairID, oldStatus, newStatus, cmd.Actor.FullName)
	}
	uc.logger.Infow("repair status updated successfully",
		"repair_id", cmd.RepairID,
		"old_status", oldStatus,
		"new_status", newStatus,
	)

	view, err := uc.queries.GetView(ctx, cmd.RepairID)
	if err != nil {
		return nil, toAppError(err)
	}
	return dto.ToRepairDTO(view), nil
}
