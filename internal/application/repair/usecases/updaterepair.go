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

// UpdateRepairCommand edits a repair. Nil fields are left unchanged. A nil
// KeepImages leaves the existing images alone; a supplied one deletes every
// repair image (and the legacy image) it does not name.
type UpdateRepairCommand struct {
	Actor           repair.Actor
	RepairID        uint
	ExpectedVersion *int
	Title           *string
	Description     *string
	CategoryID      *uint
	Location        *string
	Priority        *string
	KeepImages      *string
	Images          []storage.UploadedFile
}

type UpdateRepairUseCase struct {
	txMgr      TransactionManager
	repairs    repair.Repository
	images     repair.ImageRepository
	queries    repair.QueryRepository
	categories directory.CategoryRepository
	store      ImageStore
	keepMode   repair.KeepListMode
	logger     logger.Interface
}

func NewUpdateRepairUseCase(
	txMgr TransactionManager,
	repairs repair.Repository,
	images repair.ImageRepository,
	queries repair.QueryRepository,
	categories directory.CategoryRepository,
	store ImageStore,
	keepMode repair.KeepListMode,
	logger logger.Interface,
) *UpdateRepairUseCase {
	return &UpdateRepairUseCase{
		txMgr:      txMgr,
		repairs:    repairs,
		images:     images,
		queries:    queries,
		categories: categories,
		store:      store,
		keepMode:   keepMode,
		logger:     logger,
	}
}

func (uc *UpdateRepairUseCase) Execute(ctx context.Context, cmd UpdateRepairCommand) (*dto.RepairDTO, error) {
	uc.logger.Infow("executing update repair use case",
		"repair_id", cmd.RepairID,
		"actor_id", cmd.Actor.UserID,
		"images", len(cmd.Images),
	)

	fields := repair.EditFields{
		Title:       cmd.Title,
		Description: cmd.Description,
		CategoryID:  cmd.CategoryID,
		Location:    cmd.Location,
	}
	if cmd.Priority != nil {
		p, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		fields.Priority = &p
	}

	keep := repair.NoReconcile()
	if cmd.KeepImages != nil {
		var err error
		keep, err = repair.ParseKeepList(*cmd.KeepImages, uc.keepMode)
		if err != nil {
			return nil, toAppError(err)
		}
	}

	if err := validateUploads(uc.store, cmd.Images); err != nil {
		uc.logger.Warnw("rejected repair upload", "repair_id", cmd.RepairID, "error", err)
		return nil, toAppError(err)
	}

	files := newFileSession(uc.store)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		r, err := uc.repairs.GetByID(txCtx, cmd.RepairID)
		if err != nil {
			return err
		}
		if err := repair.AuthorizeEdit(cmd.Actor, r); err != nil {
			return err
		}
		if err := checkVersion(r, cmd.ExpectedVersion); err != nil {
			return err
		}

		if fields.CategoryID != nil && *fields.CategoryID != r.CategoryID() {
			exists, err := uc.categories.Exists(txCtx, *fields.CategoryID)
			if err != nil {
				return err
			}
			if !exists {
				return directory.ErrCategoryNotFound
			}
		}

		if !fields.IsEmpty() {
			if err := r.ApplyEdit(fields); err != nil {
				return apperrors.NewValidationError(err.Error())
			}
		}

		removed, err := reconcileImages(txCtx, uc.images, files, r.ID(), repair.ImageKindRepair, keep)
		if err != nil {
			return err
		}
		if keep.Applies() && !keep.KeepsLegacy() {
			if legacy := r.ClearLegacyImage(); legacy != nil {
				files.removeAfterCommit(*legacy)
			}
		}

		if err := attachImages(txCtx, uc.images, files, r.ID(), repair.ImageKindRepair, cmd.Images); err != nil {
			return err
		}
		if removed > 0 || len(cmd.Images) > 0 {
			r.TouchImages(time.Now())
		}

		if !r.IsDirty() {
			return nil
		}
		return uc.repairs.Update(txCtx, r)
	})
	if err != nil {
		files.rollback()
		uc.logger.Errorw("failed to update repair", "repair_id", cmd.RepairID, "error", err)
		return nil, toAppError(err)
	}
	files.commit()

	uc.logger.Infow("repair updated successfully", "repair_id", cmd.RepairID)

	view, err := uc.queries.GetView(ctx, cmd.RepairID)
	if err != nil {
		return nil, toAppError(err)
	}
	return dto.ToRepairDTO(view), nil
}
