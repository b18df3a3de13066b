package usecases

import (
	"errors"

	"repairdesk/internal/domain/directory"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/storage"
	apperrors "repairdesk/internal/shared/errors"
)

// toAppError maps domain and infrastructure failures onto the application
// error taxonomy. AppErrors pass through unchanged.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, repair.ErrNotFound):
		return apperrors.NewNotFoundError("repair not found")
	case errors.Is(err, directory.ErrCategoryNotFound):
		return apperrors.NewNotFoundError("category not found")
	case errors.Is(err, directory.ErrUserNotFound):
		return apperrors.NewNotFoundError("assignee not found")
	case errors.Is(err, repair.ErrVersionConflict):
		return apperrors.NewConflictError("repair was modified by someone else, reload and retry")
	case errors.Is(err, repair.ErrNotRequester),
		errors.Is(err, repair.ErrNotPrivileged),
		errors.Is(err, repair.ErrNotAdmin),
		errors.Is(err, repair.ErrNotVisible):
		return apperrors.NewForbiddenError(err.Error())
	case errors.Is(err, repair.ErrNotPending):
		return apperrors.NewInvalidStateError(err.Error())
	case errors.Is(err, repair.ErrCompletionDetailsRequired),
		errors.Is(err, repair.ErrInvalidKeepList):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, storage.ErrUnsupportedMediaType):
		return apperrors.NewUnsupportedMediaTypeError("only jpeg, jpg, png, gif and webp images are allowed", err.Error())
	default:
		return apperrors.NewStorageError("failed to save repair", err)
	}
}

// checkVersion compares the client's expected version with the loaded one.
func checkVersion(r *repair.Repair, expected *int) error {
	if expected != nil && *expected != r.Version() {
		return repair.ErrVersionConflict
	}
	return nil
}
