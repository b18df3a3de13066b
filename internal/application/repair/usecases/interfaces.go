package usecases

import (
	"context"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/storage"
)

type CreateRepairExecutor interface {
	Execute(ctx context.Context, cmd CreateRepairCommand) (*dto.RepairDTO, error)
}

type UpdateRepairExecutor interface {
	Execute(ctx context.Context, cmd UpdateRepairCommand) (*dto.RepairDTO, error)
}

type UpdateRepairStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateRepairStatusCommand) (*dto.RepairDTO, error)
}

type DeleteRepairExecutor interface {
	Execute(ctx context.Context, cmd DeleteRepairCommand) error
}

type ListRepairsExecutor interface {
	Execute(ctx context.Context, query ListRepairsQuery) (*ListRepairsResult, error)
}

type GetRepairExecutor interface {
	Execute(ctx context.Context, query GetRepairQuery) (*dto.RepairDTO, error)
}

// TransactionManager runs fn in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageStore is the file side of image handling.
type ImageStore interface {
	Validate(f storage.UploadedFile) error
	Store(ctx context.Context, f storage.UploadedFile, kind repair.ImageKind) (*storage.StoredFile, error)
	Delete(path string) bool
	Reconcile(existing []*repair.Image, keep repair.KeepSet) []*repair.Image
}
