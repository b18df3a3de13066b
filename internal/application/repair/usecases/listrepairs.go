package usecases

import (
	"context"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/domain/repair"
	vo "repairdesk/internal/domain/repair/valueobjects"
	"repairdesk/internal/shared/constants"
	apperrors "repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
)

// ListRepairsQuery filters by equality. Empty strings and nil ids are not
// applied. Pagination is only used when Page or Limit is set.
type ListRepairsQuery struct {
	Actor      repair.Actor
	Status     string
	CategoryID *uint
	Priority   string
	Page       int
	Limit      int
}

type ListRepairsResult struct {
	Repairs  []*dto.RepairDTO `json:"repairs"`
	Total    int64            `json:"total"`
	Page     int              `json:"page,omitempty"`
	PageSize int              `json:"page_size,omitempty"`
}

type ListRepairsUseCase struct {
	queries repair.QueryRepository
	logger  logger.Interface
}

func NewListRepairsUseCase(queries repair.QueryRepository, logger logger.Interface) *ListRepairsUseCase {
	return &ListRepairsUseCase{
		queries: queries,
		logger:  logger,
	}
}

func (uc *ListRepairsUseCase) Execute(ctx context.Context, query ListRepairsQuery) (*ListRepairsResult, error) {
	filter := repair.ListFilter{CategoryID: query.CategoryID}

	if query.Status != "" {
		s, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}
	if query.Priority != "" {
		p, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if !query.Actor.IsPrivileged() {
		requester := query.Actor.UserID
		filter.RequesterID = &requester
	}

	if query.Page > 0 || query.Limit > 0 {
		filter.Page = query.Page
		if filter.Page < 1 {
			filter.Page = 1
		}
		filter.PageSize = query.Limit
		if filter.PageSize < 1 {
			filter.PageSize = constants.DefaultPageSize
		}
		if filter.PageSize > constants.MaxPageSize {
			filter.PageSize = constants.MaxPageSize
		}
	}

	views, total, err := uc.queries.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list repairs", "error", err)
		return nil, apperrors.NewStorageError("failed to list repairs", err)
	}

	return &ListRepairsResult{
		Repairs:  dto.ToRepairDTOs(views),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
