package usecases

import (
	"context"
	"errors"

	"repairdesk/internal/application/repair/dto"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/shared/logger"
)

type GetRepairQuery struct {
	Actor    repair.Actor
	RepairID uint
}

// MarkdownRenderer turns a description into sanitized HTML.
type MarkdownRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

type GetRepairUseCase struct {
	queries  repair.QueryRepository
	markdown MarkdownRenderer
	logger   logger.Interface
}

func NewGetRepairUseCase(queries repair.QueryRepository, markdown MarkdownRenderer, logger logger.Interface) *GetRepairUseCase {
	return &GetRepairUseCase{
		queries:  queries,
		markdown: markdown,
		logger:   logger,
	}
}

func (uc *GetRepairUseCase) Execute(ctx context.Context, query GetRepairQuery) (*dto.RepairDTO, error) {
	view, err := uc.queries.GetView(ctx, query.RepairID)
	if err != nil {
		if !errors.Is(err, repair.ErrNotFound) {
			uc.logger.Errorw("failed to get repair", "repair_id", query.RepairID, "error", err)
		}
		return nil, toAppError(err)
	}
	if !repair.CanView(query.Actor, view.RequesterID) {
		return nil, toAppError(repair.ErrNotVisible)
	}

	out := dto.ToRepairDTO(view)
	rendered, err := uc.markdown.ToHTMLSanitized(out.Description)
	if err != nil {
		// The plain description is still returned.
		uc.logger.Warnw("failed to render repair description", "repair_id", query.RepairID, "error", err)
	} else {
		out.DescriptionHTML = rendered
	}
	return out, nil
}
