package repair

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/application/repair/usecases"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/infrastructure/storage"
	"repairdesk/internal/shared/utils"
)

// Form field names for uploaded files.
const (
	fieldImages           = "images"
	fieldCompletionImages = "completion_images"
)

type CreateRepairRequest struct {
	Title       string `json:"title" form:"title" validate:"notblank,max=200"`
	Description string `json:"description" form:"description" validate:"notblank,max=5000"`
	CategoryID  uint   `json:"category_id" form:"category_id" validate:"required,gt=0"`
	Location    string `json:"location" form:"location" validate:"notblank,max=200"`
	Priority    string `json:"priority" form:"priority" validate:"required,repair_priority"`
}

func (r *CreateRepairRequest) ToCommand(actor repair.Actor, files []storage.UploadedFile) usecases.CreateRepairCommand {
	return usecases.CreateRepairCommand{
		Actor:       actor,
		Title:       utils.SanitizeText(r.Title),
		Description: utils.SanitizeText(r.Description),
		CategoryID:  r.CategoryID,
		Location:    utils.SanitizeText(r.Location),
		Priority:    r.Priority,
		Images:      files,
	}
}

// UpdateRepairRequest fields are optional. KeepImages is the JSON encoded
// keep-list; leaving it out keeps every existing image.
type UpdateRepairRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=5000"`
	CategoryID  *uint   `json:"category_id" form:"category_id" validate:"omitempty,gt=0"`
	Location    *string `json:"location" form:"location" validate:"omitempty,max=200"`
	Priority    *string `json:"priority" form:"priority" validate:"omitempty,repair_priority"`
	KeepImages  *string `json:"keep_images" form:"keep_images"`
	Version     *int    `json:"version" form:"version" validate:"omitempty,gt=0"`
}

func (r *UpdateRepairRequest) ToCommand(actor repair.Actor, id uint, files []storage.UploadedFile) usecases.UpdateRepairCommand {
	return usecases.UpdateRepairCommand{
		Actor:           actor,
		RepairID:        id,
		ExpectedVersion: r.Version,
		Title:           utils.SanitizeOptional(r.Title),
		Description:     utils.SanitizeOptional(r.Description),
		CategoryID:      r.CategoryID,
		Location:        utils.SanitizeOptional(r.Location),
		Priority:        r.Priority,
		KeepImages:      r.KeepImages,
		Images:          files,
	}
}

type UpdateStatusRequest struct {
	Status               string  `json:"status" form:"status" validate:"required,repair_status"`
	AssigneeID           *uint   `json:"assignee_id" form:"assignee_id" validate:"omitempty,gt=0"`
	CompletionDetails    *string `json:"completion_details" form:"completion_details" validate:"omitempty,max=5000"`
	KeepCompletionImages *string `json:"keep_completion_images" form:"keep_completion_images"`
	Version              *int    `json:"version" form:"version" validate:"omitempty,gt=0"`
}

func (r *UpdateStatusRequest) ToCommand(actor repair.Actor, id uint, files []storage.UploadedFile) usecases.UpdateRepairStatusCommand {
	return usecases.UpdateRepairStatusCommand{
		Actor:                actor,
		RepairID:             id,
		ExpectedVersion:      r.Version,
		Status:               r.Status,
		AssigneeID:           r.AssigneeID,
		CompletionDetails:    utils.SanitizeOptional(r.CompletionDetails),
		KeepCompletionImages: r.KeepCompletionImages,
		Images:               files,
	}
}

type DeleteRepairRequest struct {
	Version *int `json:"version" form:"version" validate:"omitempty,gt=0"`
}

type ListRepairsRequest struct {
	Status     string
	CategoryID *uint
	Priority   string
	Page       *utils.Pagination
}

func (r *ListRepairsRequest) ToQuery(actor repair.Actor) usecases.ListRepairsQuery {
	q := usecases.ListRepairsQuery{
		Actor:      actor,
		Status:     r.Status,
		CategoryID: r.CategoryID,
		Priority:   r.Priority,
	}
	if r.Page != nil {
		q.Page = r.Page.Page
		q.Limit = r.Page.PageSize
	}
	return q
}

func parseListRepairsRequest(c *gin.Context) (*ListRepairsRequest, error) {
	categoryID, err := utils.ParseOptionalUintQuery(c, "category_id")
	if err != nil {
		return nil, err
	}
	return &ListRepairsRequest{
		Status:     c.Query("status"),
		CategoryID: categoryID,
		Priority:   c.Query("priority"),
		Page:       utils.ParseOptionalPagination(c),
	}, nil
}
