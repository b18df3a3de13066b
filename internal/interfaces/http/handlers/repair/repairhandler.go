// Package repair exposes the repair request lifecycle over HTTP.
package repair

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/application/repair/usecases"
	"repairdesk/internal/domain/repair"
	"repairdesk/internal/shared/authorization"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
	"repairdesk/internal/shared/utils"
)

type RepairHandler struct {
	createRepairUC usecases.CreateRepairExecutor
	updateRepairUC usecases.UpdateRepairExecutor
	updateStatusUC usecases.UpdateRepairStatusExecutor
	deleteRepairUC usecases.DeleteRepairExecutor
	listRepairsUC  usecases.ListRepairsExecutor
	getRepairUC    usecases.GetRepairExecutor
	limits         UploadLimits
	logger         logger.Interface
}

func NewRepairHandler(
	createRepairUC usecases.CreateRepairExecutor,
	updateRepairUC usecases.UpdateRepairExecutor,
	updateStatusUC usecases.UpdateRepairStatusExecutor,
	deleteRepairUC usecases.DeleteRepairExecutor,
	listRepairsUC usecases.ListRepairsExecutor,
	getRepairUC usecases.GetRepairExecutor,
	limits UploadLimits,
	logger logger.Interface,
) *RepairHandler {
	return &RepairHandler{
		createRepairUC: createRepairUC,
		updateRepairUC: updateRepairUC,
		updateStatusUC: updateStatusUC,
		deleteRepairUC: deleteRepairUC,
		listRepairsUC:  listRepairsUC,
		getRepairUC:    getRepairUC,
		limits:         limits,
		logger:         logger,
	}
}

// CreateRepair handles POST /repairs
// @Summary Submit a repair request
// @Description Create a pending repair request with optional photos (multipart field "images")
// @Tags Repairs
// @Accept multipart/form-data,json
// @Produce json
// @Param request body CreateRepairRequest true "Repair request"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Failure 415 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /repairs [post]
func (h *RepairHandler) CreateRepair(c *gin.Context) {
	var req CreateRepairRequest
	if err := h.bind(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create repair", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	files, err := collectFiles(c, fieldImages, h.limits)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createRepairUC.Execute(c.Request.Context(), req.ToCommand(actorFrom(c), files))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Repair request submitted successfully")
}

// GetRepair handles GET /repairs/:id
// @Summary Get a repair request
// @Description Full record with images, completion images and status history, newest first
// @Tags Repairs
// @Produce json
// @Param id path int true "Repair ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /repairs/{id} [get]
func (h *RepairHandler) GetRepair(c *gin.Context) {
	repairID, err := utils.ParseUintParam(c, "id", "repair")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getRepairUC.Execute(c.Request.Context(), usecases.GetRepairQuery{
		Actor:    actorFrom(c),
		RepairID: repairID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListRepairs handles GET /repairs
// @Summary List repair requests
// @Description Newest first; users only see their own requests. Paginated only when page or limit is given
// @Tags Repairs
// @Produce json
// @Param status query string false "Status filter"
// @Param category_id query int false "Category filter"
// @Param priority query string false "Priority filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /repairs [get]
func (h *RepairHandler) ListRepairs(c *gin.Context) {
	req, err := parseListRepairsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listRepairsUC.Execute(c.Request.Context(), req.ToQuery(actorFrom(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Repairs, result.Total, req.Page)
}

// UpdateRepair handles PUT /repairs/:id
// @Summary Edit a repair request
// @Description The requester edits a pending request; keep_images selects which existing photos survive
// @Tags Repairs
// @Accept multipart/form-data,json
// @Produce json
// @Param id path int true "Repair ID"
// @Param request body UpdateRepairRequest true "Changed fields"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 415 {object} utils.APIResponse
// @Router /repairs/{id} [put]
func (h *RepairHandler) UpdateRepair(c *gin.Context) {
	repairID, err := utils.ParseUintParam(c, "id", "repair")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRepairRequest
	if err := h.bind(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update repair", "repair_id", repairID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	files, err := collectFiles(c, fieldImages, h.limits)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateRepairUC.Execute(c.Request.Context(), req.ToCommand(actorFrom(c), repairID, files))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Repair request updated successfully", result)
}

// UpdateStatus handles PATCH /repairs/:id/status
// @Summary Change repair status
// @Description Technicians and admins move a repair to any status; completing requires details
// @Tags Repairs
// @Accept multipart/form-data,json
// @Produce json
// @Param id path int true "Repair ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /repairs/{id}/status [patch]
func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	repairID, err := utils.ParseUintParam(c, "id", "repair")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := h.bind(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update repair status", "repair_id", repairID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	files, err := collectFiles(c, fieldCompletionImages, h.limits)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateStatusUC.Execute(c.Request.Context(), req.ToCommand(actorFrom(c), repairID, files))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Repair status updated successfully", result)
}

// DeleteRepair handles DELETE /repairs/:id
// @Summary Delete a repair request
// @Description Admin only; removes the request, its images and history
// @Tags Repairs
// @Produce json
// @Param id path int true "Repair ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /repairs/{id} [delete]
func (h *RepairHandler) DeleteRepair(c *gin.Context) {
	repairID, err := utils.ParseUintParam(c, "id", "repair")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DeleteRepairRequest
	if err := h.bind(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.deleteRepairUC.Execute(c.Request.Context(), usecases.DeleteRepairCommand{
		Actor:           actorFrom(c),
		RepairID:        repairID,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Repair request deleted successfully", nil)
}

// bind reads a JSON or form body into req and validates it.
func (h *RepairHandler) bind(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return utils.ValidateStruct(req)
}

func actorFrom(c *gin.Context) repair.Actor {
	return repair.Actor{
		UserID:   c.GetUint(constants.ContextKeyUserID),
		Role:     authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
		FullName: c.GetString(constants.ContextKeyUserFullName),
	}
}
