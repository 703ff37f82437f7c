package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// OperatorHandler 竞标人员模块 HTTP 处理器
type OperatorHandler struct {
	operatorSvc service.OperatorService
}

// NewOperatorHandler 创建 OperatorHandler
func NewOperatorHandler(operatorSvc service.OperatorService) *OperatorHandler {
	return &OperatorHandler{operatorSvc: operatorSvc}
}

// ListOperators 获取区域人员列表
// GET /api/v1/areas/:id/operators
func (h *OperatorHandler) ListOperators(c *gin.Context) {
	areaID := c.Param("id")
	if areaID == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	operators, err := h.operatorSvc.ListByArea(c.Request.Context(), areaID)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, gin.H{"list": operators})
}

// CreateOperator 在区域内创建人员
// POST /api/v1/areas/:id/operators
func (h *OperatorHandler) CreateOperator(c *gin.Context) {
	areaID := c.Param("id")
	if areaID == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	var req dto.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	operator, err := h.operatorSvc.Create(c.Request.Context(), areaID, &req, callerID)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.Created(c, operator)
}

// GetOperator 获取人员详情
// GET /api/v1/operators/:id
func (h *OperatorHandler) GetOperator(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	operator, err := h.operatorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, operator)
}

// UpdateOperator 更新人员信息
// PUT /api/v1/operators/:id
func (h *OperatorHandler) UpdateOperator(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	var req dto.UpdateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	operator, err := h.operatorSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, operator)
}

// SetParticipation 设置参与标志
// PUT /api/v1/operators/:id/participation
func (h *OperatorHandler) SetParticipation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	var req dto.SetParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	operator, err := h.operatorSvc.SetParticipation(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, operator)
}

// MarkNoBidReviewed 复核不参竞人员
// POST /api/v1/operators/:id/no-bid-review
func (h *OperatorHandler) MarkNoBidReviewed(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	operator, err := h.operatorSvc.MarkNoBidReviewed(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, operator)
}

// MoveArea 人员区域调动
// PUT /api/v1/operators/:id/area
func (h *OperatorHandler) MoveArea(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	var req dto.MoveAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	operator, err := h.operatorSvc.MoveArea(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, operator)
}

// DeleteOperator 删除人员
// DELETE /api/v1/operators/:id
func (h *OperatorHandler) DeleteOperator(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.operatorSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleOperatorError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleOperatorError 统一处理人员模块业务错误
func (h *OperatorHandler) handleOperatorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 15001, "竞标人员不存在")
	case errors.Is(err, service.ErrAreaNotFound):
		response.NotFound(c, 13001, "区域不存在")
	case errors.Is(err, service.ErrInitialsTaken):
		response.Conflict(c, 15002, "人员缩写在该区域内已存在")
	case errors.Is(err, service.ErrOperatorDateInvalid):
		response.BadRequest(c, 15003, "资历日期格式无效")
	case errors.Is(err, service.ErrParticipationInvalid):
		response.BadRequest(c, 15004, "排除休假核算必须同时排除竞标")
	case errors.Is(err, service.ErrOperatorWrongArea):
		response.BadRequest(c, 15005, "目标区域不属于同一竞标年度")
	case errors.Is(err, service.ErrLifecycleViolation):
		response.Conflict(c, 12004, "封板后不允许修改结构性配置")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/operator_handler.go
