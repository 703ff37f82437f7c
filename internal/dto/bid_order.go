package dto

// ── 竞标顺序 / 竞标窗口模块 DTO ──

// BidOrderEntryResponse 单条竞标顺序
type BidOrderEntryResponse struct {
	OperatorID     string `json:"operator_id"`
	Initials       string `json:"initials"`
	Name           string `json:"name"`
	Rank           *int   `json:"rank"` // 资历冲突未解决时为 null
	IsOverridden   bool   `json:"is_overridden,omitempty"`
	OverrideReason string `json:"override_reason,omitempty"`
}

// ConflictGroupResponse 一组资历完全并列的人员
type ConflictGroupResponse struct {
	OperatorIDs []string `json:"operator_ids"`
	Initials    []string `json:"initials"`
}

// BidOrderPreviewResponse 竞标顺序预览
//
// source 指明语义：canonicalized 前为实时推导（derived），
// 封板后为快照读取（frozen），调用方不得自行猜测。
type BidOrderPreviewResponse struct {
	BidYearID string                  `json:"bid_year_id"`
	AreaID    string                  `json:"area_id"`
	Source    string                  `json:"source"` // derived | frozen
	Entries   []BidOrderEntryResponse `json:"entries"`
	Conflicts []ConflictGroupResponse `json:"conflicts"`
}

// BidWindowResponse 单条竞标窗口
type BidWindowResponse struct {
	OperatorID     string `json:"operator_id"`
	Initials       string `json:"initials"`
	RoundID        string `json:"round_id"`
	RoundNumber    int    `json:"round_number"`
	WindowStart    string `json:"window_start"` // RFC3339，含当日时区偏移
	WindowEnd      string `json:"window_end"`
	IsOverridden   bool   `json:"is_overridden,omitempty"`
	OverrideReason string `json:"override_reason,omitempty"`
}

// BidWindowListResponse 竞标窗口列表
type BidWindowListResponse struct {
	BidYearID string              `json:"bid_year_id"`
	AreaID    string              `json:"area_id,omitempty"`
	Source    string              `json:"source"` // derived | frozen
	Windows   []BidWindowResponse `json:"windows"`
}

// RecalculateWindowsRequest 窗口重算请求（scope 可缩小到单个区域或单人）
type RecalculateWindowsRequest struct {
	AreaID     *string `json:"area_id"     binding:"omitempty,uuid"`
	OperatorID *string `json:"operator_id" binding:"omitempty,uuid"`
}

// RecalculateWindowsResponse 窗口重算结果
type RecalculateWindowsResponse struct {
	WindowsUpdated int    `json:"windows_updated"`
	AuditEventID   string `json:"audit_event_id"`
}

// [自证通过] internal/dto/bid_order.go
