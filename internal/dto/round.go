package dto

// ── 轮组 / 轮次模块 DTO ──

// CreateRoundGroupRequest 创建轮组请求
type CreateRoundGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateRoundGroupRequest 更新轮组请求
type UpdateRoundGroupRequest struct {
	Name           *string `json:"name"            binding:"omitempty,min=1,max=100"`
	EditingEnabled *bool   `json:"editing_enabled"`
}

// CreateRoundRequest 创建轮次请求
type CreateRoundRequest struct {
	RoundNumber     int    `json:"round_number"     binding:"required,min=1"`
	Name            string `json:"name"             binding:"required,min=1,max=100"`
	SlotsPerDay     int    `json:"slots_per_day"    binding:"omitempty,min=1"`
	MaxGroups       int    `json:"max_groups"       binding:"omitempty,min=1"`
	MaxTotalHours   int    `json:"max_total_hours"  binding:"omitempty,min=0"`
	IncludeHolidays bool   `json:"include_holidays"`
	AllowOverbid    bool   `json:"allow_overbid"`
}

// UpdateRoundRequest 更新轮次请求
type UpdateRoundRequest struct {
	RoundNumber     *int    `json:"round_number"     binding:"omitempty,min=1"`
	Name            *string `json:"name"             binding:"omitempty,min=1,max=100"`
	SlotsPerDay     *int    `json:"slots_per_day"    binding:"omitempty,min=1"`
	MaxGroups       *int    `json:"max_groups"       binding:"omitempty,min=1"`
	MaxTotalHours   *int    `json:"max_total_hours"  binding:"omitempty,min=0"`
	IncludeHolidays *bool   `json:"include_holidays"`
	AllowOverbid    *bool   `json:"allow_overbid"`
}

// RoundResponse 轮次响应
type RoundResponse struct {
	RoundID         string `json:"round_id"`
	RoundGroupID    string `json:"round_group_id"`
	RoundNumber     int    `json:"round_number"`
	Name            string `json:"name"`
	SlotsPerDay     int    `json:"slots_per_day"`
	MaxGroups       int    `json:"max_groups"`
	MaxTotalHours   int    `json:"max_total_hours"`
	IncludeHolidays bool   `json:"include_holidays"`
	AllowOverbid    bool   `json:"allow_overbid"`
}

// RoundGroupResponse 轮组响应
type RoundGroupResponse struct {
	RoundGroupID   string          `json:"round_group_id"`
	BidYearID      string          `json:"bid_year_id"`
	Name           string          `json:"name"`
	EditingEnabled bool            `json:"editing_enabled"`
	Rounds         []RoundResponse `json:"rounds"`
}

// [自证通过] internal/dto/round.go
