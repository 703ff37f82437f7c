package dto

// ── 就绪检查模块 DTO ──

// BlockerResponse 单条就绪阻塞原因
//
// category 为闭合枚举码（见 service.BlockerCategory），payload 字段
// 按类别选填；服务端扁平列表是唯一权威来源，前端按区域分组仅作展示。
type BlockerResponse struct {
	Category string `json:"category"`
	Message  string `json:"message"`

	BidYearID     string   `json:"bid_year_id,omitempty"`
	AreaID        string   `json:"area_id,omitempty"`
	AreaCode      string   `json:"area_code,omitempty"`
	RoundGroupID  string   `json:"round_group_id,omitempty"`
	Expected      *int     `json:"expected,omitempty"`
	Actual        *int     `json:"actual,omitempty"`
	AffectedCount int      `json:"affected_count,omitempty"`
	SampleInitials []string `json:"sample_initials,omitempty"` // 最多 5 个，余量见 affected_count
	ConflictInitials []string `json:"conflict_initials,omitempty"`
}

// ReadinessResponse 就绪检查结果
type ReadinessResponse struct {
	BidYearID string            `json:"bid_year_id"`
	Ready     bool              `json:"ready"`
	Blockers  []BlockerResponse `json:"blockers"`
}

// [自证通过] internal/dto/readiness.go
