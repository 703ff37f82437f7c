package model

import "time"

// ── 封板快照表 ──
//
// 四张快照表在封板事务中一次性写入，此后只允许 Override 子系统
// 逐行点改（is_overridden + override_reason 与数据同行存放，不设增量表）。
// 唯一键均为 (bid_year_id, operator_id)（窗口表另含 round_id）。

// CanonicalMembership 封板区域归属快照 — 对应 canonical_area_memberships
type CanonicalMembership struct {
	MembershipID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"membership_id"`
	BidYearID      string `gorm:"type:uuid;not null;index:idx_cm_year_op,unique" json:"bid_year_id"`
	OperatorID     string `gorm:"type:uuid;not null;index:idx_cm_year_op,unique" json:"operator_id"`
	AreaID         string `gorm:"type:uuid;not null"                             json:"area_id"`
	IsOverridden   bool   `gorm:"not null;default:false"                         json:"is_overridden"`
	OverrideReason string `gorm:"type:text"                                      json:"override_reason,omitempty"`
	AuditEventID   *string `gorm:"type:uuid"                                     json:"audit_event_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CanonicalMembership) TableName() string { return "canonical_area_memberships" }

// CanonicalEligibility 封板参竞资格快照 — 对应 canonical_eligibilities
type CanonicalEligibility struct {
	EligibilityID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"eligibility_id"`
	BidYearID      string `gorm:"type:uuid;not null;index:idx_ce_year_op,unique" json:"bid_year_id"`
	OperatorID     string `gorm:"type:uuid;not null;index:idx_ce_year_op,unique" json:"operator_id"`
	CanBid         bool   `gorm:"not null"                                       json:"can_bid"`
	IsOverridden   bool   `gorm:"not null;default:false"                         json:"is_overridden"`
	OverrideReason string `gorm:"type:text"                                      json:"override_reason,omitempty"`
	AuditEventID   *string `gorm:"type:uuid"                                     json:"audit_event_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CanonicalEligibility) TableName() string { return "canonical_eligibilities" }

// CanonicalBidOrder 封板竞标顺序快照 — 对应 canonical_bid_order
//
// rank 在资历冲突未解决时保持 NULL；封板后不再重新推导，
// 仅可经 Override 点改。
type CanonicalBidOrder struct {
	BidOrderID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bid_order_id"`
	BidYearID      string `gorm:"type:uuid;not null;index:idx_cbo_year_op,unique" json:"bid_year_id"`
	OperatorID     string `gorm:"type:uuid;not null;index:idx_cbo_year_op,unique" json:"operator_id"`
	AreaID         string `gorm:"type:uuid;not null;index"                       json:"area_id"`
	Rank           *int   `gorm:""                                               json:"rank,omitempty"`
	IsOverridden   bool   `gorm:"not null;default:false"                         json:"is_overridden"`
	OverrideReason string `gorm:"type:text"                                      json:"override_reason,omitempty"`
	AuditEventID   *string `gorm:"type:uuid"                                     json:"audit_event_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CanonicalBidOrder) TableName() string { return "canonical_bid_order" }

// CanonicalBidWindow 封板竞标窗口快照 — 对应 canonical_bid_windows
//
// window_start/window_end 为时区解析后的绝对时刻。
type CanonicalBidWindow struct {
	BidWindowID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bid_window_id"`
	BidYearID      string    `gorm:"type:uuid;not null;index:idx_cbw_key,unique"    json:"bid_year_id"`
	OperatorID     string    `gorm:"type:uuid;not null;index:idx_cbw_key,unique"    json:"operator_id"`
	RoundID        string    `gorm:"type:uuid;not null;index:idx_cbw_key,unique"    json:"round_id"`
	AreaID         string    `gorm:"type:uuid;not null;index"                       json:"area_id"`
	WindowStart    time.Time `gorm:"not null"                                       json:"window_start"`
	WindowEnd      time.Time `gorm:"not null"                                       json:"window_end"`
	IsOverridden   bool      `gorm:"not null;default:false"                         json:"is_overridden"`
	OverrideReason string    `gorm:"type:text"                                      json:"override_reason,omitempty"`
	AuditEventID   *string   `gorm:"type:uuid"                                      json:"audit_event_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CanonicalBidWindow) TableName() string { return "canonical_bid_windows" }

// [自证通过] internal/model/canonical.go
