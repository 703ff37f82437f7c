package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 竞标顺序 / 窗口读取服务 ──
//
// 封板前后语义不同但接口不变：封板前每次读取都实时推导
// （derived，永远反映最新数据）；封板后只读快照（frozen，
// 仅可经覆盖点改）。由生命周期状态选择分支，调用方不猜测。

const (
	bidOrderSourceDerived = "derived"
	bidOrderSourceFrozen  = "frozen"
)

var ErrAreaHasNoRoundGroup = errors.New("区域未分配轮组，无法推导窗口")

// BidOrderService 竞标顺序业务接口
type BidOrderService interface {
	Preview(ctx context.Context, bidYearID, areaID string) (*dto.BidOrderPreviewResponse, error)
	ListWindows(ctx context.Context, bidYearID string, areaID string) (*dto.BidWindowListResponse, error)
}

type bidOrderService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBidOrderService 创建 BidOrderService 实例
func NewBidOrderService(repo *repository.Repository, logger *zap.Logger) BidOrderService {
	return &bidOrderService{repo: repo, logger: logger}
}

// ────────────────────── Preview ──────────────────────

func (s *bidOrderService) Preview(ctx context.Context, bidYearID, areaID string) (*dto.BidOrderPreviewResponse, error) {
	bidYear, err := s.repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", bidYearID), zap.Error(err))
		return nil, err
	}

	area, err := s.repo.Area.GetByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询区域失败", zap.String("id", areaID), zap.Error(err))
		return nil, err
	}
	if area.BidYearID != bidYearID {
		return nil, ErrAreaWrongBidYear
	}

	if bidYear.State.StructureFrozen() {
		return s.previewFrozen(ctx, bidYearID, areaID)
	}
	return s.previewDerived(ctx, areaID)
}

func (s *bidOrderService) previewDerived(ctx context.Context, areaID string) (*dto.BidOrderPreviewResponse, error) {
	operators, err := s.repo.Operator.ListByArea(ctx, areaID)
	if err != nil {
		s.logger.Error("列出区域人员失败", zap.String("area_id", areaID), zap.Error(err))
		return nil, err
	}

	result := DeriveBidOrder(operators)

	resp := &dto.BidOrderPreviewResponse{
		AreaID:  areaID,
		Source:  bidOrderSourceDerived,
		Entries: make([]dto.BidOrderEntryResponse, 0, len(result.Entries)),
	}
	if len(operators) > 0 {
		resp.BidYearID = operators[0].BidYearID
	}
	for _, entry := range result.Entries {
		resp.Entries = append(resp.Entries, dto.BidOrderEntryResponse{
			OperatorID: entry.OperatorID,
			Initials:   entry.Initials,
			Name:       entry.Name,
			Rank:       entry.Rank,
		})
	}
	for _, group := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, dto.ConflictGroupResponse{
			OperatorIDs: group.OperatorIDs,
			Initials:    group.Initials,
		})
	}

	return resp, nil
}

func (s *bidOrderService) previewFrozen(ctx context.Context, bidYearID, areaID string) (*dto.BidOrderPreviewResponse, error) {
	orders, err := s.repo.Canonical.ListBidOrders(ctx, bidYearID)
	if err != nil {
		s.logger.Error("读取封板竞标顺序失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}

	operators, err := s.repo.Operator.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出人员失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}
	byID := make(map[string]*model.Operator, len(operators))
	for i := range operators {
		byID[operators[i].OperatorID] = &operators[i]
	}

	resp := &dto.BidOrderPreviewResponse{
		BidYearID: bidYearID,
		AreaID:    areaID,
		Source:    bidOrderSourceFrozen,
		Entries:   make([]dto.BidOrderEntryResponse, 0),
	}

	conflicts := dto.ConflictGroupResponse{}
	for i := range orders {
		if orders[i].AreaID != areaID {
			continue
		}
		entry := dto.BidOrderEntryResponse{
			OperatorID:     orders[i].OperatorID,
			Rank:           orders[i].Rank,
			IsOverridden:   orders[i].IsOverridden,
			OverrideReason: orders[i].OverrideReason,
		}
		if op := byID[orders[i].OperatorID]; op != nil {
			entry.Initials = op.Initials
			entry.Name = op.Name
		}
		resp.Entries = append(resp.Entries, entry)

		if orders[i].Rank == nil {
			conflicts.OperatorIDs = append(conflicts.OperatorIDs, entry.OperatorID)
			conflicts.Initials = append(conflicts.Initials, entry.Initials)
		}
	}

	// 名次在前，未定名次者殿后
	sort.SliceStable(resp.Entries, func(i, j int) bool {
		ri, rj := resp.Entries[i].Rank, resp.Entries[j].Rank
		if ri == nil {
			return false
		}
		if rj == nil {
			return true
		}
		return *ri < *rj
	})

	if len(conflicts.OperatorIDs) > 0 {
		resp.Conflicts = append(resp.Conflicts, conflicts)
	}

	return resp, nil
}

// ────────────────────── ListWindows ──────────────────────

func (s *bidOrderService) ListWindows(ctx context.Context, bidYearID string, areaID string) (*dto.BidWindowListResponse, error) {
	bidYear, err := s.repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", bidYearID), zap.Error(err))
		return nil, err
	}

	if bidYear.State.StructureFrozen() {
		return s.windowsFrozen(ctx, bidYearID, areaID)
	}
	return s.windowsDerived(ctx, bidYearID, areaID)
}

func (s *bidOrderService) windowsDerived(ctx context.Context, bidYearID, areaID string) (*dto.BidWindowListResponse, error) {
	slots, err := s.deriveAreaWindows(ctx, bidYearID, areaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BidWindowListResponse{
		BidYearID: bidYearID,
		AreaID:    areaID,
		Source:    bidOrderSourceDerived,
		Windows:   make([]dto.BidWindowResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Windows = append(resp.Windows, dto.BidWindowResponse{
			OperatorID:  slot.OperatorID,
			Initials:    slot.Initials,
			RoundID:     slot.RoundID,
			RoundNumber: slot.RoundNumber,
			WindowStart: slot.WindowStart.Format(time.RFC3339),
			WindowEnd:   slot.WindowEnd.Format(time.RFC3339),
		})
	}

	return resp, nil
}

func (s *bidOrderService) windowsFrozen(ctx context.Context, bidYearID, areaID string) (*dto.BidWindowListResponse, error) {
	windows, err := s.repo.Canonical.ListBidWindows(ctx, bidYearID)
	if err != nil {
		s.logger.Error("读取封板竞标窗口失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}

	operators, err := s.repo.Operator.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出人员失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}
	initialsByID := make(map[string]string, len(operators))
	for i := range operators {
		initialsByID[operators[i].OperatorID] = operators[i].Initials
	}

	resp := &dto.BidWindowListResponse{
		BidYearID: bidYearID,
		AreaID:    areaID,
		Source:    bidOrderSourceFrozen,
		Windows:   make([]dto.BidWindowResponse, 0, len(windows)),
	}
	for i := range windows {
		if areaID != "" && windows[i].AreaID != areaID {
			continue
		}
		resp.Windows = append(resp.Windows, dto.BidWindowResponse{
			OperatorID:     windows[i].OperatorID,
			Initials:       initialsByID[windows[i].OperatorID],
			RoundID:        windows[i].RoundID,
			WindowStart:    windows[i].WindowStart.Format(time.RFC3339),
			WindowEnd:      windows[i].WindowEnd.Format(time.RFC3339),
			IsOverridden:   windows[i].IsOverridden,
			OverrideReason: windows[i].OverrideReason,
		})
	}

	return resp, nil
}

// deriveAreaWindows 实时推导单个区域的窗口：顺序引擎 + 窗口引擎串联
func (s *bidOrderService) deriveAreaWindows(ctx context.Context, bidYearID, areaID string) ([]WindowSlot, error) {
	area, err := s.repo.Area.GetByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询区域失败", zap.String("id", areaID), zap.Error(err))
		return nil, err
	}
	if area.BidYearID != bidYearID {
		return nil, ErrAreaWrongBidYear
	}
	if area.RoundGroupID == nil {
		return nil, ErrAreaHasNoRoundGroup
	}

	operators, err := s.repo.Operator.ListByArea(ctx, areaID)
	if err != nil {
		s.logger.Error("列出区域人员失败", zap.String("area_id", areaID), zap.Error(err))
		return nil, err
	}

	rounds, err := s.repo.Round.ListByGroup(ctx, *area.RoundGroupID)
	if err != nil {
		s.logger.Error("列出轮次失败", zap.String("group_id", *area.RoundGroupID), zap.Error(err))
		return nil, err
	}

	schedule, err := s.repo.BidSchedule.GetByBidYear(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询竞标日程失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}

	order := DeriveBidOrder(operators)
	return DeriveBidWindows(order.Entries, rounds, schedule)
}

// [自证通过] internal/service/bid_order_service.go
