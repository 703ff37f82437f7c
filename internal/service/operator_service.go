package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftbid/backend/internal/dto"
	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// ── 竞标人员模块业务错误 ──

var (
	ErrOperatorNotFound     = errors.New("竞标人员不存在")
	ErrInitialsTaken        = errors.New("人员缩写在该区域内已存在")
	ErrOperatorDateInvalid  = errors.New("资历日期格式无效")
	ErrParticipationInvalid = errors.New("排除休假核算必须同时排除竞标")
	ErrOperatorWrongArea    = errors.New("目标区域不属于同一竞标年度")
)

// OperatorService 竞标人员业务接口
type OperatorService interface {
	Create(ctx context.Context, areaID string, req *dto.CreateOperatorRequest, callerID string) (*dto.OperatorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OperatorResponse, error)
	ListByArea(ctx context.Context, areaID string) ([]dto.OperatorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateOperatorRequest, callerID string) (*dto.OperatorResponse, error)
	SetParticipation(ctx context.Context, id string, req *dto.SetParticipationRequest, callerID string) (*dto.OperatorResponse, error)
	MarkNoBidReviewed(ctx context.Context, id string, callerID string) (*dto.OperatorResponse, error)
	MoveArea(ctx context.Context, id string, req *dto.MoveAreaRequest, callerID string) (*dto.OperatorResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type operatorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOperatorService 创建 OperatorService 实例
func NewOperatorService(repo *repository.Repository, logger *zap.Logger) OperatorService {
	return &operatorService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *operatorService) Create(ctx context.Context, areaID string, req *dto.CreateOperatorRequest, callerID string) (*dto.OperatorResponse, error) {
	area, err := s.repo.Area.GetByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询区域失败", zap.String("id", areaID), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, area.BidYearID); err != nil {
		return nil, err
	}

	// 缩写在年度+区域内唯一
	siblings, err := s.repo.Operator.ListByArea(ctx, areaID)
	if err != nil {
		s.logger.Error("列出区域人员失败", zap.String("area_id", areaID), zap.Error(err))
		return nil, err
	}
	for i := range siblings {
		if siblings[i].Initials == req.Initials {
			return nil, ErrInitialsTaken
		}
	}

	operator := &model.Operator{
		BidYearID:     area.BidYearID,
		AreaID:        areaID,
		Initials:      req.Initials,
		Name:          req.Name,
		UserType:      req.UserType,
		CrewNumber:    req.CrewNumber,
		LotteryNumber: req.LotteryNumber,
	}
	if operator.UserType == "" {
		operator.UserType = "controller"
	}
	if err := applySeniorityDates(operator, req.CumulativeBUDate, req.BUDate, req.EODDate, req.SCDDate); err != nil {
		return nil, err
	}
	operator.CreatedBy = &callerID
	operator.UpdatedBy = &callerID

	if err := s.repo.Operator.Create(ctx, operator); err != nil {
		s.logger.Error("创建竞标人员失败", zap.String("initials", req.Initials), zap.Error(err))
		return nil, err
	}

	return toOperatorResponse(operator), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *operatorService) GetByID(ctx context.Context, id string) (*dto.OperatorResponse, error) {
	operator, err := s.repo.Operator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toOperatorResponse(operator), nil
}

// ────────────────────── ListByArea ──────────────────────

// ListByArea 列出区域全部人员。被排除竞标的人员照常出现在列表中，
// 排除只影响竞标顺序，不影响存在性。
func (s *operatorService) ListByArea(ctx context.Context, areaID string) ([]dto.OperatorResponse, error) {
	operators, err := s.repo.Operator.ListByArea(ctx, areaID)
	if err != nil {
		s.logger.Error("列出区域人员失败", zap.String("area_id", areaID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.OperatorResponse, 0, len(operators))
	for i := range operators {
		result = append(result, *toOperatorResponse(&operators[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *operatorService) Update(ctx context.Context, id string, req *dto.UpdateOperatorRequest, callerID string) (*dto.OperatorResponse, error) {
	operator, err := s.repo.Operator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, operator.BidYearID); err != nil {
		return nil, err
	}

	if req.Initials != nil {
		operator.Initials = *req.Initials
	}
	if req.Name != nil {
		operator.Name = *req.Name
	}
	if req.UserType != nil {
		operator.UserType = *req.UserType
	}
	if req.CrewNumber != nil {
		operator.CrewNumber = req.CrewNumber
	}
	if req.LotteryNumber != nil {
		operator.LotteryNumber = req.LotteryNumber
	}
	if err := applySeniorityDates(operator, req.CumulativeBUDate, req.BUDate, req.EODDate, req.SCDDate); err != nil {
		return nil, err
	}

	operator.UpdatedBy = &callerID

	if err := s.repo.Operator.Update(ctx, operator); err != nil {
		s.logger.Error("更新竞标人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toOperatorResponse(operator), nil
}

// ────────────────────── SetParticipation ──────────────────────

// SetParticipation 设置两个参与开关。二者必须一并提交并满足蕴含关系：
// excluded_from_leave_calculation=true 必须伴随 excluded_from_bidding=true。
func (s *operatorService) SetParticipation(ctx context.Context, id string, req *dto.SetParticipationRequest, callerID string) (*dto.OperatorResponse, error) {
	operator, err := s.repo.Operator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, operator.BidYearID); err != nil {
		return nil, err
	}

	excludedBidding := *req.ExcludedFromBidding
	excludedLeave := *req.ExcludedFromLeaveCalc
	if excludedLeave && !excludedBidding {
		return nil, ErrParticipationInvalid
	}

	operator.ExcludedFromBidding = excludedBidding
	operator.ExcludedFromLeaveCalc = excludedLeave
	operator.UpdatedBy = &callerID

	if err := s.repo.Operator.Update(ctx, operator); err != nil {
		s.logger.Error("设置参与开关失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toOperatorResponse(operator), nil
}

// ────────────────────── MarkNoBidReviewed ──────────────────────

// MarkNoBidReviewed 确认系统区域内的人员"留在 No Bid 池"已经过人工复核
func (s *operatorService) MarkNoBidReviewed(ctx context.Context, id string, callerID string) (*dto.OperatorResponse, error) {
	operator, err := s.repo.Operator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, operator.BidYearID); err != nil {
		return nil, err
	}

	operator.NoBidReviewed = true
	operator.UpdatedBy = &callerID

	if err := s.repo.Operator.Update(ctx, operator); err != nil {
		s.logger.Error("标记复核失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toOperatorResponse(operator), nil
}

// ────────────────────── MoveArea ──────────────────────

// MoveArea 人员区域调动（含移出系统区域）。移出 No Bid 池后
// 复核标记随之失效，重新置为未复核。
func (s *operatorService) MoveArea(ctx context.Context, id string, req *dto.MoveAreaRequest, callerID string) (*dto.OperatorResponse, error) {
	operator, err := s.repo.Operator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if _, err := requireStructureEditable(ctx, s.repo, operator.BidYearID); err != nil {
		return nil, err
	}

	target, err := s.repo.Area.GetByID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("查询区域失败", zap.String("id", req.AreaID), zap.Error(err))
		return nil, err
	}
	if target.BidYearID != operator.BidYearID {
		return nil, ErrOperatorWrongArea
	}

	operator.AreaID = target.AreaID
	operator.NoBidReviewed = false
	operator.UpdatedBy = &callerID

	if err := s.repo.Operator.Update(ctx, operator); err != nil {
		s.logger.Error("人员调动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toOperatorResponse(operator), nil
}

// ────────────────────── Delete ──────────────────────

func (s *operatorService) Delete(ctx context.Context, id string, callerID string) error {
	operator, err := s.repo.Operator.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOperatorNotFound
		}
		s.logger.Error("查询竞标人员失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if _, err := requireStructureEditable(ctx, s.repo, operator.BidYearID); err != nil {
		return err
	}

	if err := s.repo.Operator.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除竞标人员失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func applySeniorityDates(operator *model.Operator, cumulativeBU, bu, eod, scd *string) error {
	parse := func(raw *string) (*time.Time, error) {
		if raw == nil {
			return nil, nil
		}
		if *raw == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", *raw)
		if err != nil {
			return nil, ErrOperatorDateInvalid
		}
		return &t, nil
	}

	if cumulativeBU != nil {
		t, err := parse(cumulativeBU)
		if err != nil {
			return err
		}
		operator.CumulativeBUDate = t
	}
	if bu != nil {
		t, err := parse(bu)
		if err != nil {
			return err
		}
		operator.BUDate = t
	}
	if eod != nil {
		t, err := parse(eod)
		if err != nil {
			return err
		}
		operator.EODDate = t
	}
	if scd != nil {
		t, err := parse(scd)
		if err != nil {
			return err
		}
		operator.SCDDate = t
	}
	return nil
}

func toOperatorResponse(operator *model.Operator) *dto.OperatorResponse {
	fmtDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("2006-01-02")
		return &s
	}

	resp := &dto.OperatorResponse{
		OperatorID:            operator.OperatorID,
		BidYearID:             operator.BidYearID,
		AreaID:                operator.AreaID,
		Initials:              operator.Initials,
		Name:                  operator.Name,
		UserType:              operator.UserType,
		CrewNumber:            operator.CrewNumber,
		CumulativeBUDate:      fmtDate(operator.CumulativeBUDate),
		BUDate:                fmtDate(operator.BUDate),
		EODDate:               fmtDate(operator.EODDate),
		SCDDate:               fmtDate(operator.SCDDate),
		LotteryNumber:         operator.LotteryNumber,
		ExcludedFromBidding:   operator.ExcludedFromBidding,
		ExcludedFromLeaveCalc: operator.ExcludedFromLeaveCalc,
		NoBidReviewed:         operator.NoBidReviewed,
	}
	if operator.Area != nil {
		resp.AreaCode = operator.Area.Code
	}
	return resp
}

// [自证通过] internal/service/operator_service.go
