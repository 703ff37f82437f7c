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

// ── 竞标年度模块业务错误 ──

var (
	ErrBidYearNotFound        = errors.New("竞标年度不存在")
	ErrYearTaken              = errors.New("该年份已存在竞标年度")
	ErrBidYearDateInvalid     = errors.New("日期格式无效")
	ErrLifecycleViolation     = errors.New("封板后不允许修改结构性配置")
	ErrStateUnknown           = errors.New("未知的生命周期状态")
	ErrStateTransitionInvalid = errors.New("生命周期状态只能逐级前进，不可跳级或回退")
	ErrStateNeedCanonicalize  = errors.New("进入 canonicalized 必须通过封板操作")
	ErrReadinessNotMet        = errors.New("就绪检查未通过，存在未解决的阻塞项")
)

// BidYearService 竞标年度业务接口
type BidYearService interface {
	Create(ctx context.Context, req *dto.CreateBidYearRequest, callerID string) (*dto.BidYearResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BidYearResponse, error)
	List(ctx context.Context) ([]dto.BidYearResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBidYearRequest, callerID string) (*dto.BidYearResponse, error)
	Activate(ctx context.Context, id string, callerID string) error
	AdvanceState(ctx context.Context, id string, req *dto.AdvanceStateRequest, callerID string) (*dto.BidYearResponse, error)
}

type bidYearService struct {
	repo      *repository.Repository
	readiness ReadinessService
	logger    *zap.Logger
}

// NewBidYearService 创建 BidYearService 实例
func NewBidYearService(repo *repository.Repository, readiness ReadinessService, logger *zap.Logger) BidYearService {
	return &bidYearService{repo: repo, readiness: readiness, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *bidYearService) Create(ctx context.Context, req *dto.CreateBidYearRequest, callerID string) (*dto.BidYearResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrBidYearDateInvalid
	}

	bidYear := &model.BidYear{
		Year:              req.Year,
		StartDate:         startDate,
		PayPeriods:        req.PayPeriods,
		IsActive:          false,
		ExpectedAreaCount: req.ExpectedAreaCount,
		State:             model.StateDraft,
	}
	bidYear.CreatedBy = &callerID
	bidYear.UpdatedBy = &callerID

	// 新年度自带系统区域（"No Bid" 池），与年度同事务创建
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

	if err := txRepo.BidYear.Create(ctx, bidYear); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建竞标年度失败", zap.Int("year", req.Year), zap.Error(err))
		return nil, ErrYearTaken
	}

	systemArea := &model.Area{
		BidYearID: bidYear.BidYearID,
		Code:      "NOBID",
		Name:      "No Bid",
		IsSystem:  true,
	}
	systemArea.CreatedBy = &callerID
	systemArea.UpdatedBy = &callerID

	if err := txRepo.Area.Create(ctx, systemArea); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建系统区域失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return toBidYearResponse(bidYear), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *bidYearService) GetByID(ctx context.Context, id string) (*dto.BidYearResponse, error) {
	bidYear, err := s.repo.BidYear.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toBidYearResponse(bidYear), nil
}

// ────────────────────── List ──────────────────────

func (s *bidYearService) List(ctx context.Context) ([]dto.BidYearResponse, error) {
	bidYears, err := s.repo.BidYear.List(ctx)
	if err != nil {
		s.logger.Error("列出竞标年度失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BidYearResponse, 0, len(bidYears))
	for i := range bidYears {
		result = append(result, *toBidYearResponse(&bidYears[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *bidYearService) Update(ctx context.Context, id string, req *dto.UpdateBidYearRequest, callerID string) (*dto.BidYearResponse, error) {
	bidYear, err := s.repo.BidYear.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 封板后结构性字段冻结
	if bidYear.State.StructureFrozen() {
		return nil, ErrLifecycleViolation
	}

	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrBidYearDateInvalid
		}
		bidYear.StartDate = startDate
	}
	if req.PayPeriods != nil {
		bidYear.PayPeriods = *req.PayPeriods
	}
	if req.ExpectedAreaCount != nil {
		bidYear.ExpectedAreaCount = req.ExpectedAreaCount
	}

	bidYear.UpdatedBy = &callerID

	if err := s.repo.BidYear.Update(ctx, bidYear); err != nil {
		s.logger.Error("更新竞标年度失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toBidYearResponse(bidYear), nil
}

// ────────────────────── Activate ──────────────────────

func (s *bidYearService) Activate(ctx context.Context, id string, callerID string) error {
	bidYear, err := s.repo.BidYear.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 使用事务保证 ClearActive + Update 的原子性
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
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

	if err := txRepo.BidYear.ClearActive(ctx); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("清除激活年度失败", zap.Error(err))
		return err
	}

	bidYear.IsActive = true
	bidYear.UpdatedBy = &callerID

	if err := txRepo.BidYear.Update(ctx, bidYear); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("激活竞标年度失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── AdvanceState ──────────────────────

// AdvanceState 推进生命周期状态。
//
// draft → bootstrap_complete 以就绪检查零阻塞为前提；
// bootstrap_complete → canonicalized 不走本方法（必须经封板事务）；
// canonicalized → bidding_active、bidding_active → bidding_closed
// 仅受当前状态约束。写入采用 WHERE state=当前值 的条件更新，
// 并发推进时落败方收到 ErrConcurrencyConflict。
func (s *bidYearService) AdvanceState(ctx context.Context, id string, req *dto.AdvanceStateRequest, callerID string) (*dto.BidYearResponse, error) {
	target, ok := model.ParseLifecycleState(req.TargetState)
	if !ok {
		return nil, ErrStateUnknown
	}
	if target == model.StateCanonicalized {
		return nil, ErrStateNeedCanonicalize
	}

	bidYear, err := s.repo.BidYear.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		s.logger.Error("查询竞标年度失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !bidYear.State.CanTransitionTo(target) {
		return nil, ErrStateTransitionInvalid
	}

	if target == model.StateBootstrapComplete {
		result, err := s.readiness.Evaluate(ctx, id)
		if err != nil {
			return nil, err
		}
		if !result.Ready {
			return nil, ErrReadinessNotMet
		}
	}

	if err := s.repo.BidYear.UpdateState(ctx, id, bidYear.State, target); err != nil {
		s.logger.Error("推进生命周期状态失败",
			zap.String("id", id),
			zap.String("from", string(bidYear.State)),
			zap.String("to", string(target)),
			zap.Error(err))
		return nil, err
	}

	bidYear.State = target
	return toBidYearResponse(bidYear), nil
}

// ── 内部辅助方法 ──

func toBidYearResponse(bidYear *model.BidYear) *dto.BidYearResponse {
	return &dto.BidYearResponse{
		BidYearID:         bidYear.BidYearID,
		Year:              bidYear.Year,
		StartDate:         bidYear.StartDate.Format("2006-01-02"),
		PayPeriods:        bidYear.PayPeriods,
		IsActive:          bidYear.IsActive,
		ExpectedAreaCount: bidYear.ExpectedAreaCount,
		State:             string(bidYear.State),
		CreatedAt:         bidYear.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         bidYear.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/bid_year_service.go
