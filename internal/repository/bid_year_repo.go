package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
	pkgerrors "shiftbid/backend/pkg/errors"
)

// BidYearRepository 竞标年度数据访问接口
type BidYearRepository interface {
	Create(ctx context.Context, bidYear *model.BidYear) error
	GetByID(ctx context.Context, id string) (*model.BidYear, error)
	GetActive(ctx context.Context) (*model.BidYear, error)
	List(ctx context.Context) ([]model.BidYear, error)
	Update(ctx context.Context, bidYear *model.BidYear) error
	ClearActive(ctx context.Context) error
	// UpdateState 以 WHERE state=from 的条件更新实现前向推进的并发保护：
	// 当前状态已被他人推进时返回 pkgerrors.ErrConcurrencyConflict
	UpdateState(ctx context.Context, id string, from, to model.LifecycleState) error
}

type bidYearRepo struct {
	db *gorm.DB
}

// NewBidYearRepo 创建 BidYearRepository 实例
func NewBidYearRepo(db *gorm.DB) BidYearRepository {
	return &bidYearRepo{db: db}
}

func (r *bidYearRepo) Create(ctx context.Context, bidYear *model.BidYear) error {
	return r.db.WithContext(ctx).Create(bidYear).Error
}

func (r *bidYearRepo) GetByID(ctx context.Context, id string) (*model.BidYear, error) {
	var bidYear model.BidYear
	err := r.db.WithContext(ctx).
		Where("bid_year_id = ?", id).
		First(&bidYear).Error
	if err != nil {
		return nil, err
	}
	return &bidYear, nil
}

func (r *bidYearRepo) GetActive(ctx context.Context) (*model.BidYear, error) {
	var bidYear model.BidYear
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&bidYear).Error
	if err != nil {
		return nil, err
	}
	return &bidYear, nil
}

func (r *bidYearRepo) List(ctx context.Context) ([]model.BidYear, error) {
	var bidYears []model.BidYear
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Find(&bidYears).Error
	return bidYears, err
}

func (r *bidYearRepo) Update(ctx context.Context, bidYear *model.BidYear) error {
	return r.db.WithContext(ctx).Save(bidYear).Error
}

// ClearActive 将所有竞标年度的 is_active 设为 false
func (r *bidYearRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.BidYear{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *bidYearRepo) UpdateState(ctx context.Context, id string, from, to model.LifecycleState) error {
	res := r.db.WithContext(ctx).
		Model(&model.BidYear{}).
		Where("bid_year_id = ? AND state = ?", id, from).
		Update("state", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrConcurrencyConflict
	}
	return nil
}
