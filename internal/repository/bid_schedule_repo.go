package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// BidScheduleRepository 竞标日程数据访问接口
type BidScheduleRepository interface {
	GetByBidYear(ctx context.Context, bidYearID string) (*model.BidSchedule, error)
	Create(ctx context.Context, schedule *model.BidSchedule) error
	Update(ctx context.Context, schedule *model.BidSchedule) error
}

type bidScheduleRepo struct {
	db *gorm.DB
}

// NewBidScheduleRepo 创建 BidScheduleRepository 实例
func NewBidScheduleRepo(db *gorm.DB) BidScheduleRepository {
	return &bidScheduleRepo{db: db}
}

func (r *bidScheduleRepo) GetByBidYear(ctx context.Context, bidYearID string) (*model.BidSchedule, error) {
	var schedule model.BidSchedule
	err := r.db.WithContext(ctx).
		Where("bid_year_id = ?", bidYearID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *bidScheduleRepo) Create(ctx context.Context, schedule *model.BidSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *bidScheduleRepo) Update(ctx context.Context, schedule *model.BidSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}
