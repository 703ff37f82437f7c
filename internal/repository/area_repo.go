package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// AreaRepository 区域数据访问接口
type AreaRepository interface {
	Create(ctx context.Context, area *model.Area) error
	GetByID(ctx context.Context, id string) (*model.Area, error)
	GetSystemArea(ctx context.Context, bidYearID string) (*model.Area, error)
	ListByBidYear(ctx context.Context, bidYearID string) ([]model.Area, error)
	Update(ctx context.Context, area *model.Area) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountByRoundGroup(ctx context.Context, roundGroupID string) (int64, error)
}

type areaRepo struct {
	db *gorm.DB
}

// NewAreaRepo 创建 AreaRepository 实例
func NewAreaRepo(db *gorm.DB) AreaRepository {
	return &areaRepo{db: db}
}

func (r *areaRepo) Create(ctx context.Context, area *model.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *areaRepo) GetByID(ctx context.Context, id string) (*model.Area, error) {
	var area model.Area
	err := r.db.WithContext(ctx).
		Preload("RoundGroup").
		Where("area_id = ?", id).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaRepo) GetSystemArea(ctx context.Context, bidYearID string) (*model.Area, error) {
	var area model.Area
	err := r.db.WithContext(ctx).
		Where("bid_year_id = ? AND is_system = ?", bidYearID, true).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaRepo) ListByBidYear(ctx context.Context, bidYearID string) ([]model.Area, error) {
	var areas []model.Area
	err := r.db.WithContext(ctx).
		Preload("RoundGroup").
		Where("bid_year_id = ?", bidYearID).
		Order("code").
		Find(&areas).Error
	return areas, err
}

func (r *areaRepo) Update(ctx context.Context, area *model.Area) error {
	return r.db.WithContext(ctx).Save(area).Error
}

func (r *areaRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Area{}).
		Where("area_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *areaRepo) CountByRoundGroup(ctx context.Context, roundGroupID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Area{}).
		Where("round_group_id = ?", roundGroupID).
		Count(&count).Error
	return count, err
}
