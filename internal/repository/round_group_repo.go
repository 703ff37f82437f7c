package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// RoundGroupRepository 轮组数据访问接口
type RoundGroupRepository interface {
	Create(ctx context.Context, group *model.RoundGroup) error
	GetByID(ctx context.Context, id string) (*model.RoundGroup, error)
	ListByBidYear(ctx context.Context, bidYearID string) ([]model.RoundGroup, error)
	Update(ctx context.Context, group *model.RoundGroup) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type roundGroupRepo struct {
	db *gorm.DB
}

// NewRoundGroupRepo 创建 RoundGroupRepository 实例
func NewRoundGroupRepo(db *gorm.DB) RoundGroupRepository {
	return &roundGroupRepo{db: db}
}

func (r *roundGroupRepo) Create(ctx context.Context, group *model.RoundGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *roundGroupRepo) GetByID(ctx context.Context, id string) (*model.RoundGroup, error) {
	var group model.RoundGroup
	err := r.db.WithContext(ctx).
		Preload("Rounds").
		Where("round_group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *roundGroupRepo) ListByBidYear(ctx context.Context, bidYearID string) ([]model.RoundGroup, error) {
	var groups []model.RoundGroup
	err := r.db.WithContext(ctx).
		Preload("Rounds").
		Where("bid_year_id = ?", bidYearID).
		Order("name").
		Find(&groups).Error
	return groups, err
}

func (r *roundGroupRepo) Update(ctx context.Context, group *model.RoundGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *roundGroupRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.RoundGroup{}).
		Where("round_group_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
