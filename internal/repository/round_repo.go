package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// RoundRepository 轮次数据访问接口
type RoundRepository interface {
	Create(ctx context.Context, round *model.Round) error
	GetByID(ctx context.Context, id string) (*model.Round, error)
	ListByGroup(ctx context.Context, roundGroupID string) ([]model.Round, error)
	Update(ctx context.Context, round *model.Round) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountByGroup(ctx context.Context, roundGroupID string) (int64, error)
}

type roundRepo struct {
	db *gorm.DB
}

// NewRoundRepo 创建 RoundRepository 实例
func NewRoundRepo(db *gorm.DB) RoundRepository {
	return &roundRepo{db: db}
}

func (r *roundRepo) Create(ctx context.Context, round *model.Round) error {
	return r.db.WithContext(ctx).Create(round).Error
}

func (r *roundRepo) GetByID(ctx context.Context, id string) (*model.Round, error) {
	var round model.Round
	err := r.db.WithContext(ctx).
		Where("round_id = ?", id).
		First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepo) ListByGroup(ctx context.Context, roundGroupID string) ([]model.Round, error) {
	var rounds []model.Round
	err := r.db.WithContext(ctx).
		Where("round_group_id = ?", roundGroupID).
		Order("round_number").
		Find(&rounds).Error
	return rounds, err
}

func (r *roundRepo) Update(ctx context.Context, round *model.Round) error {
	return r.db.WithContext(ctx).Save(round).Error
}

func (r *roundRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Round{}).
		Where("round_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *roundRepo) CountByGroup(ctx context.Context, roundGroupID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Round{}).
		Where("round_group_id = ?", roundGroupID).
		Count(&count).Error
	return count, err
}
