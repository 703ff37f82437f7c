package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// OperatorRepository 竞标人员数据访问接口
type OperatorRepository interface {
	Create(ctx context.Context, operator *model.Operator) error
	GetByID(ctx context.Context, id string) (*model.Operator, error)
	ListByArea(ctx context.Context, areaID string) ([]model.Operator, error)
	ListByBidYear(ctx context.Context, bidYearID string) ([]model.Operator, error)
	Update(ctx context.Context, operator *model.Operator) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountByArea(ctx context.Context, areaID string) (int64, error)
}

type operatorRepo struct {
	db *gorm.DB
}

// NewOperatorRepo 创建 OperatorRepository 实例
func NewOperatorRepo(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db: db}
}

func (r *operatorRepo) Create(ctx context.Context, operator *model.Operator) error {
	return r.db.WithContext(ctx).Create(operator).Error
}

func (r *operatorRepo) GetByID(ctx context.Context, id string) (*model.Operator, error) {
	var operator model.Operator
	err := r.db.WithContext(ctx).
		Preload("Area").
		Where("operator_id = ?", id).
		First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepo) ListByArea(ctx context.Context, areaID string) ([]model.Operator, error) {
	var operators []model.Operator
	err := r.db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("initials").
		Find(&operators).Error
	return operators, err
}

func (r *operatorRepo) ListByBidYear(ctx context.Context, bidYearID string) ([]model.Operator, error) {
	var operators []model.Operator
	err := r.db.WithContext(ctx).
		Where("bid_year_id = ?", bidYearID).
		Order("initials").
		Find(&operators).Error
	return operators, err
}

func (r *operatorRepo) Update(ctx context.Context, operator *model.Operator) error {
	return r.db.WithContext(ctx).Save(operator).Error
}

func (r *operatorRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("operator_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *operatorRepo) CountByArea(ctx context.Context, areaID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("area_id = ?", areaID).
		Count(&count).Error
	return count, err
}
