package repository

import (
	"context"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
)

// AuditRepository 审计事件数据访问接口（仅追加，不提供更新/删除）
type AuditRepository interface {
	Append(ctx context.Context, event *model.AuditEvent) error
	GetByID(ctx context.Context, id string) (*model.AuditEvent, error)
	ListByBidYear(ctx context.Context, bidYearID string, limit, offset int) ([]model.AuditEvent, int64, error)
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo 创建 AuditRepository 实例
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Append(ctx context.Context, event *model.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *auditRepo) GetByID(ctx context.Context, id string) (*model.AuditEvent, error) {
	var event model.AuditEvent
	err := r.db.WithContext(ctx).
		Where("audit_event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *auditRepo) ListByBidYear(ctx context.Context, bidYearID string, limit, offset int) ([]model.AuditEvent, int64, error) {
	var events []model.AuditEvent
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.AuditEvent{}).
		Where("bid_year_id = ?", bidYearID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, total, err
}
