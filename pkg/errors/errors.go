package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrConcurrencyConflict 并发冲突：封板竞争失败或同一封板记录被并发覆盖，
// 调用方应重新读取状态后决定是否重试
var ErrConcurrencyConflict = errors.New("并发冲突，请刷新状态后重试")
