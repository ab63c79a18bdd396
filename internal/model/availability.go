package model

import "time"

// Availability 可用性表 — 对应 availabilities
// 一条记录表示某用户某一天是否可排班
type Availability struct {
	AvailabilityID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Date           time.Time `gorm:"type:date;not null"                             json:"date"`
	IsAvailable    bool      `gorm:"not null;default:true"                          json:"is_available"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Availability) TableName() string { return "availabilities" }
