package model

import "time"

// Shift 班次表 — 对应 shifts
// UserID 可为空：班次允许暂未分配；用户删除时数据库置空归属（ON DELETE SET NULL）
type Shift struct {
	ShiftID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	UserID    *string   `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	StartTime time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime   time.Time `gorm:"not null"                                       json:"end_time"`
	Role      string    `gorm:"type:varchar(100);not null"                     json:"role"`
	Location  string    `gorm:"type:varchar(100);not null"                     json:"location"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }
