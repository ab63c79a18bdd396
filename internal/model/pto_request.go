package model

import "time"

// 请假/换班申请状态
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// 请假类型
const (
	PTOTypeVacation = "vacation"
	PTOTypeSick     = "sick"
	PTOTypeOther    = "other"
)

// PTORequest 请假申请表 — 对应 pto_requests
type PTORequest struct {
	PTORequestID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pto_request_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Type         string    `gorm:"type:varchar(20);not null"                      json:"type"`   // vacation | sick | other
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	Reason       string    `gorm:"type:text;not null;default:''"                  json:"reason"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (PTORequest) TableName() string { return "pto_requests" }
