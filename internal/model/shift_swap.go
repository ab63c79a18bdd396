package model

// ShiftSwap 换班申请表 — 对应 shift_swaps
// FromUser 发起换班；ToUser 为受邀接班人，可暂缺
type ShiftSwap struct {
	ShiftSwapID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_swap_id"`
	ShiftID     string  `gorm:"type:uuid;not null"                             json:"shift_id"`
	FromUserID  string  `gorm:"type:uuid;not null"                             json:"from_user_id"`
	ToUserID    *string `gorm:"type:uuid"                                      json:"to_user_id,omitempty"`
	Status      string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	BaseModel

	// 关联
	Shift    *Shift `gorm:"foreignKey:ShiftID;references:ShiftID"   json:"shift,omitempty"`
	FromUser *User  `gorm:"foreignKey:FromUserID;references:UserID" json:"from_user,omitempty"`
	ToUser   *User  `gorm:"foreignKey:ToUserID;references:UserID"   json:"to_user,omitempty"`
}

// TableName 指定表名
func (ShiftSwap) TableName() string { return "shift_swaps" }
