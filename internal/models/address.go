package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表（仅用于下单校验，维护入口在上游系统）
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`           // 用户ID
	Receiver  string         `gorm:"type:varchar(100)" json:"receiver"`       // 收货人
	Province  string         `gorm:"type:varchar(50)" json:"province"`        // 省
	City      string         `gorm:"type:varchar(50)" json:"city"`            // 市
	District  string         `gorm:"type:varchar(50)" json:"district"`        // 区
	Place     string         `gorm:"type:varchar(200)" json:"place"`          // 详细地址
	Mobile    string         `gorm:"type:varchar(20)" json:"mobile"`          // 手机号
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                 // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
