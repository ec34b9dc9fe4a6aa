package models

import (
	"time"

	"gorm.io/gorm"
)

// SKU 商品规格表（库存与销量为并发控制的核心字段）
type SKU struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`              // 名称
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 单价
	Stock     int            `gorm:"not null;default:0" json:"stock"`                     // 可售库存（条件更新保证不为负）
	Sales     int            `gorm:"not null;default:0" json:"sales"`                     // 累计销量
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (SKU) TableName() string {
	return "skus"
}
