package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderGoods 订单明细表（价格为下单时点快照，不随 SKU 改价变化）
type OrderGoods struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                // 主键
	OrderID   uint           `gorm:"index;not null" json:"order_id"`                      // 订单ID
	SKUID     uint           `gorm:"index;not null" json:"sku_id"`                        // SKU ID
	Count     int            `gorm:"not null" json:"count"`                               // 购买数量
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 成交单价
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (OrderGoods) TableName() string {
	return "order_goods"
}
