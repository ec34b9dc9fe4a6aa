package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID      uint           `gorm:"index;not null" json:"user_id"`                              // 用户ID
	AddressID   uint           `gorm:"index;not null" json:"address_id"`                           // 收货地址ID
	PayMethod   string         `gorm:"not null" json:"pay_method"`                                 // 支付方式
	Status      string         `gorm:"index;not null" json:"status"`                               // 订单状态
	TotalCount  int            `gorm:"not null;default:0" json:"total_count"`                      // 商品总数
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 实付金额（含运费）
	Freight     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"freight"`       // 运费
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Goods []OrderGoods `gorm:"foreignKey:OrderID" json:"goods,omitempty"` // 订单明细
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
