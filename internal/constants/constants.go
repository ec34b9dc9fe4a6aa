package constants

// 订单状态常量
const (
	OrderStatusUnpaid     = "unpaid"     // 待支付
	OrderStatusUnsend     = "unsend"     // 待发货
	OrderStatusUnreceived = "unreceived" // 待收货
	OrderStatusUncomment  = "uncomment"  // 待评价
	OrderStatusFinished   = "finished"   // 已完成
)

// 支付方式常量
const (
	PayMethodCash   = "cash"   // 货到付款
	PayMethodAlipay = "alipay" // 支付宝
)

// 库存预占常量
const (
	// StockRetryTimes 条件扣减失败后的最大重试次数
	StockRetryTimes = 3
)

// 购物车 Redis 键格式
const (
	CartHashKeyFormat     = "cart_%d"          // hash: sku_id -> count
	CartSelectedKeyFormat = "cart_selected_%d" // set: 已勾选 sku_id
)

// 队列常量
const (
	QueueDefault  = "default"
	TaskCartClean = "cart:clean"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "mall"
)
