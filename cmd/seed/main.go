package main

import (
	"github.com/meiduo-next/mall/internal/config"
	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加 SKU
	skus := []models.SKU{
		{
			Name:     "Apple iPhone 15 128GB 黑色",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(5999.00)),
			Stock:    50,
			IsActive: true,
		},
		{
			Name:     "小米移动电源 10000mAh",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(99.00)),
			Stock:    500,
			IsActive: true,
		},
		{
			Name:     "罗技 MX Master 3S 无线鼠标",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(649.00)),
			Stock:    120,
			IsActive: true,
		},
		{
			Name:     "Kindle Paperwhite 电子书阅读器",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(1068.00)),
			Stock:    30,
			IsActive: true,
		},
		{
			Name:     "已下架测试商品",
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(1.00)),
			Stock:    0,
			IsActive: false,
		},
	}

	for _, sku := range skus {
		var existing models.SKU
		if err := models.DB.Where("name = ?", sku.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&sku).Error; err != nil {
				stdLog.Printf("Failed to create sku %s: %v", sku.Name, err)
			} else {
				stdLog.Printf("Created sku: %s", sku.Name)
			}
		} else {
			stdLog.Printf("SKU already exists: %s", sku.Name)
		}
	}

	// 添加测试收货地址
	addresses := []models.Address{
		{
			UserID:   1,
			Receiver: "张三",
			Province: "广东省",
			City:     "深圳市",
			District: "南山区",
			Place:    "科技园南区 8 栋 101",
			Mobile:   "13800138000",
		},
		{
			UserID:   2,
			Receiver: "李四",
			Province: "北京市",
			City:     "北京市",
			District: "海淀区",
			Place:    "中关村大街 1 号",
			Mobile:   "13900139000",
		},
	}

	for _, addr := range addresses {
		var existing models.Address
		if err := models.DB.Where("user_id = ? AND mobile = ?", addr.UserID, addr.Mobile).First(&existing).Error; err != nil {
			if err := models.DB.Create(&addr).Error; err != nil {
				stdLog.Printf("Failed to create address for user %d: %v", addr.UserID, err)
			} else {
				stdLog.Printf("Created address for user %d", addr.UserID)
			}
		} else {
			stdLog.Printf("Address already exists for user %d", addr.UserID)
		}
	}

	stdLog.Println("Seed data completed")
}
