package provider

import (
	"time"

	"github.com/meiduo-next/mall/internal/cache"
	"github.com/meiduo-next/mall/internal/cart"
	"github.com/meiduo-next/mall/internal/config"
	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/queue"
	"github.com/meiduo-next/mall/internal/repository"
	"github.com/meiduo-next/mall/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStore   cart.Store

	// Repositories
	SKURepo     repository.SKURepository
	OrderRepo   repository.OrderRepository
	AddressRepo repository.AddressRepository

	// Services
	CartService  *service.CartService
	OrderService *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	if cache.Enabled() {
		cartExpire := time.Duration(cfg.Order.CartExpireDays) * 24 * time.Hour
		c.CartStore = cart.NewRedisStore(cache.Client(), cache.Prefix(), cartExpire)
	} else {
		logger.Warnw("provider_cart_store_unavailable")
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.SKURepo = repository.NewSKURepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
}

func (c *Container) initServices() {
	c.CartService = service.NewCartService(c.CartStore, c.SKURepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.SKURepo,
		c.AddressRepo,
		c.CartStore,
		c.QueueClient,
		c.Config.Order.FreightAmount,
		c.Config.Order.StockRetryTimes,
	)
}
