package worker

import (
	"context"
	"encoding/json"

	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/provider"
	"github.com/meiduo-next/mall/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartClean, c.handleCartClean)
}

// handleCartClean 清理下单成功后的购物车条目。
// 清理失败返回错误交给队列重试，不影响已落库的订单。
func (c *Consumer) handleCartClean(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_clean_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartCleanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_clean_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || len(payload.SKUIDs) == 0 {
		logger.Debugw("worker_cart_clean_skip_invalid_payload", "user_id", payload.UserID, "sku_count", len(payload.SKUIDs))
		return nil
	}
	if c.CartStore == nil {
		logger.Warnw("worker_cart_clean_skip_store_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.CartStore.RemoveEntries(ctx, payload.UserID, payload.SKUIDs); err != nil {
		logger.Warnw("worker_cart_clean_failed", "user_id", payload.UserID, "sku_ids", payload.SKUIDs, "error", err)
		return err
	}
	return nil
}
