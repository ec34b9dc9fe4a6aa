package queue

import (
	"encoding/json"

	"github.com/meiduo-next/mall/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartClean 下单成功后的购物车清理任务
	TaskCartClean = constants.TaskCartClean
)

// CartCleanPayload 购物车清理任务载荷
type CartCleanPayload struct {
	UserID uint   `json:"user_id"`
	SKUIDs []uint `json:"sku_ids"`
}

// NewCartCleanTask 创建购物车清理任务
func NewCartCleanTask(payload CartCleanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartClean, body), nil
}
