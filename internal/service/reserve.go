package service

import (
	"fmt"

	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/repository"
)

// reserveOutcome 单次库存预占尝试的结果
type reserveOutcome int

const (
	reserveApplied  reserveOutcome = iota // 条件更新命中
	reserveConflict                       // 读取后库存已被并发请求改写
	reserveShortage                       // 库存不足
)

// reserveAttempt 读取 SKU 并以读取值为前提执行一次条件扣减。
// 不含重试语义，是否继续由调用方决定。
func reserveAttempt(skuRepo repository.SKURepository, skuID uint, count int) (*models.SKU, reserveOutcome, error) {
	sku, err := skuRepo.GetByID(skuID)
	if err != nil {
		return nil, reserveConflict, err
	}
	if sku == nil || !sku.IsActive {
		return nil, reserveShortage, fmt.Errorf("%w: sku %d", ErrSKUNotAvailable, skuID)
	}
	if count > sku.Stock {
		return sku, reserveShortage, nil
	}
	applied, err := skuRepo.ConditionalUpdateStock(sku.ID, sku.Stock, sku.Stock-count, sku.Sales+count)
	if err != nil {
		return sku, reserveConflict, err
	}
	if !applied {
		return sku, reserveConflict, nil
	}
	return sku, reserveApplied, nil
}

// runBounded 以固定预算重复执行 op，op 返回 true 表示已完成。
// 返回 false 且无错误表示预算耗尽。
func runBounded(attempts int, op func() (bool, error)) (bool, error) {
	for i := 0; i < attempts; i++ {
		done, err := op()
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}
	return false, nil
}

// reserveStock 为单个 SKU 预占库存，条件更新落空时在预算内重读重试。
// 库存不足立即失败；预算耗尽返回 ErrStockContention。
func reserveStock(skuRepo repository.SKURepository, skuID uint, count, attempts int) (*models.SKU, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var reserved *models.SKU
	done, err := runBounded(attempts, func() (bool, error) {
		sku, outcome, err := reserveAttempt(skuRepo, skuID, count)
		if err != nil {
			return false, err
		}
		switch outcome {
		case reserveApplied:
			reserved = sku
			return true, nil
		case reserveShortage:
			return false, fmt.Errorf("%w: %s", ErrStockInsufficient, sku.Name)
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, fmt.Errorf("%w: sku %d", ErrStockContention, skuID)
	}
	return reserved, nil
}
