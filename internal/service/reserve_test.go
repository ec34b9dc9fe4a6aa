package service

import (
	"errors"
	"testing"

	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeSKURepo 内存实现，conflicts 控制条件更新落空的次数
type fakeSKURepo struct {
	sku       models.SKU
	conflicts int
	getCalls  int
	applied   int
}

func (r *fakeSKURepo) GetByID(id uint) (*models.SKU, error) {
	r.getCalls++
	if id != r.sku.ID {
		return nil, nil
	}
	copied := r.sku
	return &copied, nil
}

func (r *fakeSKURepo) ListByIDs(ids []uint) ([]models.SKU, error) {
	for _, id := range ids {
		if id == r.sku.ID {
			return []models.SKU{r.sku}, nil
		}
	}
	return []models.SKU{}, nil
}

func (r *fakeSKURepo) Create(item *models.SKU) error { return nil }
func (r *fakeSKURepo) Update(item *models.SKU) error { return nil }

func (r *fakeSKURepo) ConditionalUpdateStock(skuID uint, expectedStock, newStock, newSales int) (bool, error) {
	if skuID != r.sku.ID {
		return false, nil
	}
	if r.conflicts > 0 {
		// 模拟并发请求抢先改写库存
		r.conflicts--
		r.sku.Stock--
		r.sku.Sales++
		return false, nil
	}
	if expectedStock != r.sku.Stock {
		return false, nil
	}
	r.sku.Stock = newStock
	r.sku.Sales = newSales
	r.applied++
	return true, nil
}

func (r *fakeSKURepo) WithTx(tx *gorm.DB) repository.SKURepository { return r }

func newFakeSKU(stock int) models.SKU {
	return models.SKU{
		ID:       1,
		Name:     "测试SKU",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		Stock:    stock,
		IsActive: true,
	}
}

func TestReserveStockAppliesOnFirstAttempt(t *testing.T) {
	repo := &fakeSKURepo{sku: newFakeSKU(10)}
	sku, err := reserveStock(repo, 1, 3, 3)
	if err != nil {
		t.Fatalf("reserveStock error: %v", err)
	}
	if sku == nil || sku.ID != 1 {
		t.Fatalf("unexpected sku: %+v", sku)
	}
	if repo.sku.Stock != 7 || repo.sku.Sales != 3 {
		t.Fatalf("unexpected stock state: stock=%d sales=%d", repo.sku.Stock, repo.sku.Sales)
	}
	if repo.applied != 1 {
		t.Fatalf("expected 1 applied update, got %d", repo.applied)
	}
}

func TestReserveStockRetriesAfterConflictThenSucceeds(t *testing.T) {
	repo := &fakeSKURepo{sku: newFakeSKU(10), conflicts: 2}
	_, err := reserveStock(repo, 1, 3, 3)
	if err != nil {
		t.Fatalf("reserveStock error: %v", err)
	}
	if repo.applied != 1 {
		t.Fatalf("expected exactly one applied update, got %d", repo.applied)
	}
	// 两次冲突各被并发方扣走 1 件，第三次扣减自己的 3 件
	if repo.sku.Stock != 5 {
		t.Fatalf("unexpected stock after retries: %d", repo.sku.Stock)
	}
}

func TestReserveStockContentionExhausted(t *testing.T) {
	repo := &fakeSKURepo{sku: newFakeSKU(100), conflicts: 100}
	_, err := reserveStock(repo, 1, 1, 3)
	if !errors.Is(err, ErrStockContention) {
		t.Fatalf("expected ErrStockContention, got: %v", err)
	}
	if repo.applied != 0 {
		t.Fatalf("expected no applied update, got %d", repo.applied)
	}
	if repo.getCalls != 3 {
		t.Fatalf("expected 3 read attempts, got %d", repo.getCalls)
	}
}

func TestReserveStockInsufficientFailsImmediately(t *testing.T) {
	repo := &fakeSKURepo{sku: newFakeSKU(2)}
	_, err := reserveStock(repo, 1, 5, 3)
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got: %v", err)
	}
	if repo.getCalls != 1 {
		t.Fatalf("expected shortage to abort after first read, got %d reads", repo.getCalls)
	}
	if repo.applied != 0 {
		t.Fatalf("expected no applied update, got %d", repo.applied)
	}
}

func TestReserveStockInactiveSKU(t *testing.T) {
	sku := newFakeSKU(10)
	sku.IsActive = false
	repo := &fakeSKURepo{sku: sku}
	_, err := reserveStock(repo, 1, 1, 3)
	if !errors.Is(err, ErrSKUNotAvailable) {
		t.Fatalf("expected ErrSKUNotAvailable, got: %v", err)
	}
}

func TestRunBoundedStopsOnBudget(t *testing.T) {
	calls := 0
	done, err := runBounded(3, func() (bool, error) {
		calls++
		return false, nil
	})
	if err != nil {
		t.Fatalf("runBounded error: %v", err)
	}
	if done {
		t.Fatalf("expected budget exhaustion")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}
