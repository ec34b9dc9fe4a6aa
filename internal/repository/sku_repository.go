package repository

import (
	"errors"

	"github.com/meiduo-next/mall/internal/models"

	"gorm.io/gorm"
)

// SKURepository SKU 数据访问接口
type SKURepository interface {
	GetByID(id uint) (*models.SKU, error)
	ListByIDs(ids []uint) ([]models.SKU, error)
	Create(item *models.SKU) error
	Update(item *models.SKU) error
	ConditionalUpdateStock(skuID uint, expectedStock, newStock, newSales int) (bool, error)
	WithTx(tx *gorm.DB) SKURepository
}

// GormSKURepository GORM 实现
type GormSKURepository struct {
	db *gorm.DB
}

// NewSKURepository 创建 SKU 仓库
func NewSKURepository(db *gorm.DB) *GormSKURepository {
	return &GormSKURepository{db: db}
}

// WithTx 绑定事务
func (r *GormSKURepository) WithTx(tx *gorm.DB) SKURepository {
	if tx == nil {
		return r
	}
	return &GormSKURepository{db: tx}
}

// GetByID 根据 ID 获取 SKU
func (r *GormSKURepository) GetByID(id uint) (*models.SKU, error) {
	if id == 0 {
		return nil, errors.New("invalid sku id")
	}
	var item models.SKU
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs 批量获取 SKU
func (r *GormSKURepository) ListByIDs(ids []uint) ([]models.SKU, error) {
	if len(ids) == 0 {
		return []models.SKU{}, nil
	}
	var items []models.SKU
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建 SKU
func (r *GormSKURepository) Create(item *models.SKU) error {
	if item == nil {
		return errors.New("sku is nil")
	}
	return r.db.Create(item).Error
}

// Update 更新 SKU
func (r *GormSKURepository) Update(item *models.SKU) error {
	if item == nil {
		return errors.New("sku is nil")
	}
	return r.db.Save(item).Error
}

// ConditionalUpdateStock 以读取时的库存为前提条件更新库存与销量。
// 单条 UPDATE 同时校验与写入，返回是否命中（乐观并发控制的唯一同步点）。
func (r *GormSKURepository) ConditionalUpdateStock(skuID uint, expectedStock, newStock, newSales int) (bool, error) {
	if skuID == 0 || newStock < 0 || newSales < 0 {
		return false, errors.New("invalid stock update params")
	}
	result := r.db.Model(&models.SKU{}).
		Where("id = ? AND stock = ?", skuID, expectedStock).
		Updates(map[string]interface{}{
			"stock": newStock,
			"sales": newSales,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
