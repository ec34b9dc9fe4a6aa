package repository

import (
	"errors"

	"github.com/meiduo-next/mall/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	GetByIDAndUser(id, userID uint) (*models.Address, error)
	Create(item *models.Address) error
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// GetByIDAndUser 获取用户名下的地址
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	if id == 0 || userID == 0 {
		return nil, errors.New("invalid address query params")
	}
	var item models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(item *models.Address) error {
	if item == nil {
		return errors.New("address is nil")
	}
	return r.db.Create(item).Error
}
