package service

import (
	"context"

	"github.com/meiduo-next/mall/internal/cart"
	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	SKUID    uint         `json:"sku_id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Count    int          `json:"count"`
	Selected bool         `json:"selected"`
	Stock    int          `json:"stock"`
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	UserID   uint
	SKUID    uint
	Count    int
	Selected bool
}

// CartService 购物车服务
type CartService struct {
	store   cart.Store
	skuRepo repository.SKURepository
}

// NewCartService 创建购物车服务
func NewCartService(store cart.Store, skuRepo repository.SKURepository) *CartService {
	return &CartService{
		store:   store,
		skuRepo: skuRepo,
	}
}

// ListByUser 获取用户购物车。
// 已下架或已删除的 SKU 会被顺手从购物车里清掉。
func (s *CartService) ListByUser(ctx context.Context, userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	if s.store == nil {
		return nil, ErrCartUnavailable
	}
	entries, err := s.store.GetAll(ctx, userID)
	if err != nil {
		logger.Errorw("cart_list_failed", "user_id", userID, "error", err)
		return nil, ErrCartUnavailable
	}
	if len(entries) == 0 {
		return []CartItemDetail{}, nil
	}

	skuIDs := make([]uint, 0, len(entries))
	for _, entry := range entries {
		skuIDs = append(skuIDs, entry.SKUID)
	}
	skus, err := s.skuRepo.ListByIDs(skuIDs)
	if err != nil {
		logger.Errorw("cart_sku_query_failed", "user_id", userID, "error", err)
		return nil, err
	}
	skuMap := make(map[uint]models.SKU, len(skus))
	for _, sku := range skus {
		skuMap[sku.ID] = sku
	}

	details := make([]CartItemDetail, 0, len(entries))
	var stale []uint
	for _, entry := range entries {
		sku, ok := skuMap[entry.SKUID]
		if !ok || !sku.IsActive {
			stale = append(stale, entry.SKUID)
			continue
		}
		details = append(details, CartItemDetail{
			SKUID:    sku.ID,
			Name:     sku.Name,
			Price:    sku.Price,
			Count:    entry.Count,
			Selected: entry.Selected,
			Stock:    sku.Stock,
		})
	}
	if len(stale) > 0 {
		if err := s.store.RemoveEntries(ctx, userID, stale); err != nil {
			logger.Warnw("cart_stale_clean_failed", "user_id", userID, "sku_ids", stale, "error", err)
		}
	}
	return details, nil
}

// UpsertItem 添加或更新购物车项
func (s *CartService) UpsertItem(ctx context.Context, input UpsertCartItemInput) error {
	if input.UserID == 0 || input.SKUID == 0 || input.Count <= 0 {
		return ErrInvalidCartItem
	}
	if s.store == nil {
		return ErrCartUnavailable
	}
	sku, err := s.skuRepo.GetByID(input.SKUID)
	if err != nil {
		logger.Errorw("cart_sku_query_failed", "sku_id", input.SKUID, "error", err)
		return err
	}
	if sku == nil || !sku.IsActive {
		return ErrSKUNotAvailable
	}
	if input.Count > sku.Stock {
		return ErrStockInsufficient
	}
	if err := s.store.SetEntry(ctx, input.UserID, input.SKUID, input.Count, input.Selected); err != nil {
		logger.Errorw("cart_upsert_failed", "user_id", input.UserID, "sku_id", input.SKUID, "error", err)
		return ErrCartUnavailable
	}
	return nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(ctx context.Context, userID, skuID uint) error {
	if userID == 0 || skuID == 0 {
		return ErrInvalidCartItem
	}
	if s.store == nil {
		return ErrCartUnavailable
	}
	if err := s.store.RemoveEntries(ctx, userID, []uint{skuID}); err != nil {
		logger.Errorw("cart_remove_failed", "user_id", userID, "sku_id", skuID, "error", err)
		return ErrCartUnavailable
	}
	return nil
}

// SelectAll 全选或全不选
func (s *CartService) SelectAll(ctx context.Context, userID uint, selected bool) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	if s.store == nil {
		return ErrCartUnavailable
	}
	if err := s.store.SelectAll(ctx, userID, selected); err != nil {
		logger.Errorw("cart_select_all_failed", "user_id", userID, "error", err)
		return ErrCartUnavailable
	}
	return nil
}

// MergeGuestCart 登录时把游客购物车合并进用户购物车。
// 同一 SKU 以游客侧数量覆盖，勾选状态也以游客侧为准。
func (s *CartService) MergeGuestCart(ctx context.Context, userID uint, guest []cart.Entry) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	if s.store == nil {
		return ErrCartUnavailable
	}
	if len(guest) == 0 {
		return nil
	}
	counts := make(map[uint]int, len(guest))
	var selected, unselected []uint
	for _, entry := range guest {
		if entry.SKUID == 0 || entry.Count <= 0 {
			return ErrInvalidCartItem
		}
		counts[entry.SKUID] = entry.Count
		if entry.Selected {
			selected = append(selected, entry.SKUID)
		} else {
			unselected = append(unselected, entry.SKUID)
		}
	}
	if err := s.store.Merge(ctx, userID, counts, selected, unselected); err != nil {
		logger.Errorw("cart_merge_failed", "user_id", userID, "error", err)
		return ErrCartUnavailable
	}
	return nil
}
