package service

import (
	"context"
	"errors"
	"testing"

	"github.com/meiduo-next/mall/internal/cart"
	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/repository"
)

func TestCartUpsertItemChecksStock(t *testing.T) {
	db := setupOrderTestDB(t, "cart_upsert_stock")
	sku := createTestSKU(t, db, "限量商品", "15.00", 3)
	store := newFakeCartStore()
	svc := NewCartService(store, repository.NewSKURepository(db))

	if err := svc.UpsertItem(context.Background(), UpsertCartItemInput{
		UserID: 1, SKUID: sku.ID, Count: 5, Selected: true,
	}); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got: %v", err)
	}

	if err := svc.UpsertItem(context.Background(), UpsertCartItemInput{
		UserID: 1, SKUID: sku.ID, Count: 2, Selected: true,
	}); err != nil {
		t.Fatalf("UpsertItem error: %v", err)
	}
	if store.selected[sku.ID] != 2 {
		t.Fatalf("expected count 2 in cart, got %d", store.selected[sku.ID])
	}
}

func TestCartUpsertItemRejectsInactiveSKU(t *testing.T) {
	db := setupOrderTestDB(t, "cart_upsert_inactive")
	sku := createTestSKU(t, db, "下架商品", "15.00", 3)
	if err := db.Model(&models.SKU{}).Where("id = ?", sku.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate sku failed: %v", err)
	}
	svc := NewCartService(newFakeCartStore(), repository.NewSKURepository(db))

	if err := svc.UpsertItem(context.Background(), UpsertCartItemInput{
		UserID: 1, SKUID: sku.ID, Count: 1, Selected: true,
	}); !errors.Is(err, ErrSKUNotAvailable) {
		t.Fatalf("expected ErrSKUNotAvailable, got: %v", err)
	}
}

func TestCartListByUserDropsStaleEntries(t *testing.T) {
	db := setupOrderTestDB(t, "cart_list_stale")
	active := createTestSKU(t, db, "在售商品", "25.00", 10)
	store := newFakeCartStore()
	store.selected[active.ID] = 2
	store.selected[active.ID+99] = 1 // 不存在的 SKU

	svc := NewCartService(store, repository.NewSKURepository(db))
	items, err := svc.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].SKUID != active.ID || items[0].Count != 2 || !items[0].Selected {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if _, ok := store.selected[active.ID+99]; ok {
		t.Fatalf("expected stale entry removed from cart")
	}
}

func TestCartSelectAll(t *testing.T) {
	db := setupOrderTestDB(t, "cart_select_all")
	store := newFakeCartStore()
	store.unselected[1] = 2
	store.unselected[2] = 1
	svc := NewCartService(store, repository.NewSKURepository(db))

	if err := svc.SelectAll(context.Background(), 1, true); err != nil {
		t.Fatalf("SelectAll error: %v", err)
	}
	if len(store.selected) != 2 || len(store.unselected) != 0 {
		t.Fatalf("unexpected selection state: selected=%v unselected=%v", store.selected, store.unselected)
	}
}

func TestCartMergeGuestCart(t *testing.T) {
	db := setupOrderTestDB(t, "cart_merge")
	store := newFakeCartStore()
	store.selected[1] = 1
	svc := NewCartService(store, repository.NewSKURepository(db))

	err := svc.MergeGuestCart(context.Background(), 1, []cart.Entry{
		{SKUID: 1, Count: 3, Selected: true},
		{SKUID: 2, Count: 2, Selected: false},
	})
	if err != nil {
		t.Fatalf("MergeGuestCart error: %v", err)
	}
	if store.selected[1] != 3 {
		t.Fatalf("expected guest count to win, got %d", store.selected[1])
	}
	if store.unselected[2] != 2 {
		t.Fatalf("expected unselected guest entry, got %+v", store.unselected)
	}

	if err := svc.MergeGuestCart(context.Background(), 1, []cart.Entry{{SKUID: 0, Count: 1}}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem, got: %v", err)
	}
}
