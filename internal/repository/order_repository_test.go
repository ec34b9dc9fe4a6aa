package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/meiduo-next/mall/internal/constants"
	"github.com/meiduo-next/mall/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderGoods{}); err != nil {
		t.Fatalf("migrate order failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID uint, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:   orderNo,
		UserID:    userID,
		AddressID: 1,
		PayMethod: constants.PayMethodAlipay,
		Status:    status,
		Freight:   models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderUpdateTotals(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createOrder(t, repo, "20260901000000000000001001", 1, constants.OrderStatusUnpaid)

	total, err := models.NewMoneyFromString("160.00")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	if err := repo.UpdateTotals(order.ID, 3, total); err != nil {
		t.Fatalf("update totals failed: %v", err)
	}

	got, err := repo.GetByIDAndUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.TotalCount != 3 {
		t.Fatalf("expected total count 3, got %d", got.TotalCount)
	}
	if got.TotalAmount.String() != "160.00" {
		t.Fatalf("expected total amount 160.00, got %s", got.TotalAmount.String())
	}
}

func TestOrderUpdateStatusRequiresFromStatus(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createOrder(t, repo, "20260901000000000000001002", 1, constants.OrderStatusUnreceived)

	ok, err := repo.UpdateStatus(order.ID, constants.OrderStatusUnreceived, constants.OrderStatusUncomment)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected status update to apply")
	}

	// 前置状态已不匹配，第二次不命中
	ok, err = repo.UpdateStatus(order.ID, constants.OrderStatusUnreceived, constants.OrderStatusUncomment)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if ok {
		t.Fatalf("expected repeated update to miss")
	}

	got, err := repo.GetByIDAndUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Status != constants.OrderStatusUncomment {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestOrderGetByIDAndUserScopesToOwner(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createOrder(t, repo, "20260901000000000000001003", 1, constants.OrderStatusUnpaid)

	got, err := repo.GetByIDAndUser(order.ID, 2)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for other user, got %+v", got)
	}
}

func TestOrderGetByOrderNoAndUserPreloadsGoods(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createOrder(t, repo, "20260901000000000000001004", 1, constants.OrderStatusUnpaid)

	goods := []models.OrderGoods{
		{OrderID: order.ID, SKUID: 1, Count: 2, Price: models.NewMoneyFromDecimal(decimal.NewFromInt(50))},
		{OrderID: order.ID, SKUID: 2, Count: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromInt(30))},
	}
	if err := repo.CreateGoods(goods); err != nil {
		t.Fatalf("create goods failed: %v", err)
	}

	got, err := repo.GetByOrderNoAndUser(order.OrderNo, 1)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected order, got nil")
	}
	if len(got.Goods) != 2 {
		t.Fatalf("expected 2 goods rows, got %d", len(got.Goods))
	}
}

func TestOrderListByUserFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createOrder(t, repo, "20260901000000000000002001", 1, constants.OrderStatusUnpaid)
	createOrder(t, repo, "20260901000000000000002002", 1, constants.OrderStatusUnsend)
	createOrder(t, repo, "20260901000000000000002003", 2, constants.OrderStatusUnpaid)

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 1, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for user 1, got total=%d len=%d", total, len(orders))
	}
	// 默认按 ID 倒序
	if orders[0].OrderNo != "20260901000000000000002002" {
		t.Fatalf("expected newest order first, got %s", orders[0].OrderNo)
	}

	orders, total, err = repo.ListByUser(OrderListFilter{UserID: 1, Status: constants.OrderStatusUnsend, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 1 || orders[0].Status != constants.OrderStatusUnsend {
		t.Fatalf("status filter failed: total=%d", total)
	}

	orders, total, err = repo.ListByUser(OrderListFilter{UserID: 1, OrderNo: "2002", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "20260901000000000000002002" {
		t.Fatalf("order no filter failed: total=%d", total)
	}
}
