package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/meiduo-next/mall/internal/cart"
	"github.com/meiduo-next/mall/internal/constants"
	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/queue"
	"github.com/meiduo-next/mall/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const placeOrderSavepoint = "place_order"

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	UserID    uint   `json:"user_id"`
	AddressID uint   `json:"address_id"`
	PayMethod string `json:"pay_method"`
}

// SettlementItem 结算页条目
type SettlementItem struct {
	SKUID    uint         `json:"sku_id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Count    int          `json:"count"`
	Subtotal models.Money `json:"subtotal"`
}

// SettlementResult 结算页汇总
type SettlementResult struct {
	Items       []SettlementItem `json:"items"`
	TotalCount  int              `json:"total_count"`
	Freight     models.Money     `json:"freight"`
	TotalAmount models.Money     `json:"total_amount"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	skuRepo     repository.SKURepository
	addressRepo repository.AddressRepository
	cartStore   cart.Store
	queueClient *queue.Client

	freight         models.Money
	stockRetryTimes int
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	skuRepo repository.SKURepository,
	addressRepo repository.AddressRepository,
	cartStore cart.Store,
	queueClient *queue.Client,
	freightAmount string,
	stockRetryTimes int,
) *OrderService {
	freight, err := models.NewMoneyFromString(strings.TrimSpace(freightAmount))
	if err != nil {
		logger.Warnw("order_freight_config_invalid", "freight_amount", freightAmount, "error", err)
		freight = models.NewMoneyFromDecimal(decimal.NewFromInt(10))
	}
	if stockRetryTimes <= 0 {
		stockRetryTimes = constants.StockRetryTimes
	}
	return &OrderService{
		orderRepo:       orderRepo,
		skuRepo:         skuRepo,
		addressRepo:     addressRepo,
		cartStore:       cartStore,
		queueClient:     queueClient,
		freight:         freight,
		stockRetryTimes: stockRetryTimes,
	}
}

// PlaceOrder 将已勾选的购物车转为订单。
// 库存通过条件更新预占；任一条目失败则整单回滚，购物车保持原样。
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	payMethod := strings.ToLower(strings.TrimSpace(input.PayMethod))
	if payMethod != constants.PayMethodCash && payMethod != constants.PayMethodAlipay {
		return nil, ErrPayMethodInvalid
	}
	if input.UserID == 0 {
		return nil, ErrAddressNotFound
	}

	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		logger.Errorw("order_address_query_failed", "user_id", input.UserID, "address_id", input.AddressID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	if s.cartStore == nil {
		return nil, ErrCartUnavailable
	}
	snapshot, err := s.cartStore.GetSelected(ctx, input.UserID)
	if err != nil {
		logger.Errorw("order_cart_snapshot_failed", "user_id", input.UserID, "error", err)
		return nil, ErrCartUnavailable
	}
	if len(snapshot) == 0 {
		return nil, ErrCartEmpty
	}

	// 固定遍历顺序，避免同一批请求以不同顺序预占而放大冲突
	skuIDs := make([]uint, 0, len(snapshot))
	for skuID := range snapshot {
		skuIDs = append(skuIDs, skuID)
	}
	sort.Slice(skuIDs, func(i, j int) bool { return skuIDs[i] < skuIDs[j] })

	status := constants.OrderStatusUnpaid
	if payMethod == constants.PayMethodCash {
		status = constants.OrderStatusUnsend
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:     generateOrderNo(input.UserID),
		UserID:      input.UserID,
		AddressID:   input.AddressID,
		PayMethod:   payMethod,
		Status:      status,
		TotalCount:  0,
		TotalAmount: models.NewMoneyFromDecimal(decimal.Zero),
		Freight:     s.freight,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		skuRepo := s.skuRepo.WithTx(tx)

		tx.SavePoint(placeOrderSavepoint)

		if err := orderRepo.Create(order); err != nil {
			tx.RollbackTo(placeOrderSavepoint)
			return err
		}

		totalCount := 0
		totalAmount := models.NewMoneyFromDecimal(decimal.Zero)
		goods := make([]models.OrderGoods, 0, len(skuIDs))
		for _, skuID := range skuIDs {
			count := snapshot[skuID]
			if count <= 0 {
				tx.RollbackTo(placeOrderSavepoint)
				return fmt.Errorf("%w: sku %d", ErrInvalidCartItem, skuID)
			}
			sku, err := reserveStock(skuRepo, skuID, count, s.stockRetryTimes)
			if err != nil {
				tx.RollbackTo(placeOrderSavepoint)
				return err
			}
			goods = append(goods, models.OrderGoods{
				OrderID:   order.ID,
				SKUID:     sku.ID,
				Count:     count,
				Price:     sku.Price,
				CreatedAt: now,
				UpdatedAt: now,
			})
			totalCount += count
			totalAmount = totalAmount.Add(sku.Price.MulCount(count))
		}

		if err := orderRepo.CreateGoods(goods); err != nil {
			tx.RollbackTo(placeOrderSavepoint)
			return err
		}

		totalAmount = totalAmount.Add(s.freight)
		if err := orderRepo.UpdateTotals(order.ID, totalCount, totalAmount); err != nil {
			tx.RollbackTo(placeOrderSavepoint)
			return err
		}
		order.TotalCount = totalCount
		order.TotalAmount = totalAmount
		order.Goods = goods
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrStockInsufficient),
			errors.Is(err, ErrStockContention),
			errors.Is(err, ErrSKUNotAvailable),
			errors.Is(err, ErrInvalidCartItem):
			return nil, err
		}
		logger.Errorw("order_create_failed",
			"user_id", input.UserID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	// 提交后异步清理购物车：失败只记日志，不影响已落库的订单
	s.cleanCartAfterCommit(ctx, input.UserID, order.OrderNo, skuIDs)

	return order, nil
}

// Settle 结算页预览：已勾选条目 + 运费，不落库、不占库存
func (s *OrderService) Settle(ctx context.Context, userID uint) (*SettlementResult, error) {
	if userID == 0 {
		return nil, ErrAddressNotFound
	}
	if s.cartStore == nil {
		return nil, ErrCartUnavailable
	}
	snapshot, err := s.cartStore.GetSelected(ctx, userID)
	if err != nil {
		logger.Errorw("settlement_cart_snapshot_failed", "user_id", userID, "error", err)
		return nil, ErrCartUnavailable
	}

	skuIDs := make([]uint, 0, len(snapshot))
	for skuID := range snapshot {
		skuIDs = append(skuIDs, skuID)
	}
	sort.Slice(skuIDs, func(i, j int) bool { return skuIDs[i] < skuIDs[j] })

	skus, err := s.skuRepo.ListByIDs(skuIDs)
	if err != nil {
		logger.Errorw("settlement_sku_query_failed", "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	skuMap := make(map[uint]models.SKU, len(skus))
	for _, sku := range skus {
		skuMap[sku.ID] = sku
	}

	result := &SettlementResult{
		Items:   make([]SettlementItem, 0, len(skuIDs)),
		Freight: s.freight,
	}
	totalAmount := models.NewMoneyFromDecimal(decimal.Zero)
	for _, skuID := range skuIDs {
		sku, ok := skuMap[skuID]
		if !ok || !sku.IsActive {
			continue
		}
		count := snapshot[skuID]
		subtotal := sku.Price.MulCount(count)
		result.Items = append(result.Items, SettlementItem{
			SKUID:    sku.ID,
			Name:     sku.Name,
			Price:    sku.Price,
			Count:    count,
			Subtotal: subtotal,
		})
		result.TotalCount += count
		totalAmount = totalAmount.Add(subtotal)
	}
	result.TotalAmount = totalAmount.Add(s.freight)
	return result, nil
}

// ConfirmReceive 确认收货（待收货 -> 待评价）
func (s *OrderService) ConfirmReceive(id, userID uint) (*models.Order, error) {
	return s.advanceStatus(id, userID, constants.OrderStatusUnreceived, constants.OrderStatusUncomment)
}

// FinishComment 评价完成（待评价 -> 已完成）
func (s *OrderService) FinishComment(id, userID uint) (*models.Order, error) {
	return s.advanceStatus(id, userID, constants.OrderStatusUncomment, constants.OrderStatusFinished)
}

// advanceStatus 带前置状态校验推进订单状态，前置不匹配视为非法流转
func (s *OrderService) advanceStatus(id, userID uint, from, to string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		logger.Errorw("order_status_query_failed", "order_id", id, "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	applied, err := s.orderRepo.UpdateStatus(order.ID, from, to)
	if err != nil {
		logger.Errorw("order_status_update_failed", "order_id", id, "from", from, "to", to, "error", err)
		return nil, ErrOrderCreateFailed
	}
	if !applied {
		return nil, ErrOrderStatusInvalid
	}
	order.Status = to
	return order, nil
}

func (s *OrderService) cleanCartAfterCommit(ctx context.Context, userID uint, orderNo string, skuIDs []uint) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueCartClean(queue.CartCleanPayload{
			UserID: userID,
			SKUIDs: skuIDs,
		})
		if err == nil {
			return
		}
		logger.Errorw("order_enqueue_cart_clean_failed",
			"user_id", userID,
			"order_no", orderNo,
			"error", err,
		)
	}
	if s.cartStore == nil {
		return
	}
	if err := s.cartStore.RemoveEntries(ctx, userID, skuIDs); err != nil {
		logger.Errorw("order_cart_clean_failed",
			"user_id", userID,
			"order_no", orderNo,
			"error", err,
		)
	}
}

// generateOrderNo 生成订单号：时间戳 + 用户ID + 随机尾号。
// 随机尾号用于覆盖同一用户同一秒内的重复下单。
func generateOrderNo(userID uint) string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%09d%s", now, userID, randNumeric(3))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
