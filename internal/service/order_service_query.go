package service

import (
	"strings"

	"github.com/meiduo-next/mall/internal/logger"
	"github.com/meiduo-next/mall/internal/models"
	"github.com/meiduo-next/mall/internal/repository"
)

// GetOrderByUser 获取订单详情
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		logger.Errorw("order_query_failed", "order_id", orderID, "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByUserOrderNo 按订单号获取用户订单详情
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		logger.Errorw("order_query_failed", "order_no", orderNo, "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		logger.Errorw("order_list_failed", "user_id", filter.UserID, "error", err)
		return nil, 0, ErrOrderCreateFailed
	}
	return orders, total, nil
}
