package public

import (
	"strconv"
	"strings"

	"github.com/meiduo-next/mall/internal/http/response"
	"github.com/meiduo-next/mall/internal/repository"
	"github.com/meiduo-next/mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	AddressID uint   `json:"address_id" binding:"required"`
	PayMethod string `json:"pay_method" binding:"required"`
}

// GetSettlement 结算页预览
func (h *Handler) GetSettlement(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	preview, err := h.OrderService.Settle(c.Request.Context(), uid)
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, preview)
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		UserID:    uid,
		AddressID: req.AddressID,
		PayMethod: req.PayMethod,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}

	response.Success(c, order)
}

// ListOrders 获取订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	status := strings.TrimSpace(c.Query("status"))
	orderNo := strings.TrimSpace(c.Query("order_no"))

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   status,
		OrderNo:  orderNo,
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id invalid", nil)
		return
	}

	order, err := h.OrderService.GetOrderByUser(uint(orderID), uid)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	response.Success(c, order)
}

// GetOrderByOrderNo 按订单号获取订单详情
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "order no invalid", nil)
		return
	}

	order, err := h.OrderService.GetOrderByUserOrderNo(orderNo, uid)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	response.Success(c, order)
}

// ConfirmReceive 确认收货
func (h *Handler) ConfirmReceive(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id invalid", nil)
		return
	}

	order, err := h.OrderService.ConfirmReceive(uint(orderID), uid)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	response.Success(c, order)
}

// FinishComment 评价完成
func (h *Handler) FinishComment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id invalid", nil)
		return
	}

	order, err := h.OrderService.FinishComment(uint(orderID), uid)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	response.Success(c, order)
}
