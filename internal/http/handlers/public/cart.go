package public

import (
	"strconv"

	"github.com/meiduo-next/mall/internal/cart"
	"github.com/meiduo-next/mall/internal/http/response"
	"github.com/meiduo-next/mall/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	SKUID    uint  `json:"sku_id" binding:"required"`
	Count    int   `json:"count" binding:"required"`
	Selected *bool `json:"selected"`
}

// CartSelectionRequest 购物车全选请求
type CartSelectionRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// CartMergeRequest 游客购物车合并请求
type CartMergeRequest struct {
	Items []CartMergeItem `json:"items" binding:"required"`
}

// CartMergeItem 游客购物车条目
type CartMergeItem struct {
	SKUID    uint `json:"sku_id" binding:"required"`
	Count    int  `json:"count" binding:"required"`
	Selected bool `json:"selected"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// UpsertCartItem 添加/更新购物车项
func (h *Handler) UpsertCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if req.Count <= 0 {
		if err := h.CartService.RemoveItem(c.Request.Context(), uid, req.SKUID); err != nil {
			respondCartError(c, err)
			return
		}
		response.Success(c, gin.H{"updated": true})
		return
	}
	selected := true
	if req.Selected != nil {
		selected = *req.Selected
	}
	if err := h.CartService.UpsertItem(c.Request.Context(), service.UpsertCartItemInput{
		UserID:   uid,
		SKUID:    req.SKUID,
		Count:    req.Count,
		Selected: selected,
	}); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rawID := c.Param("sku_id")
	skuID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || skuID == 0 {
		respondError(c, response.CodeBadRequest, "cart item invalid", nil)
		return
	}
	if err := h.CartService.RemoveItem(c.Request.Context(), uid, uint(skuID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// UpdateCartSelection 全选/全不选
func (h *Handler) UpdateCartSelection(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Selected == nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CartService.SelectAll(c.Request.Context(), uid, *req.Selected); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// MergeCart 登录后合并游客购物车
func (h *Handler) MergeCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartMergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	entries := make([]cart.Entry, 0, len(req.Items))
	for _, item := range req.Items {
		entries = append(entries, cart.Entry{
			SKUID:    item.SKUID,
			Count:    item.Count,
			Selected: item.Selected,
		})
	}
	if err := h.CartService.MergeGuestCart(c.Request.Context(), uid, entries); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"merged": true})
}
