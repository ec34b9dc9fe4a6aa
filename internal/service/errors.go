package service

import "errors"

// 业务错误（handler 层通过 errors.Is 映射为接口响应）
var (
	ErrPayMethodInvalid   = errors.New("pay method invalid")
	ErrAddressNotFound    = errors.New("address not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCartUnavailable    = errors.New("cart store unavailable")
	ErrSKUNotAvailable    = errors.New("sku not available")
	ErrInvalidCartItem    = errors.New("cart item invalid")
	ErrStockInsufficient  = errors.New("stock insufficient")
	ErrStockContention    = errors.New("stock contention exhausted")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("order status invalid")
)
