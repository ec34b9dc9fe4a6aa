package public

import (
	"errors"

	"github.com/meiduo-next/mall/internal/http/response"
	"github.com/meiduo-next/mall/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "cart item invalid"},
	{target: service.ErrSKUNotAvailable, code: response.CodeBadRequest, msg: "sku not available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "stock insufficient"},
	{target: service.ErrCartUnavailable, code: response.CodeInternal, msg: "cart unavailable"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrPayMethodInvalid, code: response.CodeBadRequest, msg: "pay method invalid"},
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, msg: "address not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "cart item invalid"},
	{target: service.ErrSKUNotAvailable, code: response.CodeBadRequest, msg: "sku not available"},
	{target: service.ErrStockInsufficient, code: response.CodeConflict, msg: "stock insufficient"},
	{target: service.ErrStockContention, code: response.CodeConflict, msg: "stock busy, please retry"},
	{target: service.ErrCartUnavailable, code: response.CodeInternal, msg: "cart unavailable"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "order status invalid"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")
}

func respondOrderQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "order fetch failed")
}
