package public

import (
	"errors"
	"fmt"

	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto a response code and message.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	var itemErr *service.OrderItemError
	if errors.As(err, &itemErr) {
		for _, rule := range rules {
			if errors.Is(err, rule.target) {
				respondError(c, rule.code, fmt.Sprintf("%s (item %d)", rule.msg, itemErr.Index), nil)
				return
			}
		}
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "variant not found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrOrderEmpty, code: response.CodeBadRequest, msg: "order has no items"},
	{target: service.ErrOrderTotalMismatch, code: response.CodeBadRequest, msg: "order total does not match items"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "variant not found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrAmountOutOfRange, code: response.CodeBadRequest, msg: "order amount out of payable range"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrSessionNotFound, code: response.CodeNotFound, msg: "session not found"},
	{target: service.ErrPaymentIncomplete, code: response.CodeBadRequest, msg: "payment not completed"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrRatingOutOfRange, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrReviewNotEligible, code: response.CodeBadRequest, msg: "only purchased products can be reviewed"},
	{target: service.ErrReviewExists, code: response.CodeConflict, msg: "product already reviewed for this order"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, msg: "review not found"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrWishlistExists, code: response.CodeConflict, msg: "product already in wishlist"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, msg: "invalid request"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrEmailTaken, code: response.CodeConflict, msg: "email already registered"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
}
