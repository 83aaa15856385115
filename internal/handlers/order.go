// internal/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gadaelectronics/storefront/internal/cart"
	"github.com/gadaelectronics/storefront/internal/services"
	"github.com/gadaelectronics/storefront/internal/utils"
)

// OrderHandler exposes checkout initiation, payment verification and the
// order history. Each orchestrator outcome maps to a distinct HTTP status so
// the frontend can tell a rejected payment from an unreachable gateway.
type OrderHandler struct {
	orderService *services.OrderService
	store        *cart.Store
}

func NewOrderHandler(orderService *services.OrderService, store *cart.Store) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		store:        store,
	}
}

// InitiateCheckout prices the cart, opens a gateway session and persists a
// pending order, returning the options the payment widget needs.
func (h *OrderHandler) InitiateCheckout(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.InitiateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	userCart := h.store.Get(claims.UserID)

	options, err := h.orderService.Initiate(c.Request.Context(), claims, userCart, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
		case strings.Contains(err.Error(), "validation failed"):
			validationFailed(c, err)
		case strings.Contains(err.Error(), "out of stock"),
			strings.Contains(err.Error(), "no longer available"):
			utils.ConflictResponse(c, "OUT_OF_STOCK", err.Error())
		case strings.Contains(err.Error(), "payment session"):
			utils.ErrorResponse(c, http.StatusBadGateway, "GATEWAY_ERROR", "Could not open payment session", nil)
		default:
			utils.InternalErrorResponse(c, "Failed to initiate checkout")
		}
		return
	}

	utils.CreatedResponse(c, options)
}

// VerifyPayment settles a pending order from the payment widget's callback.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.Verify(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, "Order")
		case errors.Is(err, services.ErrInvalidOrderState):
			utils.ConflictResponse(c, "INVALID_ORDER_STATE", "Order is not awaiting payment")
		case errors.Is(err, services.ErrVerificationFailed):
			utils.ErrorResponse(c, http.StatusBadRequest, "VERIFICATION_FAILED", "Payment verification failed", nil)
		case errors.Is(err, services.ErrPaymentUnverified):
			// The order is still pending; the client may retry verification.
			utils.ErrorResponse(c, http.StatusBadGateway, "PAYMENT_UNVERIFIED", "Payment could not be verified; please retry", nil)
		case errors.Is(err, services.ErrInsufficientStock):
			utils.ConflictResponse(c, "INSUFFICIENT_STOCK", "Payment received but items sold out; support will follow up")
		case strings.Contains(err.Error(), "validation failed"):
			validationFailed(c, err)
		default:
			utils.InternalErrorResponse(c, "Failed to verify payment")
		}
		return
	}

	// Payment verified; the purchase intent is fulfilled.
	h.store.Clear(claims.UserID)

	utils.SuccessResponse(c, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := userUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.GetOrders(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := userUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order id", nil)
		return
	}

	order, err := h.orderService.GetOrder(orderID, userID, utils.IsAdminFromContext(c))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch order")
		return
	}

	utils.SuccessResponse(c, order)
}

// validationFailed renders a service-side validation error as the per-field
// envelope when possible, falling back to a plain bad request.
func validationFailed(c *gin.Context, err error) {
	if errs := utils.GetValidationErrors(err); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs)
		return
	}
	utils.BadRequestResponse(c, "Validation failed", err.Error())
}

func claimsFromContext(c *gin.Context) (*utils.JWTClaims, bool) {
	value, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.JWTClaims)
	return claims, ok
}

func userUUIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
