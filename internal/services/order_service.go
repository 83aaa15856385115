// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gadaelectronics/storefront/internal/cart"
	"github.com/gadaelectronics/storefront/internal/checkout"
	"github.com/gadaelectronics/storefront/internal/config"
	"github.com/gadaelectronics/storefront/internal/database"
	"github.com/gadaelectronics/storefront/internal/models"
	"github.com/gadaelectronics/storefront/internal/payment"
	"github.com/gadaelectronics/storefront/internal/utils"
)

// Business outcomes the handlers map to distinct HTTP codes.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderState  = errors.New("order is not pending")
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrPaymentUnverified means the gateway could not confirm the charge.
	// The order stays pending; it must never be reported as success.
	ErrPaymentUnverified = errors.New("payment could not be verified")
	ErrInsufficientStock = errors.New("insufficient stock at confirmation")
)

// Gateway is the slice of the payment client the orchestrator needs.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*payment.Order, error)
	GetPayment(ctx context.Context, paymentID string) (*payment.PaymentRecord, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// OrderService turns a validated checkout into a durable order and a
// verified payment. All collaborators are injected; there is no package
// state. Every order status change is a conditional write keyed on the
// current status, so PENDING -> {COMPLETED,FAILED,CANCELLED} is atomic
// against concurrent attempts.
type OrderService struct {
	db           *gorm.DB
	gateway      Gateway
	cfg          *config.Config
	policy       checkout.Policy
	notification *NotificationService

	// Serializes Initiate per user so one purchase intent never yields two
	// pending orders.
	userLocks sync.Map // user id -> *sync.Mutex
}

type InitiateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address" validate:"required"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID string    `json:"gateway_order_id" validate:"required"`
	PaymentID      string    `json:"payment_id" validate:"required"`
	Signature      string    `json:"signature" validate:"required"`
	OrderID        uuid.UUID `json:"order_id" validate:"required"`
}

func NewOrderService(db *gorm.DB, gateway Gateway, cfg *config.Config, notification *NotificationService) *OrderService {
	return &OrderService{
		db:      db,
		gateway: gateway,
		cfg:     cfg,
		policy: checkout.Policy{
			ShippingFee:       cfg.Checkout.ShippingFee,
			FreeShippingAbove: cfg.Checkout.FreeShippingAbove,
			TaxRate:           cfg.Checkout.TaxRate,
		},
		notification: notification,
	}
}

// Summarize prices a set of cart lines under the configured policy.
func (s *OrderService) Summarize(lines []cart.Line) checkout.Summary {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Product.Price * float64(line.Quantity)
	}
	return s.policy.Summarize(subtotal)
}

// Initiate opens a gateway payment session for the cart and persists a
// pending order with its items, all-or-nothing. The gateway session is
// opened first: if it fails nothing is written, and if the item insert
// fails the surrounding transaction rolls the order back, so no phantom
// orders exist. The gateway order id lands on the row before the browser
// ever sees the payment widget, keeping a crashed checkout reconcilable.
func (s *OrderService) Initiate(ctx context.Context, user *utils.JWTClaims, userCart *cart.Cart, req *InitiateOrderRequest) (*payment.CheckoutOptions, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if userCart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	userID, err := uuid.Parse(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	lock := s.lockFor(user.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Totals are recomputed from catalog prices; client-sent amounts are
	// never trusted.
	lines, err := s.repriceLines(userCart.Lines())
	if err != nil {
		return nil, err
	}

	summary := s.Summarize(lines)
	total := checkout.RoundDisplay(summary.Total)
	amountMinor := checkout.MinorUnits(total)

	// A new purchase intent supersedes any abandoned pending order; the
	// stale gateway session is never reused.
	if err := s.cancelPendingOrders(userID); err != nil {
		return nil, err
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountMinor, s.cfg.Payment.Currency,
		utils.GenerateReceiptReference(), map[string]string{"company_name": "GADA ELECTRONICS"})
	if err != nil {
		// Nothing persisted yet; the caller may retry freely.
		return nil, fmt.Errorf("failed to open payment session: %w", err)
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		Total:           total,
		ShippingAddress: req.ShippingAddress.ToJSONB(),
		GatewayOrderID:  gatewayOrder.ID,
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range lines {
			item := &models.OrderItem{
				OrderID:         order.ID,
				ProductID:       line.Product.ID,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.Product.Price,
			}
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		// The transaction rolled back; the gateway session is left to
		// expire on its own.
		logrus.WithError(err).WithField("gateway_order_id", gatewayOrder.ID).
			Error("Order persistence failed after gateway session was opened")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":         order.ID,
		"gateway_order_id": gatewayOrder.ID,
		"amount":           amountMinor,
		"user_id":          userID,
	}).Info("Checkout initiated")

	return &payment.CheckoutOptions{
		Key:         s.gateway.KeyID(),
		Amount:      gatewayOrder.Amount,
		Currency:    gatewayOrder.Currency,
		OrderID:     gatewayOrder.ID,
		LocalID:     order.ID.String(),
		Name:        "Gada Electronics",
		Description: fmt.Sprintf("Order of %d item(s)", len(lines)),
		Prefill: payment.Prefill{
			Name:    req.ShippingAddress.Name,
			Email:   user.Email,
			Contact: req.ShippingAddress.Phone,
		},
	}, nil
}

// Verify settles a pending order from the checkout callback. The signature
// is recomputed server-side and compared in constant time; on a match the
// gateway's payment-status API must report the charge as captured before
// the order completes. A mismatch fails the order; an unreachable gateway
// leaves it pending, because ambiguity is never success.
func (s *OrderService) Verify(ctx context.Context, userID uuid.UUID, req *VerifyPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, "id = ? AND user_id = ?", req.OrderID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Terminal orders are never re-applied; replays get a distinct error.
	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidOrderState
	}

	// The callback must settle the session this order actually opened.
	if order.GatewayOrderID != req.GatewayOrderID {
		return nil, ErrInvalidOrderState
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		if err := s.failOrder(&order, req, "signature mismatch"); err != nil {
			return nil, err
		}
		return nil, ErrVerificationFailed
	}

	// Second, authoritative check: a signature can validate while the
	// charge itself was never captured.
	record, err := s.gateway.GetPayment(ctx, req.PaymentID)
	if err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Warn("Gateway status check failed; order left pending")
		return nil, ErrPaymentUnverified
	}

	if record.Status != payment.StatusCaptured {
		if err := s.failOrder(&order, req, fmt.Sprintf("payment status %q", record.Status)); err != nil {
			return nil, err
		}
		return nil, ErrVerificationFailed
	}

	completed, err := s.completeOrder(&order, req)
	if err != nil {
		return nil, err
	}

	if s.notification != nil {
		go s.notification.SendOrderConfirmation(completed)
	}

	return completed, nil
}

// GetOrders lists a user's orders, newest first, for the order-history and
// payment-status views.
func (s *OrderService) GetOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params, "created_at", "total", "status")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items").Preload("Items.Product").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// GetOrder loads one order with items. Admins may load any order.
func (s *OrderService) GetOrder(orderID, userID uuid.UUID, isAdmin bool) (*models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.Product")
	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// GetAllOrders is the admin listing across users.
func (s *OrderService) GetAllOrders(params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params, "created_at", "total", "status")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) lockFor(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// repriceLines reloads each product so quantities clamp against current
// stock and prices come from the catalog, not the client.
func (s *OrderService) repriceLines(lines []cart.Line) ([]cart.Line, error) {
	out := make([]cart.Line, 0, len(lines))
	for _, line := range lines {
		var product models.Product
		if err := s.db.First(&product, "id = ?", line.Product.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("product %s no longer available", line.Product.ID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		quantity := line.Quantity
		if quantity > product.Stock {
			quantity = product.Stock
		}
		if quantity < 1 {
			return nil, fmt.Errorf("product %s is out of stock", product.ID)
		}

		out = append(out, cart.Line{Product: product, Quantity: quantity})
	}
	return out, nil
}

func (s *OrderService) cancelPendingOrders(userID uuid.UUID) error {
	result := s.db.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.OrderStatusPending).
		Update("status", models.OrderStatusCancelled)
	if result.Error != nil {
		return fmt.Errorf("failed to cancel stale pending orders: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"count":   result.RowsAffected,
		}).Info("Superseded stale pending orders")
	}
	return nil
}

func (s *OrderService) failOrder(order *models.Order, req *VerifyPaymentRequest, reason string) error {
	result := s.db.Model(order).
		Where("status = ?", models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     models.OrderStatusFailed,
			"payment_id": req.PaymentID,
			"payment_details": models.JSONB{
				"gateway_order_id": req.GatewayOrderID,
				"payment_id":       req.PaymentID,
				"signature":        req.Signature,
				"failure_reason":   reason,
			},
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark order failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// A concurrent attempt already resolved the order.
		return ErrInvalidOrderState
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"reason":   reason,
	}).Warn("Payment verification failed")
	return nil
}

// completeOrder flips the order to completed and decrements stock in one
// transaction. The conditional update wins or loses the race atomically;
// the stock decrement floors at zero via its own guard. If stock ran out
// between checkout and capture, the paid order is parked in processing for
// manual reconciliation instead of being completed or silently failed.
func (s *OrderService) completeOrder(order *models.Order, req *VerifyPaymentRequest) (*models.Order, error) {
	now := time.Now()

	var insufficientStock bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":      models.OrderStatusCompleted,
				"payment_id":  req.PaymentID,
				"verified_at": now,
				"payment_details": models.JSONB{
					"gateway_order_id": req.GatewayOrderID,
					"payment_id":       req.PaymentID,
					"signature":        req.Signature,
					"verified_at":      now.Format(time.RFC3339),
				},
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvalidOrderState
		}

		var items []models.OrderItem
		if err := tx.Find(&items, "order_id = ?", order.ID).Error; err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}

		for _, item := range items {
			decrement := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if decrement.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", decrement.Error)
			}
			if decrement.RowsAffected == 0 {
				insufficientStock = true
				return ErrInsufficientStock
			}
		}
		return nil
	})

	if err != nil && insufficientStock {
		// The payment is captured but fulfillment cannot proceed; park the
		// order for manual handling rather than lying in either direction.
		parkErr := s.db.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":     models.OrderStatusProcessing,
				"payment_id": req.PaymentID,
				"payment_details": models.JSONB{
					"gateway_order_id": req.GatewayOrderID,
					"payment_id":       req.PaymentID,
					"signature":        req.Signature,
					"note":             "captured payment, insufficient stock at confirmation",
				},
			}).Error
		if parkErr != nil {
			logrus.WithError(parkErr).WithField("order_id", order.ID).
				Error("Failed to park under-stocked order")
		}
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, err
	}

	var completed models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").First(&completed, "id = ?", order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_id":   completed.ID,
		"payment_id": req.PaymentID,
		"total":      completed.Total,
	}).Info("Order completed")

	return &completed, nil
}
