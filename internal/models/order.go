// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Total           float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	ShippingAddress JSONB       `json:"shipping_address" gorm:"type:jsonb"`
	GatewayOrderID  string      `json:"gateway_order_id" gorm:"size:255;index"`
	PaymentID       string      `json:"payment_id,omitempty" gorm:"size:255"`
	PaymentDetails  JSONB       `json:"payment_details,omitempty" gorm:"type:jsonb"`
	VerifiedAt      *time.Time  `json:"verified_at,omitempty"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the unit price at order creation; historical orders
// reproduce the price charged, not today's catalog price.
type OrderItem struct {
	BaseModel
	OrderID         uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID       string    `json:"product_id" gorm:"size:64;not null;index"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	PriceAtPurchase float64   `json:"price_at_purchase" gorm:"type:decimal(10,2);not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// ShippingAddress is the checkout address snapshot stored on the order.
type ShippingAddress struct {
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone10"`
}

// ToJSONB converts the address to the jsonb shape stored on the order row.
func (a ShippingAddress) ToJSONB() JSONB {
	return JSONB{
		"name":          a.Name,
		"address_line1": a.AddressLine1,
		"address_line2": a.AddressLine2,
		"city":          a.City,
		"state":         a.State,
		"postal_code":   a.PostalCode,
		"country":       a.Country,
		"phone":         a.Phone,
	}
}
