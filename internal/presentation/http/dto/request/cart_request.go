package request

import (
	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest represents adding a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	IMEI      string `json:"imei"`
}

// ScanRequest represents a scanned or typed product code
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// UpdateQuantityRequest changes a line's quantity by Delta
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// UpdateDiscountRequest sets a line's discount percentage
type UpdateDiscountRequest struct {
	Discount *decimal.Decimal `json:"discount" binding:"required"`
}

// SelectCustomerRequest selects the billing party; an empty id clears it
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// PaymentModeRequest sets the cart's payment mode
type PaymentModeRequest struct {
	PaymentMode enum.PaymentMode `json:"payment_mode"`
}

// CheckoutRequest represents the checkout body. It may be empty.
type CheckoutRequest struct {
	PaymentMode *enum.PaymentMode `json:"payment_mode"`
}
