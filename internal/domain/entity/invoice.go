package entity

import (
	"time"

	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Invoice is the immutable record of a completed sale
type Invoice struct {
	ID             string             `json:"id"`
	Date           time.Time          `json:"date"`
	CustomerName   string             `json:"customerName"`
	CustomerMobile string             `json:"customerMobile"`
	Items          []CartItem         `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TotalDiscount  decimal.Decimal    `json:"totalDiscount"`
	TotalTax       decimal.Decimal    `json:"totalTax"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	RoundOff       decimal.Decimal    `json:"roundOff"`
	PaymentMode    enum.PaymentMode   `json:"paymentMode"`
	Status         enum.InvoiceStatus `json:"status"`
	Cashier        string             `json:"cashier,omitempty"`
}

// DateString returns the calendar date part of the invoice timestamp
func (i *Invoice) DateString() string {
	return i.Date.UTC().Format("2006-01-02")
}

// ItemCount returns the number of units sold
func (i *Invoice) ItemCount() int {
	n := 0
	for _, item := range i.Items {
		n += item.Quantity
	}
	return n
}
