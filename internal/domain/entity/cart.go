package entity

import (
	"fmt"

	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/shopspring/decimal"
)

var maxDiscount = decimal.NewFromInt(100)

// CartItem is a product snapshot taken when it was added to the cart
type CartItem struct {
	Product
	CartID       string          `json:"cartId"`
	Quantity     int             `json:"quantity"`
	Discount     decimal.Decimal `json:"discount"`
	SelectedIMEI string          `json:"selectedImei,omitempty"`
}

// IsSerialBound reports whether the line carries a specific serial
func (i *CartItem) IsSerialBound() bool {
	return i.SelectedIMEI != ""
}

// LineTotals holds the computed amounts for a single cart line
type LineTotals struct {
	Base     decimal.Decimal `json:"base"`
	Discount decimal.Decimal `json:"discount"`
	Taxable  decimal.Decimal `json:"taxable"`
	Tax      decimal.Decimal `json:"tax"`
}

// Total returns the taxable value plus tax
func (t LineTotals) Total() decimal.Decimal {
	return t.Taxable.Add(t.Tax)
}

// Totals computes base, discount, taxable value and tax for the line
func (i *CartItem) Totals() LineTotals {
	base := i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
	discount := base.Mul(i.Discount).Shift(-2)
	taxable := base.Sub(discount)
	return LineTotals{
		Base:     base,
		Discount: discount,
		Taxable:  taxable,
		Tax:      taxable.Mul(i.GSTPercent).Shift(-2),
	}
}

// CartTotals is the aggregate pricing of a cart
type CartTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	NetTotal      decimal.Decimal `json:"netTotal"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	RoundOff      decimal.Decimal `json:"roundOff"`
}

// Cart is the in-progress transaction of one billing session
type Cart struct {
	Items       []CartItem       `json:"items"`
	Customer    *Customer        `json:"customer,omitempty"`
	PaymentMode enum.PaymentMode `json:"paymentMode"`
}

// NewCart creates an empty cart settled in cash
func NewCart() *Cart {
	return &Cart{
		Items:       []CartItem{},
		PaymentMode: enum.PaymentModeCash,
	}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item returns the line with the given cart id, or nil
func (c *Cart) Item(cartID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].CartID == cartID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add puts a product into the cart. With a serial the product always gets a
// new line at quantity 1; without one it merges into the existing unbound
// line for the same product. Rejections leave the cart untouched.
func (c *Cart) Add(p Product, imei string, newID func() string) (*CartItem, error) {
	if p.Stock <= 0 {
		return nil, apperror.NewWarning("Product is out of stock!")
	}

	if imei != "" {
		for i := range c.Items {
			if c.Items[i].SelectedIMEI == imei {
				return nil, apperror.NewWarning("This specific IMEI is already in the cart.")
			}
		}
		c.Items = append(c.Items, CartItem{
			Product:      p.Clone(),
			CartID:       newID(),
			Quantity:     1,
			Discount:     decimal.Zero,
			SelectedIMEI: imei,
		})
		return &c.Items[len(c.Items)-1], nil
	}

	for i := range c.Items {
		item := &c.Items[i]
		if item.ID != p.ID || item.IsSerialBound() {
			continue
		}
		if item.Quantity >= p.Stock {
			return nil, apperror.NewWarning(fmt.Sprintf("Cannot add more. Only %d in stock.", p.Stock))
		}
		item.Quantity++
		return item, nil
	}

	c.Items = append(c.Items, CartItem{
		Product:  p.Clone(),
		CartID:   newID(),
		Quantity: 1,
		Discount: decimal.Zero,
	})
	return &c.Items[len(c.Items)-1], nil
}

// UpdateQuantity changes a line's quantity by delta. Serial-bound lines
// ignore increments, quantities never drop below 1, and the stock captured
// when the line was added is the upper bound.
func (c *Cart) UpdateQuantity(cartID string, delta int) error {
	item := c.Item(cartID)
	if item == nil {
		return apperror.NewNotFoundError("Cart item")
	}
	if item.IsSerialBound() && delta > 0 {
		return nil
	}

	newQty := item.Quantity + delta
	if newQty < 1 {
		newQty = 1
	}
	if newQty > item.Stock {
		return apperror.NewWarning(fmt.Sprintf("Insufficient stock! Available: %d", item.Stock))
	}
	item.Quantity = newQty
	return nil
}

// UpdateDiscount sets a line's discount percentage, clamped into [0, 100]
func (c *Cart) UpdateDiscount(cartID string, discount decimal.Decimal) error {
	item := c.Item(cartID)
	if item == nil {
		return apperror.NewNotFoundError("Cart item")
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(maxDiscount) {
		discount = maxDiscount
	}
	item.Discount = discount
	return nil
}

// Remove drops the line with the given cart id if present
func (c *Cart) Remove(cartID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.CartID != cartID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Clear drops every line. The selected customer and payment mode stay.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// Totals prices the cart. The grand total is the net total rounded half
// away from zero to a whole currency unit; the difference is the round-off.
func (c *Cart) Totals() CartTotals {
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	totalTax := decimal.Zero

	for i := range c.Items {
		line := c.Items[i].Totals()
		subtotal = subtotal.Add(line.Taxable)
		totalDiscount = totalDiscount.Add(line.Discount)
		totalTax = totalTax.Add(line.Tax)
	}

	net := subtotal.Add(totalTax)
	grand := net.Round(0)
	return CartTotals{
		Subtotal:      subtotal,
		TotalDiscount: totalDiscount,
		TotalTax:      totalTax,
		NetTotal:      net,
		GrandTotal:    grand,
		RoundOff:      grand.Sub(net),
	}
}

// Snapshot returns a deep copy of the cart lines
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		item.Product = item.Product.Clone()
		items[i] = item
	}
	return items
}
