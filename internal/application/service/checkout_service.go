package service

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/metrics"
	"github.com/sangkips/shopflow/pkg/utils"
	"github.com/sirupsen/logrus"
)

const maxInvoiceIDAttempts = 5

// CheckoutService turns a cart into a committed invoice
type CheckoutService struct {
	carts       *CartService
	invoiceRepo repository.InvoiceRepository
	log         *logrus.Logger
	now         func() time.Time
	newID       func() string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts *CartService,
	invoiceRepo repository.InvoiceRepository,
	log *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		invoiceRepo: invoiceRepo,
		log:         log,
		now:         time.Now,
		newID:       func() string { return utils.GenerateInvoiceNo("INV") },
	}
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	Username string
	Cashier  string
	// PaymentMode overrides the mode selected on the cart when set
	PaymentMode *enum.PaymentMode
}

// Checkout validates the user's cart, commits the sale and clears the cart.
// The invoice and its stock and serial effects are written in one store
// transaction; on any error the cart and the store are left unchanged.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Invoice, error) {
	if input.PaymentMode != nil && !input.PaymentMode.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_mode", Message: "Payment mode must be one of Cash, UPI, Card, Credit"},
		})
	}

	var invoice *entity.Invoice
	_, err := s.carts.mutate(ctx, input.Username, func(cart *entity.Cart) error {
		if cart.IsEmpty() {
			return apperror.ErrEmptyCart
		}
		if cart.Customer == nil {
			return apperror.ErrNoCustomer
		}

		mode := cart.PaymentMode
		if input.PaymentMode != nil {
			mode = *input.PaymentMode
		}

		inv := s.buildInvoice(cart, mode, input.Cashier)
		if err := s.commit(ctx, inv); err != nil {
			return err
		}

		cart.PaymentMode = mode
		cart.Clear()
		invoice = inv
		return nil
	})
	if err != nil {
		if errors.Is(err, apperror.ErrEmptyCart) || errors.Is(err, apperror.ErrNoCustomer) {
			return nil, s.carts.rejected("checkout", input.Username, err)
		}
		return nil, err
	}

	metrics.CheckoutsTotal.WithLabelValues(invoice.PaymentMode.String()).Inc()
	metrics.SalesAmount.Add(invoice.TotalAmount.InexactFloat64())

	s.log.WithFields(logrus.Fields{
		"invoice_id":   invoice.ID,
		"customer":     invoice.CustomerName,
		"total":        invoice.TotalAmount.String(),
		"payment_mode": invoice.PaymentMode.String(),
		"items":        invoice.ItemCount(),
	}).Info("invoice committed")

	return invoice, nil
}

func (s *CheckoutService) buildInvoice(cart *entity.Cart, mode enum.PaymentMode, cashier string) *entity.Invoice {
	totals := cart.Totals()
	return &entity.Invoice{
		Date:           s.now().UTC(),
		CustomerName:   cart.Customer.Name,
		CustomerMobile: cart.Customer.Mobile,
		Items:          cart.Snapshot(),
		Subtotal:       totals.Subtotal,
		TotalDiscount:  totals.TotalDiscount,
		TotalTax:       totals.TotalTax,
		TotalAmount:    totals.GrandTotal,
		RoundOff:       totals.RoundOff,
		PaymentMode:    mode,
		Status:         enum.InvoiceStatusPaid,
		Cashier:        cashier,
	}
}

// commit assigns a fresh id and writes the sale, drawing a new id when the
// store reports a collision.
func (s *CheckoutService) commit(ctx context.Context, invoice *entity.Invoice) error {
	for attempt := 0; attempt < maxInvoiceIDAttempts; attempt++ {
		invoice.ID = s.newID()
		err := s.invoiceRepo.CommitSale(ctx, invoice)
		if errors.Is(err, repository.ErrDuplicateInvoice) {
			s.log.WithField("invoice_id", invoice.ID).Warn("invoice id collision, retrying")
			continue
		}
		return err
	}
	return apperror.NewConflictError("Could not allocate a unique invoice id")
}
