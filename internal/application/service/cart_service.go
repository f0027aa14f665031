package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/enum"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/metrics"
	"github.com/sangkips/shopflow/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartService holds the in-progress cart of every billing session, keyed
// by username. Carts live in memory only.
type CartService struct {
	mu           sync.Mutex
	carts        map[string]*entity.Cart
	products     *ProductService
	customerRepo repository.CustomerRepository
	log          *logrus.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	products *ProductService,
	customerRepo repository.CustomerRepository,
	log *logrus.Logger,
) *CartService {
	return &CartService{
		carts:        make(map[string]*entity.Cart),
		products:     products,
		customerRepo: customerRepo,
		log:          log,
	}
}

// CartView is a cart together with its computed totals
type CartView struct {
	Items       []entity.CartItem `json:"items"`
	Customer    *entity.Customer  `json:"customer"`
	PaymentMode enum.PaymentMode  `json:"paymentMode"`
	Totals      entity.CartTotals `json:"totals"`
}

func newCartView(cart *entity.Cart) *CartView {
	view := &CartView{
		Items:       cart.Snapshot(),
		PaymentMode: cart.PaymentMode,
		Totals:      cart.Totals(),
	}
	if cart.Customer != nil {
		c := *cart.Customer
		view.Customer = &c
	}
	return view
}

// mutate runs fn against the user's cart under the service lock, creating
// the cart with the walk-in customer selected on first use.
func (s *CartService) mutate(ctx context.Context, username string, fn func(cart *entity.Cart) error) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[username]
	if !ok {
		cart = entity.NewCart()
		walkIn, err := s.walkInCustomer(ctx)
		if err != nil {
			return nil, err
		}
		cart.Customer = walkIn
		s.carts[username] = cart
	}

	if fn != nil {
		if err := fn(cart); err != nil {
			return nil, err
		}
	}
	return newCartView(cart), nil
}

func (s *CartService) walkInCustomer(ctx context.Context) (*entity.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].IsWalkIn() {
			return &customers[i], nil
		}
	}
	return nil, nil
}

// rejected counts and logs a warning returned by a cart rule
func (s *CartService) rejected(operation, username string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		metrics.CartRejections.WithLabelValues(operation).Inc()
		s.log.WithFields(logrus.Fields{
			"username":  username,
			"operation": operation,
		}).Info(appErr.Message)
	}
	return err
}

// GetCart returns the user's cart
func (s *CartService) GetCart(ctx context.Context, username string) (*CartView, error) {
	return s.mutate(ctx, username, nil)
}

// AddItemInput represents a product added to the cart
type AddItemInput struct {
	Username  string
	ProductID string
	IMEI      string
}

// AddItem adds a product, optionally bound to one of its available serials
func (s *CartService) AddItem(ctx context.Context, input *AddItemInput) (*CartView, error) {
	product, err := s.products.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if input.IMEI != "" && !product.HasIMEI(input.IMEI) {
		return nil, s.rejected("add", input.Username,
			apperror.NewWarning("IMEI "+input.IMEI+" is not available for "+product.Name))
	}
	return s.add(ctx, input.Username, product, input.IMEI)
}

// Scan resolves a scanned code and adds the matching product
func (s *CartService) Scan(ctx context.Context, username, code string) (*CartView, error) {
	result, err := s.products.ResolveScan(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.add(ctx, username, result.Product, result.IMEI)
}

func (s *CartService) add(ctx context.Context, username string, product *entity.Product, imei string) (*CartView, error) {
	view, err := s.mutate(ctx, username, func(cart *entity.Cart) error {
		_, err := cart.Add(*product, imei, utils.NewID)
		return err
	})
	if err != nil {
		return nil, s.rejected("add", username, err)
	}
	return view, nil
}

// UpdateQuantity changes a line's quantity by delta
func (s *CartService) UpdateQuantity(ctx context.Context, username, cartID string, delta int) (*CartView, error) {
	view, err := s.mutate(ctx, username, func(cart *entity.Cart) error {
		return cart.UpdateQuantity(cartID, delta)
	})
	if err != nil {
		return nil, s.rejected("quantity", username, err)
	}
	return view, nil
}

// UpdateDiscount sets a line's discount percentage
func (s *CartService) UpdateDiscount(ctx context.Context, username, cartID string, discount decimal.Decimal) (*CartView, error) {
	return s.mutate(ctx, username, func(cart *entity.Cart) error {
		return cart.UpdateDiscount(cartID, discount)
	})
}

// RemoveItem drops a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, username, cartID string) (*CartView, error) {
	return s.mutate(ctx, username, func(cart *entity.Cart) error {
		cart.Remove(cartID)
		return nil
	})
}

// ClearCart drops every line, keeping the customer and payment mode
func (s *CartService) ClearCart(ctx context.Context, username string) (*CartView, error) {
	return s.mutate(ctx, username, func(cart *entity.Cart) error {
		cart.Clear()
		return nil
	})
}

// SelectCustomer sets the billing party. An empty id clears the selection.
func (s *CartService) SelectCustomer(ctx context.Context, username, customerID string) (*CartView, error) {
	var customer *entity.Customer
	if customerID != "" {
		c, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customer = c
	}

	return s.mutate(ctx, username, func(cart *entity.Cart) error {
		cart.Customer = customer
		return nil
	})
}

// SetPaymentMode sets how the sale will be settled
func (s *CartService) SetPaymentMode(ctx context.Context, username string, mode enum.PaymentMode) (*CartView, error) {
	if !mode.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_mode", Message: "Payment mode must be one of Cash, UPI, Card, Credit"},
		})
	}
	return s.mutate(ctx, username, func(cart *entity.Cart) error {
		cart.PaymentMode = mode
		return nil
	})
}
