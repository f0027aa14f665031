package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/request"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
)

// CartHandler handles cart and checkout HTTP requests
type CartHandler struct {
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, checkoutService *service.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// Get returns the caller's cart with totals
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", cart)
}

// AddItem adds a product to the cart
// @Summary Add to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.AddCartItemRequest true "Product and optional IMEI"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), &service.AddItemInput{
		Username:  GetUsername(c),
		ProductID: req.ProductID,
		IMEI:      req.IMEI,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", cart)
}

// Scan adds the product a scanned code resolves to
func (h *CartHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.Scan(c.Request.Context(), GetUsername(c), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", cart)
}

// UpdateQuantity changes a line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req request.UpdateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), GetUsername(c), c.Param("cartId"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", cart)
}

// UpdateDiscount sets a line's discount percentage
func (h *CartHandler) UpdateDiscount(c *gin.Context) {
	var req request.UpdateDiscountRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.UpdateDiscount(c.Request.Context(), GetUsername(c), c.Param("cartId"), *req.Discount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated", cart)
}

// RemoveItem drops a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(c.Request.Context(), GetUsername(c), c.Param("cartId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed from cart", cart)
}

// Clear empties the cart. The caller must pass confirm=true.
func (h *CartHandler) Clear(c *gin.Context) {
	if c.Query("confirm") != "true" {
		response.BadRequest(c, "Clearing the cart requires confirm=true")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", cart)
}

// SelectCustomer sets the billing party
func (h *CartHandler) SelectCustomer(c *gin.Context) {
	var req request.SelectCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.cartService.SelectCustomer(c.Request.Context(), GetUsername(c), req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer selected", cart)
}

// SetPaymentMode sets the payment mode
func (h *CartHandler) SetPaymentMode(c *gin.Context) {
	var req request.PaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Payment mode must be one of Cash, UPI, Card, Credit")
		return
	}

	cart, err := h.cartService.SetPaymentMode(c.Request.Context(), GetUsername(c), req.PaymentMode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment mode updated", cart)
}

// Checkout commits the cart as an invoice
// @Summary Checkout
// @Description Commit the cart as a paid invoice and clear it
// @Tags cart
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request.CheckoutRequest false "Optional payment mode"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	input := &service.CheckoutInput{
		Username:    GetUsername(c),
		PaymentMode: req.PaymentMode,
	}
	if user := GetUser(c); user != nil {
		input.Cashier = user.Name
	}

	invoice, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created successfully", invoice)
}
