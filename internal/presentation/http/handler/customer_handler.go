package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/request"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	cartService     *service.CartService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, cartService *service.CartService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		cartService:     cartService,
	}
}

// List handles listing customers, filtered by ?search=
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customers retrieved successfully", customers)
}

// Get handles getting a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles customer creation. The new customer becomes the billing
// party of the caller's cart unless select is false.
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body request.CreateCustomerRequest true "Customer data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	customer, err := h.customerService.CreateCustomer(ctx, &service.CreateCustomerInput{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Select == nil || *req.Select {
		if _, err := h.cartService.SelectCustomer(ctx, GetUsername(c), customer.ID); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.Created(c, "Customer created successfully", customer)
}
