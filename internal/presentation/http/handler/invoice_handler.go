package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/request"
	"github.com/sangkips/shopflow/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice history and sharing HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	messageService *service.MessageService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, messageService *service.MessageService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		messageService: messageService,
	}
}

// List handles listing invoices, most recent first
func (h *InvoiceHandler) List(c *gin.Context) {
	result, err := h.invoiceService.ListInvoices(c.Request.Context(), GetPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Share returns the WhatsApp and email share links of an invoice
func (h *InvoiceHandler) Share(c *gin.Context) {
	links, err := h.messageService.GetShareLinks(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Share links generated", links)
}

// Email sends the invoice message over SMTP
func (h *InvoiceHandler) Email(c *gin.Context) {
	var req request.EmailInvoiceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	to, err := h.messageService.SendInvoiceEmail(c.Request.Context(), c.Param("id"), req.To)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice emailed", gin.H{"to": to})
}
