package request

// EmailInvoiceRequest represents an invoice email request. An empty
// recipient falls back to the customer's address on record.
type EmailInvoiceRequest struct {
	To string `json:"to" binding:"omitempty,email"`
}
