package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	// Select makes the new customer the billing party of the caller's cart
	Select *bool `json:"select"`
}
