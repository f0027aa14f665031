package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a new random identifier string
func NewID() string {
	return uuid.New().String()
}

// GenerateInvoiceNo generates an invoice number such as "INV-1A2B3C4D"
func GenerateInvoiceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
