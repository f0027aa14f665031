package entity

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Serial    string `json:"serial,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Discount  string `json:"discount,omitempty"`
	Total     string `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is not persisted; it is composed from an invoice at print time.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	InvoiceNo   string        `json:"invoice_no"`
	Date        string        `json:"date"`
	Cashier     string        `json:"cashier,omitempty"`
	Customer    string        `json:"customer,omitempty"`
	Mobile      string        `json:"mobile,omitempty"`
	PaymentType string        `json:"payment_type,omitempty"`
	Items       []ReceiptItem `json:"items"`
	SubTotal    string        `json:"sub_total"`
	Discount    string        `json:"discount"`
	Tax         string        `json:"tax"`
	RoundOff    string        `json:"round_off"`
	Total       string        `json:"total"`
	Footer      string        `json:"footer,omitempty"`
}
