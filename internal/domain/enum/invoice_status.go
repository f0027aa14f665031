package enum

import (
	"encoding/json"
)

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPaid      InvoiceStatus = 0
	InvoiceStatusUnpaid    InvoiceStatus = 1
	InvoiceStatusCancelled InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Paid", "Unpaid", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Paid"
	}
	return names[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Paid":
		*s = InvoiceStatusPaid
	case "Unpaid":
		*s = InvoiceStatusUnpaid
	case "Cancelled":
		*s = InvoiceStatusCancelled
	}
	return nil
}
