package enum

import (
	"encoding/json"
	"fmt"
)

// PaymentMode represents how an invoice was settled
type PaymentMode int

const (
	PaymentModeCash   PaymentMode = 0
	PaymentModeUPI    PaymentMode = 1
	PaymentModeCard   PaymentMode = 2
	PaymentModeCredit PaymentMode = 3
)

var paymentModeNames = [...]string{"Cash", "UPI", "Card", "Credit"}

func (m PaymentMode) String() string {
	if int(m) < 0 || int(m) >= len(paymentModeNames) {
		return "Cash"
	}
	return paymentModeNames[m]
}

// IsValid reports whether m is one of the known payment modes
func (m PaymentMode) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentModeNames)
}

// ParsePaymentMode converts a payment mode name into a PaymentMode
func ParsePaymentMode(s string) (PaymentMode, error) {
	for i, name := range paymentModeNames {
		if name == s {
			return PaymentMode(i), nil
		}
	}
	return PaymentModeCash, fmt.Errorf("unknown payment mode %q", s)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMode(i).IsValid() {
			return fmt.Errorf("unknown payment mode %d", i)
		}
		*m = PaymentMode(i)
		return nil
	}
	mode, err := ParsePaymentMode(str)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
