package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored documents keep money fields as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a sellable catalog entry
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Category       string          `json:"category"`
	HSN            string          `json:"hsn"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	GSTPercent     decimal.Decimal `json:"gstPercent"`
	Stock          int             `json:"stock"`
	Unit           string          `json:"unit"`
	Barcode        string          `json:"barcode,omitempty"`
	AvailableIMEIs []string        `json:"availableImeis,omitempty"`
}

// Clone returns a copy that shares no slices with p
func (p Product) Clone() Product {
	if p.AvailableIMEIs != nil {
		p.AvailableIMEIs = append([]string(nil), p.AvailableIMEIs...)
	}
	return p
}

// HasIMEI reports whether the serial is still available for sale
func (p *Product) HasIMEI(imei string) bool {
	for _, s := range p.AvailableIMEIs {
		if s == imei {
			return true
		}
	}
	return false
}

// RemoveIMEI drops exactly the given serial, keeping the order of the rest
func (p *Product) RemoveIMEI(imei string) {
	if len(p.AvailableIMEIs) == 0 {
		return
	}
	kept := make([]string, 0, len(p.AvailableIMEIs))
	for _, s := range p.AvailableIMEIs {
		if s != imei {
			kept = append(kept, s)
		}
	}
	p.AvailableIMEIs = kept
}

// MatchesText reports whether name, id, barcode or brand contains the
// lower-cased query, or any available serial contains it verbatim.
func (p *Product) MatchesText(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.ID), q) ||
		strings.Contains(strings.ToLower(p.Barcode), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, s := range p.AvailableIMEIs {
		if strings.Contains(s, query) {
			return true
		}
	}
	return false
}

// IsLowStock reports whether stock has fallen below the threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}

// MatchesCatalog is the inventory filter: name, brand, category or barcode
// contains the query ignoring case, or any available serial contains it.
func (p *Product) MatchesCatalog(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Barcode), q) {
		return true
	}
	for _, s := range p.AvailableIMEIs {
		if strings.Contains(s, query) {
			return true
		}
	}
	return false
}
