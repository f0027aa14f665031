package entity

import "github.com/shopspring/decimal"

// DefaultSettings returns the settings used until the shop saves its own
func DefaultSettings() ShopSettings {
	return ShopSettings{
		ShopName:         "TechMobile Electronics",
		Address:          "Shop 4, Digital Plaza, Main Road",
		Phone:            "9876543210",
		GSTIN:            "29ABCDE1234F1Z5",
		FooterMessage:    "No warranty on physical damage. Goods once sold not refundable.",
		WhatsappTemplate: "Dear {customer}, thank you for purchasing from {shopName}. Your Invoice #{id} of Rs. {total} is generated on {date}. Visit again!",
		EmailSubject:     "Invoice #{id} from {shopName}",
		EmailBody:        "Dear {customer},\n\nThank you for your purchase.\n\nInvoice No: {id}\nDate: {date}\nTotal Amount: Rs. {total}\n\nPlease visit us again.\n\nRegards,\n{shopName}",
	}
}

// SeedProducts returns the starter catalog
func SeedProducts() []Product {
	gst := decimal.NewFromInt(18)
	return []Product{
		{
			ID: "1", Name: "iPhone 15 128GB", Brand: "Apple", Category: "Mobile", HSN: "8517",
			Price: decimal.NewFromInt(79900), Cost: decimal.NewFromInt(72000), GSTPercent: gst,
			Stock: 2, Unit: "pcs", Barcode: "190199223344",
			AvailableIMEIs: []string{"354666060011223", "354666060011224"},
		},
		{
			ID: "2", Name: "Galaxy S24 Ultra", Brand: "Samsung", Category: "Mobile", HSN: "8517",
			Price: decimal.NewFromInt(129999), Cost: decimal.NewFromInt(115000), GSTPercent: gst,
			Stock: 1, Unit: "pcs", Barcode: "880123456789",
			AvailableIMEIs: []string{"358889090011222"},
		},
		{
			ID: "3", Name: "USB-C Cable 1m", Brand: "Samsung", Category: "Accessories", HSN: "8544",
			Price: decimal.NewFromInt(999), Cost: decimal.NewFromInt(400), GSTPercent: gst,
			Stock: 50, Unit: "pcs", Barcode: "8809988776655",
		},
		{
			ID: "4", Name: "AirPods Pro 2", Brand: "Apple", Category: "Audio", HSN: "8518",
			Price: decimal.NewFromInt(24900), Cost: decimal.NewFromInt(20000), GSTPercent: gst,
			Stock: 5, Unit: "pcs", Barcode: "190199556677",
			AvailableIMEIs: []string{"H34K22L99", "H34K22L00", "H34K22L01"},
		},
		{
			ID: "5", Name: "Tempered Glass", Brand: "Generic", Category: "Accessories", HSN: "7007",
			Price: decimal.NewFromInt(299), Cost: decimal.NewFromInt(50), GSTPercent: gst,
			Stock: 100, Unit: "pcs", Barcode: "8901122330000",
		},
	}
}

// SeedCustomers returns the starter directory, walk-in first
func SeedCustomers() []Customer {
	return []Customer{
		{ID: "1", Name: WalkInCustomerName},
		{ID: "2", Name: "Rahul Sharma", Mobile: "9898989898", Email: "rahul@example.com", Address: "45, MG Road"},
	}
}
