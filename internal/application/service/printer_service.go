package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// fullCutWidth is the character width of 80mm paper, which gets a full cut
const fullCutWidth = 48

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	invoices    *InvoiceService
	settings    *SettingsService
	printerType string
	width       int
	log         *logrus.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	invoices *InvoiceService,
	settings *SettingsService,
	cfg printer.Config,
	log *logrus.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		invoices:    invoices,
		settings:    settings,
		printerType: cfg.Type,
		width:       cfg.Width,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header:    receiptHeader(settings),
		InvoiceNo: "TEST-001",
		Date:      time.Now().Format("2006-01-02 15:04"),
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: "10.00", Total: "10.00"},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: "5.00", Total: "10.00"},
		},
		SubTotal: "20.00",
		Discount: "0.00",
		Tax:      "0.00",
		RoundOff: "0.00",
		Total:    "20.00",
		Footer:   "PRINTER TEST",
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintInvoice composes the receipt for a committed invoice and prints it.
// The receipt is returned even when printing fails.
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceID string) (*entity.Receipt, error) {
	invoice, err := s.invoices.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(invoice, settings)
	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		s.log.WithError(err).WithField("invoice_id", invoiceID).Error("printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

func receiptHeader(settings *entity.ShopSettings) entity.ReceiptHeader {
	return entity.ReceiptHeader{
		StoreName: settings.ShopName,
		Address:   settings.Address,
		Phone:     settings.Phone,
		TaxID:     settings.GSTIN,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// BuildReceipt composes the printable receipt of an invoice.
func BuildReceipt(invoice *entity.Invoice, settings *entity.ShopSettings) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:      receiptHeader(settings),
		InvoiceNo:   invoice.ID,
		Date:        invoice.Date.Format("2006-01-02 15:04"),
		Cashier:     invoice.Cashier,
		Customer:    invoice.CustomerName,
		Mobile:      invoice.CustomerMobile,
		PaymentType: invoice.PaymentMode.String(),
		SubTotal:    money(invoice.Subtotal),
		Discount:    money(invoice.TotalDiscount),
		Tax:         money(invoice.TotalTax),
		RoundOff:    money(invoice.RoundOff),
		Total:       money(invoice.TotalAmount),
		Footer:      settings.FooterMessage,
	}

	for i := range invoice.Items {
		line := &invoice.Items[i]
		item := entity.ReceiptItem{
			Name:      line.Name,
			Serial:    line.SelectedIMEI,
			Quantity:  line.Quantity,
			UnitPrice: money(line.Price),
			Total:     money(line.Totals().Total()),
		}
		if line.Discount.IsPositive() {
			item.Discount = line.Discount.String() + "%"
		}
		receipt.Items = append(receipt.Items, item)
	}

	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Ph: %s", r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("GSTIN: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Mobile != "" {
		doc.KeyValue("Mobile:", r.Mobile)
	}
	if r.PaymentType != "" {
		doc.KeyValue("Payment:", r.PaymentType)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Total)
		if item.Serial != "" {
			doc.TextF("  IMEI/SN: %s", item.Serial)
		}
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice)
		}
		if item.Discount != "" {
			doc.TextF("  Disc: %s", item.Discount)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", r.SubTotal)
	if r.Discount != "" && r.Discount != "0.00" {
		doc.KeyValue("Discount:", r.Discount)
	}
	doc.KeyValue("GST:", r.Tax)
	if r.RoundOff != "" && r.RoundOff != "0.00" {
		doc.KeyValue("Round Off:", r.RoundOff)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	}
	doc.Text("Generated by ShopFlow").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3)
	if width >= fullCutWidth {
		doc.Cut()
	} else {
		doc.PartialCut()
	}

	return doc.Bytes()
}
