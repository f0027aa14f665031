package service

import (
	"context"

	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService builds downloadable sales reports
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository) *ReportService {
	return &ReportService{
		invoiceRepo: invoiceRepo,
	}
}

const salesSheet = "Sales"

var salesHeader = []string{
	"Invoice", "Date", "Customer", "Mobile", "Payment", "Cashier",
	"Product", "IMEI/SN", "Qty", "Price", "Discount %", "Taxable", "GST", "Line Total",
}

// SalesWorkbook returns an xlsx workbook with one row per sold line
func (s *ReportService) SalesWorkbook(ctx context.Context) ([]byte, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(salesSheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range salesHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(salesSheet, cell, v)
	}

	row := 2
	for i := range invoices {
		inv := &invoices[i]
		for j := range inv.Items {
			item := &inv.Items[j]
			line := item.Totals()
			values := []any{
				inv.ID,
				inv.Date.UTC().Format("2006-01-02 15:04"),
				inv.CustomerName,
				inv.CustomerMobile,
				inv.PaymentMode.String(),
				inv.Cashier,
				item.Name,
				item.SelectedIMEI,
				item.Quantity,
				item.Price.InexactFloat64(),
				item.Discount.InexactFloat64(),
				line.Taxable.Round(2).InexactFloat64(),
				line.Tax.Round(2).InexactFloat64(),
				line.Total().Round(2).InexactFloat64(),
			}
			for c, v := range values {
				cell, _ := excelize.CoordinatesToCellName(c+1, row)
				_ = f.SetCellValue(salesSheet, cell, v)
			}
			row++
		}
	}

	_ = f.SetColWidth(salesSheet, "A", "A", 14)
	_ = f.SetColWidth(salesSheet, "B", "B", 18)
	_ = f.SetColWidth(salesSheet, "C", "C", 24)
	_ = f.SetColWidth(salesSheet, "D", "F", 14)
	_ = f.SetColWidth(salesSheet, "G", "G", 28)
	_ = f.SetColWidth(salesSheet, "H", "H", 18)
	_ = f.SetColWidth(salesSheet, "I", "N", 12)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(salesSheet, "A1", "N1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
