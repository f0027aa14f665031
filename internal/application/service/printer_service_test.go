package service

import (
	"context"
	"bytes"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/pkg/logger"
	"github.com/sangkips/shopflow/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }

func newPrinterService(f *fixture, p printer.Printer) *PrinterService {
	return NewPrinterService(p, f.invoices, f.settings, printer.Config{Type: "usb", Width: 32}, logger.NewNop())
}

func TestPrinterService_PrintInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.checkout.newID = fixedIDs("INV-PRINT")
	f.checkout.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }

	f.add(t, "admin", "1", "354666060011223")
	view := f.add(t, "admin", "3", "")
	_, err := f.carts.UpdateQuantity(context.Background(), "admin", view.Items[1].CartID, 2)
	require.NoError(t, err)
	_, err = f.carts.UpdateDiscount(context.Background(), "admin", view.Items[1].CartID, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, &CheckoutInput{Username: "admin", Cashier: "Store Owner"})
	require.NoError(t, err)

	rec := &recordingPrinter{}
	receipt, err := newPrinterService(f, rec).PrintInvoice(ctx, "INV-PRINT")
	require.NoError(t, err)

	assert.Equal(t, "TechMobile Electronics", receipt.Header.StoreName)
	assert.Equal(t, "2024-03-01 09:30", receipt.Date)
	assert.Equal(t, "97465.00", receipt.Total)
	assert.Equal(t, "0.19", receipt.RoundOff)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "354666060011223", receipt.Items[0].Serial)
	assert.Equal(t, "10%", receipt.Items[1].Discount)
	assert.Equal(t, "3182.81", receipt.Items[1].Total)

	require.Len(t, rec.jobs, 1)
	out := string(rec.jobs[0])
	assert.Contains(t, out, "IMEI/SN: 354666060011223")
	assert.Contains(t, out, "Disc: 10%")
	assert.Contains(t, out, "No warranty on physical damage.")
	assert.Contains(t, out, "Generated by ShopFlow")
}

func TestPrinterService_PrintFailureStillReturnsReceipt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.invoiceRepo.CommitSale(ctx, &entity.Invoice{ID: "INV-1", TotalAmount: decimal.NewFromInt(5)}))

	svc := newPrinterService(f, &recordingPrinter{err: errors.New("paper out")})
	receipt, err := svc.PrintInvoice(ctx, "INV-1")
	assert.Error(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "5.00", receipt.Total)

	assert.False(t, svc.GetStatus().Connected)
	assert.True(t, svc.GetStatus().Configured)
}

func TestPrinterService_UnknownInvoice(t *testing.T) {
	f := newFixture(t)
	_, err := newPrinterService(f, &recordingPrinter{}).PrintInvoice(context.Background(), "missing")
	requireAppError(t, err, http.StatusNotFound)
}

func TestPrinterService_TestPrint(t *testing.T) {
	f := newFixture(t)
	rec := &recordingPrinter{}

	receipt, err := newPrinterService(f, rec).TestPrint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TEST-001", receipt.InvoiceNo)
	require.Len(t, rec.jobs, 1)
	assert.Contains(t, string(rec.jobs[0]), "PRINTER TEST")
}

func TestPrinterService_NullPrinterStatus(t *testing.T) {
	f := newFixture(t)
	svc := NewPrinterService(printer.NewNullPrinter(), f.invoices, f.settings, printer.Config{Type: "none"}, logger.NewNop())

	status := svc.GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
}

func TestFormatReceipt_CutByPaperWidth(t *testing.T) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{StoreName: "TechMobile Electronics"},
		Total:  "99.00",
	}

	narrow := FormatReceipt(receipt, 32)
	assert.True(t, bytes.HasSuffix(narrow, []byte{printer.GS, 'V', 0x01}), "58mm paper gets a partial cut")

	wide := FormatReceipt(receipt, 48)
	assert.True(t, bytes.HasSuffix(wide, []byte{printer.GS, 'V', 0x00}), "80mm paper gets a full cut")
}
