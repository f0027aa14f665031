package service

import (
	"context"
	"net/http"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/pkg/email"
	"github.com/sangkips/shopflow/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:             "INV-1A2B3C4D",
		Date:           time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC),
		CustomerName:   "Rahul Sharma",
		CustomerMobile: "9898989898",
		TotalAmount:    decimal.NewFromInt(3183),
	}
}

func TestRenderTemplate(t *testing.T) {
	out := RenderTemplate("Dear {customer}, #{id} Rs. {total} on {date} at {shopName}. {unknown} {id}", sampleInvoice(), "TechMobile")
	assert.Equal(t, "Dear Rahul Sharma, #INV-1A2B3C4D Rs. 3183 on 2024-03-01 at TechMobile. {unknown} INV-1A2B3C4D", out)
}

func TestRenderTemplate_FractionalTotal(t *testing.T) {
	inv := sampleInvoice()
	inv.TotalAmount = decimal.RequireFromString("99.5")
	assert.Equal(t, "99.5", RenderTemplate("{total}", inv, ""))
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "Dear%20Rahul%2C%20Rs.%203183%0A%23INV", encodeURIComponent("Dear Rahul, Rs. 3183\n#INV"))
}

func commitSample(t *testing.T, f *fixture) *entity.Invoice {
	t.Helper()
	inv := sampleInvoice()
	require.NoError(t, f.invoiceRepo.CommitSale(context.Background(), inv))
	return inv
}

func TestMessageService_ShareLinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	commitSample(t, f)

	links, err := f.messages.GetShareLinks(ctx, "INV-1A2B3C4D")
	require.NoError(t, err)

	assert.Equal(t,
		"Dear Rahul Sharma, thank you for purchasing from TechMobile Electronics. Your Invoice #INV-1A2B3C4D of Rs. 3183 is generated on 2024-03-01. Visit again!",
		links.WhatsappText)
	assert.True(t, strings.HasPrefix(links.WhatsappURL, "https://wa.me/9898989898?text=Dear%20Rahul%20Sharma%2C"))
	assert.NotContains(t, links.WhatsappURL, "+")

	assert.Equal(t, "rahul@example.com", links.Email)
	assert.Equal(t, "Invoice #INV-1A2B3C4D from TechMobile Electronics", links.EmailSubject)
	assert.Contains(t, links.EmailBody, "Total Amount: Rs. 3183")
	assert.True(t, strings.HasPrefix(links.MailtoURL, "mailto:rahul@example.com?subject=Invoice%20%23INV-1A2B3C4D"))
	assert.Contains(t, links.MailtoURL, "&body=Dear%20Rahul%20Sharma%2C%0A%0A")
}

func TestMessageService_FallbackTemplates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	commitSample(t, f)
	require.NoError(t, f.settingsRepo.Save(ctx, &entity.ShopSettings{ShopName: "Bare"}))

	links, err := f.messages.GetShareLinks(ctx, "INV-1A2B3C4D")
	require.NoError(t, err)
	assert.Equal(t, "Hello Rahul Sharma, your invoice INV-1A2B3C4D is generated. Total: 3183", links.WhatsappText)
	assert.Equal(t, "Invoice INV-1A2B3C4D", links.EmailSubject)
	assert.Equal(t, "Here is your invoice INV-1A2B3C4D", links.EmailBody)
}

func TestMessageService_UnknownInvoice(t *testing.T) {
	f := newFixture(t)
	_, err := f.messages.GetShareLinks(context.Background(), "INV-NONE")
	requireAppError(t, err, http.StatusNotFound)
}

func TestMessageService_SendInvoiceEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	commitSample(t, f)

	_, err := f.messages.SendInvoiceEmail(ctx, "INV-1A2B3C4D", "")
	requireAppError(t, err, http.StatusServiceUnavailable)

	var (
		sentTo  []string
		sentMsg string
		addr    string
	)
	mailer := email.NewEmailService(email.EmailConfig{
		SMTPHost:  "smtp.example.com",
		SMTPPort:  587,
		FromName:  "ShopFlow",
		FromEmail: "billing@example.com",
	}).WithSender(func(a string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		addr, sentTo, sentMsg = a, to, string(msg)
		return nil
	})
	messages := NewMessageService(f.invoices, f.customers, f.settings, mailer, logger.NewNop())

	to, err := messages.SendInvoiceEmail(ctx, "INV-1A2B3C4D", "")
	require.NoError(t, err)
	assert.Equal(t, "rahul@example.com", to)
	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Equal(t, []string{"rahul@example.com"}, sentTo)
	assert.Contains(t, sentMsg, "Subject: Invoice #INV-1A2B3C4D from TechMobile Electronics")

	to, err = messages.SendInvoiceEmail(ctx, "INV-1A2B3C4D", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, "other@example.com", to)
}

func TestMessageService_SendInvoiceEmailWithoutAddress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	inv := sampleInvoice()
	inv.CustomerMobile = "5555555555"
	require.NoError(t, f.invoiceRepo.CommitSale(ctx, inv))

	mailer := email.NewEmailService(email.EmailConfig{SMTPHost: "smtp.example.com"}).
		WithSender(func(string, smtp.Auth, string, []string, []byte) error { return nil })
	messages := NewMessageService(f.invoices, f.customers, f.settings, mailer, logger.NewNop())

	_, err := messages.SendInvoiceEmail(ctx, inv.ID, "")
	requireAppError(t, err, http.StatusUnprocessableEntity)
}
