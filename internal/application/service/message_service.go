package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/email"
	"github.com/sirupsen/logrus"
)

// Templates used when the shop settings leave one empty
const (
	FallbackWhatsappTemplate = "Hello {customer}, your invoice {id} is generated. Total: {total}"
	FallbackEmailSubject     = "Invoice {id}"
	FallbackEmailBody        = "Here is your invoice {id}"
)

// RenderTemplate replaces every {customer}, {id}, {total}, {date} and
// {shopName} token in template. Other text, including unknown tokens, is
// kept verbatim.
func RenderTemplate(template string, invoice *entity.Invoice, shopName string) string {
	r := strings.NewReplacer(
		"{customer}", invoice.CustomerName,
		"{id}", invoice.ID,
		"{total}", invoice.TotalAmount.String(),
		"{date}", invoice.DateString(),
		"{shopName}", shopName,
	)
	return r.Replace(template)
}

// encodeURIComponent escapes s for a URI query value, spaces as %20
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// MessageService builds share messages for committed invoices
type MessageService struct {
	invoices     *InvoiceService
	customers    *CustomerService
	settings     *SettingsService
	emailService *email.EmailService
	log          *logrus.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	invoices *InvoiceService,
	customers *CustomerService,
	settings *SettingsService,
	emailService *email.EmailService,
	log *logrus.Logger,
) *MessageService {
	return &MessageService{
		invoices:     invoices,
		customers:    customers,
		settings:     settings,
		emailService: emailService,
		log:          log,
	}
}

// ShareLinks holds the rendered messages and the URLs that open them
type ShareLinks struct {
	WhatsappText string `json:"whatsapp_text"`
	WhatsappURL  string `json:"whatsapp_url"`
	Email        string `json:"email"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
	MailtoURL    string `json:"mailto_url"`
}

// GetShareLinks renders the WhatsApp and email messages for an invoice.
// The email address is looked up in the directory by the invoice mobile.
func (s *MessageService) GetShareLinks(ctx context.Context, invoiceID string) (*ShareLinks, error) {
	invoice, settings, err := s.load(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.shareLinks(ctx, invoice, settings)
}

func (s *MessageService) load(ctx context.Context, invoiceID string) (*entity.Invoice, *entity.ShopSettings, error) {
	invoice, err := s.invoices.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return invoice, settings, nil
}

func (s *MessageService) shareLinks(ctx context.Context, invoice *entity.Invoice, settings *entity.ShopSettings) (*ShareLinks, error) {
	links := &ShareLinks{
		WhatsappText: RenderTemplate(orDefault(settings.WhatsappTemplate, FallbackWhatsappTemplate), invoice, settings.ShopName),
		EmailSubject: RenderTemplate(orDefault(settings.EmailSubject, FallbackEmailSubject), invoice, settings.ShopName),
		EmailBody:    RenderTemplate(orDefault(settings.EmailBody, FallbackEmailBody), invoice, settings.ShopName),
	}

	customer, err := s.customers.FindByMobile(ctx, invoice.CustomerMobile)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		links.Email = customer.Email
	}

	links.WhatsappURL = "https://wa.me/" + invoice.CustomerMobile + "?text=" + encodeURIComponent(links.WhatsappText)
	links.MailtoURL = "mailto:" + links.Email +
		"?subject=" + encodeURIComponent(links.EmailSubject) +
		"&body=" + encodeURIComponent(links.EmailBody)

	return links, nil
}

// SendInvoiceEmail mails the rendered invoice message over SMTP. An empty
// recipient falls back to the customer's email on record.
func (s *MessageService) SendInvoiceEmail(ctx context.Context, invoiceID, to string) (string, error) {
	if s.emailService == nil || !s.emailService.IsConfigured() {
		return "", apperror.NewAppError(http.StatusServiceUnavailable, "Email delivery is not configured")
	}

	invoice, settings, err := s.load(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	links, err := s.shareLinks(ctx, invoice, settings)
	if err != nil {
		return "", err
	}
	if to == "" {
		to = links.Email
	}
	if to == "" {
		return "", apperror.NewValidationError([]apperror.FieldError{
			{Field: "to", Message: "Customer has no email address on record"},
		})
	}

	msg := &email.InvoiceMessage{
		To:       to,
		Subject:  links.EmailSubject,
		Body:     links.EmailBody,
		ShopName: settings.ShopName,
		Total:    invoice.TotalAmount.StringFixed(2),
	}
	for i := range invoice.Items {
		item := &invoice.Items[i]
		msg.Lines = append(msg.Lines, email.InvoiceLine{
			Name:     item.Name,
			Serial:   item.SelectedIMEI,
			Quantity: item.Quantity,
			Amount:   item.Totals().Total().StringFixed(2),
		})
	}

	if err := s.emailService.SendInvoiceEmail(msg); err != nil {
		s.log.WithError(err).WithField("invoice_id", invoiceID).Error("invoice email failed")
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"invoice_id": invoiceID,
		"to":         to,
	}).Info("invoice email sent")
	return to, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
