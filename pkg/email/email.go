package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when no SMTP host is set
var ErrNotConfigured = errors.New("email: SMTP is not configured")

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// InvoiceLine is one row of the item table in an invoice email
type InvoiceLine struct {
	Name     string
	Serial   string
	Quantity int
	Amount   string
}

// InvoiceMessage is the content of an invoice email
type InvoiceMessage struct {
	To       string
	Subject  string
	Body     string
	ShopName string
	Lines    []InvoiceLine
	Total    string
}

// SendFunc delivers a fully built message. It matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   SendFunc
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config, send: smtp.SendMail}
}

// WithSender replaces the SMTP transport, e.g. in tests
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

// IsConfigured reports whether an SMTP host has been set
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != ""
}

// SendInvoiceEmail renders and sends an invoice email
func (s *EmailService) SendInvoiceEmail(msg *InvoiceMessage) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	htmlContent, err := s.renderInvoiceEmail(msg)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	message := s.buildHTMLEmail(msg.To, msg.Subject, htmlContent)
	return s.sendEmail(msg.To, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderInvoiceEmail renders the invoice email template
func (s *EmailService) renderInvoiceEmail(msg *InvoiceMessage) (string, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		ShopName   string
		Paragraphs []string
		Lines      []InvoiceLine
		Total      string
	}{
		ShopName:   msg.ShopName,
		Paragraphs: strings.Split(msg.Body, "\n"),
		Lines:      msg.Lines,
		Total:      msg.Total,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// invoiceTemplate is the HTML template for invoice emails
const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.ShopName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-collapse: collapse;">
        <tr>
            <td style="background-color: #1e293b; padding: 24px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.ShopName}}</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 30px; color: #334155; font-size: 15px; line-height: 1.6;">
                {{range .Paragraphs}}{{if .}}<p style="margin: 0 0 8px 0;">{{.}}</p>{{else}}<br>{{end}}
                {{end}}
            </td>
        </tr>
        {{if .Lines}}
        <tr>
            <td style="padding: 0 30px 30px 30px;">
                <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 14px;">
                    {{range .Lines}}
                    <tr>
                        <td style="padding: 6px 0; border-bottom: 1px solid #e2e8f0;">{{.Name}}{{if .Serial}}<br><small>IMEI/SN: {{.Serial}}</small>{{end}}</td>
                        <td style="padding: 6px 0; border-bottom: 1px solid #e2e8f0; text-align: center;">{{.Quantity}}</td>
                        <td style="padding: 6px 0; border-bottom: 1px solid #e2e8f0; text-align: right;">{{.Amount}}</td>
                    </tr>
                    {{end}}
                    <tr>
                        <td colspan="2" style="padding: 10px 0; font-weight: 600;">Total</td>
                        <td style="padding: 10px 0; font-weight: 600; text-align: right;">{{.Total}}</td>
                    </tr>
                </table>
            </td>
        </tr>
        {{end}}
        <tr>
            <td style="background-color: #f8fafc; padding: 20px; text-align: center; color: #a0aec0; font-size: 12px;">
                Generated by ShopFlow
            </td>
        </tr>
    </table>
</body>
</html>
`
