package mail

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"targ/internal/domain/discovery"
	"targ/internal/domain/entity"
	"targ/internal/domain/service"
)

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"price": discovery.FormatPrice,
	"date":  func(t interface{ Format(string) string }) string { return t.Format("02.01.2006") },
}).Parse(`Buna ziua {{.Billing.Name}}{{if .Billing.CompanyName}} ({{.Billing.CompanyName}}){{end}},

Va multumim pentru plata. Factura {{.Number}} a fost emisa pe {{date .IssuedAt}}.
{{range .Items}}
- {{.Description}}: {{price .Amount $.Currency}}{{end}}

Subtotal: {{price .Subtotal .Currency}}
TVA: {{price .VAT .Currency}}
Total: {{price .Total .Currency}}
Scadenta: {{date .DueAt}}
`))

// RenderInvoice produces the plain text body of an invoice e-mail.
func RenderInvoice(invoice *entity.Invoice) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, invoice); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) SendInvoice(ctx context.Context, invoice *entity.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := RenderInvoice(invoice)
	if err != nil {
		return fmt.Errorf("failed to render invoice %s: %w", invoice.Number, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", invoice.Billing.Email)
	msg.SetHeader("Subject", "Factura "+invoice.Number)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invoice %s: %w", invoice.Number, err)
	}
	return nil
}

// NoopMailer drops mail; used when SMTP_HOST is empty.
type NoopMailer struct{}

func (NoopMailer) SendInvoice(context.Context, *entity.Invoice) error { return nil }

var (
	_ service.Mailer = (*SMTPMailer)(nil)
	_ service.Mailer = NoopMailer{}
)
