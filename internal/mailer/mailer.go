// Package mailer sends order confirmation emails through an SMTP relay.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/taha12-ok/comforty-order-service/internal/config"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
	"github.com/wneessen/go-mail"
)

var bodyTemplate = template.Must(template.New("confirmation").Parse(`<h1>Order Confirmation</h1>
<p>Thank you for your order. Your order ID is: {{.OrderID}}</p>
<h2>Order Details:</h2>
<ul>
{{- range .Items}}
  <li>{{.Title}} x {{.Quantity}} - ${{.LineTotal}}</li>
{{- end}}
</ul>
<p><strong>Total: ${{.Total}}</strong></p>
<p>Shipping Address: {{.Address}}, {{.City}}, {{.Country}} {{.PostalCode}}</p>
`))

type bodyData struct {
	OrderID    string
	Items      []bodyItem
	Total      string
	Address    string
	City       string
	Country    string
	PostalCode string
}

type bodyItem struct {
	Title     string
	Quantity  int
	LineTotal string
}

type Mailer struct {
	client *mail.Client
	from   string
}

func New(cfg config.SMTP) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

// SendOrderConfirmation delivers the confirmation mail for a persisted order.
// There is no retry: the caller decides what a transport failure means.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, order entities.Order) error {
	msg, err := buildMessage(m.from, to, order)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func buildMessage(from, to string, order entities.Order) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Order Confirmation - Order ID: " + order.OrderID)

	body, err := renderBody(order)
	if err != nil {
		return nil, err
	}
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func renderBody(order entities.Order) (string, error) {
	data := bodyData{
		OrderID:    order.OrderID,
		Total:      order.Total.StringFixed(2),
		Address:    order.Customer.Address,
		City:       order.Customer.City,
		Country:    order.Customer.Country,
		PostalCode: order.Customer.PostalCode,
	}
	for _, item := range order.Items {
		data.Items = append(data.Items, bodyItem{
			Title:     item.Title,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}
