// Package notify emails the store admin when an order is paid. Everything
// here is a side effect: callers on the hot path run it through the task
// runner and never see a failure.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"

	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/utils"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(`
<h2>Đơn hàng #{{.ShortID}} đã thanh toán</h2>
<p>Ngày: {{.Date}}</p>
<p>Khách hàng: {{.Customer}}</p>
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>Sản phẩm</th><th>SL</th><th>Đơn giá</th></tr>
  {{range .Items}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td></tr>{{end}}
</table>
<p>Tạm tính: {{.Subtotal}} {{.Currency}}</p>
{{range .Discounts}}<p>Giảm giá {{.Code}}: {{.Amount}} ({{.Type}})</p>{{end}}
<p><b>Tổng cộng: {{.Total}} {{.Currency}}</b></p>
{{if .PaymentMethod}}<p>Thanh toán: {{.PaymentMethod}}</p>{{end}}
`))

type Dispatcher struct {
	Mailer     Mailer
	AdminEmail string
}

func NewDispatcher(mailer Mailer, adminEmail string) *Dispatcher {
	if adminEmail == "" {
		adminEmail = os.Getenv("ADMIN_EMAIL")
	}
	return &Dispatcher{Mailer: mailer, AdminEmail: adminEmail}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// OrderPaid mails the configured admin an HTML summary of the paid order.
func (d *Dispatcher) OrderPaid(ctx context.Context, o *models.Order) error {
	if d.AdminEmail == "" {
		return errs.Validation("admin email not configured")
	}

	date := utils.LocalDate(o.CreatedAt)
	data := map[string]any{
		"ShortID":       shortID(o.ID),
		"Date":          date,
		"Customer":      o.CustomerID,
		"Items":         o.LineItems,
		"Discounts":     o.DiscountCodes,
		"Subtotal":      o.SubtotalPrice,
		"Total":         o.TotalPrice,
		"Currency":      o.Currency,
		"PaymentMethod": o.PaymentMethod,
	}
	var body bytes.Buffer
	if err := invoiceTmpl.Execute(&body, data); err != nil {
		return err
	}

	subject := fmt.Sprintf("[IPOS - Đã thanh toán] Đơn hàng #%s - %s", shortID(o.ID), date)
	if err := d.Mailer.Send(ctx, d.AdminEmail, subject, body.String()); err != nil {
		return errs.External("send invoice email", err)
	}
	return nil
}
