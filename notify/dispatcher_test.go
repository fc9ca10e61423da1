package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenwine/errs"
	"goldenwine/models"
)

type stubMailer struct {
	to      string
	subject string
	body    string
	err     error
	calls   int
}

func (m *stubMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.calls++
	m.to = to
	m.subject = subject
	m.body = htmlBody
	return m.err
}

func testOrder() *models.Order {
	return &models.Order{
		ID:         "3f8a2c1d-order",
		CustomerID: "7001",
		LineItems: []models.LineItem{
			{Title: "Red 2018", Quantity: 2, Price: "250000"},
		},
		DiscountCodes: []models.DiscountCode{
			{Code: "TEN", Type: models.DiscountPercentage, Amount: "10"},
		},
		SubtotalPrice:   "500000",
		TotalPrice:      "450000",
		Currency:        "VND",
		FinancialStatus: models.StatusPaid,
		PaymentMethod:   "cash",
		CreatedAt:       time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC),
	}
}

func TestOrderPaidSendsToAdmin(t *testing.T) {
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, "boss@example.com")

	require.NoError(t, d.OrderPaid(context.Background(), testOrder()))
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "boss@example.com", mailer.to)
	assert.Equal(t, "[IPOS - Đã thanh toán] Đơn hàng #3f8a2c1d - 2026-08-30", mailer.subject)
	assert.Contains(t, mailer.body, "Red 2018")
	assert.Contains(t, mailer.body, "450000")
	assert.Contains(t, mailer.body, "TEN")
}

func TestOrderPaidWithoutAdminConfigured(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	mailer := &stubMailer{}
	d := NewDispatcher(mailer, "")

	err := d.OrderPaid(context.Background(), testOrder())
	assert.Error(t, err)
	assert.Zero(t, mailer.calls)
}

func TestOrderPaidWrapsMailerFailure(t *testing.T) {
	mailer := &stubMailer{err: assert.AnError}
	d := NewDispatcher(mailer, "boss@example.com")

	err := d.OrderPaid(context.Background(), testOrder())
	var xe *errs.ExternalServiceError
	assert.ErrorAs(t, err, &xe)
}
