package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentURL(t *testing.T) {
	cfg := Config{
		BankID:      "vietinbank",
		AccountNo:   "113366668888",
		AccountName: "GOLDEN WINE",
		Template:    "compact2",
	}
	url := cfg.PaymentURL("450000", "Thanh toan don hang 3f8a2c1d")
	assert.Contains(t, url, "https://img.vietqr.io/image/vietinbank-113366668888-compact2.jpg?")
	assert.Contains(t, url, "amount=450000")
	assert.Contains(t, url, "addInfo=Thanh+toan+don+hang+3f8a2c1d")
	assert.Contains(t, url, "accountName=GOLDEN+WINE")
}

func TestPaymentURLOmitsEmptyParams(t *testing.T) {
	cfg := Config{BankID: "vietinbank", AccountNo: "1", Template: "compact2"}
	url := cfg.PaymentURL("", "")
	assert.Equal(t, "https://img.vietqr.io/image/vietinbank-1-compact2.jpg", url)
}

func TestPaymentPNG(t *testing.T) {
	png, err := PaymentPNG("https://img.vietqr.io/image/x.jpg", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
