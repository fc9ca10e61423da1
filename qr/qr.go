// Package qr produces VietQR payment images for order checkout.
package qr

import (
	"fmt"
	"net/url"
	"os"

	"github.com/skip2/go-qrcode"
)

type Config struct {
	BankID      string
	AccountNo   string
	AccountName string
	Template    string
}

func ConfigFromEnv() Config {
	cfg := Config{
		BankID:      os.Getenv("VIETQR_BANK_ID"),
		AccountNo:   os.Getenv("VIETQR_ACCOUNT_NO"),
		AccountName: os.Getenv("VIETQR_ACCOUNT_NAME"),
		Template:    os.Getenv("VIETQR_TEMPLATE"),
	}
	if cfg.BankID == "" {
		cfg.BankID = "vietinbank"
	}
	if cfg.Template == "" {
		cfg.Template = "compact2"
	}
	return cfg
}

// PaymentURL builds the hosted VietQR image URL for an amount and transfer
// description.
func (c Config) PaymentURL(amount, addInfo string) string {
	base := fmt.Sprintf("https://img.vietqr.io/image/%s-%s-%s.jpg", c.BankID, c.AccountNo, c.Template)
	v := url.Values{}
	if amount != "" {
		v.Set("amount", amount)
	}
	if addInfo != "" {
		v.Set("addInfo", addInfo)
	}
	if c.AccountName != "" {
		v.Set("accountName", c.AccountName)
	}
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}

// PaymentPNG renders the payload as a locally generated QR image, for tills
// without internet access to the hosted image service.
func PaymentPNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
