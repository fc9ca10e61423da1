// Package discounts validates discount codes against the commerce platform's
// active price rules, with a short-TTL Redis cache in front.
package discounts

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/rdx"
	"goldenwine/shopify"
)

// PlatformRules is the slice of the commerce platform the validator uses.
type PlatformRules interface {
	ActivePriceRules(ctx context.Context) ([]shopify.PriceRule, error)
	DiscountCodesForRule(ctx context.Context, ruleID int64) ([]string, error)
}

type Validator struct {
	Rules    PlatformRules
	CacheTTL time.Duration
}

func NewValidator(rules PlatformRules) *Validator {
	return &Validator{Rules: rules, CacheTTL: 5 * time.Minute}
}

func cacheKey(code string) string {
	return "discount:code:" + strings.ToUpper(code)
}

// Validate resolves a discount code to its normalized type and amount. A
// code that exists on no active rule returns NotFound.
func (v *Validator) Validate(ctx context.Context, code string) (*models.DiscountCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Validation("discount code is required")
	}

	if cached, ok := rdx.Get(cacheKey(code)); ok {
		var dc models.DiscountCode
		if err := json.Unmarshal([]byte(cached), &dc); err == nil {
			return &dc, nil
		}
	}

	rules, err := v.Rules.ActivePriceRules(ctx)
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		codes, err := v.Rules.DiscountCodesForRule(ctx, rule.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range codes {
			if strings.EqualFold(c, code) {
				dc := normalizeRule(c, rule)
				if buf, err := json.Marshal(dc); err == nil {
					rdx.SetWithTTL(cacheKey(code), string(buf), v.CacheTTL)
				}
				return dc, nil
			}
		}
	}
	return nil, errs.NotFound("discount code", code)
}

// normalizeRule maps a platform price rule onto the order discount shape.
// Rule values arrive negative ("-10.0" is 10 off) and are stored absolute.
func normalizeRule(code string, rule shopify.PriceRule) *models.DiscountCode {
	amount := strings.TrimPrefix(strings.TrimSpace(rule.Value), "-")
	kind := models.DiscountFixed
	if rule.ValueType == models.DiscountPercentage {
		kind = models.DiscountPercentage
	}
	return &models.DiscountCode{Code: code, Type: kind, Amount: amount}
}
