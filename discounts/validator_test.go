package discounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/shopify"
)

type stubRules struct {
	rules     []shopify.PriceRule
	codes     map[int64][]string
	ruleCalls int
}

func (s *stubRules) ActivePriceRules(ctx context.Context) ([]shopify.PriceRule, error) {
	s.ruleCalls++
	return s.rules, nil
}

func (s *stubRules) DiscountCodesForRule(ctx context.Context, ruleID int64) ([]string, error) {
	return s.codes[ruleID], nil
}

func newTestValidator() (*Validator, *stubRules) {
	rules := &stubRules{
		rules: []shopify.PriceRule{
			{ID: 1, Title: "Ten percent", ValueType: "percentage", Value: "-10.0"},
			{ID: 2, Title: "Fifty k", ValueType: "fixed_amount", Value: "-50000.0"},
		},
		codes: map[int64][]string{
			1: {"TEN"},
			2: {"OFF50K"},
		},
	}
	return NewValidator(rules), rules
}

func TestValidatePercentageRule(t *testing.T) {
	v, _ := newTestValidator()
	dc, err := v.Validate(context.Background(), "TEN")
	require.NoError(t, err)
	assert.Equal(t, models.DiscountPercentage, dc.Type)
	assert.Equal(t, "10.0", dc.Amount, "negative rule values are stored absolute")
}

func TestValidateFixedRule(t *testing.T) {
	v, _ := newTestValidator()
	dc, err := v.Validate(context.Background(), "off50k")
	require.NoError(t, err)
	assert.Equal(t, models.DiscountFixed, dc.Type)
	assert.Equal(t, "50000.0", dc.Amount)
	assert.Equal(t, "OFF50K", dc.Code, "the platform's spelling of the code wins")
}

func TestValidateUnknownCode(t *testing.T) {
	v, _ := newTestValidator()
	_, err := v.Validate(context.Background(), "NOPE")
	assert.True(t, errs.IsNotFound(err))
}

func TestValidateEmptyCode(t *testing.T) {
	v, _ := newTestValidator()
	_, err := v.Validate(context.Background(), "  ")
	assert.True(t, errs.IsValidation(err))
}
