package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneVariantsLocalPrefix(t *testing.T) {
	variants := PhoneVariants("0912345678")
	assert.Equal(t, "0912345678", variants[0])
	assert.Contains(t, variants, "+84912345678")
	assert.Contains(t, variants, "84912345678")
	assert.Contains(t, variants, "912345678")
	assert.Contains(t, variants, "+84 9 123 45678")
}

func TestPhoneVariantsCountryPrefix(t *testing.T) {
	variants := PhoneVariants("+84912345678")
	assert.Equal(t, "+84912345678", variants[0])
	assert.Contains(t, variants, "0912345678")
	assert.Contains(t, variants, "84912345678")
	assert.Contains(t, variants, "912345678")
}

func TestPhoneVariantsSpacedInput(t *testing.T) {
	variants := PhoneVariants("+84 9 123 45678")
	assert.Contains(t, variants, "0912345678")
	assert.Contains(t, variants, "+84912345678")
}

func TestPhoneVariantsNoDigits(t *testing.T) {
	variants := PhoneVariants("n/a")
	assert.Equal(t, []string{"n/a"}, variants)
}

func TestLooksLikePhone(t *testing.T) {
	assert.True(t, LooksLikePhone("0912345678"))
	assert.True(t, LooksLikePhone("+84 9 123 45678"))
	assert.False(t, LooksLikePhone("lan@example.com"))
	assert.False(t, LooksLikePhone("Nguyen Lan"))
}
