package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.Equal(t, "11987654321", NormalizePhone("11987654321"))
	assert.Equal(t, "5511987654321", NormalizePhone("+55 11 98765-4321"))
	assert.Equal(t, "", NormalizePhone("sem número"))
}

func TestPhoneForMessaging(t *testing.T) {
	assert.Equal(t, "5511987654321", PhoneForMessaging("11987654321"))
	assert.Equal(t, "5511987654321", PhoneForMessaging("(11) 98765-4321"))

	// Já tem DDI: não duplica.
	assert.Equal(t, "5511987654321", PhoneForMessaging("5511987654321"))
	assert.Equal(t, "5511987654321", PhoneForMessaging("+55 11 98765-4321"))
}

func TestIsPlausiblePhone(t *testing.T) {
	assert.True(t, IsPlausiblePhone("11987654321"))
	assert.True(t, IsPlausiblePhone("(11) 98765-4321"))
	assert.True(t, IsPlausiblePhone("12345678"))

	assert.False(t, IsPlausiblePhone("1234567"))
	assert.False(t, IsPlausiblePhone("12345678901234"))
	assert.False(t, IsPlausiblePhone(""))
}
