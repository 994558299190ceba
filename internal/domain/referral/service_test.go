package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRef_UnescapesAndLowercases(t *testing.T) {
	assert.Equal(t, "maria@example.com", NormalizeRef("Maria%40example.com"))
	assert.Equal(t, "maria+lopez@example.com", NormalizeRef("Maria+Lopez@example.com"))
}

func TestNormalizeRef_KeepsPlusAddressedEmails(t *testing.T) {
	// "+" is part of the email, not a form-encoded space.
	assert.Equal(t, "ana+ventas@example.com", NormalizeRef("ana+ventas@example.com"))
	assert.Equal(t, "ana+ventas@example.com", NormalizeRef("Ana%2Bventas%40example.com"))
}

func TestNormalizeRef_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "ref@example.com", NormalizeRef("  REF@example.com "))
}

func TestNormalizeRef_Empty(t *testing.T) {
	assert.Equal(t, "", NormalizeRef(""))
	assert.Equal(t, "", NormalizeRef("   "))
}

func TestNormalizeRef_KeepsInvalidEscapesVerbatim(t *testing.T) {
	// A ref that is not valid URL encoding is used as typed.
	assert.Equal(t, "50%off", NormalizeRef("50%off"))
}
