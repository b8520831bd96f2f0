package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("a.b+tag@sub.example.co"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("no-at-sign"))
	assert.Error(t, ValidateEmail("two@@example.com"))
	assert.Error(t, ValidateEmail("spaces in@example.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidateNickname(t *testing.T) {
	assert.NoError(t, ValidateNickname("neo"))
	assert.NoError(t, ValidateNickname(strings.Repeat("a", 20)))

	assert.Error(t, ValidateNickname(""))
	assert.Error(t, ValidateNickname(strings.Repeat("a", 21)))
	assert.Error(t, ValidateNickname("has space"))
	assert.Error(t, ValidateNickname("tab\there"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Abcdef1!"))
	assert.NoError(t, ValidatePassword("Str0ng#Password!"))

	assert.Error(t, ValidatePassword("Ab1!"))                        // too short
	assert.Error(t, ValidatePassword("Abcdefgh1!Abcdefgh1!x"))       // too long
	assert.Error(t, ValidatePassword("abcdefg1!"))                   // no upper
	assert.Error(t, ValidatePassword("ABCDEFG1!"))                   // no lower
	assert.Error(t, ValidatePassword("Abcdefgh!"))                   // no digit
	assert.Error(t, ValidatePassword("Abcdefg1"))                    // no special
}
