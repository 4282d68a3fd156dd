package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require := require.New(t)

	require.True(ValidateEmail("user@example.com"))
	require.True(ValidateEmail("  padded@example.com  "))
	require.True(ValidateEmail("first.last+tag@sub.example.co"))

	require.False(ValidateEmail(""))
	require.False(ValidateEmail("no-at-sign"))
	require.False(ValidateEmail("two@@example.com"))
	require.False(ValidateEmail("no-domain@"))
	require.False(ValidateEmail("spaces in@example.com"))
	require.False(ValidateEmail(strings.Repeat("a", 250)+"@example.com"))
}

func TestValidateDisplayName(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateDisplayName("Asha Verma"))
	require.Error(ValidateDisplayName(""))
	require.Error(ValidateDisplayName("   "))
	require.Error(ValidateDisplayName(strings.Repeat("x", MaxDisplayNameLength+1)))
}

func TestValidateRequiredText(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateRequiredText("title", "Overflowing drain near market", MaxTitleLength))

	err := ValidateRequiredText("title", "  ", MaxTitleLength)
	require.Error(err)
	var verr *ValidationError
	require.ErrorAs(err, &verr)
	require.Equal("title", verr.Field)

	require.Error(ValidateRequiredText("description", strings.Repeat("x", MaxBodyLength+1), MaxBodyLength))
}
