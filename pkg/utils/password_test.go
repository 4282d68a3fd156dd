package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	require := require.New(t)

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(err)
	require.True(strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(err)
	require.True(ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(err)
	require.False(ok)
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	require := require.New(t)

	h1, err := HashPassword("same password")
	require.NoError(err)
	h2, err := HashPassword("same password")
	require.NoError(err)
	require.NotEqual(h1, h2)
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	require := require.New(t)

	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$whatever",
		"$argon2id$v=19$m=65536,t=3,p=2$only-four-parts",
		"$argon2id$v=19$bad-params$c2FsdA$aGFzaA",
	} {
		ok, err := VerifyPassword("pw", bad)
		require.Error(err)
		require.False(ok)
	}
}
