package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hygienewatch/hygienewatch-backend/internal/session"
)

// Credential input is validated before any database access, so the
// rejection paths run fine without PostgreSQL behind them.

func TestSignUpRejectsInvalidEmail(t *testing.T) {
	require := require.New(t)
	p := NewProvider("test-secret")

	_, err := p.SignUp(context.Background(), "not-an-email", "Asha", "longenough")
	require.Error(err)
	require.Contains(err.Error(), "invalid email")
}

func TestSignUpRejectsBadDisplayName(t *testing.T) {
	require := require.New(t)
	p := NewProvider("test-secret")

	_, err := p.SignUp(context.Background(), "asha@example.com", "   ", "longenough")
	require.Error(err)
	require.Contains(err.Error(), "Display name is required")

	_, err = p.SignUp(context.Background(), "asha@example.com", strings.Repeat("x", 101), "longenough")
	require.Error(err)
	require.Contains(err.Error(), "too long")
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	require := require.New(t)
	p := NewProvider("test-secret")

	_, err := p.SignUp(context.Background(), "asha@example.com", "Asha", "short")
	require.Error(err)
	require.Contains(err.Error(), "at least 8 characters")
}

func TestChangePasswordRejectsShortNewPassword(t *testing.T) {
	require := require.New(t)
	p := NewProvider("test-secret")

	_, err := p.ChangePassword(context.Background(), "acct-1", "oldpassword", "short")
	require.Error(err)
	require.Contains(err.Error(), "at least 8 characters")
}

func TestOnAuthChangeObserversAreNotified(t *testing.T) {
	require := require.New(t)
	p := NewProvider("test-secret")

	var seen []*session.User
	p.OnAuthChange(func(u *session.User) {
		seen = append(seen, u)
	})

	user := &session.User{ID: "acct-1", Name: "Asha", Email: "asha@example.com"}
	p.notify(user)
	p.notify(nil)

	require.Len(seen, 2)
	require.Equal(user, seen[0])
	require.Nil(seen[1])
}
