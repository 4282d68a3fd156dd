// Package identity implements the identity collaborator: account
// credentials in PostgreSQL, opaque session tokens in Redis, and
// auth-change callbacks so the session context re-resolves on every
// transition. Content documents never live here.
package identity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/session"
	"github.com/hygienewatch/hygienewatch-backend/pkg/utils"
)

// Provider is the process-wide identity service.
type Provider struct {
	jwtSecret []byte

	mu        sync.Mutex
	observers []func(*session.User)
}

// NewProvider builds a provider whose password-reset tokens are signed
// with jwtSecret.
func NewProvider(jwtSecret string) *Provider {
	return &Provider{jwtSecret: []byte(jwtSecret)}
}

// OnAuthChange registers a callback invoked on every session transition:
// the signed-in user after sign-in, nil after sign-out.
func (p *Provider) OnAuthChange(cb func(*session.User)) {
	p.mu.Lock()
	p.observers = append(p.observers, cb)
	p.mu.Unlock()
}

func (p *Provider) notify(u *session.User) {
	p.mu.Lock()
	observers := make([]func(*session.User), len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()
	for _, cb := range observers {
		cb(u)
	}
}

// SignUp registers an account. The profile document is created lazily by
// the session context on first sign-in, not here.
func (p *Provider) SignUp(ctx context.Context, email, displayName, password string) (*session.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if err := utils.ValidateDisplayName(displayName); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	var existing string
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT email FROM accounts WHERE LOWER(email) = $1`, email,
	).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("an account with this email already exists")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.NewString()
	if _, err := database.PostgresDB.ExecContext(ctx,
		`INSERT INTO accounts (id, email, display_name, password_hash) VALUES ($1, $2, $3, $4)`,
		id, email, displayName, hash,
	); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &session.User{ID: id, Name: displayName, Email: email}, nil
}

// SignIn verifies credentials, rotates the account's session token and
// fires auth-change callbacks. The error is deliberately the same for a
// missing account and a wrong password.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*session.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		id          string
		displayName string
		hash        string
	)
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT id, display_name, password_hash FROM accounts WHERE LOWER(email) = $1 AND is_active = TRUE`,
		email,
	).Scan(&id, &displayName, &hash)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("invalid email or password")
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	ok, err := utils.VerifyPassword(password, hash)
	if err != nil || !ok {
		return nil, "", fmt.Errorf("invalid email or password")
	}

	token, err := session.CreateToken(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	user := &session.User{ID: id, Name: displayName, Email: email}
	p.notify(user)
	return user, token, nil
}

// ChangePassword verifies the current password before storing the new
// hash, then rotates the session so stolen tokens die with the old
// password. The fresh token is returned for the caller to keep.
func (p *Provider) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) (string, error) {
	if len(newPassword) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}

	var hash string
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT password_hash FROM accounts WHERE id = $1 AND is_active = TRUE`, accountID,
	).Scan(&hash)
	if err != nil {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	ok, err := utils.VerifyPassword(currentPassword, hash)
	if err != nil || !ok {
		return "", fmt.Errorf("current password is incorrect")
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := database.PostgresDB.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $1 WHERE id = $2`, newHash, accountID,
	); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	token, err := session.CreateToken(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to rotate session: %w", err)
	}
	return token, nil
}

// SignOut invalidates the session token and fires auth-change callbacks
// with no user.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	err := session.InvalidateToken(ctx, token)
	p.notify(nil)
	return err
}

// UserByID resolves an active account to its user view, or nil when the
// account is missing or deactivated.
func (p *Provider) UserByID(ctx context.Context, id string) *session.User {
	var (
		displayName string
		email       string
	)
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT display_name, email FROM accounts WHERE id = $1 AND is_active = TRUE`, id,
	).Scan(&displayName, &email)
	if err != nil {
		return nil
	}
	return &session.User{ID: id, Name: displayName, Email: email}
}
