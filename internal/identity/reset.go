package identity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hygienewatch/hygienewatch-backend/internal/database"
	"github.com/hygienewatch/hygienewatch-backend/internal/session"
	"github.com/hygienewatch/hygienewatch-backend/pkg/utils"
)

// resetTokenTTL bounds how long a reset link stays usable.
const resetTokenTTL = 30 * time.Minute

type resetClaims struct {
	ResetID string `json:"reset_id"`
	jwt.RegisteredClaims
}

// SendPasswordReset issues a signed single-use reset token for the
// account behind email. The token goes out through whatever delivery the
// deployment wires up; it is returned here for that layer. To avoid
// account enumeration, an unknown email yields an empty token and no
// error.
func (p *Provider) SendPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var accountID string
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE LOWER(email) = $1 AND is_active = TRUE`, email,
	).Scan(&accountID)
	if err == sql.ErrNoRows {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	resetID := uuid.NewString()
	if _, err := database.PostgresDB.ExecContext(ctx,
		`INSERT INTO password_resets (id, account_id) VALUES ($1, $2)`, resetID, accountID,
	); err != nil {
		return "", fmt.Errorf("failed to record reset request: %w", err)
	}

	now := time.Now()
	claims := resetClaims{
		ResetID: resetID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token, stores the new password hash and
// invalidates the account's live session.
func (p *Provider) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	var claims resetClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return fmt.Errorf("invalid or expired reset token")
	}

	// Single use: flip the row before touching the password.
	res, err := database.PostgresDB.ExecContext(ctx,
		`UPDATE password_resets SET used = TRUE WHERE id = $1 AND account_id = $2 AND used = FALSE`,
		claims.ResetID, claims.Subject,
	)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("invalid or expired reset token")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := database.PostgresDB.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $1 WHERE id = $2`, hash, claims.Subject,
	); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return session.InvalidateAccount(ctx, claims.Subject)
}
