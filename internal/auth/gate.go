package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/model"
	"github.com/stagecrew/stageinv/internal/store"
)

// ErrInvalidCredentials is returned by Login when no credential matches.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Gate turns credentials into signed session tokens and back.
type Gate struct {
	Credentials *CredentialStore
	DB          *bun.DB
	Secret      string
	Expiry      time.Duration
}

// Login checks username and password and issues a session token.
func (g *Gate) Login(ctx context.Context, username, password string) (string, *model.Session, error) {
	sess, ok := g.Credentials.Authenticate(username, password)
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(g.Secret, sess.Username, sess.Role, g.Expiry)
	if err != nil {
		return "", nil, fmt.Errorf("issuing session token: %w", err)
	}

	slog.Info("user logged in", "user", sess.Username, "role", sess.Role)
	return token, sess, nil
}

// Resolve validates a token and returns its session and claims. Expired,
// forged and revoked tokens are rejected.
func (g *Gate) Resolve(ctx context.Context, token string) (*model.Session, *Claims, error) {
	claims, err := ValidateToken(g.Secret, token)
	if err != nil {
		return nil, nil, err
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(ctx, g.DB, claims.ID)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, fmt.Errorf("token revoked")
		}
	}

	return model.NewSession(claims.Username, claims.Role), claims, nil
}

// Logout revokes the session behind claims so the token cannot be reused.
func (g *Gate) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	expiresAt := time.Now().Add(g.SessionExpiry())
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := store.RevokeToken(ctx, g.DB, claims.ID, expiresAt); err != nil {
		return err
	}

	slog.Info("user logged out", "user", claims.Username)
	return nil
}

// SessionExpiry is the configured token lifetime, or DefaultExpiry.
func (g *Gate) SessionExpiry() time.Duration {
	if g.Expiry <= 0 {
		return DefaultExpiry
	}
	return g.Expiry
}
