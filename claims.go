package members

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind discriminates access tokens from refresh tokens. A token of
// one kind never validates as the other.
type TokenKind = string

const (
	// TokenKindAccess is the short-lived bearer credential.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived credential used only to mint
	// new access tokens.
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the claim set carried by both token kinds. It holds
// enough identity to re-derive authorization without a store round-trip
// for the token's lifetime.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID      string    `json:"uid,omitempty"`
	UserRole Role      `json:"role,omitempty"`
	Kind     TokenKind `json:"kind,omitempty"`
}

// UserID returns the account id the token is bound to.
func (c *TokenClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// UserUUID parses the bound account id.
func (c *TokenClaims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID())
}

// Role returns the role claim.
func (c *TokenClaims) Role() Role {
	return c.UserRole
}

// Expires returns the expiration time, or the zero time when unset.
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
